package screening

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dealpulse/internal/errors"
	"dealpulse/internal/repository"
	"dealpulse/pkg/contracts/domain"
)

func seedStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Batch(context.Background(), func(tx repository.Tx) error {
		companies := []*domain.Company{
			{ID: "c1", Name: "Acme Corp", Industry: "Software", Geography: "US"},
			{ID: "c2", Name: "Globex Industries", Industry: "Manufacturing", Geography: "DE"},
		}
		for _, c := range companies {
			if err := tx.PutCompany(c); err != nil {
				return err
			}
		}
		deals := []*domain.Deal{
			{ID: "d1", TargetID: "c1", AcquirerID: "c2",
				Announced:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
				KeywordMatches: []string{"acquisition"},
				Summary:        "acquisition of Acme Corp by Globex Industries"},
			{ID: "d2", TargetID: "c2",
				Announced: time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
				Summary:   "rumored takeover bid for Globex"},
			{ID: "d3", TargetID: "c1",
				Announced: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				Summary:   "old merger talks"},
		}
		for _, d := range deals {
			if err := tx.PutDeal(d); err != nil {
				return err
			}
		}
		return nil
	}))
	return store
}

func testService(t *testing.T) (*Service, *repository.MemoryStore) {
	store := seedStore(t)
	svc := NewService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestSearchTargets(t *testing.T) {
	svc, _ := testService(t)

	companies, err := svc.SearchTargets(context.Background(), repository.ScreeningFilter{
		Industries: []string{"Software"},
	})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "c1", companies[0].ID)
}

func TestTransactionHistory(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	deals, err := svc.TransactionHistory(ctx, "c2")
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, "d2", deals[0].ID, "newest first")
	assert.Equal(t, "d1", deals[1].ID)

	_, err = svc.TransactionHistory(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTagAndSearchByTag(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, svc.Tag(ctx, []string{"c1"}, domain.TagPotentialTarget))

	companies, err := svc.SearchTargets(ctx, repository.ScreeningFilter{
		Tags: []string{domain.TagPotentialTarget},
	})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "c1", companies[0].ID)
}

func TestWatchlistLifecycle(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	id, err := svc.Watch(ctx, &domain.WatchlistEntry{
		Owner: "ana", EntityID: "c1", EntityKind: domain.KindCompany, EntityName: "Acme Corp",
	})
	require.NoError(t, err)

	entries, err := svc.Watchlist(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Acme Corp", entries[0].EntityName)

	require.NoError(t, svc.Unwatch(ctx, id))
	entries, err = svc.Watchlist(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTrendingKeywords(t *testing.T) {
	svc, _ := testService(t)

	// The 30-day window covers d1 and d2 only. d1 contributes "acquisition"
	// once even though it appears in both the keyword set and the summary;
	// d2 contributes "takeover" and "bid".
	counts, err := svc.TrendingKeywords(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)

	got := make(map[string]int, len(counts))
	for _, c := range counts {
		got[c.Keyword] = c.Count
	}
	assert.Equal(t, map[string]int{"acquisition": 1, "takeover": 1, "bid": 1}, got)

	// Counts tie, so ordering falls back to the keyword.
	keywords := make([]string, 0, len(counts))
	for _, c := range counts {
		keywords = append(keywords, c.Keyword)
	}
	assert.Equal(t, []string{"acquisition", "bid", "takeover"}, keywords)
}
