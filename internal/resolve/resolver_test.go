package resolve

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

type fakeCompanyStore struct {
	companies []domain.Company
	put       []domain.Company
}

func (f *fakeCompanyStore) FindCompaniesByTokens(tokens []string) ([]domain.Company, error) {
	return f.companies, nil
}

func (f *fakeCompanyStore) PutCompany(c *domain.Company) error {
	f.put = append(f.put, *c)
	return nil
}

type fakeDealStore struct {
	deals []domain.Deal
	put   []domain.Deal
}

func (f *fakeDealStore) FindDealsByTarget(targetID string) ([]domain.Deal, error) {
	return f.deals, nil
}

func (f *fakeDealStore) PutDeal(d *domain.Deal) error {
	f.put = append(f.put, *d)
	return nil
}

func testResolver() *Resolver {
	r := NewResolver(nil)
	seq := 0
	r.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	r.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestResolveCompanyInsertsWhenNoMatch(t *testing.T) {
	store := &fakeCompanyStore{companies: []domain.Company{
		{ID: "e1", Name: "Globex Industries", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}

	res, err := testResolver().ResolveCompany(store, &domain.Company{Name: "Initech"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionInserted, res.Decision.Outcome)
	assert.Equal(t, "id-1", res.Company.ID)
	assert.False(t, res.Company.CreatedAt.IsZero())
	require.Len(t, store.put, 1)
}

func TestResolveCompanyExactNameAlwaysMerges(t *testing.T) {
	store := &fakeCompanyStore{companies: []domain.Company{
		{ID: "e1", Name: "Acme Corporation", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}

	res, err := testResolver().ResolveCompany(store, &domain.Company{Name: "ACME Corp."})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionMerged, res.Decision.Outcome)
	assert.Equal(t, "e1", res.Company.ID)
	assert.InDelta(t, ScoreExactName, res.Decision.Score, 1e-9)
	assert.True(t, res.Company.HasAlias("ACME Corp."))
}

func TestResolveCompanyAliasOverlapMerges(t *testing.T) {
	store := &fakeCompanyStore{companies: []domain.Company{
		{
			ID:        "e1",
			Name:      "International Business Machines",
			Aliases:   []string{"IBM"},
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}

	res, err := testResolver().ResolveCompany(store, &domain.Company{Name: "IBM"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionMerged, res.Decision.Outcome)
	assert.InDelta(t, ScoreAliasOverlap, res.Decision.Score, 1e-9)
}

func TestResolveCompanyBelowThresholdInserts(t *testing.T) {
	// One shared token out of three plus both bonuses stays under the
	// merge threshold.
	store := &fakeCompanyStore{companies: []domain.Company{
		{
			ID:        "e1",
			Name:      "Acme Software Systems",
			Industry:  "Software",
			Geography: "US",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}

	res, err := testResolver().ResolveCompany(store, &domain.Company{
		Name:      "Acme Networks Holdings",
		Industry:  "Software",
		Geography: "US",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionInserted, res.Decision.Outcome)
}

func TestResolveCompanyTieBreaksOnCreation(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeCompanyStore{companies: []domain.Company{
		{ID: "e2", Name: "Acme Corp", CreatedAt: newer},
		{ID: "e1", Name: "Acme Inc", CreatedAt: older},
	}}

	res, err := testResolver().ResolveCompany(store, &domain.Company{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionMerged, res.Decision.Outcome)
	assert.Equal(t, "e1", res.Company.ID)
	assert.Nil(t, res.Warning)
}

func TestResolveCompanyAmbiguityInsertsWithWarning(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeCompanyStore{companies: []domain.Company{
		{ID: "e1", Name: "Acme Corp", CreatedAt: created},
		{ID: "e2", Name: "Acme Inc", CreatedAt: created},
	}}

	res, err := testResolver().ResolveCompany(store, &domain.Company{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionInserted, res.Decision.Outcome)

	var amb *apperrors.ResolutionAmbiguityError
	require.ErrorAs(t, res.Warning, &amb)
	assert.ElementsMatch(t, []string{"e1", "e2"}, amb.EntityIDs)
}

func TestCompanySimilarity(t *testing.T) {
	tests := []struct {
		name      string
		candidate domain.Company
		existing  domain.Company
		want      float64
	}{
		{
			name:      "exact normalized name",
			candidate: domain.Company{Name: "Acme Corp"},
			existing:  domain.Company{Name: "ACME Corporation"},
			want:      ScoreExactName,
		},
		{
			name:      "alias overlap",
			candidate: domain.Company{Name: "IBM"},
			existing:  domain.Company{Name: "International Business Machines", Aliases: []string{"IBM"}},
			want:      ScoreAliasOverlap,
		},
		{
			name:      "partial tokens with bonuses",
			candidate: domain.Company{Name: "Acme Software", Industry: "Software", Geography: "US"},
			existing:  domain.Company{Name: "Acme Systems", Industry: "Software", Geography: "US"},
			want:      1.0/3.0*WeightTokenJaccard + BonusGeography + BonusIndustry,
		},
		{
			name:      "disjoint names",
			candidate: domain.Company{Name: "Initech"},
			existing:  domain.Company{Name: "Globex"},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompanySimilarity(&tt.candidate, &tt.existing)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMergeAmountPrecedence(t *testing.T) {
	secVal := &domain.SourcedAmount{Value: 100, Currency: "USD", Source: domain.SourceSECFiling}
	indexVal := &domain.SourcedAmount{Value: 90, Currency: "USD", Source: domain.SourceIndexConstituent}
	pressVal := &domain.SourcedAmount{Value: 80, Currency: "USD", Source: domain.SourcePressRelease}

	t.Run("higher precedence overwrites", func(t *testing.T) {
		assert.Equal(t, secVal, mergeAmount(indexVal, secVal))
	})
	t.Run("lower precedence never downgrades", func(t *testing.T) {
		assert.Equal(t, secVal, mergeAmount(secVal, indexVal))
		assert.Equal(t, secVal, mergeAmount(secVal, pressVal))
	})
	t.Run("equal precedence keeps first writer", func(t *testing.T) {
		mm := &domain.SourcedAmount{Value: 70, Source: domain.SourceMergermarket}
		pq := &domain.SourcedAmount{Value: 60, Source: domain.SourcePreqin}
		assert.Equal(t, mm, mergeAmount(mm, pq))
	})
	t.Run("nil gaps fill", func(t *testing.T) {
		assert.Equal(t, indexVal, mergeAmount(nil, indexVal))
		assert.Equal(t, indexVal, mergeAmount(indexVal, nil))
	})
}

func TestMergeCompanyFieldsOnlyGrow(t *testing.T) {
	existing := domain.Company{
		ID:        "e1",
		Name:      "Acme Corporation",
		Aliases:   []string{"Acme"},
		Industry:  "Software",
		Revenue:   &domain.SourcedAmount{Value: 500, Source: domain.SourceSECFiling},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	candidate := domain.Company{
		Name:      "ACME Corp",
		Aliases:   []string{"Acme Co"},
		Industry:  "Technology",
		Geography: "US",
		Ticker:    "ACME",
		Tags:      []string{domain.TagPotentialTarget},
		Indexes:   []string{"S&P 500"},
		Revenue:   &domain.SourcedAmount{Value: 450, Source: domain.SourcePressRelease},
	}

	mergeCompany(&existing, &candidate)

	assert.Equal(t, "Acme Corporation", existing.Name)
	assert.ElementsMatch(t, []string{"Acme", "ACME Corp", "Acme Co"}, existing.Aliases)
	assert.Equal(t, "Software", existing.Industry, "filled fields are kept")
	assert.Equal(t, "US", existing.Geography, "empty fields are filled")
	assert.Equal(t, "ACME", existing.Ticker)
	assert.True(t, existing.HasTag(domain.TagPotentialTarget))
	assert.True(t, existing.MemberOf("S&P 500"))
	assert.InDelta(t, 500, existing.Revenue.Value, 1e-9, "precedence is never downgraded")
}

func TestResolveDealMergesWithinWindow(t *testing.T) {
	announced := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeDealStore{deals: []domain.Deal{
		{
			ID:         "d1",
			TargetID:   "t1",
			AcquirerID: "a1",
			Announced:  announced,
			Status:     domain.DealStatusAnnounced,
			Summary:    "acquisition of Acme by Globex",
			CreatedAt:  announced,
		},
	}}

	res, err := testResolver().ResolveDeal(store, &domain.Deal{
		TargetID:   "t1",
		AcquirerID: "a1",
		Announced:  announced.Add(3 * 24 * time.Hour),
		Status:     domain.DealStatusCompleted,
		Summary:    "transaction closed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionMerged, res.Decision.Outcome)
	assert.Equal(t, "d1", res.Deal.ID)
	assert.Equal(t, domain.DealStatusCompleted, res.Deal.Status)
	assert.Equal(t, "acquisition of Acme by Globex; transaction closed", res.Deal.Summary)
}

func TestResolveDealOutsideWindowInserts(t *testing.T) {
	announced := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeDealStore{deals: []domain.Deal{
		{ID: "d1", TargetID: "t1", Announced: announced, Status: domain.DealStatusAnnounced},
	}}

	res, err := testResolver().ResolveDeal(store, &domain.Deal{
		TargetID:  "t1",
		Announced: announced.Add(45 * 24 * time.Hour),
		Status:    domain.DealStatusAnnounced,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionInserted, res.Decision.Outcome)
	assert.NotEqual(t, "d1", res.Deal.ID)
}

func TestResolveDealAcquirerMismatchInserts(t *testing.T) {
	announced := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeDealStore{deals: []domain.Deal{
		{ID: "d1", TargetID: "t1", AcquirerID: "a1", Announced: announced, Status: domain.DealStatusAnnounced},
	}}

	res, err := testResolver().ResolveDeal(store, &domain.Deal{
		TargetID:   "t1",
		AcquirerID: "a2",
		Announced:  announced,
		Status:     domain.DealStatusAnnounced,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionInserted, res.Decision.Outcome)
}

func TestResolveDealUnknownAcquirerIsCompatible(t *testing.T) {
	announced := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeDealStore{deals: []domain.Deal{
		{ID: "d1", TargetID: "t1", Announced: announced, Status: domain.DealStatusRumored},
	}}

	res, err := testResolver().ResolveDeal(store, &domain.Deal{
		TargetID:     "t1",
		AcquirerID:   "a1",
		AcquirerName: "Globex",
		Announced:    announced,
		Status:       domain.DealStatusAnnounced,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionMerged, res.Decision.Outcome)
	assert.Equal(t, "a1", res.Deal.AcquirerID, "unknown acquirer is filled on merge")
	assert.Equal(t, domain.DealStatusAnnounced, res.Deal.Status)
}

func TestResolveDealPicksClosestDate(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeDealStore{deals: []domain.Deal{
		{ID: "far", TargetID: "t1", Announced: base.Add(-20 * 24 * time.Hour), Status: domain.DealStatusAnnounced},
		{ID: "near", TargetID: "t1", Announced: base.Add(-2 * 24 * time.Hour), Status: domain.DealStatusAnnounced},
	}}

	res, err := testResolver().ResolveDeal(store, &domain.Deal{
		TargetID:  "t1",
		Announced: base,
		Status:    domain.DealStatusAnnounced,
	})
	require.NoError(t, err)
	assert.Equal(t, "near", res.Deal.ID)
}

func TestMergeDealStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		existing domain.DealStatus
		incoming domain.DealStatus
		want     domain.DealStatus
	}{
		{name: "advances", existing: domain.DealStatusRumored, incoming: domain.DealStatusAnnounced, want: domain.DealStatusAnnounced},
		{name: "never regresses", existing: domain.DealStatusCompleted, incoming: domain.DealStatusAnnounced, want: domain.DealStatusCompleted},
		{name: "withdrawn wins", existing: domain.DealStatusAnnounced, incoming: domain.DealStatusWithdrawn, want: domain.DealStatusWithdrawn},
		{name: "withdrawn is terminal", existing: domain.DealStatusWithdrawn, incoming: domain.DealStatusCompleted, want: domain.DealStatusWithdrawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := domain.Deal{Status: tt.existing}
			mergeDeal(&existing, &domain.Deal{Status: tt.incoming})
			assert.Equal(t, tt.want, existing.Status)
		})
	}
}
