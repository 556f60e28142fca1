// Package screening serves target identification queries over the
// reconciled entity set: multi-criteria search, tagging, watchlists,
// transaction history and trending deal keywords.
package screening

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"dealpulse/internal/normalize"
	"dealpulse/internal/repository"
	"dealpulse/pkg/contracts/domain"
)

// KeywordCount is one entry of the trending-keywords view
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Service answers screening queries against the repository
type Service struct {
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a screening service. A nil logger falls back to the
// default.
func NewService(store repository.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger.With(slog.String("component", "screening")),
		now:    time.Now,
	}
}

// SearchTargets runs a multi-criteria company search
func (s *Service) SearchTargets(ctx context.Context, filter repository.ScreeningFilter) ([]domain.Company, error) {
	return s.store.SearchCompanies(ctx, filter)
}

// TransactionHistory returns every deal where the company appears as target
// or acquirer, newest first.
func (s *Service) TransactionHistory(ctx context.Context, companyID string) ([]domain.Deal, error) {
	if _, err := s.store.CompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.store.CompanyDeals(ctx, companyID)
}

// Tag applies tag to each listed company. Tagging is idempotent; existing
// tags are kept.
func (s *Service) Tag(ctx context.Context, companyIDs []string, tag string) error {
	return s.store.TagCompanies(ctx, companyIDs, tag)
}

// Watch pins an entity on the owner's watchlist
func (s *Service) Watch(ctx context.Context, entry *domain.WatchlistEntry) (string, error) {
	return s.store.AddWatch(ctx, entry)
}

// Watchlist returns the owner's watchlist entries
func (s *Service) Watchlist(ctx context.Context, owner string) ([]domain.WatchlistEntry, error) {
	return s.store.Watchlist(ctx, owner)
}

// Unwatch removes a watchlist entry
func (s *Service) Unwatch(ctx context.Context, id string) error {
	return s.store.RemoveWatch(ctx, id)
}

// TrendingKeywords counts deal-event keyword occurrences over deals
// announced in the trailing window, most frequent first.
func (s *Service) TrendingKeywords(ctx context.Context, window time.Duration) ([]KeywordCount, error) {
	deals, err := s.store.RecentDeals(ctx, s.now().Add(-window))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, d := range deals {
		seen := make(map[string]bool)
		for _, kw := range d.KeywordMatches {
			seen[kw] = true
		}
		for _, kw := range normalize.ExtractDealMentions(d.Summary) {
			seen[kw] = true
		}
		for kw := range seen {
			counts[kw]++
		}
	}

	trending := make([]KeywordCount, 0, len(counts))
	for kw, n := range counts {
		trending = append(trending, KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(trending, func(i, j int) bool {
		if trending[i].Count != trending[j].Count {
			return trending[i].Count > trending[j].Count
		}
		return trending[i].Keyword < trending[j].Keyword
	})
	return trending, nil
}
