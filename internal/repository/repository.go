// Package repository owns durable storage of canonical entities and alert
// rules. The ingestion engine sees it as a key-indexed store with one
// transaction boundary per batch; screening reads run outside batches.
package repository

import (
	"context"
	"time"

	"dealpulse/pkg/contracts/domain"
)

// Tx is the write surface available inside one ingestion batch transaction.
// Either every operation in the batch commits or none do.
type Tx interface {
	// FindCompaniesByTokens returns companies sharing at least one indexable
	// name token with the given set.
	FindCompaniesByTokens(tokens []string) ([]domain.Company, error)
	// FindDealsByTarget returns all deals whose target is the given company.
	FindDealsByTarget(targetID string) ([]domain.Deal, error)
	PutCompany(c *domain.Company) error
	PutDeal(d *domain.Deal) error
	PutFiling(f *domain.Filing) error
	// ActiveRules returns the alert rules to evaluate for this batch.
	ActiveRules() ([]domain.AlertRule, error)
	// MarkRuleTriggered records that a rule fired during this batch.
	MarkRuleTriggered(id string, at time.Time) error
}

// ScreeningFilter is the multi-criteria company search used by target
// screening. Zero values mean the criterion is not applied.
type ScreeningFilter struct {
	Industries   []string
	Geographies  []string
	MinRevenue   *float64
	MaxRevenue   *float64
	MinMarketCap *float64
	MaxMarketCap *float64
	Index        string
	Tags         []string
	Limit        int
}

// Store is the full repository contract
type Store interface {
	// Batch runs fn inside a single transaction. A returned error rolls the
	// whole batch back.
	Batch(ctx context.Context, fn func(tx Tx) error) error

	// Alert rule management (authored by users, read by the engine).
	AddRule(ctx context.Context, rule *domain.AlertRule) (string, error)
	DeactivateRule(ctx context.Context, id string) error
	ListRules(ctx context.Context, activeOnly bool) ([]domain.AlertRule, error)

	// Screening reads.
	CompanyByID(ctx context.Context, id string) (*domain.Company, error)
	SearchCompanies(ctx context.Context, filter ScreeningFilter) ([]domain.Company, error)
	CompanyDeals(ctx context.Context, companyID string) ([]domain.Deal, error)
	RecentDeals(ctx context.Context, since time.Time) ([]domain.Deal, error)
	TagCompanies(ctx context.Context, ids []string, tag string) error

	// Watchlist.
	AddWatch(ctx context.Context, entry *domain.WatchlistEntry) (string, error)
	Watchlist(ctx context.Context, owner string) ([]domain.WatchlistEntry, error)
	RemoveWatch(ctx context.Context, id string) error

	Close() error
}
