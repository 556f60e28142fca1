package http

import (
	"context"
	"time"

	"dealpulse/internal/repository"
	"dealpulse/internal/screening"
	"dealpulse/pkg/contracts/domain"
)

// IngestService is the batch ingestion surface consumed by the transport
type IngestService interface {
	IngestBatch(ctx context.Context, source domain.SourceType, rows []map[string]string) (*domain.BatchReport, error)
}

// RuleService is the alert rule management surface
type RuleService interface {
	AddRule(ctx context.Context, rule *domain.AlertRule) (string, error)
	DeactivateRule(ctx context.Context, id string) error
	ListRules(ctx context.Context, activeOnly bool) ([]domain.AlertRule, error)
}

// ScreeningService is the target screening surface
type ScreeningService interface {
	SearchTargets(ctx context.Context, filter repository.ScreeningFilter) ([]domain.Company, error)
	TransactionHistory(ctx context.Context, companyID string) ([]domain.Deal, error)
	Tag(ctx context.Context, companyIDs []string, tag string) error
	Watch(ctx context.Context, entry *domain.WatchlistEntry) (string, error)
	Watchlist(ctx context.Context, owner string) ([]domain.WatchlistEntry, error)
	Unwatch(ctx context.Context, id string) error
	TrendingKeywords(ctx context.Context, window time.Duration) ([]screening.KeywordCount, error)
}
