// Package ingest sequences one batch through normalization, resolution,
// red-flag scoring and alert evaluation, inside a single repository
// transaction.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dealpulse/internal/alert"
	apperrors "dealpulse/internal/errors"
	"dealpulse/internal/infrastructure"
	"dealpulse/internal/normalize"
	"dealpulse/internal/redflag"
	"dealpulse/internal/repository"
	"dealpulse/internal/resolve"
	"dealpulse/pkg/contracts/domain"
)

// Notifier is the delivery collaborator. The engine decides that and to whom
// a notification fires; transport is the collaborator's concern.
type Notifier interface {
	Deliver(ctx context.Context, events []domain.NotificationEvent) error
}

// LogNotifier logs events instead of delivering them, the default when no
// delivery collaborator is wired.
type LogNotifier struct {
	Logger *slog.Logger
}

// Deliver implements Notifier
func (n *LogNotifier) Deliver(ctx context.Context, events []domain.NotificationEvent) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, ev := range events {
		logger.InfoContext(ctx, "notification",
			slog.String("rule", ev.RuleName),
			slog.String("owner", ev.Owner),
			slog.String("entity_id", ev.EntityID),
			slog.String("entity_kind", string(ev.EntityKind)))
	}
	return nil
}

// Orchestrator is the sole ingestion entry point
type Orchestrator struct {
	store      repository.Store
	normalizer *normalize.Normalizer
	resolver   *resolve.Resolver
	scorer     *redflag.Scorer
	engine     *alert.Engine
	notifier   Notifier
	metrics    *infrastructure.Metrics
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// NewOrchestrator wires the batch pipeline. Notifier and metrics may be nil;
// a nil logger falls back to the default.
func NewOrchestrator(store repository.Store, notifier Notifier, metrics *infrastructure.Metrics, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = &LogNotifier{Logger: logger}
	}
	return &Orchestrator{
		store:      store,
		normalizer: normalize.NewNormalizer(logger),
		resolver:   resolve.NewResolver(logger),
		scorer:     redflag.NewScorer(logger),
		engine:     alert.NewEngine(logger),
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "ingest_orchestrator")),
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

// IngestBatch processes one batch of raw rows of the declared source type.
// Successfully normalized rows commit together or, on a repository failure,
// not at all. Row-level schema errors are reported, never fatal.
func (o *Orchestrator) IngestBatch(ctx context.Context, source domain.SourceType, rows []map[string]string) (*domain.BatchReport, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("unknown source type %q", source)
	}

	batchID := o.newID()
	ctx = infrastructure.WithTraceID(ctx, batchID)
	started := o.now()

	report := &domain.BatchReport{
		Source:       source,
		StartedAt:    started,
		RowsReceived: len(rows),
	}
	var events []domain.NotificationEvent

	err := o.store.Batch(ctx, func(tx repository.Tx) error {
		committed := newCommitSet()

		for i, row := range rows {
			if err := o.ingestRow(tx, source, i, row, report, committed); err != nil {
				return err
			}
		}

		rules, err := tx.ActiveRules()
		if err != nil {
			return apperrors.NewRepositoryError("load active rules", err)
		}
		batch := committed.alertBatch()
		events, err = o.engine.Evaluate(ctx, rules, batch)
		if err != nil {
			return err
		}

		fired := make(map[string]bool)
		for _, ev := range events {
			if fired[ev.RuleID] {
				continue
			}
			fired[ev.RuleID] = true
			if err := tx.MarkRuleTriggered(ev.RuleID, o.now()); err != nil {
				return apperrors.NewRepositoryError("mark rule triggered", err)
			}
		}
		return nil
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "batch failed",
			slog.String("source", string(source)),
			slog.String("error", err.Error()))
		return nil, err
	}

	report.NotificationsSent = len(events)
	report.FinishedAt = o.now()
	o.record(report)

	if len(events) > 0 {
		if err := o.notifier.Deliver(ctx, events); err != nil {
			// Delivery is a collaborator concern; its failure never unwinds
			// a committed batch.
			o.logger.WarnContext(ctx, "notification delivery failed",
				slog.String("error", err.Error()))
		}
	}

	o.logger.InfoContext(ctx, "batch complete",
		slog.String("source", string(source)),
		slog.Int("rows", report.RowsReceived),
		slog.Int("skipped", report.RowsSkipped),
		slog.Int("inserted", report.EntitiesInserted),
		slog.Int("merged", report.EntitiesMerged),
		slog.Int("findings", report.FindingsProduced),
		slog.Int("notifications", report.NotificationsSent))
	return report, nil
}

func (o *Orchestrator) ingestRow(tx repository.Tx, source domain.SourceType, row int, raw map[string]string, report *domain.BatchReport, committed *commitSet) error {
	cand, err := o.normalizer.Normalize(source, row, raw)
	if err != nil {
		se, ok := err.(*apperrors.SchemaError)
		if !ok {
			return err
		}
		report.RowsSkipped++
		report.Skipped = append(report.Skipped, domain.SkippedRow{
			Row:    se.Row,
			Field:  se.Field,
			Reason: se.Reason,
		})
		return nil
	}

	resolvedIDs := make([]string, len(cand.Companies))
	for i, company := range cand.Companies {
		res, err := o.resolver.ResolveCompany(tx, company)
		if err != nil {
			return err
		}
		resolvedIDs[i] = res.Company.ID
		committed.putCompany(*res.Company)
		applyDecision(report, res.Decision)
		if res.Warning != nil {
			report.Warnings = append(report.Warnings, res.Warning.Error())
		}
	}

	if cand.Deal != nil {
		deal := cand.Deal
		deal.TargetID = resolvedIDs[0]
		if len(resolvedIDs) > 1 {
			deal.AcquirerID = resolvedIDs[1]
		}
		// Target and acquirer must stay distinct; if both names resolved to
		// one company, keep the acquirer as unknown.
		if deal.AcquirerID != "" && deal.AcquirerID == deal.TargetID {
			deal.AcquirerID = ""
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("row %d: target and acquirer resolved to the same company, acquirer kept unknown", row))
		}
		res, err := o.resolver.ResolveDeal(tx, deal)
		if err != nil {
			return err
		}
		committed.putDeal(*res.Deal)
		applyDecision(report, res.Decision)
	}

	if cand.Filing != nil {
		filing := cand.Filing
		filing.ID = o.newID()
		filing.CompanyID = resolvedIDs[0]
		filing.CreatedAt = o.now()
		filing.Findings = o.scorer.Score(filing.ID, filing.Text)
		if err := tx.PutFiling(filing); err != nil {
			return apperrors.NewRepositoryError("insert filing", err)
		}
		committed.putFiling(*filing)
		applyDecision(report, domain.ResolutionDecision{
			Kind:     domain.KindFiling,
			EntityID: filing.ID,
			Name:     filing.CompanyName,
			Outcome:  domain.ResolutionInserted,
		})
		report.FindingsProduced += len(filing.Findings)
	}
	return nil
}

func applyDecision(report *domain.BatchReport, decision domain.ResolutionDecision) {
	report.Decisions = append(report.Decisions, decision)
	switch decision.Outcome {
	case domain.ResolutionInserted:
		report.EntitiesInserted++
	case domain.ResolutionMerged:
		report.EntitiesMerged++
	}
}

func (o *Orchestrator) record(report *domain.BatchReport) {
	if o.metrics == nil {
		return
	}
	source := string(report.Source)
	o.metrics.RowsReceived.WithLabelValues(source).Add(float64(report.RowsReceived))
	o.metrics.RowsSkipped.WithLabelValues(source).Add(float64(report.RowsSkipped))
	for _, d := range report.Decisions {
		switch d.Outcome {
		case domain.ResolutionInserted:
			o.metrics.EntitiesInserted.WithLabelValues(string(d.Kind)).Inc()
		case domain.ResolutionMerged:
			o.metrics.EntitiesMerged.WithLabelValues(string(d.Kind)).Inc()
		}
	}
	o.metrics.Findings.Add(float64(report.FindingsProduced))
	o.metrics.Notifications.Add(float64(report.NotificationsSent))
	o.metrics.BatchDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
}

// commitSet tracks the entities committed in this batch, deduplicated by
// identifier with the latest version kept, in first-commit order.
type commitSet struct {
	companyOrder []string
	companies    map[string]domain.Company
	dealOrder    []string
	deals        map[string]domain.Deal
	filings      []domain.Filing
}

func newCommitSet() *commitSet {
	return &commitSet{
		companies: make(map[string]domain.Company),
		deals:     make(map[string]domain.Deal),
	}
}

func (c *commitSet) putCompany(company domain.Company) {
	if _, ok := c.companies[company.ID]; !ok {
		c.companyOrder = append(c.companyOrder, company.ID)
	}
	c.companies[company.ID] = company
}

func (c *commitSet) putDeal(deal domain.Deal) {
	if _, ok := c.deals[deal.ID]; !ok {
		c.dealOrder = append(c.dealOrder, deal.ID)
	}
	c.deals[deal.ID] = deal
}

func (c *commitSet) putFiling(filing domain.Filing) {
	c.filings = append(c.filings, filing)
}

func (c *commitSet) alertBatch() *alert.Batch {
	batch := &alert.Batch{}
	for _, id := range c.companyOrder {
		batch.Companies = append(batch.Companies, c.companies[id])
	}
	for _, id := range c.dealOrder {
		batch.Deals = append(batch.Deals, c.deals[id])
	}
	batch.Filings = c.filings
	return batch
}
