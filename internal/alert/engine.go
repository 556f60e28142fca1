// Package alert evaluates persisted alert rules against the entities
// committed in an ingestion batch and emits notification events.
package alert

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"dealpulse/pkg/contracts/domain"
)

// Batch is the set of entities committed in the current ingestion batch,
// the only population a rule is evaluated against.
type Batch struct {
	Companies []domain.Company
	Deals     []domain.Deal
	Filings   []domain.Filing
}

// CompanyByID looks up a batch company, for deal/filing filter attributes
func (b *Batch) CompanyByID(id string) *domain.Company {
	for i := range b.Companies {
		if b.Companies[i].ID == id {
			return &b.Companies[i]
		}
	}
	return nil
}

// Engine evaluates alert rules. It holds no rule state: the active rule set
// is an explicit parameter on every call.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewEngine creates an alert engine. A nil logger falls back to the default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger:   logger.With(slog.String("component", "alert_engine")),
		now:      time.Now,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Evaluate runs every active rule against the batch. Rules evaluate
// concurrently; the returned events are deterministically ordered by
// (rule, entity) and contain exactly one event per matching pair.
func (e *Engine) Evaluate(ctx context.Context, rules []domain.AlertRule, batch *Batch) ([]domain.NotificationEvent, error) {
	results := make([][]domain.NotificationEvent, len(rules))
	g, ctx := errgroup.WithContext(ctx)

	for i := range rules {
		if !rules[i].Active {
			continue
		}
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = e.evaluateRule(&rules[i], batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []domain.NotificationEvent
	for _, rs := range results {
		events = append(events, rs...)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].RuleID != events[j].RuleID {
			return events[i].RuleID < events[j].RuleID
		}
		return events[i].EntityID < events[j].EntityID
	})
	return events, nil
}

func (e *Engine) evaluateRule(rule *domain.AlertRule, batch *Batch) []domain.NotificationEvent {
	var events []domain.NotificationEvent
	seen := make(map[string]bool)

	emit := func(entityID string, kind domain.EntityKind, matched []string) {
		if seen[entityID] {
			return
		}
		seen[entityID] = true
		events = append(events, domain.NotificationEvent{
			RuleID:     rule.ID,
			RuleName:   rule.Name,
			Owner:      rule.Owner,
			EntityID:   entityID,
			EntityKind: kind,
			Keywords:   matched,
			Timestamp:  e.now(),
		})
	}

	for i := range batch.Companies {
		c := &batch.Companies[i]
		text := strings.Join(append([]string{c.Name}, c.Aliases...), " ")
		if matched, ok := e.keywordsMatch(rule.Keywords, text); ok &&
			e.filtersMatch(rule, c, c.MarketCap) {
			emit(c.ID, domain.KindCompany, matched)
		}
	}
	for i := range batch.Deals {
		d := &batch.Deals[i]
		if matched, ok := e.keywordsMatch(rule.Keywords, d.Summary); ok &&
			e.filtersMatch(rule, batch.CompanyByID(d.TargetID), d.Value) {
			emit(d.ID, domain.KindDeal, matched)
		}
	}
	for i := range batch.Filings {
		f := &batch.Filings[i]
		if matched, ok := e.keywordsMatch(rule.Keywords, f.Text); ok &&
			e.filtersMatch(rule, batch.CompanyByID(f.CompanyID), nil) {
			emit(f.ID, domain.KindFiling, matched)
		}
	}
	return events
}

// keywordsMatch requires every rule keyword to appear as a case-insensitive
// whole-word match. A rule with zero keywords matches purely on filters.
func (e *Engine) keywordsMatch(keywords []string, text string) ([]string, bool) {
	if len(keywords) == 0 {
		return nil, true
	}
	matched := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if !e.pattern(kw).MatchString(text) {
			return nil, false
		}
		matched = append(matched, kw)
	}
	return matched, true
}

// filtersMatch evaluates the rule's configured filters against the entity's
// attributes. Unset filters are vacuously true; a set filter against a
// missing attribute is false.
func (e *Engine) filtersMatch(rule *domain.AlertRule, company *domain.Company, value *domain.SourcedAmount) bool {
	if rule.Industry != "" {
		if company == nil || !strings.EqualFold(company.Industry, rule.Industry) {
			return false
		}
	}
	if rule.Geography != "" {
		if company == nil || !strings.EqualFold(company.Geography, rule.Geography) {
			return false
		}
	}
	if rule.MinValue != nil {
		if value == nil || value.Value < *rule.MinValue {
			return false
		}
	}
	if rule.Index != "" {
		if company == nil || !company.MemberOf(rule.Index) {
			return false
		}
	}
	return true
}

func (e *Engine) pattern(keyword string) *regexp.Regexp {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.patterns[keyword]; ok {
		return p
	}
	p := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	e.patterns[keyword] = p
	return p
}
