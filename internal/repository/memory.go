package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "dealpulse/internal/errors"
	"dealpulse/internal/resolve"
	"dealpulse/pkg/contracts/domain"
)

// MemoryStore is an in-memory Store used by unit tests and as the reference
// for the repository contract. Batches stage writes and apply them only on
// success, matching the no-partial-commit guarantee.
type MemoryStore struct {
	mu        sync.RWMutex
	companies map[string]domain.Company
	deals     map[string]domain.Deal
	filings   map[string]domain.Filing
	rules     map[string]domain.AlertRule
	watchlist map[string]domain.WatchlistEntry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		companies: make(map[string]domain.Company),
		deals:     make(map[string]domain.Deal),
		filings:   make(map[string]domain.Filing),
		rules:     make(map[string]domain.AlertRule),
		watchlist: make(map[string]domain.WatchlistEntry),
	}
}

// Close implements Store
func (s *MemoryStore) Close() error { return nil }

// Batch stages fn's writes and applies them atomically on success
func (s *MemoryStore) Batch(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewRepositoryError("begin batch", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:     s,
		companies: make(map[string]domain.Company),
		deals:     make(map[string]domain.Deal),
		filings:   make(map[string]domain.Filing),
		ruleTouch: make(map[string]time.Time),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for id, c := range tx.companies {
		s.companies[id] = c
	}
	for id, d := range tx.deals {
		s.deals[id] = d
	}
	for id, f := range tx.filings {
		s.filings[id] = f
	}
	for id, at := range tx.ruleTouch {
		if rule, ok := s.rules[id]; ok {
			t := at
			rule.LastTriggered = &t
			s.rules[id] = rule
		}
	}
	return nil
}

type memTx struct {
	store     *MemoryStore
	companies map[string]domain.Company
	deals     map[string]domain.Deal
	filings   map[string]domain.Filing
	ruleTouch map[string]time.Time
}

func (t *memTx) FindCompaniesByTokens(tokens []string) ([]domain.Company, error) {
	want := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		want[tok] = true
	}

	match := func(c domain.Company) bool {
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			for _, tok := range resolve.Tokens(name) {
				if want[tok] {
					return true
				}
			}
		}
		return false
	}

	found := make(map[string]domain.Company)
	for id, c := range t.store.companies {
		if match(c) {
			found[id] = c
		}
	}
	// Staged writes shadow the committed view.
	for id, c := range t.companies {
		if match(c) {
			found[id] = c
		} else {
			delete(found, id)
		}
	}

	companies := make([]domain.Company, 0, len(found))
	for _, c := range found {
		companies = append(companies, c)
	}
	sortCompanies(companies)
	return companies, nil
}

func (t *memTx) FindDealsByTarget(targetID string) ([]domain.Deal, error) {
	found := make(map[string]domain.Deal)
	for id, d := range t.store.deals {
		if d.TargetID == targetID {
			found[id] = d
		}
	}
	for id, d := range t.deals {
		if d.TargetID == targetID {
			found[id] = d
		} else {
			delete(found, id)
		}
	}
	deals := make([]domain.Deal, 0, len(found))
	for _, d := range found {
		deals = append(deals, d)
	}
	sortDeals(deals)
	return deals, nil
}

func (t *memTx) PutCompany(c *domain.Company) error {
	t.companies[c.ID] = *c
	return nil
}

func (t *memTx) PutDeal(d *domain.Deal) error {
	t.deals[d.ID] = *d
	return nil
}

func (t *memTx) PutFiling(f *domain.Filing) error {
	t.filings[f.ID] = *f
	return nil
}

func (t *memTx) ActiveRules() ([]domain.AlertRule, error) {
	var rules []domain.AlertRule
	for _, r := range t.store.rules {
		if r.Active {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.Before(rules[j].CreatedAt)
		}
		return rules[i].ID < rules[j].ID
	})
	return rules, nil
}

func (t *memTx) MarkRuleTriggered(id string, at time.Time) error {
	t.ruleTouch[id] = at
	return nil
}

// AddRule implements Store
func (s *MemoryStore) AddRule(ctx context.Context, rule *domain.AlertRule) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}
	s.rules[rule.ID] = *rule
	return rule.ID, nil
}

// DeactivateRule implements Store
func (s *MemoryStore) DeactivateRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule, ok := s.rules[id]
	if !ok {
		return apperrors.NewNotFoundError("alert rule", id)
	}
	rule.Active = false
	s.rules[id] = rule
	return nil
}

// ListRules implements Store
func (s *MemoryStore) ListRules(ctx context.Context, activeOnly bool) ([]domain.AlertRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rules []domain.AlertRule
	for _, r := range s.rules {
		if activeOnly && !r.Active {
			continue
		}
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.Before(rules[j].CreatedAt)
		}
		return rules[i].ID < rules[j].ID
	})
	return rules, nil
}

// CompanyByID implements Store
func (s *MemoryStore) CompanyByID(ctx context.Context, id string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("company", id)
	}
	return &c, nil
}

// SearchCompanies implements Store
func (s *MemoryStore) SearchCompanies(ctx context.Context, filter ScreeningFilter) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var companies []domain.Company
	for _, c := range s.companies {
		if len(filter.Industries) > 0 && !containsFold(filter.Industries, c.Industry) {
			continue
		}
		if len(filter.Geographies) > 0 && !containsFold(filter.Geographies, c.Geography) {
			continue
		}
		if !matchesScreening(&c, filter) {
			continue
		}
		companies = append(companies, c)
	}
	sortCompanies(companies)
	if filter.Limit > 0 && len(companies) > filter.Limit {
		companies = companies[:filter.Limit]
	}
	return companies, nil
}

// CompanyDeals implements Store
func (s *MemoryStore) CompanyDeals(ctx context.Context, companyID string) ([]domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var deals []domain.Deal
	for _, d := range s.deals {
		if d.TargetID == companyID || d.AcquirerID == companyID {
			deals = append(deals, d)
		}
	}
	sort.Slice(deals, func(i, j int) bool {
		if !deals[i].Announced.Equal(deals[j].Announced) {
			return deals[i].Announced.After(deals[j].Announced)
		}
		return deals[i].ID < deals[j].ID
	})
	return deals, nil
}

// RecentDeals implements Store
func (s *MemoryStore) RecentDeals(ctx context.Context, since time.Time) ([]domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var deals []domain.Deal
	for _, d := range s.deals {
		if !d.Announced.Before(since) {
			deals = append(deals, d)
		}
	}
	sort.Slice(deals, func(i, j int) bool {
		if !deals[i].Announced.Equal(deals[j].Announced) {
			return deals[i].Announced.After(deals[j].Announced)
		}
		return deals[i].ID < deals[j].ID
	})
	return deals, nil
}

// TagCompanies implements Store
func (s *MemoryStore) TagCompanies(ctx context.Context, ids []string, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		c, ok := s.companies[id]
		if !ok {
			return apperrors.NewNotFoundError("company", id)
		}
		c.AddTag(tag)
		s.companies[id] = c
	}
	return nil
}

// AddWatch implements Store
func (s *MemoryStore) AddWatch(ctx context.Context, entry *domain.WatchlistEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}
	s.watchlist[entry.ID] = *entry
	return entry.ID, nil
}

// Watchlist implements Store
func (s *MemoryStore) Watchlist(ctx context.Context, owner string) ([]domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.WatchlistEntry
	for _, e := range s.watchlist {
		if e.Owner == owner {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.After(entries[j].AddedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// RemoveWatch implements Store
func (s *MemoryStore) RemoveWatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchlist[id]; !ok {
		return apperrors.NewNotFoundError("watchlist entry", id)
	}
	delete(s.watchlist, id)
	return nil
}

// Companies returns all committed companies, for tests and reports
func (s *MemoryStore) Companies() []domain.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	companies := make([]domain.Company, 0, len(s.companies))
	for _, c := range s.companies {
		companies = append(companies, c)
	}
	sortCompanies(companies)
	return companies
}

// Deals returns all committed deals, for tests and reports
func (s *MemoryStore) Deals() []domain.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deals := make([]domain.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		deals = append(deals, d)
	}
	sortDeals(deals)
	return deals
}

// Filings returns all committed filings, for tests and reports
func (s *MemoryStore) Filings() []domain.Filing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filings := make([]domain.Filing, 0, len(s.filings))
	for _, f := range s.filings {
		filings = append(filings, f)
	}
	sort.Slice(filings, func(i, j int) bool {
		if !filings[i].CreatedAt.Equal(filings[j].CreatedAt) {
			return filings[i].CreatedAt.Before(filings[j].CreatedAt)
		}
		return filings[i].ID < filings[j].ID
	})
	return filings
}

func sortCompanies(companies []domain.Company) {
	sort.Slice(companies, func(i, j int) bool {
		if !companies[i].CreatedAt.Equal(companies[j].CreatedAt) {
			return companies[i].CreatedAt.Before(companies[j].CreatedAt)
		}
		return companies[i].ID < companies[j].ID
	})
}

func sortDeals(deals []domain.Deal) {
	sort.Slice(deals, func(i, j int) bool {
		if !deals[i].CreatedAt.Equal(deals[j].CreatedAt) {
			return deals[i].CreatedAt.Before(deals[j].CreatedAt)
		}
		return deals[i].ID < deals[j].ID
	})
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}
