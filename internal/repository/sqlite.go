package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	apperrors "dealpulse/internal/errors"
	"dealpulse/internal/resolve"
	"dealpulse/pkg/contracts/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	ticker      TEXT NOT NULL DEFAULT '',
	industry    TEXT NOT NULL DEFAULT '',
	geography   TEXT NOT NULL DEFAULT '',
	aliases     TEXT NOT NULL DEFAULT '[]',
	indexes     TEXT NOT NULL DEFAULT '[]',
	tags        TEXT NOT NULL DEFAULT '[]',
	revenue     TEXT,
	market_cap  TEXT,
	provenance  TEXT NOT NULL DEFAULT '[]',
	created_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS company_tokens (
	token      TEXT NOT NULL,
	company_id TEXT NOT NULL REFERENCES companies(id),
	PRIMARY KEY (token, company_id)
);
CREATE INDEX IF NOT EXISTS idx_company_tokens_token ON company_tokens(token);
CREATE TABLE IF NOT EXISTS deals (
	id            TEXT PRIMARY KEY,
	target_id     TEXT NOT NULL,
	target_name   TEXT NOT NULL,
	acquirer_id   TEXT NOT NULL DEFAULT '',
	acquirer_name TEXT NOT NULL DEFAULT '',
	announced     TIMESTAMP NOT NULL,
	status        TEXT NOT NULL,
	value         TEXT,
	summary       TEXT NOT NULL DEFAULT '',
	keywords      TEXT NOT NULL DEFAULT '[]',
	provenance    TEXT NOT NULL DEFAULT '[]',
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deals_target ON deals(target_id);
CREATE TABLE IF NOT EXISTS filings (
	id            TEXT PRIMARY KEY,
	company_id    TEXT NOT NULL,
	company_name  TEXT NOT NULL,
	filing_type   TEXT NOT NULL,
	filing_date   TIMESTAMP NOT NULL,
	content       TEXT NOT NULL DEFAULT '',
	deal_mentions TEXT NOT NULL DEFAULT '[]',
	findings      TEXT NOT NULL DEFAULT '[]',
	provenance    TEXT NOT NULL DEFAULT '[]',
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_filings_company ON filings(company_id);
CREATE TABLE IF NOT EXISTS alerts (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	owner          TEXT NOT NULL,
	keywords       TEXT NOT NULL DEFAULT '[]',
	industry       TEXT NOT NULL DEFAULT '',
	geography      TEXT NOT NULL DEFAULT '',
	min_value      REAL,
	index_name     TEXT NOT NULL DEFAULT '',
	active         INTEGER NOT NULL DEFAULT 1,
	created_at     TIMESTAMP NOT NULL,
	last_triggered TIMESTAMP
);
CREATE TABLE IF NOT EXISTS watchlist (
	id          TEXT PRIMARY KEY,
	owner       TEXT NOT NULL,
	entity_kind TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	entity_name TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	added_at    TIMESTAMP NOT NULL
);
`

// SQLiteStore is the durable repository backed by a single sqlite file.
// Writer access is serialized by sqlite's locking plus immediate
// transactions, satisfying the single-writer batch model.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the sqlite store at path
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// One connection keeps the single-writer model honest.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_store")),
	}, nil
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Batch runs fn inside a single immediate transaction
func (s *SQLiteStore) Batch(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewRepositoryError("begin batch transaction", err)
	}

	if err := fn(&sqliteTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewRepositoryError("commit batch transaction", err)
	}
	return nil
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) FindCompaniesByTokens(tokens []string) ([]domain.Company, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tokens)), ",")
	query := `SELECT DISTINCT c.id, c.name, c.ticker, c.industry, c.geography,
		c.aliases, c.indexes, c.tags, c.revenue, c.market_cap, c.provenance, c.created_at
		FROM companies c JOIN company_tokens ct ON ct.company_id = c.id
		WHERE ct.token IN (` + placeholders + `) ORDER BY c.created_at, c.id`
	args := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		args[i] = tok
	}
	rows, err := t.tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCompanies(rows)
}

func (t *sqliteTx) FindDealsByTarget(targetID string) ([]domain.Deal, error) {
	rows, err := t.tx.Query(`SELECT id, target_id, target_name, acquirer_id, acquirer_name,
		announced, status, value, summary, keywords, provenance, created_at
		FROM deals WHERE target_id = ? ORDER BY created_at, id`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDeals(rows)
}

func (t *sqliteTx) PutCompany(c *domain.Company) error {
	_, err := t.tx.Exec(`INSERT INTO companies
		(id, name, ticker, industry, geography, aliases, indexes, tags, revenue, market_cap, provenance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, ticker = excluded.ticker,
			industry = excluded.industry, geography = excluded.geography,
			aliases = excluded.aliases, indexes = excluded.indexes,
			tags = excluded.tags, revenue = excluded.revenue,
			market_cap = excluded.market_cap, provenance = excluded.provenance`,
		c.ID, c.Name, c.Ticker, c.Industry, c.Geography,
		mustJSON(c.Aliases), mustJSON(c.Indexes), mustJSON(c.Tags),
		nullableJSON(c.Revenue), nullableJSON(c.MarketCap),
		mustJSON(c.Provenance), c.CreatedAt)
	if err != nil {
		return err
	}
	return t.indexCompanyTokens(c)
}

// indexCompanyTokens refreshes the token index covering the company name and
// every alias, so merged-in aliases become findable.
func (t *sqliteTx) indexCompanyTokens(c *domain.Company) error {
	if _, err := t.tx.Exec(`DELETE FROM company_tokens WHERE company_id = ?`, c.ID); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, name := range append([]string{c.Name}, c.Aliases...) {
		for _, tok := range resolve.Tokens(name) {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			if _, err := t.tx.Exec(`INSERT OR IGNORE INTO company_tokens (token, company_id) VALUES (?, ?)`,
				tok, c.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *sqliteTx) PutDeal(d *domain.Deal) error {
	_, err := t.tx.Exec(`INSERT INTO deals
		(id, target_id, target_name, acquirer_id, acquirer_name, announced, status, value, summary, keywords, provenance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			target_id = excluded.target_id, target_name = excluded.target_name,
			acquirer_id = excluded.acquirer_id, acquirer_name = excluded.acquirer_name,
			announced = excluded.announced, status = excluded.status,
			value = excluded.value, summary = excluded.summary,
			keywords = excluded.keywords, provenance = excluded.provenance`,
		d.ID, d.TargetID, d.TargetName, d.AcquirerID, d.AcquirerName,
		d.Announced, string(d.Status), nullableJSON(d.Value), d.Summary,
		mustJSON(d.KeywordMatches), mustJSON(d.Provenance), d.CreatedAt)
	return err
}

func (t *sqliteTx) PutFiling(f *domain.Filing) error {
	_, err := t.tx.Exec(`INSERT INTO filings
		(id, company_id, company_name, filing_type, filing_date, content, deal_mentions, findings, provenance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id, company_name = excluded.company_name,
			filing_type = excluded.filing_type, filing_date = excluded.filing_date,
			content = excluded.content, deal_mentions = excluded.deal_mentions,
			findings = excluded.findings, provenance = excluded.provenance`,
		f.ID, f.CompanyID, f.CompanyName, f.FilingType, f.FilingDate, f.Text,
		mustJSON(f.DealMentions), mustJSON(f.Findings), mustJSON(f.Provenance), f.CreatedAt)
	return err
}

func (t *sqliteTx) ActiveRules() ([]domain.AlertRule, error) {
	rows, err := t.tx.Query(`SELECT id, name, owner, keywords, industry, geography,
		min_value, index_name, active, created_at, last_triggered
		FROM alerts WHERE active = 1 ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRules(rows)
}

func (t *sqliteTx) MarkRuleTriggered(id string, at time.Time) error {
	_, err := t.tx.Exec(`UPDATE alerts SET last_triggered = ? WHERE id = ?`, at, id)
	return err
}

// AddRule persists a new alert rule, assigning its identifier
func (s *SQLiteStore) AddRule(ctx context.Context, rule *domain.AlertRule) (string, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}
	var minValue interface{}
	if rule.MinValue != nil {
		minValue = *rule.MinValue
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO alerts
		(id, name, owner, keywords, industry, geography, min_value, index_name, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Name, rule.Owner, mustJSON(rule.Keywords),
		rule.Industry, rule.Geography, minValue, rule.Index,
		boolToInt(rule.Active), rule.CreatedAt)
	if err != nil {
		return "", apperrors.NewRepositoryError("add rule", err)
	}
	return rule.ID, nil
}

// DeactivateRule flips a rule inactive; the engine stops evaluating it
func (s *SQLiteStore) DeactivateRule(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewRepositoryError("deactivate rule", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewRepositoryError("deactivate rule", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("alert rule", id)
	}
	return nil
}

// ListRules returns alert rules, optionally only active ones
func (s *SQLiteStore) ListRules(ctx context.Context, activeOnly bool) ([]domain.AlertRule, error) {
	query := `SELECT id, name, owner, keywords, industry, geography,
		min_value, index_name, active, created_at, last_triggered FROM alerts`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewRepositoryError("list rules", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

// CompanyByID fetches one company
func (s *SQLiteStore) CompanyByID(ctx context.Context, id string) (*domain.Company, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, ticker, industry, geography,
		aliases, indexes, tags, revenue, market_cap, provenance, created_at
		FROM companies WHERE id = ?`, id)
	if err != nil {
		return nil, apperrors.NewRepositoryError("company by id", err)
	}
	defer rows.Close()
	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, apperrors.NewRepositoryError("company by id", err)
	}
	if len(companies) == 0 {
		return nil, apperrors.NewNotFoundError("company", id)
	}
	return &companies[0], nil
}

// SearchCompanies runs the screening query. Scalar criteria filter in SQL;
// set-valued criteria (tags, index membership) filter on the decoded rows.
func (s *SQLiteStore) SearchCompanies(ctx context.Context, filter ScreeningFilter) ([]domain.Company, error) {
	query := `SELECT id, name, ticker, industry, geography, aliases, indexes, tags,
		revenue, market_cap, provenance, created_at FROM companies WHERE 1=1`
	var args []interface{}

	if len(filter.Industries) > 0 {
		query += ` AND industry IN (` + strings.TrimSuffix(strings.Repeat("?,", len(filter.Industries)), ",") + `)`
		for _, ind := range filter.Industries {
			args = append(args, ind)
		}
	}
	if len(filter.Geographies) > 0 {
		query += ` AND geography IN (` + strings.TrimSuffix(strings.Repeat("?,", len(filter.Geographies)), ",") + `)`
		for _, geo := range filter.Geographies {
			args = append(args, geo)
		}
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewRepositoryError("search companies", err)
	}
	defer rows.Close()
	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, apperrors.NewRepositoryError("search companies", err)
	}

	filtered := companies[:0]
	for _, c := range companies {
		if matchesScreening(&c, filter) {
			filtered = append(filtered, c)
		}
	}
	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[:filter.Limit]
	}
	return filtered, nil
}

func matchesScreening(c *domain.Company, filter ScreeningFilter) bool {
	if filter.MinRevenue != nil && (c.Revenue == nil || c.Revenue.Value < *filter.MinRevenue) {
		return false
	}
	if filter.MaxRevenue != nil && (c.Revenue == nil || c.Revenue.Value > *filter.MaxRevenue) {
		return false
	}
	if filter.MinMarketCap != nil && (c.MarketCap == nil || c.MarketCap.Value < *filter.MinMarketCap) {
		return false
	}
	if filter.MaxMarketCap != nil && (c.MarketCap == nil || c.MarketCap.Value > *filter.MaxMarketCap) {
		return false
	}
	if filter.Index != "" && !c.MemberOf(filter.Index) {
		return false
	}
	for _, tag := range filter.Tags {
		if !c.HasTag(tag) {
			return false
		}
	}
	return true
}

// CompanyDeals returns deals where the company is target or acquirer
func (s *SQLiteStore) CompanyDeals(ctx context.Context, companyID string) ([]domain.Deal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, target_id, target_name, acquirer_id, acquirer_name,
		announced, status, value, summary, keywords, provenance, created_at
		FROM deals WHERE target_id = ? OR acquirer_id = ? ORDER BY announced DESC, id`,
		companyID, companyID)
	if err != nil {
		return nil, apperrors.NewRepositoryError("company deals", err)
	}
	defer rows.Close()
	deals, err := scanDeals(rows)
	if err != nil {
		return nil, apperrors.NewRepositoryError("company deals", err)
	}
	return deals, nil
}

// RecentDeals returns deals announced at or after since
func (s *SQLiteStore) RecentDeals(ctx context.Context, since time.Time) ([]domain.Deal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, target_id, target_name, acquirer_id, acquirer_name,
		announced, status, value, summary, keywords, provenance, created_at
		FROM deals WHERE announced >= ? ORDER BY announced DESC, id`, since)
	if err != nil {
		return nil, apperrors.NewRepositoryError("recent deals", err)
	}
	defer rows.Close()
	deals, err := scanDeals(rows)
	if err != nil {
		return nil, apperrors.NewRepositoryError("recent deals", err)
	}
	return deals, nil
}

// TagCompanies applies tag to every listed company (union semantics)
func (s *SQLiteStore) TagCompanies(ctx context.Context, ids []string, tag string) error {
	for _, id := range ids {
		company, err := s.CompanyByID(ctx, id)
		if err != nil {
			return err
		}
		if company.HasTag(tag) {
			continue
		}
		company.AddTag(tag)
		if _, err := s.db.ExecContext(ctx, `UPDATE companies SET tags = ? WHERE id = ?`,
			mustJSON(company.Tags), id); err != nil {
			return apperrors.NewRepositoryError("tag companies", err)
		}
	}
	return nil
}

// AddWatch adds a watchlist entry, assigning its identifier
func (s *SQLiteStore) AddWatch(ctx context.Context, entry *domain.WatchlistEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO watchlist
		(id, owner, entity_kind, entity_id, entity_name, notes, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Owner, string(entry.EntityKind), entry.EntityID,
		entry.EntityName, entry.Notes, entry.AddedAt)
	if err != nil {
		return "", apperrors.NewRepositoryError("add watch", err)
	}
	return entry.ID, nil
}

// Watchlist returns a user's watchlist entries, newest first
func (s *SQLiteStore) Watchlist(ctx context.Context, owner string) ([]domain.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, owner, entity_kind, entity_id, entity_name, notes, added_at
		FROM watchlist WHERE owner = ? ORDER BY added_at DESC, id`, owner)
	if err != nil {
		return nil, apperrors.NewRepositoryError("watchlist", err)
	}
	defer rows.Close()

	var entries []domain.WatchlistEntry
	for rows.Next() {
		var e domain.WatchlistEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.Owner, &kind, &e.EntityID, &e.EntityName, &e.Notes, &e.AddedAt); err != nil {
			return nil, apperrors.NewRepositoryError("watchlist", err)
		}
		e.EntityKind = domain.EntityKind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RemoveWatch deletes a watchlist entry
func (s *SQLiteStore) RemoveWatch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewRepositoryError("remove watch", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewRepositoryError("remove watch", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("watchlist entry", id)
	}
	return nil
}

func scanCompanies(rows *sql.Rows) ([]domain.Company, error) {
	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		var aliases, indexes, tags, provenance string
		var revenue, marketCap sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Ticker, &c.Industry, &c.Geography,
			&aliases, &indexes, &tags, &revenue, &marketCap, &provenance, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := decodeJSON(aliases, &c.Aliases); err != nil {
			return nil, err
		}
		if err := decodeJSON(indexes, &c.Indexes); err != nil {
			return nil, err
		}
		if err := decodeJSON(tags, &c.Tags); err != nil {
			return nil, err
		}
		if err := decodeJSON(provenance, &c.Provenance); err != nil {
			return nil, err
		}
		if revenue.Valid {
			if err := decodeJSON(revenue.String, &c.Revenue); err != nil {
				return nil, err
			}
		}
		if marketCap.Valid {
			if err := decodeJSON(marketCap.String, &c.MarketCap); err != nil {
				return nil, err
			}
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func scanDeals(rows *sql.Rows) ([]domain.Deal, error) {
	var deals []domain.Deal
	for rows.Next() {
		var d domain.Deal
		var status, keywords, provenance string
		var value sql.NullString
		if err := rows.Scan(&d.ID, &d.TargetID, &d.TargetName, &d.AcquirerID, &d.AcquirerName,
			&d.Announced, &status, &value, &d.Summary, &keywords, &provenance, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Status = domain.DealStatus(status)
		if err := decodeJSON(keywords, &d.KeywordMatches); err != nil {
			return nil, err
		}
		if err := decodeJSON(provenance, &d.Provenance); err != nil {
			return nil, err
		}
		if value.Valid {
			if err := decodeJSON(value.String, &d.Value); err != nil {
				return nil, err
			}
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func scanRules(rows *sql.Rows) ([]domain.AlertRule, error) {
	var rules []domain.AlertRule
	for rows.Next() {
		var r domain.AlertRule
		var keywords string
		var minValue sql.NullFloat64
		var active int
		var lastTriggered sql.NullTime
		if err := rows.Scan(&r.ID, &r.Name, &r.Owner, &keywords, &r.Industry, &r.Geography,
			&minValue, &r.Index, &active, &r.CreatedAt, &lastTriggered); err != nil {
			return nil, err
		}
		if err := decodeJSON(keywords, &r.Keywords); err != nil {
			return nil, err
		}
		if minValue.Valid {
			v := minValue.Float64
			r.MinValue = &v
		}
		r.Active = active != 0
		if lastTriggered.Valid {
			t := lastTriggered.Time
			r.LastTriggered = &t
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable with unmarshalable domain types, which would be a
		// programming error.
		panic(err)
	}
	if string(data) == "null" {
		return "[]"
	}
	return string(data)
}

func nullableJSON(v interface{}) interface{} {
	switch amount := v.(type) {
	case *domain.SourcedAmount:
		if amount == nil {
			return nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func decodeJSON(data string, target interface{}) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), target)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
