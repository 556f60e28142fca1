// Package normalize maps source-specific raw rows into candidate canonical
// entities. Each supported source type has a fixed required-field set; rows
// that fail it are rejected with a SchemaError and never silently defaulted.
package normalize

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

// Candidate is the normalizer output for one raw row: the primary entity of
// the source's kind plus the participant company candidates derived from it
// (target first for deals).
type Candidate struct {
	Kind      domain.EntityKind
	Companies []*domain.Company
	Deal      *domain.Deal
	Filing    *domain.Filing
}

// Normalizer converts raw rows into candidate entities
type Normalizer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewNormalizer creates a normalizer. A nil logger falls back to the default.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger: logger.With(slog.String("component", "normalizer")),
		now:    time.Now,
	}
}

// Normalize maps one raw row of the declared source type into a candidate.
// The returned error, when non-nil, is always a *errors.SchemaError.
func (n *Normalizer) Normalize(source domain.SourceType, rowIndex int, row map[string]string) (*Candidate, error) {
	fields := canonicalFields(row)
	switch source {
	case domain.SourceMergermarket:
		return n.normalizeMergermarket(rowIndex, fields)
	case domain.SourcePreqin:
		return n.normalizePreqin(rowIndex, fields)
	case domain.SourceSECFiling:
		return n.normalizeSECFiling(rowIndex, fields)
	case domain.SourceIndexConstituent:
		return n.normalizeIndexConstituent(rowIndex, fields)
	case domain.SourcePressRelease:
		return n.normalizePressRelease(rowIndex, fields)
	default:
		return nil, apperrors.NewSchemaError(source, rowIndex, "", fmt.Sprintf("unknown source type %q", source))
	}
}

func (n *Normalizer) normalizeMergermarket(row int, fields map[string]string) (*Candidate, error) {
	source := domain.SourceMergermarket
	target, err := requireField(source, row, fields, "target_name")
	if err != nil {
		return nil, err
	}
	announced, err := requireDate(source, row, fields, "announcement_date")
	if err != nil {
		return nil, err
	}

	status := domain.DealStatusAnnounced
	if raw := fields["status"]; raw != "" {
		status, err = parseDealStatus(raw)
		if err != nil {
			return nil, apperrors.NewSchemaError(source, row, "status", err.Error())
		}
	}

	deal := &domain.Deal{
		TargetName: target,
		Announced:  announced,
		Status:     status,
		Summary:    buildSummary(fields, target, fields["acquirer_name"]),
		Provenance: []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}
	deal.AcquirerName = fields["acquirer_name"]

	if raw := fields["deal_value"]; raw != "" {
		amount, err := parseAmount(raw)
		if err != nil {
			return nil, apperrors.NewSchemaError(source, row, "deal_value", err.Error())
		}
		amount.Source = source
		deal.Value = amount
	}
	for _, kw := range ExtractDealMentions(deal.Summary + " " + fields["deal_type"]) {
		deal.AddKeyword(kw)
	}

	companies := []*domain.Company{participantCompany(target, fields, source, n.now())}
	if deal.AcquirerName != "" {
		acquirer := &domain.Company{
			Name:       deal.AcquirerName,
			Tags:       []string{domain.TagTransactionParticipant, domain.TagActiveAcquirer},
			Provenance: []domain.Provenance{{Source: source, ImportedAt: n.now()}},
		}
		companies = append(companies, acquirer)
	}

	return &Candidate{Kind: domain.KindDeal, Companies: companies, Deal: deal}, nil
}

func (n *Normalizer) normalizePreqin(row int, fields map[string]string) (*Candidate, error) {
	source := domain.SourcePreqin
	fund, err := requireField(source, row, fields, "fund_name")
	if err != nil {
		return nil, err
	}
	target, err := requireField(source, row, fields, "target_company")
	if err != nil {
		return nil, err
	}
	rawAmount, err := requireField(source, row, fields, "investment_amount")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, apperrors.NewSchemaError(source, row, "investment_amount", err.Error())
	}
	amount.Source = source
	invested, err := requireDate(source, row, fields, "investment_date")
	if err != nil {
		return nil, err
	}

	summary := strings.TrimSpace(strings.Join(nonEmpty(fields["fund_type"], fields["stage"]), ", "))
	if summary == "" {
		summary = fmt.Sprintf("%s investment in %s", fund, target)
	}

	deal := &domain.Deal{
		TargetName:   target,
		AcquirerName: fund,
		Announced:    invested,
		Status:       domain.DealStatusAnnounced,
		Value:        amount,
		Summary:      summary,
		Provenance:   []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}
	for _, kw := range ExtractDealMentions(summary) {
		deal.AddKeyword(kw)
	}

	companies := []*domain.Company{
		participantCompany(target, fields, source, n.now()),
		{
			Name:       fund,
			Tags:       []string{domain.TagTransactionParticipant, domain.TagActiveAcquirer},
			Provenance: []domain.Provenance{{Source: source, ImportedAt: n.now()}},
		},
	}

	return &Candidate{Kind: domain.KindDeal, Companies: companies, Deal: deal}, nil
}

func (n *Normalizer) normalizeSECFiling(row int, fields map[string]string) (*Candidate, error) {
	source := domain.SourceSECFiling
	company, err := requireField(source, row, fields, "company_name")
	if err != nil {
		return nil, err
	}
	filingType, err := requireField(source, row, fields, "filing_type")
	if err != nil {
		return nil, err
	}
	filed, err := requireDate(source, row, fields, "filing_date")
	if err != nil {
		return nil, err
	}
	content, err := requireField(source, row, fields, "content")
	if err != nil {
		return nil, err
	}

	filing := &domain.Filing{
		CompanyName:  company,
		FilingType:   filingType,
		FilingDate:   filed,
		Text:         content,
		DealMentions: ExtractDealMentions(content),
		Provenance:   []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}

	owner := &domain.Company{
		Name:       company,
		Ticker:     fields["ticker"],
		Provenance: []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}

	return &Candidate{Kind: domain.KindFiling, Companies: []*domain.Company{owner}, Filing: filing}, nil
}

func (n *Normalizer) normalizeIndexConstituent(row int, fields map[string]string) (*Candidate, error) {
	source := domain.SourceIndexConstituent
	name, err := requireField(source, row, fields, "company_name")
	if err != nil {
		return nil, err
	}
	ticker, err := requireField(source, row, fields, "ticker")
	if err != nil {
		return nil, err
	}
	index, err := requireField(source, row, fields, "index_name")
	if err != nil {
		return nil, err
	}

	company := &domain.Company{
		Name:       name,
		Ticker:     ticker,
		Industry:   firstNonEmpty(fields["industry"], fields["sector"]),
		Geography:  fields["country"],
		Indexes:    []string{index},
		Provenance: []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}
	if raw := fields["market_cap"]; raw != "" {
		amount, err := parseAmount(raw)
		if err != nil {
			return nil, apperrors.NewSchemaError(source, row, "market_cap", err.Error())
		}
		amount.Source = source
		company.MarketCap = amount
	}

	return &Candidate{Kind: domain.KindCompany, Companies: []*domain.Company{company}}, nil
}

func (n *Normalizer) normalizePressRelease(row int, fields map[string]string) (*Candidate, error) {
	source := domain.SourcePressRelease
	company, err := requireField(source, row, fields, "company_name")
	if err != nil {
		return nil, err
	}
	title, err := requireField(source, row, fields, "title")
	if err != nil {
		return nil, err
	}
	date, err := requireDate(source, row, fields, "date")
	if err != nil {
		return nil, err
	}
	content, err := requireField(source, row, fields, "content")
	if err != nil {
		return nil, err
	}

	text := title + "\n\n" + content
	filing := &domain.Filing{
		CompanyName:  company,
		FilingType:   "press_release",
		FilingDate:   date,
		Text:         text,
		DealMentions: ExtractDealMentions(text),
		Provenance:   []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}

	owner := &domain.Company{
		Name:       company,
		Provenance: []domain.Provenance{{Source: source, ImportedAt: n.now()}},
	}

	return &Candidate{Kind: domain.KindFiling, Companies: []*domain.Company{owner}, Filing: filing}, nil
}

// participantCompany builds the target-side company candidate for a deal row
func participantCompany(name string, fields map[string]string, source domain.SourceType, now time.Time) *domain.Company {
	return &domain.Company{
		Name:       name,
		Industry:   firstNonEmpty(fields["industry"], fields["sector"]),
		Geography:  fields["geography"],
		Tags:       []string{domain.TagTransactionParticipant},
		Provenance: []domain.Provenance{{Source: source, ImportedAt: now}},
	}
}

func buildSummary(fields map[string]string, target, acquirer string) string {
	if s := fields["summary"]; s != "" {
		return s
	}
	if s := fields["notes"]; s != "" {
		return s
	}
	dealType := firstNonEmpty(fields["deal_type"], "acquisition")
	if acquirer != "" {
		return fmt.Sprintf("%s of %s by %s", dealType, target, acquirer)
	}
	return fmt.Sprintf("%s of %s", dealType, target)
}

func parseDealStatus(raw string) (domain.DealStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "rumored", "rumoured", "rumor", "rumour":
		return domain.DealStatusRumored, nil
	case "announced", "pending", "agreed":
		return domain.DealStatusAnnounced, nil
	case "completed", "complete", "closed":
		return domain.DealStatusCompleted, nil
	case "withdrawn", "terminated", "lapsed":
		return domain.DealStatusWithdrawn, nil
	default:
		return "", fmt.Errorf("unrecognized deal status %q", raw)
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
