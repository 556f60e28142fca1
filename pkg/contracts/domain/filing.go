package domain

import (
	"time"
)

// FindingCategory classifies a due-diligence red flag
type FindingCategory string

const (
	CategoryLitigation         FindingCategory = "litigation"
	CategoryRegulatoryAction   FindingCategory = "regulatory_action"
	CategoryManagementTurnover FindingCategory = "management_turnover"
	CategoryRestatement        FindingCategory = "restatement"
	CategoryGoingConcern       FindingCategory = "going_concern"
)

// Severity grades a red-flag finding
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Escalate raises the severity one level, clamped at high
func (s Severity) Escalate() Severity {
	switch s {
	case SeverityLow:
		return SeverityMedium
	case SeverityMedium:
		return SeverityHigh
	default:
		return s
	}
}

// DeEscalate lowers the severity one level, clamped at low
func (s Severity) DeEscalate() Severity {
	switch s {
	case SeverityHigh:
		return SeverityMedium
	case SeverityMedium:
		return SeverityLow
	default:
		return s
	}
}

// Rank orders severities for deduplication (higher wins)
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}

// Span locates a finding within the filing text, as byte offsets
type Span struct {
	Start int `json:"start" db:"start"`
	End   int `json:"end" db:"end"`
}

// Finding is one extracted red flag. Findings are immutable once recorded;
// corrections are made by adding a superseding finding.
type Finding struct {
	FilingID string          `json:"filing_id" db:"filing_id"`
	Category FindingCategory `json:"category" db:"category"`
	Span     Span            `json:"span" db:"span"`
	Excerpt  string          `json:"excerpt" db:"excerpt"`
	Severity Severity        `json:"severity" db:"severity"`
}

// Filing is a canonical regulatory filing or press release text owned by a
// company. Press releases are stored as filings of type "press_release".
type Filing struct {
	ID           string       `json:"id" db:"id" validate:"omitempty,uuid"`
	CompanyID    string       `json:"company_id" db:"company_id" validate:"omitempty,uuid"`
	CompanyName  string       `json:"company_name" db:"company_name" validate:"required"`
	FilingType   string       `json:"filing_type" db:"filing_type" validate:"required"`
	FilingDate   time.Time    `json:"filing_date" db:"filing_date" validate:"required"`
	Text         string       `json:"text,omitempty" db:"text"`
	DealMentions []string     `json:"deal_mentions,omitempty" db:"deal_mentions"`
	Findings     []Finding    `json:"findings,omitempty" db:"findings"`
	Provenance   []Provenance `json:"provenance,omitempty" db:"provenance"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
