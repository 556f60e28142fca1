package domain

import (
	"time"
)

// Company tags applied by screening or during reconciliation. User-defined
// tags are free-form strings alongside these.
const (
	TagPotentialTarget        = "potential_target"
	TagActiveAcquirer         = "active_acquirer"
	TagTransactionParticipant = "transaction_participant"
)

// SourcedAmount is a financial value in millions USD together with the
// source class that supplied it. The source gates merge-time overwrites.
type SourcedAmount struct {
	Value    float64    `json:"value" db:"value"`
	Currency string     `json:"currency,omitempty" db:"currency"`
	Source   SourceType `json:"source" db:"source"`
}

// Company is the canonical, source-independent representation of a company.
// The identifier is assigned on first commit and immutable thereafter;
// aliases and provenance only grow.
type Company struct {
	ID         string         `json:"id" db:"id" validate:"omitempty,uuid"`
	Name       string         `json:"name" db:"name" validate:"required,min=1,max=200"`
	Ticker     string         `json:"ticker,omitempty" db:"ticker"`
	Aliases    []string       `json:"aliases,omitempty" db:"aliases"`
	Industry   string         `json:"industry,omitempty" db:"industry"`
	Geography  string         `json:"geography,omitempty" db:"geography"`
	Indexes    []string       `json:"indexes,omitempty" db:"indexes"`
	Tags       []string       `json:"tags,omitempty" db:"tags"`
	Revenue    *SourcedAmount `json:"revenue,omitempty" db:"revenue"`
	MarketCap  *SourcedAmount `json:"market_cap,omitempty" db:"market_cap"`
	Provenance []Provenance   `json:"provenance,omitempty" db:"provenance"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// HasAlias reports whether name is already a known alias (exact match)
func (c *Company) HasAlias(name string) bool {
	for _, a := range c.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

// AddAlias records name as an alias if not already present. The canonical
// name itself is never duplicated into the alias set.
func (c *Company) AddAlias(name string) {
	if name == "" || name == c.Name || c.HasAlias(name) {
		return
	}
	c.Aliases = append(c.Aliases, name)
}

// HasTag reports whether tag is applied to the company
func (c *Company) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag applies tag if not already present
func (c *Company) AddTag(tag string) {
	if tag == "" || c.HasTag(tag) {
		return
	}
	c.Tags = append(c.Tags, tag)
}

// MemberOf reports whether the company belongs to the named index
func (c *Company) MemberOf(index string) bool {
	for _, ix := range c.Indexes {
		if ix == index {
			return true
		}
	}
	return false
}

// AddIndex records an index membership if not already present
func (c *Company) AddIndex(index string) {
	if index == "" || c.MemberOf(index) {
		return
	}
	c.Indexes = append(c.Indexes, index)
}
