package domain

import (
	"time"
)

// DealStatus is the lifecycle state of a deal. Transitions are monotonic in
// rank order, except withdrawn which is terminal from any state.
type DealStatus string

const (
	DealStatusRumored   DealStatus = "rumored"
	DealStatusAnnounced DealStatus = "announced"
	DealStatusCompleted DealStatus = "completed"
	DealStatusWithdrawn DealStatus = "withdrawn"
)

// Valid reports whether s is a known deal status
func (s DealStatus) Valid() bool {
	switch s {
	case DealStatusRumored, DealStatusAnnounced, DealStatusCompleted, DealStatusWithdrawn:
		return true
	}
	return false
}

// Rank orders the non-terminal statuses for monotonic merges
func (s DealStatus) Rank() int {
	switch s {
	case DealStatusRumored:
		return 0
	case DealStatusAnnounced:
		return 1
	case DealStatusCompleted:
		return 2
	default:
		return -1
	}
}

// Advance returns the status a deal holding s moves to when a record with
// status next arrives. Withdrawn always wins; otherwise the more advanced
// of the two is kept.
func (s DealStatus) Advance(next DealStatus) DealStatus {
	if s == DealStatusWithdrawn || next == DealStatusWithdrawn {
		return DealStatusWithdrawn
	}
	if next.Rank() > s.Rank() {
		return next
	}
	return s
}

// Deal is a canonical transaction between a target and an optional acquirer.
// TargetID and AcquirerID, when both set, are distinct company identifiers.
// An empty AcquirerID means the acquirer is unknown.
type Deal struct {
	ID             string         `json:"id" db:"id" validate:"omitempty,uuid"`
	TargetID       string         `json:"target_id" db:"target_id" validate:"omitempty,uuid"`
	TargetName     string         `json:"target_name" db:"target_name" validate:"required"`
	AcquirerID     string         `json:"acquirer_id,omitempty" db:"acquirer_id" validate:"omitempty,uuid"`
	AcquirerName   string         `json:"acquirer_name,omitempty" db:"acquirer_name"`
	Announced      time.Time      `json:"announced" db:"announced" validate:"required"`
	Status         DealStatus     `json:"status" db:"status" validate:"required"`
	Value          *SourcedAmount `json:"value,omitempty" db:"value"`
	Summary        string         `json:"summary,omitempty" db:"summary"`
	KeywordMatches []string       `json:"keyword_matches,omitempty" db:"keyword_matches"`
	Provenance     []Provenance   `json:"provenance,omitempty" db:"provenance"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// HasKeyword reports whether kw is already in the matched keyword set
func (d *Deal) HasKeyword(kw string) bool {
	for _, k := range d.KeywordMatches {
		if k == kw {
			return true
		}
	}
	return false
}

// AddKeyword records a matched keyword if not already present
func (d *Deal) AddKeyword(kw string) {
	if kw == "" || d.HasKeyword(kw) {
		return
	}
	d.KeywordMatches = append(d.KeywordMatches, kw)
}
