package domain

import (
	"time"
)

// AlertRule is a persisted keyword+filter predicate evaluated against every
// ingestion batch while active. Rules are authored by users; the engine only
// reads them (LastTriggered bookkeeping aside).
type AlertRule struct {
	ID       string   `json:"id" db:"id" validate:"omitempty,uuid"`
	Name     string   `json:"name" db:"name" validate:"required,min=1,max=200"`
	Owner    string   `json:"owner" db:"owner" validate:"required"`
	Keywords []string `json:"keywords,omitempty" db:"keywords"`

	// Optional filters; zero values mean unset and evaluate vacuously true.
	Industry  string   `json:"industry,omitempty" db:"industry"`
	Geography string   `json:"geography,omitempty" db:"geography"`
	MinValue  *float64 `json:"min_value,omitempty" db:"min_value"` // millions USD, matches value >= MinValue
	Index     string   `json:"index,omitempty" db:"index_name"`

	Active        bool       `json:"active" db:"active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	LastTriggered *time.Time `json:"last_triggered,omitempty" db:"last_triggered"`
}

// NotificationEvent is an ephemeral per-batch alert firing, handed to the
// delivery collaborator. It is not persisted by the engine.
type NotificationEvent struct {
	RuleID     string     `json:"rule_id"`
	RuleName   string     `json:"rule_name"`
	Owner      string     `json:"owner"`
	EntityID   string     `json:"entity_id"`
	EntityKind EntityKind `json:"entity_kind"`
	Keywords   []string   `json:"keywords,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}
