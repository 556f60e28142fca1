package domain

import (
	"time"
)

// ResolutionOutcome records how one candidate entity was committed
type ResolutionOutcome string

const (
	ResolutionInserted ResolutionOutcome = "inserted"
	ResolutionMerged   ResolutionOutcome = "merged"
)

// ResolutionDecision is the per-candidate verdict of the entity resolver
type ResolutionDecision struct {
	Kind     EntityKind        `json:"kind"`
	EntityID string            `json:"entity_id"`
	Name     string            `json:"name"`
	Outcome  ResolutionOutcome `json:"outcome"`
	MergedID string            `json:"merged_id,omitempty"` // set when Outcome is merged
	Score    float64           `json:"score,omitempty"`
}

// SkippedRow reports one row rejected during normalization
type SkippedRow struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// BatchReport summarizes one ingestion batch for the caller. Row-level and
// entity-level failures are aggregated here; only batch-fatal repository
// failures propagate as errors.
type BatchReport struct {
	Source            SourceType           `json:"source"`
	StartedAt         time.Time            `json:"started_at"`
	FinishedAt        time.Time            `json:"finished_at"`
	RowsReceived      int                  `json:"rows_received"`
	RowsSkipped       int                  `json:"rows_skipped"`
	Skipped           []SkippedRow         `json:"skipped,omitempty"`
	EntitiesInserted  int                  `json:"entities_inserted"`
	EntitiesMerged    int                  `json:"entities_merged"`
	Decisions         []ResolutionDecision `json:"decisions,omitempty"`
	FindingsProduced  int                  `json:"findings_produced"`
	NotificationsSent int                  `json:"notifications_sent"`
	Warnings          []string             `json:"warnings,omitempty"`
}
