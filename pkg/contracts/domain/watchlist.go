package domain

import (
	"time"
)

// WatchlistEntry pins a company or deal for follow-up by a user
type WatchlistEntry struct {
	ID         string     `json:"id" db:"id" validate:"omitempty,uuid"`
	Owner      string     `json:"owner" db:"owner" validate:"required"`
	EntityKind EntityKind `json:"entity_kind" db:"entity_kind" validate:"required,oneof=company deal filing"`
	EntityID   string     `json:"entity_id" db:"entity_id" validate:"required"`
	EntityName string     `json:"entity_name" db:"entity_name"`
	Notes      string     `json:"notes,omitempty" db:"notes"`
	AddedAt    time.Time  `json:"added_at" db:"added_at"`
}
