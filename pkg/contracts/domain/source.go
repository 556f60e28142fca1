package domain

import (
	"time"
)

// SourceType identifies the origin schema of an ingested record
type SourceType string

const (
	SourceMergermarket     SourceType = "mergermarket"
	SourcePreqin           SourceType = "preqin"
	SourceSECFiling        SourceType = "sec_filing"
	SourceIndexConstituent SourceType = "index_constituent"
	SourcePressRelease     SourceType = "press_release"
)

// Valid reports whether s is a known source type
func (s SourceType) Valid() bool {
	switch s {
	case SourceMergermarket, SourcePreqin, SourceSECFiling, SourceIndexConstituent, SourcePressRelease:
		return true
	}
	return false
}

// Precedence returns the authority class of a source for merge-time field
// overwrites. A field set by a higher class is never overwritten by a lower
// one; equal classes never overwrite each other (first writer wins).
func (s SourceType) Precedence() int {
	switch s {
	case SourceSECFiling:
		return 3
	case SourceMergermarket, SourcePreqin:
		return 2
	case SourcePressRelease:
		return 1
	case SourceIndexConstituent:
		return 0
	default:
		return -1
	}
}

// Provenance records one contributing source import for an entity
type Provenance struct {
	Source     SourceType `json:"source" db:"source" validate:"required"`
	ImportedAt time.Time  `json:"imported_at" db:"imported_at" validate:"required"`
}

// EntityKind discriminates canonical entity types
type EntityKind string

const (
	KindCompany EntityKind = "company"
	KindDeal    EntityKind = "deal"
	KindFiling  EntityKind = "filing"
)
