package errors

import (
	"errors"
	"fmt"

	"dealpulse/pkg/contracts/domain"
)

// SchemaError reports a row that does not satisfy its source schema. It is
// row-level and recoverable: the row is skipped, counted, and reported in the
// batch report while the batch continues.
type SchemaError struct {
	Source domain.SourceType
	Row    int
	Field  string
	Reason string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema error in %s row %d, field %q: %s", e.Source, e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema error in %s row %d: %s", e.Source, e.Row, e.Reason)
}

// NewSchemaError creates a schema error for a named field
func NewSchemaError(source domain.SourceType, row int, field, reason string) *SchemaError {
	return &SchemaError{Source: source, Row: row, Field: field, Reason: reason}
}

// RepositoryError reports an unrecoverable storage failure. It is fatal to
// the batch: no partial commit is left visible and the error propagates to
// the caller.
type RepositoryError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying storage error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError wraps a storage failure with the failing operation
func NewRepositoryError(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}

// IsRepositoryError reports whether err is (or wraps) a RepositoryError
func IsRepositoryError(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re)
}

// ResolutionAmbiguityError reports two existing entities tying above the
// merge threshold with no deterministic winner. The candidate is inserted as
// new and the event surfaces as a batch warning, never as a hard failure.
type ResolutionAmbiguityError struct {
	CandidateName string
	EntityIDs     []string
	Score         float64
}

// Error implements the error interface
func (e *ResolutionAmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous resolution for %q: entities %v tie at %.2f", e.CandidateName, e.EntityIDs, e.Score)
}

// NotFoundError reports a missing entity or rule
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
