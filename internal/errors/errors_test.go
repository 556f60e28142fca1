package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealpulse/pkg/contracts/domain"
)

func TestSchemaErrorMessage(t *testing.T) {
	err := NewSchemaError(domain.SourceMergermarket, 4, "target_name", "required field is missing or empty")
	assert.Contains(t, err.Error(), "mergermarket")
	assert.Contains(t, err.Error(), "row 4")
	assert.Contains(t, err.Error(), `"target_name"`)

	noField := NewSchemaError(domain.SourcePreqin, 0, "", "empty row")
	assert.NotContains(t, noField.Error(), `""`)
}

func TestRepositoryErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := NewRepositoryError("insert company", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRepositoryError(err))
	assert.True(t, IsRepositoryError(fmt.Errorf("batch failed: %w", err)))
	assert.False(t, IsRepositoryError(cause))
}

func TestNotFound(t *testing.T) {
	err := NewNotFoundError("company", "c1")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "schema error maps to 422",
			err:        NewSchemaError(domain.SourceMergermarket, 1, "status", "bad"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "SCHEMA_ERROR",
		},
		{
			name:       "not found maps to 404",
			err:        NewNotFoundError("company", "c1"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "repository error maps to 500",
			err:        NewRepositoryError("insert", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "REPOSITORY_ERROR",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("mystery"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "api error passes through",
			err:        ErrInvalidRequest,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromDomain(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestResolutionAmbiguityErrorMessage(t *testing.T) {
	err := &ResolutionAmbiguityError{
		CandidateName: "Acme",
		EntityIDs:     []string{"e1", "e2"},
		Score:         1.0,
	}
	assert.Contains(t, err.Error(), "Acme")
	assert.Contains(t, err.Error(), "e1")
}
