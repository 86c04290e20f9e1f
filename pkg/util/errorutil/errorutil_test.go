package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	validation := NewValidationError("bad column", map[string]any{"column": "age"})
	wrapped := fmt.Errorf("sort: %w", validation)
	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)

	de = ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", de.Code)

	cause := errors.New("disk on fire")
	de = ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.ErrorIs(t, de, cause)
	assert.Equal(t, "internal server error: disk on fire", de.Error())
}

func TestNewUnavailable(t *testing.T) {
	de := ToDomainError(NewUnavailable("redis", map[string]any{"redis": "refused"}))
	assert.Equal(t, http.StatusServiceUnavailable, de.HTTPStatus)
	assert.Equal(t, "UNAVAILABLE", de.Code)
	assert.Equal(t, "redis unavailable", de.Message)
	assert.Equal(t, "refused", de.Details["redis"])
}
