package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfUnwrapsWrappedErrors(t *testing.T) {
	base := NewError(CodeConflict, "already applied", nil)
	wrapped := fmt.Errorf("submit: %w", base)

	assert.True(t, Is(wrapped, CodeConflict))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestCodeOfPlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.False(t, Is(errors.New("boom"), CodeNotFound))
}

func TestErrorMessage(t *testing.T) {
	err := NewError(CodeNotFound, "application not found", errors.New("sql: no rows"))
	assert.Equal(t, "application not found", err.Error())
	assert.EqualError(t, err.Unwrap(), "sql: no rows")

	bare := NewError(CodeInternal, "", nil)
	assert.Equal(t, string(CodeInternal), bare.Error())
}

func TestValidationErrorCarriesFields(t *testing.T) {
	err := NewValidationError("invalid request", map[string]string{"status": "required"})
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "required", err.Fields["status"])
}
