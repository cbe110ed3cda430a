//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrConfig)
	assert.NotEqual(t, ErrNotFound, ErrPacker)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "not found",
		Message:  "backend module not found: lager",
		Location: "backend/lager",
		Context:  map[string]string{"Category": "backend"},
		Hint:     "Run 'modpack list' to see available targets.",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: not found")
	assert.Contains(t, output, "Location: backend/lager")
	assert.Contains(t, output, "Category: backend")
	assert.Contains(t, output, "backend module not found: lager")
	assert.Contains(t, output, "Hint: Run 'modpack list'")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("unknown layer \"infra\"", "--layers", "Valid layers: domain, application, adapter")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "--layers", detail.Location)
}

func TestNewConfigError(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3: did not find expected key")
	err := NewConfigError("cannot decode config", "/repo/.modpack.yaml", cause)

	assert.True(t, errors.Is(err, ErrConfig))
	assert.Contains(t, err.Error(), "/repo/.modpack.yaml")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "plain error", err: errors.New("boom"), wantCode: ExitGeneralError},
		{name: "not found sentinel", err: ErrNotFound, wantCode: ExitGeneralError},
		{name: "exit error keeps its code", err: &ExitError{Code: 3, Err: errors.New("x")}, wantCode: 3},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", &ExitError{Code: ExitGeneralError, Err: ErrPacker}), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
	assert.Equal(t, "boom", (&ExitError{Code: 1, Err: errors.New("boom")}).Error())
}
