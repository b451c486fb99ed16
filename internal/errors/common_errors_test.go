package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewValidationError("top_n must be positive", nil),
			expected: "[VALIDATION] top_n must be positive",
		},
		{
			name:     "with cause",
			err:      NewParsingError("failed to read header", errors.New("unexpected EOF")),
			expected: "[PARSING] failed to read header: unexpected EOF",
		},
		{
			name:     "not found formats resource",
			err:      NewNotFoundError("input file rows.csv", nil),
			expected: "[NOT_FOUND] input file rows.csv not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrapped := NewNotFoundError("input file", fs.ErrNotExist)
	outer := fmt.Errorf("load complaints: %w", wrapped)

	assert.True(t, errors.Is(outer, fs.ErrNotExist))

	var appErr *AppError
	require.True(t, errors.As(outer, &appErr))
	assert.Equal(t, ErrTypeNotFound, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "write failed"}
	err.WithContext("path", "report.txt").WithContext("bytes", 12)

	assert.Equal(t, "report.txt", err.Context["path"])
	assert.Equal(t, 12, err.Context["bytes"])
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("render: %w", NewRenderError("add chart", errors.New("bad range")))

	assert.True(t, IsType(err, ErrTypeRender))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeRender))
	assert.False(t, IsType(nil, ErrTypeRender))
}
