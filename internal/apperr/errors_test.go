package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType Type
		wantCode string
	}{
		{"server error", http.StatusInternalServerError, TypeStatus, "UNEXPECTED_STATUS"},
		{"bad request", http.StatusBadRequest, TypeStatus, "UNEXPECTED_STATUS"},
		{"not found", http.StatusNotFound, TypeNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStatusError("GET", "http://api/tasks", tt.status, "boom")

			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.status, err.Status)
			body, ok := err.GetContext("body")
			require.True(t, ok)
			assert.Equal(t, "boom", body)
		})
	}
}

func TestError_Error(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("POST", "http://api/tasks", cause)

	assert.Equal(t, "transport: POST http://api/tasks failed (caused by: connection refused)", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))

	plain := NewConflictError("task is closed")
	assert.Equal(t, "conflict: task is closed", plain.Error())
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("finish task: %w", NewNotFoundError("task", 7))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, TypeNotFound, appErr.Type)
	assert.True(t, IsType(wrapped, TypeNotFound))
	assert.False(t, IsType(wrapped, TypeConflict))
	assert.True(t, errors.Is(wrapped, &Error{Type: TypeNotFound, Code: "NOT_FOUND"}))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"conflict", NewConflictError("task is closed"), "task is closed"},
		{"input", NewInputError("spent time", "abc", "not a whole number of minutes"), "invalid spent time: not a whole number of minutes"},
		{"not found", NewNotFoundError("task", 3), "task not found: 3"},
		{"transport", NewTransportError("GET", "u", errors.New("x")), "The task server could not be reached. Please try again."},
		{"status", NewStatusError("GET", "u", http.StatusBadGateway, ""), "The task server rejected the request (502 Bad Gateway)."},
		{"decode", NewDecodeError("u", errors.New("x")), "The task server sent an unreadable response."},
		{"storage", NewStorageError("insert task", errors.New("x")), "A storage error occurred. Please try again."},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}

func TestShouldLogAndHTTPStatus(t *testing.T) {
	assert.False(t, ShouldLog(NewConflictError("closed")))
	assert.False(t, ShouldLog(NewInputError("f", 1, "r")))
	assert.True(t, ShouldLog(NewTransportError("GET", "u", nil)))
	assert.True(t, ShouldLog(errors.New("plain")))

	assert.Equal(t, http.StatusConflict, HTTPStatus(NewConflictError("closed")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("task", 1)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewTransportError("GET", "u", nil)))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "transport", TypeTransport.String())
	assert.Equal(t, "not_found", TypeNotFound.String())
	assert.Equal(t, "unknown", Type(99).String())
}
