package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// NewTransportError reports a request that never produced a response.
func NewTransportError(method, url string, cause error) *Error {
	return &Error{
		Type:    TypeTransport,
		Message: fmt.Sprintf("%s %s failed", method, url),
		Code:    "TRANSPORT_FAILED",
		Cause:   cause,
		Context: map[string]any{
			"method": method,
			"url":    url,
		},
	}
}

// NewStatusError reports a non-2xx response. 404 is mapped to TypeNotFound.
func NewStatusError(method, url string, status int, body string) *Error {
	typ, code := TypeStatus, "UNEXPECTED_STATUS"
	if status == http.StatusNotFound {
		typ, code = TypeNotFound, "NOT_FOUND"
	}
	return &Error{
		Type:    typ,
		Message: fmt.Sprintf("%s %s returned %d %s", method, url, status, http.StatusText(status)),
		Code:    code,
		Status:  status,
		Context: map[string]any{
			"method": method,
			"url":    url,
			"body":   body,
		},
	}
}

// NewDecodeError reports a response body that could not be parsed.
func NewDecodeError(url string, cause error) *Error {
	return &Error{
		Type:    TypeDecode,
		Message: fmt.Sprintf("malformed response from %s", url),
		Code:    "DECODE_FAILED",
		Cause:   cause,
		Context: map[string]any{"url": url},
	}
}

// NewNotFoundError creates a not found error for a resource id.
func NewNotFoundError(resource string, id int64) *Error {
	return &Error{
		Type:    TypeNotFound,
		Message: fmt.Sprintf("%s not found: %d", resource, id),
		Code:    "NOT_FOUND",
		Status:  http.StatusNotFound,
		Context: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

// NewConflictError reports an action that the current state does not allow.
func NewConflictError(message string) *Error {
	return &Error{
		Type:    TypeConflict,
		Message: message,
		Code:    "CONFLICT",
		Status:  http.StatusConflict,
	}
}

// NewInputError reports a form value that could not be parsed.
func NewInputError(field string, value any, reason string) *Error {
	return &Error{
		Type:    TypeInput,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Status:  http.StatusBadRequest,
		Context: map[string]any{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewStorageError wraps a failed storage operation.
func NewStorageError(operation string, cause error) *Error {
	return &Error{
		Type:    TypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Status:  http.StatusInternalServerError,
		Cause:   cause,
		Context: map[string]any{"operation": operation},
	}
}

// As converts err to *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType checks whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == t
	}
	return false
}

// HTTPStatus returns the status code a server should answer with for err.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// UserMessage returns a message fit for the error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	appErr, ok := As(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case TypeNotFound, TypeConflict, TypeInput:
		return appErr.Message
	case TypeTransport:
		return "The task server could not be reached. Please try again."
	case TypeStatus:
		return fmt.Sprintf("The task server rejected the request (%d %s).", appErr.Status, http.StatusText(appErr.Status))
	case TypeDecode:
		return "The task server sent an unreadable response."
	case TypeStorage:
		return "A storage error occurred. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// ShouldLog reports whether err is a system error worth logging at error level.
func ShouldLog(err error) bool {
	if appErr, ok := As(err); ok {
		switch appErr.Type {
		case TypeNotFound, TypeConflict, TypeInput:
			return false
		}
	}
	return true
}
