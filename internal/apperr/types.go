package apperr

import (
	"fmt"
)

// Type represents the category of an error.
type Type int

const (
	TypeTransport Type = iota
	TypeStatus
	TypeNotFound
	TypeDecode
	TypeConflict
	TypeInput
	TypeStorage
)

// String returns the string representation of the error type
func (t Type) String() string {
	switch t {
	case TypeTransport:
		return "transport"
	case TypeStatus:
		return "status"
	case TypeNotFound:
		return "not_found"
	case TypeDecode:
		return "decode"
	case TypeConflict:
		return "conflict"
	case TypeInput:
		return "input"
	case TypeStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a structured application error.
type Error struct {
	Type    Type
	Message string
	Code    string
	// Status is the HTTP status code of the response that produced the error, if any.
	Status  int
	Cause   error
	Context map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same type and code.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return e.Type == other.Type && e.Code == other.Code
	}
	return false
}

// GetContext retrieves context information from the error
func (e *Error) GetContext(key string) (any, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, ok := e.Context[key]
	return value, ok
}
