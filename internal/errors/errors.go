package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error so the HTTP layer can map it to a status
// code without inspecting message text.
type Kind int

const (
	// KindValidation is returned for malformed, missing or out-of-range input.
	KindValidation Kind = iota
	// KindConflict is returned when a uniqueness constraint is violated.
	KindConflict
	// KindNotFound is returned when a referenced entity is absent.
	KindNotFound
	// KindAuthentication is returned for missing, invalid or expired credentials.
	KindAuthentication
)

// Error is a domain error carrying a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidation creates a validation error.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewConflict creates a conflict error.
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewNotFound creates a not-found error.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewAuthentication creates an authentication error.
func NewAuthentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == kind
	}
	return false
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// domain taxonomy is surfaced as a generic 500 without leaking internals.
func MapErrorToHTTP(err error) *HTTPError {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	switch domainErr.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, domainErr.Message, "VALIDATION_ERROR")
	case KindConflict:
		return NewHTTPError(http.StatusBadRequest, domainErr.Message, "CONFLICT")
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, domainErr.Message, "NOT_FOUND")
	case KindAuthentication:
		return NewHTTPError(http.StatusUnauthorized, domainErr.Message, "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
