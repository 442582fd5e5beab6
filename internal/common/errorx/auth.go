package errorx

import (
	"fmt"
	"net/http"
)

// ErrorCategory groups codes by who caused the failure
type ErrorCategory string

const (
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryInternal       ErrorCategory = "internal"
)

// AuthError is one row of the authentication error taxonomy
type AuthError struct {
	Code       string
	MessageID  string
	Category   ErrorCategory
	HTTPStatus int
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.MessageID)
}

// ClientCaused reports whether the failure stems from the request rather than the gate
func (e *AuthError) ClientCaused() bool {
	return e.Category == CategoryAuthentication
}

// MessageIDInternalCause is used for SYS_500 when the cause is known.
const MessageIDInternalCause = "sys.internal_error_cause"

var (
	ErrMissingToken = &AuthError{
		Code:       "AUTH_001",
		MessageID:  "auth.missing_token",
		Category:   CategoryAuthentication,
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidFormat = &AuthError{
		Code:       "AUTH_002",
		MessageID:  "auth.invalid_format",
		Category:   CategoryAuthentication,
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrEmptyToken = &AuthError{
		Code:       "AUTH_003",
		MessageID:  "auth.empty_token",
		Category:   CategoryAuthentication,
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenExpired = &AuthError{
		Code:       "AUTH_004",
		MessageID:  "auth.token_expired",
		Category:   CategoryAuthentication,
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrSystem = &AuthError{
		Code:       "SYS_500",
		MessageID:  "sys.internal_error",
		Category:   CategoryInternal,
		HTTPStatus: http.StatusInternalServerError,
	}
)

// All returns the taxonomy in code order
func All() []*AuthError {
	return []*AuthError{ErrMissingToken, ErrInvalidFormat, ErrEmptyToken, ErrTokenExpired, ErrSystem}
}
