// Package error defines domain-specific errors for the gestion backend.
package error

import "errors"

// Authentication and authorization domain errors.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrNotAuthenticated is returned when no authenticated caller is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInsufficientRole is returned when the caller's role does not permit the operation.
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

// AuthErrorCode defines error codes for authentication/authorization errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (01XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-010001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-010002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-010003"

	// Authorization errors (02XXXX)
	ErrCodeInsufficientRole AuthErrorCode = "AUTH-020001"
	ErrCodeRateLimited      AuthErrorCode = "AUTH-020002"
)

// AuthError represents an authentication/authorization error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
