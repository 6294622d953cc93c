package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"

	// ErrCodeAuthentication indicates failed authentication. Bad credentials
	// and unknown usernames are deliberately merged under this code so the
	// caller cannot distinguish them.
	ErrCodeAuthentication ErrorCode = "authentication_failed"
	// ErrCodeDenied indicates the access rule evaluation returned a deny.
	ErrCodeDenied ErrorCode = "authorization_denied"
	// ErrCodeSessionExpired indicates a session token was presented but the
	// store has no matching live session. Callers degrade to anonymous.
	ErrCodeSessionExpired ErrorCode = "session_expired"
	// ErrCodeCSRF indicates a missing or invalid anti-forgery token on a
	// guarded mutating request.
	ErrCodeCSRF ErrorCode = "csrf_rejected"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Authentication creates the generic authentication failure. The message is
// intentionally fixed; wrong-password and unknown-user must read the same.
func Authentication() *AppError {
	return &AppError{Code: ErrCodeAuthentication, Message: "authentication failed"}
}

// Denied creates a new authorization-denied error.
func Denied(message string) *AppError {
	return &AppError{Code: ErrCodeDenied, Message: message}
}

// SessionExpired creates a new session-expired error.
func SessionExpired() *AppError {
	return &AppError{Code: ErrCodeSessionExpired, Message: "session expired"}
}

// CSRFRejected creates a new CSRF rejection error.
func CSRFRejected() *AppError {
	return &AppError{Code: ErrCodeCSRF, Message: "CSRF token validation failed"}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsAuthentication checks if an error is an authentication failure.
func IsAuthentication(err error) bool { return isCode(err, ErrCodeAuthentication) }

// IsDenied checks if an error is an authorization denial.
func IsDenied(err error) bool { return isCode(err, ErrCodeDenied) }

// IsSessionExpired checks if an error is a session expiry.
func IsSessionExpired(err error) bool { return isCode(err, ErrCodeSessionExpired) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
