package apperrors

import "net/http"

// Factories and predefined variables for the domain error taxonomy.

// NotFound reports a missing entity by id (404).
func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// Conflict reports a duplicate unique field or a state collision (409).
func Conflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

// AlreadyExists reports a duplicate resource (409).
func AlreadyExists(domain, message string) *AppError {
	return New(CodeAlreadyExists, domain, message, http.StatusConflict)
}

// InvalidArgument reports malformed input (400).
func InvalidArgument(domain, message string) *AppError {
	return New(CodeInvalidArgument, domain, message, http.StatusBadRequest)
}

// InvalidState reports an operation not permitted in the current lifecycle
// state (409).
func InvalidState(domain, message string) *AppError {
	return New(CodeInvalidState, domain, message, http.StatusConflict)
}

// Forbidden reports a role or ownership mismatch (403).
func Forbidden(domain, message string) *AppError {
	return New(CodeForbidden, domain, message, http.StatusForbidden)
}

// NewBadRequestError keeps the short form used by handlers for bind failures.
func NewBadRequestError(message string) *AppError {
	return New(CodeInvalidArgument, "request", message, http.StatusBadRequest)
}

// NewUnauthorizedError reports a missing or broken caller identity (401).
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

var (
	// ErrInvalidCredentials never reveals which of the checks failed.
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)

	ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

	ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

	ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already exists", http.StatusConflict)

	ErrUsernameAlreadyExists = New(CodeAlreadyExists, "user", "Username already exists", http.StatusConflict)

	ErrInvalidUserRole = New(CodeInvalidArgument, "user", "Invalid user role for this operation", http.StatusBadRequest)
)
