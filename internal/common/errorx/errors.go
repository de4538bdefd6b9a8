package errorx

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes surfaced to API clients.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidFileType    = "INVALID_FILE_TYPE"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodeMissingFile        = "MISSING_FILE"
	CodeStorageError       = "STORAGE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError is a structured error carrying an HTTP status and a machine-readable
// code. It propagates unchanged from the services to the HTTP boundary, where
// it is serialized as {"error": ..., "code": ...}.
type APIError struct {
	Message    string `json:"error"`
	Code       string `json:"code"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New creates an APIError with an explicit status and code.
func New(status int, code, message string) *APIError {
	return &APIError{Message: message, Code: code, HTTPStatus: status}
}

// NewValidation creates a 400 validation error.
func NewValidation(message string) *APIError {
	return New(http.StatusBadRequest, CodeValidationError, message)
}

// NewInvalidCredentials creates the non-distinguishing 401 login failure.
func NewInvalidCredentials() *APIError {
	return New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
}

// NewUnauthorized creates a 401 error for missing or invalid tokens.
func NewUnauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

// NewForbidden creates a 403 error for callers lacking a permission.
func NewForbidden(message string) *APIError {
	return New(http.StatusForbidden, CodeForbidden, message)
}

// NewNotFound creates a 404 error.
func NewNotFound(message string) *APIError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

// NewStorage creates a 502 error for object-storage failures during upload.
func NewStorage(message string) *APIError {
	return New(http.StatusBadGateway, CodeStorageError, message)
}

// NewInternal creates the generic 500 error. The message is fixed so that
// internal detail never leaks to the client.
func NewInternal() *APIError {
	return New(http.StatusInternalServerError, CodeInternalError, "Internal server error")
}
