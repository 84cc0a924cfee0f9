package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to clients in the "code" field.
const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeStorage            = "storage_error"
	CodeRateLimited        = "rate_limited"
	CodeServiceUnavailable = "service_unavailable"
	CodeBadRequest         = "bad_request"
	CodeAuth               = "auth_error"
	CodeInternal           = "internal_error"
)

// AppError carries the HTTP status and client-safe message for a failure.
// The wrapped cause is for server-side logs only and must never reach the
// response body.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, status int, message string, cause error) *AppError {
	return &AppError{Code: code, Status: status, Message: message, Err: cause}
}

func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Status: 400, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Status: 404, Message: message}
}

func Storage(cause error) *AppError {
	return &AppError{Code: CodeStorage, Status: 500, Message: "Falha ao acessar o armazenamento de dados.", Err: cause}
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
