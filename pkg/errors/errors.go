package errors

import "errors"

// Error codes shared across domains. Handlers translate them to HTTP
// statuses; domains never import net/http.
const (
	CodeInvalidInput        = "invalid_input"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
	CodeProviderUnavailable = "provider_unavailable"
	CodeStorage             = "storage_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, defaulting to storage_error
// for anything that was not tagged at the point of detection.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStorage
}
