package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a business-rule or lookup failure the API surfaces verbatim.
// These are caller errors, never retried internally.
type AppError struct {
	Code    int    `json:"-"`
	Kind    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is lets errors.Is match on the Kind, so wrapped copies with customized
// messages still compare equal to the sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Kind: "not_found", Message: "resource not found"}
	ErrPermissionDenied    = &AppError{Code: http.StatusForbidden, Kind: "permission_denied", Message: "permission denied"}
	ErrInvalidState        = &AppError{Code: http.StatusConflict, Kind: "invalid_state", Message: "operation not allowed in current state"}
	ErrFolioClosed         = &AppError{Code: http.StatusConflict, Kind: "folio_closed", Message: "folio is closed"}
	ErrNoFolio             = &AppError{Code: http.StatusBadRequest, Kind: "no_folio", Message: "booking has no folio"}
	ErrAlreadyClosed       = &AppError{Code: http.StatusConflict, Kind: "already_closed", Message: "folio already closed"}
	ErrDuplicateSubmission = &AppError{Code: http.StatusConflict, Kind: "duplicate_submission", Message: "check-in form already submitted"}
	ErrDuplicateReceipt    = &AppError{Code: http.StatusConflict, Kind: "duplicate_receipt", Message: "payment already has a receipt"}
	ErrValidation          = &AppError{Code: http.StatusBadRequest, Kind: "validation", Message: "invalid input"}
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Kind: "unauthorized", Message: "authentication required"}
	ErrInvalidCredentials  = &AppError{Code: http.StatusUnauthorized, Kind: "invalid_credentials", Message: "invalid username or password"}
)

// NotFound returns a not-found error naming the missing resource.
func NotFound(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: "not_found", Message: resource + " not found"}
}

// InvalidState returns an invalid-state error with a specific message.
func InvalidState(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: "invalid_state", Message: message}
}

// Validation returns a validation error with a specific message.
func Validation(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: "validation", Message: message}
}

// Validationf formats a validation error.
func Validationf(format string, args ...interface{}) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: "validation", Message: fmt.Sprintf(format, args...)}
}

// From extracts an *AppError, or wraps anything else as a 500.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: http.StatusInternalServerError, Kind: "internal", Message: err.Error()}
}
