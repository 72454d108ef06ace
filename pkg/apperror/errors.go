package apperror

import (
	"errors"
	"net/http"

	"github.com/projecthub/projecthub/internal/domain"
)

// AppError is the HTTP-facing shape of an application error.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: message, Status: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message, Status: http.StatusUnauthorized}
}

func NewForbidden(message string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: message, Status: http.StatusForbidden}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound}
}

func NewConflict(message string, details map[string]any) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, Status: http.StatusConflict, Details: details}
}

func NewValidation(field, message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Status:  http.StatusUnprocessableEntity,
		Details: map[string]any{"field": field, "message": message},
	}
}

func NewInternal() *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred", Status: http.StatusInternalServerError}
}

// From maps a domain error to its HTTP representation. Unrecognized errors
// become a generic internal error so store internals never leak.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var conflict *domain.StatusConflictError
	if errors.As(err, &conflict) {
		return NewConflict("invalid status", map[string]any{
			"current_status":   conflict.Current,
			"attempted_status": conflict.Attempted,
		})
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return NewValidation(validation.Field, validation.Message)
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return NewForbidden("forbidden")
	case errors.Is(err, domain.ErrStatusChanged):
		return NewConflict("status changed concurrently", nil)
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrNoteNotFound),
		errors.Is(err, domain.ErrVersionNotFound),
		errors.Is(err, domain.ErrCostNotFound),
		errors.Is(err, domain.ErrProposalNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrMembershipNotFound):
		return NewNotFound(err.Error())
	default:
		return NewInternal()
	}
}
