package domain

import "fmt"

// DomainError represents a business-rule violation.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

var (
	ErrProjectNotFound    = NewDomainError("project not found")
	ErrNoteNotFound       = NewDomainError("note not found")
	ErrVersionNotFound    = NewDomainError("note version not found")
	ErrCostNotFound       = NewDomainError("cost entry not found")
	ErrProposalNotFound   = NewDomainError("proposal not found")
	ErrTaskNotFound       = NewDomainError("task not found")
	ErrMembershipNotFound = NewDomainError("project membership not found")
	ErrForbidden          = NewDomainError("forbidden")
	ErrStatusChanged      = NewDomainError("status changed concurrently")
)

// StatusConflictError is returned when a workflow transition is requested
// from a state outside the transition's allowed source set. It carries both
// statuses for diagnostics.
type StatusConflictError struct {
	Entity    string
	Attempted string
	Current   string
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("invalid status: cannot %s %s in status %s", e.Attempted, e.Entity, e.Current)
}

// ValidationError reports a malformed field on a guarded mutation. It is
// raised before any transition guard or store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
