package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError flags local, pre-submit input failures. These resolve at
// the boundary and never correspond to a persisted change.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewLookupLoadError flags a reference-data fetch failure. Dependent fields
// degrade; the rest of the form stays usable.
func NewLookupLoadError(resource string, err error) error {
	return &DomainError{
		Code:       "LOOKUP_LOAD_FAILED",
		Message:    fmt.Sprintf("failed to load %s", resource),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewTransitionError flags a failed status change; the ticket is assumed
// unchanged and any optimistic state must be rolled back by the caller.
func NewTransitionError(message string, err error) error {
	return &DomainError{
		Code:       "TRANSITION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

// NewCommentError flags a failed comment post. Comment and status changes
// have independent failure domains; this never implies a status rollback.
func NewCommentError(err error) error {
	return &DomainError{
		Code:       "COMMENT_FAILED",
		Message:    "failed to save comment",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthorized flags an invalid session. The code is distinguishable so
// session-handling collaborators can clear credentials and redirect.
func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
