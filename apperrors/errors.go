// Package apperrors provides the structured errors returned by services and
// mapped to HTTP responses by handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrCodeInvalidProfile      ErrorCode = "INVALID_PROFILE"
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeLoanNotFound        ErrorCode = "LOAN_NOT_FOUND"
	ErrCodeAccessDenied        ErrorCode = "ACCESS_DENIED"
	ErrCodeAssessmentExists    ErrorCode = "ASSESSMENT_EXISTS"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is. A *StandardError matches the sentinel with the same code.
var (
	ErrInvalidProfile      = &StandardError{Code: ErrCodeInvalidProfile}
	ErrInvalidInput        = &StandardError{Code: ErrCodeInvalidInput}
	ErrApplicationNotFound = &StandardError{Code: ErrCodeApplicationNotFound}
	ErrLoanNotFound        = &StandardError{Code: ErrCodeLoanNotFound}
	ErrAccessDenied        = &StandardError{Code: ErrCodeAccessDenied}
	ErrAssessmentExists    = &StandardError{Code: ErrCodeAssessmentExists}
)

// StandardError is a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on code only, so wrapped errors compare against the sentinels.
func (e *StandardError) Is(target error) bool {
	var t *StandardError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewInvalidProfileError reports an applicant profile the engine cannot score.
func NewInvalidProfileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProfile,
		Message:   "Invalid applicant profile",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError reports bad calculator input.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid calculator input",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewApplicationNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Loan application not found",
		Details:   fmt.Sprintf("applicationId: %s", id),
		Timestamp: time.Now().UTC(),
	}
}

func NewLoanNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLoanNotFound,
		Message:   "Loan not found",
		Details:   fmt.Sprintf("loanId: %s", id),
		Timestamp: time.Now().UTC(),
	}
}

func NewAccessDeniedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAccessDenied,
		Message:   "Access denied",
		Timestamp: time.Now().UTC(),
	}
}

// NewAssessmentExistsError is returned when an application is assessed twice.
func NewAssessmentExistsError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssessmentExists,
		Message:   "Application already assessed",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure. It is the only retryable kind.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error to a response status.
func HTTPStatus(err error) int {
	var se *StandardError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case ErrCodeInvalidProfile, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeApplicationNotFound, ErrCodeLoanNotFound:
		return http.StatusNotFound
	case ErrCodeAccessDenied:
		return http.StatusForbidden
	case ErrCodeAssessmentExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// From returns err as a *StandardError, wrapping unknown errors as internal.
func From(err error) *StandardError {
	var se *StandardError
	if errors.As(err, &se) {
		return se
	}
	return NewInternalError(err)
}
