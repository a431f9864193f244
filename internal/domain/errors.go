package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	// Pipeline errors
	ErrScopeRejected = errors.New("message is outside of the counselling scope")
	ErrParse         = errors.New("invalid JSON from model")
	ErrSchema        = errors.New("model response does not match schema")
	ErrEmptyMessage  = errors.New("message cannot be empty")
	ErrInvalidIntent = errors.New("invalid intent")
	ErrNoIntents     = errors.New("at least one intent is required")

	// Profile errors
	ErrProfileNotFound = errors.New("child profile not found")
	ErrInvalidProfile  = errors.New("invalid child profile")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidRole     = errors.New("invalid message role")
	ErrInvalidFeedback = errors.New("invalid feedback value")

	// Newsletter errors
	ErrAlreadySubscribed = errors.New("email is already subscribed")
	ErrInvalidEmail      = errors.New("invalid email address")

	// State errors
	ErrUnsupportedStateVersion = errors.New("unsupported state version")

	// LLM errors
	ErrLLMUnavailable   = errors.New("LLM service unavailable")
	ErrLLMRequestFailed = errors.New("LLM request failed")
	ErrLLMRateLimited   = errors.New("LLM rate limit exceeded")
	ErrLLMEmptyResponse = errors.New("LLM returned no content")

	// Validation errors
	ErrInvalidID    = errors.New("invalid ID format")
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// DomainError wraps a domain error with additional context
type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

func NewDomainErrorWithCode(err error, message, code string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// ValidationError reports why a model response was rejected. Err is either
// ErrParse or ErrSchema.
type ValidationError struct {
	Err        error
	Violations []string
	Cause      error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if len(e.Violations) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Violations, "; "))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewParseError(cause error) *ValidationError {
	return &ValidationError{Err: ErrParse, Cause: cause}
}

func NewSchemaError(violations []string) *ValidationError {
	return &ValidationError{Err: ErrSchema, Violations: violations}
}

// IsValidationFailure reports whether err is a parse or schema failure.
func IsValidationFailure(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrSchema)
}
