package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMediaUnresolvable is returned when no field in the media
	// resolution fallback chain yields a usable pointer
	ErrMediaUnresolvable = errors.New("could not resolve media for token")

	// ErrTokenRecordNotFound is returned when a token record is not found
	ErrTokenRecordNotFound = errors.New("token record not found")
)

// ValidationError indicates bad or missing input detected before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError indicates a failed or malformed response from an upstream
// API. StatusCode is zero when the failure was not an HTTP status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Reason     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream error (status %d): %s", e.Provider, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s upstream error: %s", e.Provider, e.Reason)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError wrapping err
func NewUpstreamError(provider string, statusCode int, reason string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, StatusCode: statusCode, Reason: reason, Err: err}
}

// TimeoutError indicates a media fetch or sniff exceeded its deadline.
// It only ever fails the media-resolution step, never committed metadata.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out", e.Op)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// AsTimeout wraps err into a TimeoutError when it is a deadline failure,
// otherwise returns err unchanged.
func AsTimeout(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Err: err}
	}
	return err
}
