// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrTranslationUnavailable indicates the translation collaborator is not configured.
	ErrTranslationUnavailable = errors.New("translation unavailable")

	// ErrTranscriptionUnavailable indicates the speech collaborator is not configured.
	ErrTranscriptionUnavailable = errors.New("transcription unavailable")

	// ErrEmptyAudio indicates an uploaded audio payload contained no data.
	ErrEmptyAudio = errors.New("empty audio payload")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// SnapshotError represents a knowledge snapshot export failure with context.
type SnapshotError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot error (bucket=%s, key=%s): %v", e.Bucket, e.Key, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// NewSnapshotError creates a new snapshot error.
func NewSnapshotError(bucket, key string, err error) *SnapshotError {
	return &SnapshotError{Bucket: bucket, Key: key, Err: err}
}
