package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates an empty or whitespace-only question
	ErrEmptyQuery = errors.New("query is empty")

	// ErrQueryTooLong indicates the question exceeds the maximum length
	ErrQueryTooLong = errors.New("query exceeds maximum length")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates an external AI service could not be reached.
	// Callers surface this as a retryable condition; the pipeline never
	// substitutes a fabricated answer for it.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrGuardrailUnavailable indicates the guardrail rule table failed to load.
	// This is fatal at startup: the system must not answer without it.
	ErrGuardrailUnavailable = errors.New("guardrail table not loaded")
)

// IngestError reports a mid-ingestion failure together with how many
// chunks had already been committed for the document. Committed batches
// stay in the store; the document's recorded chunk count remains 0
// until a full ingestion succeeds.
type IngestError struct {
	DocumentID string
	Committed  int
	Err        error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingestion of document %s failed after %d committed chunks: %v",
		e.DocumentID, e.Committed, e.Err)
}

// Unwrap exposes the cause so errors.Is still matches sentinels such
// as ErrServiceUnavailable.
func (e *IngestError) Unwrap() error { return e.Err }
