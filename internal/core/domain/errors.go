package domain

import "errors"

// Domain errors represent expected failure modes of the pipeline.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Upstream 404s and 500s on bill text map here: many historical
	// bills genuinely have no digitised text.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoText indicates no text could be obtained for a document.
	ErrNoText = errors.New("no text available")

	// ErrTooLarge indicates a document exceeds a size ceiling.
	ErrTooLarge = errors.New("document too large")

	// ErrUnsupportedDocument indicates the OCR backend rejected the
	// document as a single unit, typically because it is multi-page.
	// The extraction selector retries these on the asynchronous path.
	ErrUnsupportedDocument = errors.New("unsupported document")

	// ErrCorruptDocument indicates the OCR backend could not parse the
	// document at all. Not retried.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrTimeout indicates a polling ceiling was exceeded.
	ErrTimeout = errors.New("timed out")

	// ErrIndexUnavailable indicates the semantic index rejected or
	// failed a sync job.
	ErrIndexUnavailable = errors.New("semantic index unavailable")
)
