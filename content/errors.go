package content

import "errors"

// Error kinds surfaced by the pipeline. No kind is retried or recovered
// anywhere in the core; every failure aborts the current run and propagates
// to the caller unchanged.
var (
	// ErrGeneration covers any generation collaborator call that fails or
	// returns unusable output (text, image, speech).
	ErrGeneration = errors.New("content generation failed")

	// ErrNotFound means a publish was requested for an id with no metadata
	// document on disk.
	ErrNotFound = errors.New("content not found")

	// ErrComposition means the media-composition step failed.
	ErrComposition = errors.New("video composition failed")

	// ErrPersistence means a filesystem read or write failed.
	ErrPersistence = errors.New("content persistence failed")
)
