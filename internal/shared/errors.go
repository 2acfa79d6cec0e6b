package shared

import "errors"

var (
	// ErrStore indicates the underlying persistence read or write failed.
	// Surfaced to the caller without retry; retrying a read-modify-write
	// can reintroduce lost updates.
	ErrStore = errors.New("store failure")
	// ErrNotFound indicates an operation referenced an entity id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or missing required fields.
	ErrValidation = errors.New("validation failed")
)
