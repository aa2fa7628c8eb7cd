package store

import "errors"

// Callers match these with errors.Is; returned errors wrap them with context.
var (
	// ErrNotFound means the record id has no backing file.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means the caller misused the API, e.g. Save on a
	// record that already has an id.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal covers I/O failures, a broken id counter and id collisions.
	ErrInternal = errors.New("internal error")
)
