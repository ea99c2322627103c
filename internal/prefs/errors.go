package prefs

import "errors"

// Sentinel errors shared by the storage backends.
var (
	// ErrNotFound indicates the storage slot has never been written.
	ErrNotFound = errors.New("preference record not found")
	// ErrClosed indicates the backend has been closed.
	ErrClosed = errors.New("storage backend is closed")
)
