package cache

import "errors"

// Cache errors; compare with errors.Is.
var (
	// ErrNotFound reports a miss: the resolution must be computed.
	ErrNotFound = errors.New("cache: key not found")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("cache: cache is closed")
)
