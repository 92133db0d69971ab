package localcache

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss is returned by Get when no valid entry exists for a key,
	// either because the entry file is absent or because it had expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrEmptyKey is returned when a caller passes an empty cache key.
	ErrEmptyKey = errors.New("cache key must not be empty")

	// ErrEmptyPayload is returned by Add when the payload is nil or empty.
	ErrEmptyPayload = errors.New("payload must not be empty")

	// ErrNoBaseDir is returned when neither base directory in the Config is
	// set, so no cache directory can be resolved.
	ErrNoBaseDir = errors.New("no cache base directory configured")

	// ErrRetryExhausted is returned when a file remained locked by another
	// process for the whole retry budget.
	ErrRetryExhausted = errors.New("file still locked after retry budget")

	// ErrUnsupportedVersion is returned when an entry file carries a header
	// version this package does not understand.
	ErrUnsupportedVersion = errors.New("unsupported cache entry version")
)

// CorruptEntryError reports an entry file whose payload could not be read
// in full: the byte count read from disk does not match what the header
// and file size imply. It is a hard error, never treated as a miss.
type CorruptEntryError struct {
	Path string
	Want int64
	Got  int64
}

// Error implements the error interface.
func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("corrupt cache entry %s: want %d payload bytes, got %d", e.Path, e.Want, e.Got)
}
