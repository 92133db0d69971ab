package localcache

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Defaults for RetryPolicy, matching the cross-process contention window
// the cache is designed for: a peer process holding an entry file open
// for writing typically releases it within milliseconds.
const (
	// DefaultMaxAttempts is the default open retry budget.
	DefaultMaxAttempts = 10000

	// DefaultRetryInterval is the default pause between open attempts.
	DefaultRetryInterval = 15 * time.Millisecond
)

// RetryPolicy controls how entry files are opened when another process
// holds them incompatibly. The opener keeps retrying only while the
// failure is the transient sharing-violation kind; any other error is
// final immediately.
//
// The zero value is not usable; start from DefaultRetryPolicy and adjust.
type RetryPolicy struct {
	// MaxAttempts bounds the number of open calls.
	MaxAttempts int

	// Interval is the fixed pause between attempts.
	Interval time.Duration

	// Retryable reports whether an open error is the transient
	// "file busy" kind worth retrying. Defaults to the platform
	// sharing-violation predicate.
	Retryable func(error) bool

	// Sleep is called between attempts. It exists so tests can tune the
	// loop without real sleeping; nil means time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy returns the policy used by New unless overridden.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultRetryInterval,
		Retryable:   isContention,
		Sleep:       time.Sleep,
	}
}

// openFile opens path with the given flags, retrying while the error is a
// transient sharing violation. The loop is blocking and synchronous; once
// entered it runs to success, a final error, or budget exhaustion.
func (c *Cache) openFile(path string, flag int, perm os.FileMode) (afero.File, error) {
	p := c.retry
	retryable := p.Retryable
	if retryable == nil {
		retryable = isContention
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		f, err := c.fs.OpenFile(path, flag, perm)
		if err == nil {
			return f, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
		c.log.Debug().Str("path", path).Int("attempt", attempt).Msg("entry file locked, retrying")
		sleep(p.Interval)
	}

	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}
