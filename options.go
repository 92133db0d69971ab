package localcache

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// WithFs sets a custom filesystem for the cache.
// This is primarily useful for testing with in-memory filesystems.
//
// Example:
//
//	cache := localcache.New(cfg, localcache.WithFs(afero.NewMemMapFs()))
func WithFs(fs afero.Fs) Option {
	return func(c *Cache) {
		c.fs = fs
	}
}

// WithNowFunc sets a custom time function for the cache.
// This is primarily useful for testing expiry with deterministic clocks.
func WithNowFunc(nowFunc NowFunc) Option {
	return func(c *Cache) {
		c.nowFunc = nowFunc
	}
}

// WithRetryPolicy sets the policy used when opening entry files that are
// held by another process. Start from DefaultRetryPolicy and adjust; a
// zero MaxAttempts makes every contended open fail immediately.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Cache) {
		c.retry = policy
	}
}

// WithLogger sets the logger for debug diagnostics (retries, expired
// deletions, clear failures). The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Cache) {
		c.log = log
	}
}
