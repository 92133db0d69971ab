package localcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Cache is a persistent, on-disk cache shared across processes. Entries
// live as individual files in a single directory, one file per key, named
// by the SHA-256 digest of the key.
//
// A Cache is safe for use from multiple goroutines and from multiple
// processes pointed at the same configuration. Construct it once per
// process and pass it around: directory resolution happens lazily on
// first use and its outcome is retained for the lifetime of the value.
type Cache struct {
	config  Config
	fs      afero.Fs
	nowFunc NowFunc
	retry   RetryPolicy
	log     zerolog.Logger

	initOnce sync.Once
	cacheDir string
	initErr  error
}

// NowFunc defines a function that returns the current time.
type NowFunc func() time.Time

// Option defines a function that configures a Cache.
type Option func(*Cache)

// New creates a cache for the given configuration. The cache directory is
// not touched here; it is resolved and created on the first operation.
func New(config Config, options ...Option) *Cache {
	cache := &Cache{
		config:  config,
		fs:      afero.NewOsFs(),
		nowFunc: time.Now,
		retry:   DefaultRetryPolicy(),
		log:     zerolog.Nop(),
	}

	for _, option := range options {
		option(cache)
	}

	return cache
}

// Add stores data under the given key with an absolute expiry time. An
// existing entry for the same key is replaced wholesale. The key and the
// payload must be non-empty; violations are rejected before any
// filesystem access.
func (c *Cache) Add(id string, expiry time.Time, data []byte) error {
	if id == "" {
		return ErrEmptyKey
	}
	if len(data) == 0 {
		return ErrEmptyPayload
	}

	dir, err := c.dir()
	if err != nil {
		return err
	}

	path := c.entryPath(dir, id)
	f, err := c.openFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create entry file: %w", err)
	}
	defer f.Close()

	if err := writeEntry(f, expiry, data); err != nil {
		return err
	}

	c.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("entry stored")
	return nil
}

// Get returns the payload stored under the given key. It returns
// ErrCacheMiss when no entry file exists or when the entry had expired;
// an expired entry is deleted on the way out, best-effort. Any other
// failure to open or read the file is an error, including a payload
// shorter than the file size implies (CorruptEntryError).
func (c *Cache) Get(id string) ([]byte, error) {
	if id == "" {
		return nil, ErrEmptyKey
	}

	dir, err := c.dir()
	if err != nil {
		return nil, err
	}

	path := c.entryPath(dir, id)
	payload, expired, err := c.readEntryFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	if expired {
		// The entry is already correctly reported as absent; a failed
		// unlink must not turn that into an error.
		if err := c.fs.Remove(path); err != nil {
			c.log.Debug().Str("path", path).Err(err).Msg("failed to delete expired entry")
		}
		return nil, ErrCacheMiss
	}

	return payload, nil
}

// readEntryFile opens and decodes one entry file, releasing the handle on
// every exit path. The handle is closed before the caller deletes an
// expired file, which matters on platforms with mandatory sharing modes.
func (c *Cache) readEntryFile(path string) (payload []byte, expired bool, err error) {
	f, err := c.openFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open entry file: %w", err)
	}
	defer f.Close()

	return readEntry(f, c.nowFunc())
}

// Clear deletes every entry in the cache directory. Subdirectories are
// skipped; the cache never creates any. Deletion continues past
// individual failures and the aggregate error is returned, so one
// undeletable file does not strand the rest of the directory.
func (c *Cache) Clear() error {
	dir, err := c.dir()
	if err != nil {
		return err
	}

	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := c.fs.Remove(filepath.Join(dir, entry.Name())); err != nil {
			c.log.Debug().Str("name", entry.Name()).Err(err).Msg("failed to delete entry")
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", entry.Name(), err))
		}
	}

	return errors.Join(errs...)
}
