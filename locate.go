package localcache

import (
	"fmt"
	"os"
	"path/filepath"
)

// subdirName is the fixed, library-specific directory appended to the
// resolved base. All entry files live flat inside it.
const subdirName = ".localcache"

// Environment variables read by ConfigFromEnv.
const (
	// EnvAppData is the primary base-directory setting.
	EnvAppData = "LOCALAPPDATA"

	// EnvCacheDir is the cache-specific override, used only when the
	// primary is absent or empty.
	EnvCacheDir = "LOCALCACHE_DIR"
)

// Config holds the inputs for resolving the cache directory.
// Resolution order: AppDataDir if non-empty, else CacheDir, else the
// resolution fails with ErrNoBaseDir.
type Config struct {
	// AppDataDir is the preferred root for the cache subdirectory,
	// typically the platform's local application data directory.
	AppDataDir string

	// CacheDir is a cache-specific override, consulted only when
	// AppDataDir is empty.
	CacheDir string
}

// ConfigFromEnv builds a Config from the LOCALAPPDATA and LOCALCACHE_DIR
// environment variables.
func ConfigFromEnv() Config {
	return Config{
		AppDataDir: os.Getenv(EnvAppData),
		CacheDir:   os.Getenv(EnvCacheDir),
	}
}

// dir resolves and creates the cache directory, exactly once per Cache.
// The outcome, success or failure, is sticky for the lifetime of the
// Cache: resolution is expensive and must stay consistent, so there is no
// retry and no API to re-resolve.
func (c *Cache) dir() (string, error) {
	c.initOnce.Do(func() {
		c.cacheDir, c.initErr = c.resolveDir()
		if c.initErr == nil {
			c.log.Debug().Str("dir", c.cacheDir).Msg("cache directory resolved")
		}
	})
	return c.cacheDir, c.initErr
}

// resolveDir picks the base directory, joins the fixed subdirectory and
// creates it. Only the final path segment is created: an intermediate
// segment that does not exist means the configuration points somewhere
// unusable, which is fatal. "Already exists" is success.
func (c *Cache) resolveDir() (string, error) {
	base := c.config.AppDataDir
	if base == "" {
		base = c.config.CacheDir
	}
	if base == "" {
		return "", ErrNoBaseDir
	}

	dir := filepath.Join(base, subdirName)
	if err := c.fs.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return dir, nil
}

// entryPath returns the path of the entry file for a key.
func (c *Cache) entryPath(dir, id string) string {
	return filepath.Join(dir, keyDigest(id))
}
