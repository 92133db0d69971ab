/*
Package localcache provides a persistent, on-disk, cross-process cache for Go applications.

It is built for client libraries that want to avoid repeating expensive or
network-bound lookups: store a blob under an opaque key with an absolute
expiry, read it back from any process on the host, and clear everything
when needed.

# Core Architecture

Every entry is a single file in one flat cache directory. The filename is
the SHA-256 digest of the key, which makes the directory a deterministic
cross-process index: any process with the same configuration derives the
same path for the same key. Each file starts with a small versioned
header followed by the raw payload:

	offset 0:  version  (uint16, little-endian)
	offset 2:  expiry   (int64, little-endian, Unix seconds)
	offset 10: payload  (remaining bytes)

Writes replace the file wholesale; there is no in-place mutation. Reads
treat a missing file as a cache miss, delete expired entries on the way
out, and fail hard (never silently miss) when the payload on disk is
shorter than the file size implies.

# Cross-Process Contention

Two processes racing on the same entry file can hit transient
sharing-violation errors on open. The cache converts those into a bounded
blocking retry loop (by default 10000 attempts, 15ms apart) controlled by
an injectable RetryPolicy, so tests can shrink the budget or stub the
sleep entirely.

# Basic Usage

Creating a cache:

	cache := localcache.New(localcache.ConfigFromEnv())

Storing and retrieving an entry:

	err := cache.Add("collateral-v1", time.Now().Add(time.Hour), blob)
	if err != nil {
	    log.Fatalf("Failed to cache: %v", err)
	}

	data, err := cache.Get("collateral-v1")
	if errors.Is(err, localcache.ErrCacheMiss) {
	    // absent or expired: fetch and re-Add
	} else if err != nil {
	    log.Fatalf("Cache error: %v", err)
	}

# Configuration

The cache directory is resolved lazily, once per Cache: the primary base
directory (Config.AppDataDir, typically LOCALAPPDATA) is preferred, the
cache-specific override (Config.CacheDir, LOCALCACHE_DIR) is the
fallback, and the fixed subdirectory ".localcache" is appended. If
neither is set, operations fail with ErrNoBaseDir.

# Error Handling

The package defines several sentinel errors:

  - ErrCacheMiss: no valid entry for the key (absent or expired)
  - ErrEmptyKey / ErrEmptyPayload: argument preconditions, rejected
    before any filesystem access
  - ErrNoBaseDir: no usable base directory could be resolved
  - ErrRetryExhausted: a file stayed locked for the whole retry budget
  - ErrUnsupportedVersion: the entry header carries an unknown layout
    revision

A payload byte-count mismatch surfaces as *CorruptEntryError. Always
distinguish a miss from a real failure:

	data, err := cache.Get(key)
	if err != nil {
	    if errors.Is(err, localcache.ErrCacheMiss) {
	        // handle miss
	    } else {
	        // handle I/O or corruption error
	    }
	}
*/
package localcache
