package localcache

import (
	"crypto/sha256"
	"encoding/hex"
)

// keyDigest maps a cache key to the filename of its entry.
//
// The digest doubles as the cross-process index: every reader and writer
// sharing the cache directory must derive the same filename for the same
// key, so the algorithm is fixed (SHA-256, lowercase hex) with no salt
// and no per-process state. Distinct keys collide only with cryptographic
// improbability, which keeps the flat directory a valid index.
func keyDigest(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
