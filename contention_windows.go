//go:build windows

package localcache

import (
	"errors"
	"syscall"
)

// ERROR_SHARING_VIOLATION, surfaced when another process has the file
// open with an incompatible sharing mode.
const errSharingViolation = syscall.Errno(32)

// isContention reports whether err is the transient sharing-violation
// signal that makes an open call worth retrying.
func isContention(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && errno == errSharingViolation
}
