//go:build !windows

package localcache

import (
	"errors"
	"syscall"
)

// isContention reports whether err is the transient "file busy" signal
// that makes an open call worth retrying. POSIX systems have no sharing
// violations; an advisory or mandatory lock held elsewhere shows up as
// one of the busy errnos instead.
func isContention(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case syscall.EAGAIN, syscall.EBUSY, syscall.ETXTBSY:
		return true
	}
	return false
}
