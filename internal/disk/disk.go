package disk

import (
	"errors"
	"os"
	"syscall"
	"time"
)

// DefaultStaleTimeout bounds the stat used to check a scan root
const DefaultStaleTimeout = 5 * time.Second

// IsStale checks if a path is on a stale network mount by attempting a quick
// stat with timeout. Returns true if the stat times out or fails with
// ESTALE, EIO or ENXIO. Any other error, including not-exist, returns false.
func IsStale(path string, timeout time.Duration) bool {
	return isStale(path, timeout, os.Stat)
}

func isStale(path string, timeout time.Duration, stat func(string) (os.FileInfo, error)) bool {
	done := make(chan error, 1)

	go func() {
		_, err := stat(path)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			return false
		}
		return os.IsTimeout(err) ||
			errors.Is(err, syscall.EIO) ||
			errors.Is(err, syscall.ESTALE) ||
			errors.Is(err, syscall.ENXIO)
	case <-time.After(timeout):
		// Operation timed out - likely stale mount
		return true
	}
}
