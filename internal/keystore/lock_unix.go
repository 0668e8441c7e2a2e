//go:build unix

package keystore

import (
	"errors"

	"golang.org/x/sys/unix"
)

// processAlive sends signal 0 to pid. EPERM means the process exists but
// belongs to someone else.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
