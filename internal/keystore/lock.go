package keystore

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
)

// LockFileName guards first-run generation inside the key directory.
const LockFileName = ".sealbox.lock"

var (
	lockPollInterval = 25 * time.Millisecond
	lockTimeout      = 5 * time.Second

	// staleLockAge is how old a lock may get before it is taken over even if
	// its owner looks alive. Generation takes milliseconds.
	staleLockAge = 30 * time.Second
)

// acquireLock creates path exclusively, polling until it succeeds or the
// timeout expires. A lock left by a dead process, or one older than
// staleLockAge, is removed and the create retried. The returned func removes
// the lock file.
func acquireLock(path string) (func(), error) {
	deadline := time.Now().Add(lockTimeout)
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("%w: creating lock file %s: %v", kerrors.ErrStorage, path, err)
		}
		if removeStaleLock(path) {
			continue
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %w: %s", kerrors.ErrStorage, kerrors.ErrKeyStoreLocked, path)
		}
		time.Sleep(lockPollInterval)
	}
}

// removeStaleLock deletes the lock at path if its owner is gone or it has
// outlived staleLockAge. It reports whether a lock was removed.
func removeStaleLock(path string) bool {
	before, err := os.Stat(path)
	if err != nil {
		// Released between our create and this stat.
		return os.IsNotExist(err)
	}
	if !lockIsStale(path, before) {
		return false
	}

	// Only remove the file we judged. Another process may already have
	// replaced it with a live lock.
	after, err := os.Stat(path)
	if err != nil || !os.SameFile(before, after) || !after.ModTime().Equal(before.ModTime()) {
		return os.IsNotExist(err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return false
	}
	return true
}

func lockIsStale(path string, info os.FileInfo) bool {
	if time.Since(info.ModTime()) > staleLockAge {
		return true
	}
	// An empty file is a lock whose owner has not written its PID yet.
	pid, ok := readLockOwner(path)
	return ok && !processAlive(pid)
}

// readLockOwner parses the PID written by acquireLock.
func readLockOwner(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
