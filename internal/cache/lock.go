package cache

import (
	"os"
	"syscall"
)

// Lock provides exclusive file-based locking using flock, guarding the
// cache file against concurrent sugg processes saving at once.
type Lock struct {
	path string
	file *os.File
}

// NewLock creates a lock for the given path. The lock file is created
// if it doesn't exist.
func NewLock(path string) *Lock {
	return &Lock{path: path}
}

// LockPath returns the lock file path for a cache file.
func LockPath(cachePath string) string {
	return cachePath + ".lock"
}

// Acquire takes an exclusive lock, blocking until it is available.
func (l *Lock) Acquire() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	l.file = f

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		l.file = nil
		return err
	}
	return nil
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}

	err := l.file.Close()
	l.file = nil
	return err
}
