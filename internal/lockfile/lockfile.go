package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrHeld reports that another process already holds the lock.
var ErrHeld = errors.New("another tracking process holds the lock")

// Lock is an exclusive advisory file lock guarding the live tracking session.
type Lock struct {
	file *os.File
}

// Acquire takes the lock without blocking. It fails with ErrHeld when another
// stint process is already tracking.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := tryLockFile(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrHeld)
	}
	return &Lock{file: file}, nil
}

// Release drops the lock. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	defer l.file.Close()
	return unlockFile(l.file)
}
