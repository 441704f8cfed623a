// Package lock serializes writers to a knowledge base across processes.
package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// FileName is the lock file created in the plain root.
const FileName = ".hanzi.lock"

// retryDelay is the polling interval while waiting for a held lock.
const retryDelay = 100 * time.Millisecond

// StoreLock is an advisory, exclusive lock on a document root. The store is
// not safe for concurrent writers, so every mutating command holds it.
type StoreLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// New returns a lock for the root directory. Nothing is acquired yet.
func New(dir string) *StoreLock {
	path := filepath.Join(dir, FileName)
	return &StoreLock{
		path:  path,
		flock: flock.New(path),
	}
}

func (l *StoreLock) ensureDir() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return herrors.IOError("create lock directory", err).WithDetail("path", dir)
	}
	return nil
}

// Lock blocks until the lock is acquired or ctx is done.
func (l *StoreLock) Lock(ctx context.Context) error {
	if err := l.ensureDir(); err != nil {
		return err
	}

	acquired, err := l.flock.TryLockContext(ctx, retryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return herrors.New(herrors.ErrCodeLockHeld, "timed out waiting for the store lock", err).
				WithDetail("path", l.path)
		}
		return herrors.IOError("acquire store lock", err).WithDetail("path", l.path)
	}
	if !acquired {
		return herrors.New(herrors.ErrCodeLockHeld, "store lock not acquired", nil).WithDetail("path", l.path)
	}

	l.locked = true
	return nil
}

// TryLock acquires the lock without waiting. It returns ErrLockHeld when
// another process holds it.
func (l *StoreLock) TryLock() error {
	if err := l.ensureDir(); err != nil {
		return err
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return herrors.IOError("acquire store lock", err).WithDetail("path", l.path)
	}
	if !acquired {
		return herrors.New(herrors.ErrCodeLockHeld, fmt.Sprintf("another hanzi process is writing to %s", filepath.Dir(l.path)), nil).
			WithDetail("path", l.path).
			WithSuggestion("wait for the other command to finish, or drop --no-wait")
	}

	l.locked = true
	return nil
}

// Unlock releases the lock. Safe to call when not locked.
func (l *StoreLock) Unlock() error {
	if !l.locked {
		return nil
	}

	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return herrors.IOError("release store lock", err).WithDetail("path", l.path)
	}
	return nil
}

// Path returns the lock file path.
func (l *StoreLock) Path() string {
	return l.path
}

// IsLocked reports whether this handle holds the lock.
func (l *StoreLock) IsLocked() bool {
	return l.locked
}
