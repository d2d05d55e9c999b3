package queue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrFlushInProgress is returned when another process holds the flush lock.
var ErrFlushInProgress = errors.New("another queue flush is already running")

// Lock is an exclusive advisory lock on the queue directory.
type Lock struct {
	lock *flock.Flock
}

// AcquireLock takes the flush lock without blocking.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure queue directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, "flush.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrFlushInProgress
	}
	return &Lock{lock: lock}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
