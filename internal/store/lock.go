package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the store lock past the timeout.
var ErrLocked = errors.New("task list is in use by another tasklist process")

const lockRetryDelay = 50 * time.Millisecond

// Lock is an exclusive, cross-process lock on a store dir.
type Lock struct {
	flk *flock.Flock
}

// Lock acquires the store lock, waiting up to timeout. A zero timeout tries once.
func (s Store) Lock(ctx context.Context, timeout time.Duration) (*Lock, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	flk := flock.New(s.lockPath())

	var locked bool
	var err error
	if timeout <= 0 {
		locked, err = flk.TryLock()
	} else {
		lctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		locked, err = flk.TryLockContext(lctx, lockRetryDelay)
		if errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.lockPath(), err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return &Lock{flk: flk}, nil
}

// Unlock releases the lock. Safe to call on nil or more than once.
func (l *Lock) Unlock() error {
	if l == nil || l.flk == nil {
		return nil
	}
	return l.flk.Unlock()
}
