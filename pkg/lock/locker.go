package lock

import (
	"context"
	"errors"

	"blog-backend/pkg/logger"
)

var ErrNotAcquired = errors.New("lock not acquired before deadline")

// Locker serializes check-then-act sequences that the store cannot make
// atomic on its own (username claim, cascade delete).
// Allows swapping implementation (Redis, in-process, none).
type Locker interface {
	// Acquire blocks until key is held, ctx is done or the implementation's
	// wait budget runs out. The returned release func must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// Nop never blocks. With it the check-then-act races are left to the store.
type Nop struct{}

func (Nop) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// Keys
func UsernameKey(userName string) string { return "lock:username:" + userName }

func AuthorKey(authorID string) string { return "lock:author:" + authorID }

// Do runs fn while holding key and returns either the Acquire error or fn's
// error. Release runs with ctx's values but without its cancellation.
func Do(ctx context.Context, l Locker, key string, fn func() error) error {
	release, err := l.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotAcquired) {
			logger.Warn("Lock busy", map[string]interface{}{"key": key})
		}
		return err
	}
	logger.Debug("Lock acquired: " + key)

	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Error("Failed to release lock", err)
		}
	}()

	return fn()
}
