package lock

import "context"

// ReleaseFunc releases a held lock. Safe to call more than once; only the
// first call has an effect.
type ReleaseFunc func()

// Locker serializes transcript processing runs. Acquire blocks until the key
// is free or the context is done. The returned release must be called on
// every code path once acquired, success or failure.
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}
