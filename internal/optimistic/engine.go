// Package optimistic provides the one reusable snapshot/predict/commit
// combinator every incident mutation goes through. Centralizing it here
// guarantees the rollback and per-key serialization rules instead of
// hand-rolling them at each call site.
package optimistic

import (
	"context"
	"sync"
)

// Cache is what the engine needs from the state it guards. Snapshot must
// return a copy that shares no mutable state with the live cache, so that
// Restore reinstates exactly the captured contents. Restore and Invalidate
// must be no-ops when the key is no longer mounted; a mutation whose match
// was unmounted mid-flight reconciles into nothing.
type Cache[S any] interface {
	Snapshot(ctx context.Context, key string) (S, error)
	Restore(ctx context.Context, key string, snap S)
	Invalidate(ctx context.Context, key string)
}

// Engine runs optimistic mutations against a cache. Mutations targeting the
// same key are serialized: a mutation never snapshots cache state containing
// another mutation's unreconciled prediction, so a rollback can never erase
// a neighbor's work. Mutations on different keys run concurrently.
type Engine[S any] struct {
	cache Cache[S]

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds an engine over the given cache.
func New[S any](cache Cache[S]) *Engine[S] {
	return &Engine[S]{
		cache: cache,
		locks: make(map[string]*sync.Mutex),
	}
}

// Do runs one optimistic mutation:
//
//  1. snapshot the cache state under key
//  2. predict: apply the local change so the caller renders immediately
//  3. commit: issue the remote call
//  4. reconcile: on success invalidate the key so the server's shape is
//     refetched; on failure restore the exact snapshot and surface the error
//
// The predicted change is never partially kept: any error after the
// prediction was applied restores the snapshot.
func (e *Engine[S]) Do(ctx context.Context, key string, predict func(ctx context.Context) error, commit func(ctx context.Context) error) error {
	lock := e.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	snap, err := e.cache.Snapshot(ctx, key)
	if err != nil {
		return err
	}

	if err := predict(ctx); err != nil {
		e.cache.Restore(ctx, key, snap)
		return err
	}

	if err := commit(ctx); err != nil {
		e.cache.Restore(ctx, key, snap)
		return err
	}

	e.cache.Invalidate(ctx, key)
	return nil
}

// Refresh runs refetch under the same per-key lock mutations take. Pollers
// replacing cached state with the server's shape must come through here:
// a refetch that lands between a mutation's predict and reconcile would
// erase the unreconciled prediction, and the rollback would then reinstate
// pre-poll state.
func (e *Engine[S]) Refresh(ctx context.Context, key string, refetch func(ctx context.Context) error) error {
	lock := e.lockFor(key)
	lock.Lock()
	defer lock.Unlock()
	return refetch(ctx)
}

func (e *Engine[S]) lockFor(key string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[key] = lock
	}
	return lock
}
