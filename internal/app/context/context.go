// Package appctx carries request-scoped state for application services.
//
// A RequestContext memoizes reads for the lifetime of one HTTP request so a
// handler that calls several read operations loads the contract once. Writes
// go through a Unit: the operation stages its steps, and Commit runs them in
// order, compensating the finished ones if a later step fails. A committed
// Unit publishes its staged entities back into the memo, so reads later in
// the same request observe the new state.
//
//	rc := appctx.FromContext(ctx)
//	current, err := appctx.GetOrFetch(ctx, rc, "contract", store.Load)
//	unit := rc.Begin()
//	unit.Stage("contract", next, save)
//	unit.Add(enqueue)
//	err = unit.Commit(ctx)
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrTypeMismatch reports a memo key read with two different types.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext embeds the request's context.Context and adds a read memo.
// It is safe for concurrent use.
type RequestContext struct {
	context.Context

	mu    sync.Mutex
	memo  map[string]memoEntry
	units int
}

type memoEntry struct {
	value any
	err   error
}

type requestContextKey struct{}

// New returns a RequestContext with an empty memo.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{Context: ctx, memo: make(map[string]memoEntry)}
}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, or nil.
func FromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}

// GetOrFetch returns the memoized result for key, calling fetch with ctx on
// a miss. Errors are memoized too. A nil rc disables memoization. fetch runs
// without the lock held; when two callers miss concurrently the first stored
// result wins.
func GetOrFetch[T any](ctx context.Context, rc *RequestContext, key string, fetch func(context.Context) (T, error)) (T, error) {
	if rc == nil {
		return fetch(ctx)
	}
	if v, ok, err := lookup[T](rc, key); ok {
		return v, err
	}

	val, err := fetch(ctx)

	rc.mu.Lock()
	if _, ok := rc.memo[key]; !ok {
		rc.memo[key] = memoEntry{value: val, err: err}
	}
	rc.mu.Unlock()

	return lookupOr(rc, key, val, err)
}

func lookup[T any](rc *RequestContext, key string) (T, bool, error) {
	rc.mu.Lock()
	entry, ok := rc.memo[key]
	rc.mu.Unlock()

	var zero T
	if !ok {
		return zero, false, nil
	}
	if entry.err != nil {
		return zero, true, entry.err
	}
	v, isT := entry.value.(T)
	if !isT {
		return zero, true, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
	}
	return v, true, nil
}

func lookupOr[T any](rc *RequestContext, key string, val T, err error) (T, error) {
	if v, ok, lerr := lookup[T](rc, key); ok {
		return v, lerr
	}
	return val, err
}

// Forget drops key from the memo so the next GetOrFetch fetches again.
func (rc *RequestContext) Forget(key string) {
	rc.mu.Lock()
	delete(rc.memo, key)
	rc.mu.Unlock()
}

func (rc *RequestContext) publish(values map[string]any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for k, v := range values {
		rc.memo[k] = memoEntry{value: v}
	}
}

// Begin opens a Unit bound to rc.
func (rc *RequestContext) Begin() *Unit {
	rc.mu.Lock()
	rc.units++
	n := rc.units
	rc.mu.Unlock()
	return &Unit{rc: rc, seq: n, staged: make(map[string]any)}
}
