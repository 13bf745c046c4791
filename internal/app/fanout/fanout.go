// Package fanout runs a function over a batch with a fixed number of
// workers and returns the outcomes in input order.
package fanout

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// Result is the outcome for one item.
type Result[R any] struct {
	Value R
	Err   error
}

// PanicError wraps a panic recovered from fn.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Run calls fn for every item on at most workers goroutines (minimum one).
// Items not yet started when ctx is canceled get ctx.Err() without calling
// fn. A panic in fn becomes that item's *PanicError and the worker moves on.
func Run[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	workers = min(max(workers, 1), len(items))

	next := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range next {
				results[i] = call(ctx, items[i], fn)
			}
		})
	}

	for i := range items {
		if ctx.Err() != nil {
			results[i] = Result[R]{Err: ctx.Err()}
			continue
		}
		select {
		case next <- i:
		case <-ctx.Done():
			results[i] = Result[R]{Err: ctx.Err()}
		}
	}
	close(next)
	wg.Wait()

	return results
}

func call[T, R any](ctx context.Context, item T, fn func(context.Context, T) (R, error)) (res Result[R]) {
	defer func() {
		if v := recover(); v != nil {
			res = Result[R]{Err: &PanicError{Value: v, Stack: debug.Stack()}}
		}
	}()
	v, err := fn(ctx, item)
	return Result[R]{Value: v, Err: err}
}
