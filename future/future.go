package future

import (
	"context"
	"fmt"
	"sync"
)

// Future is the read side of a result that completes exactly once.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	val       T
	err       error
	callbacks []func(T, error)
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.complete(v, nil)
	return f
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
// A panic in fn fails the future instead of crashing the process.
func Go[T any](fn func() (T, error)) *Future[T] {
	p := NewPromise[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.Reject(fmt.Errorf("future: panic: %v", r))
			}
		}()
		p.Complete(fn())
	}()
	return p.Future()
}

// Done is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the future completes or ctx ends. Cancelling ctx stops
// the wait only; the underlying work is governed by the context it was
// started with.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Join blocks until the future completes.
func (f *Future[T]) Join() (T, error) {
	<-f.done
	return f.val, f.err
}

// Poll returns the result without blocking. ok is false while pending.
func (f *Future[T]) Poll() (v T, err error, ok bool) {
	select {
	case <-f.done:
		return f.val, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

func (f *Future[T]) complete(v T, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.val, f.err, f.completed = v, err, true
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(v, err)
	}
	return true
}

// onComplete registers cb to run with the result. Pending futures run cb on
// the completing goroutine; completed futures run it immediately.
func (f *Future[T]) onComplete(cb func(T, error)) {
	f.mu.Lock()
	if !f.completed {
		f.callbacks = append(f.callbacks, cb)
		f.mu.Unlock()
		return
	}
	v, err := f.val, f.err
	f.mu.Unlock()
	cb(v, err)
}

// Then derives a future that applies fn to a successful result. When f
// fails, fn never runs and the derived future fails with the same error.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return Handle(f, func(v T, err error) (U, error) {
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// Handle derives a future from the full result of f, success or failure.
func Handle[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	p := NewPromise[U]()
	f.onComplete(func(v T, err error) {
		defer func() {
			if r := recover(); r != nil {
				p.Reject(fmt.Errorf("future: panic: %v", r))
			}
		}()
		p.Complete(fn(v, err))
	})
	return p.Future()
}

// Promise is the write side of a Future.
type Promise[T any] struct {
	f *Future[T]
}

// NewPromise returns a pending promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{f: newFuture[T]()}
}

// Future returns the read side.
func (p *Promise[T]) Future() *Future[T] { return p.f }

// Resolve completes the future with v. It reports false if already completed.
func (p *Promise[T]) Resolve(v T) bool { return p.f.complete(v, nil) }

// Reject completes the future with err. It reports false if already completed.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.f.complete(zero, err)
}

// Complete completes the future with (v, err). It reports false if already completed.
func (p *Promise[T]) Complete(v T, err error) bool { return p.f.complete(v, err) }
