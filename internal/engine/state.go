package engine

import (
	"context"
	"fmt"
	"sync"
)

// Status is the lifecycle state of an engine runtime.
type Status int

const (
	Uninitialized Status = iota
	Initializing
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// attempt is one initialization run. Everyone who asks while it is in
// flight waits on done and gets the same value and error.
type attempt[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Lazy holds an engine runtime that is built on first use.
//
// Concurrent Get calls share a single in-flight initialization. A failed
// initialization is remembered only until the next Get, which starts a new
// attempt. A Lazy must not be copied after first use.
type Lazy[T any] struct {
	init func(ctx context.Context) (T, error)

	mu     sync.Mutex
	status Status
	value  T
	err    error
	cur    *attempt[T]
}

// NewLazy returns a holder that builds its value with init.
func NewLazy[T any](init func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{init: init}
}

// Get returns the runtime, initializing it if needed.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	switch l.status {
	case Ready:
		v := l.value
		l.mu.Unlock()
		return v, nil
	case Initializing:
		a := l.cur
		l.mu.Unlock()
		return wait(ctx, a)
	}

	a := &attempt[T]{done: make(chan struct{})}
	l.cur = a
	l.status = Initializing
	l.mu.Unlock()

	a.value, a.err = l.run(ctx)

	l.mu.Lock()
	if a.err != nil {
		l.status = Failed
		l.err = a.err
	} else {
		l.status = Ready
		l.value = a.value
		l.err = nil
	}
	l.cur = nil
	l.mu.Unlock()
	close(a.done)

	return a.value, a.err
}

func (l *Lazy[T]) run(ctx context.Context) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("initialization panicked: %v", r)
		}
	}()
	return l.init(ctx)
}

func wait[T any](ctx context.Context, a *attempt[T]) (T, error) {
	select {
	case <-a.done:
		return a.value, a.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Status reports the current state.
func (l *Lazy[T]) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Err returns the error of the last failed attempt, if the holder is in the
// Failed state.
func (l *Lazy[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status != Failed {
		return nil
	}
	return l.err
}

// Reset waits for any in-flight attempt, tears down a ready value with
// teardown (which may be nil) and returns the holder to Uninitialized.
func (l *Lazy[T]) Reset(teardown func(T) error) error {
	l.mu.Lock()
	for l.status == Initializing {
		a := l.cur
		l.mu.Unlock()
		<-a.done
		l.mu.Lock()
	}
	defer l.mu.Unlock()

	var err error
	if l.status == Ready && teardown != nil {
		err = teardown(l.value)
	}
	var zero T
	l.value = zero
	l.err = nil
	l.status = Uninitialized
	return err
}
