package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazySingleFlight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLazy(func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "runtime", nil
	})

	const n = 16
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = l.Get(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool { return l.Status() == Initializing }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "runtime", results[i])
	}
	assert.Equal(t, Ready, l.Status())
}

func TestLazyWaitersShareFailure(t *testing.T) {
	boom := errors.New("fetch failed")
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLazy(func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 0, boom
	})

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Get(context.Background())
		}(i)
	}
	require.Eventually(t, func() bool { return l.Status() == Initializing }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, err := range errs {
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, Failed, l.Status())
	assert.ErrorIs(t, l.Err(), boom)
}

func TestLazyRetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	l := NewLazy(func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("network error")
		}
		return 42, nil
	})

	_, err := l.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, Failed, l.Status())

	v, err := l.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, Ready, l.Status())
	assert.NoError(t, l.Err())

	v, err = l.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLazyPanicBecomesFailure(t *testing.T) {
	l := NewLazy(func(ctx context.Context) (int, error) {
		panic("bad runtime")
	})
	_, err := l.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad runtime")
	assert.Equal(t, Failed, l.Status())
}

func TestLazyWaiterHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := NewLazy(func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})
	go l.Get(context.Background())
	require.Eventually(t, func() bool { return l.Status() == Initializing }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLazyReset(t *testing.T) {
	var built atomic.Int32
	l := NewLazy(func(ctx context.Context) (int32, error) {
		return built.Add(1), nil
	})

	v, err := l.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	var tornDown int32
	require.NoError(t, l.Reset(func(v int32) error {
		tornDown = v
		return nil
	}))
	assert.Equal(t, int32(1), tornDown)
	assert.Equal(t, Uninitialized, l.Status())

	v, err = l.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "initializing", Initializing.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
}
