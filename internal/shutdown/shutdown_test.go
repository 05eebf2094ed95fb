package shutdown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	h := NewHandler(time.Second)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 1; i <= 3; i++ {
		i := i
		h.OnShutdown(func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	require.NoError(t, h.Shutdown())
	assert.Equal(t, []int{3, 2, 1}, order)

	select {
	case <-h.Done():
	default:
		t.Fatal("Done channel should be closed after Shutdown")
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	h := NewHandler(time.Second)
	errA := errors.New("a")
	errB := errors.New("b")
	ran := false

	h.OnShutdown(func(ctx context.Context) error { return errA })
	h.OnShutdown(func(ctx context.Context) error { ran = true; return nil })
	h.OnShutdown(func(ctx context.Context) error { return errB })

	err := h.Shutdown()
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	assert.True(t, ran)
}

func TestShutdownOnce(t *testing.T) {
	h := NewHandler(time.Second)
	calls := 0
	h.OnShutdown(func(ctx context.Context) error { calls++; return nil })

	require.NoError(t, h.Shutdown())
	require.NoError(t, h.Shutdown())
	assert.Equal(t, 1, calls)
}

func TestHookSeesDeadline(t *testing.T) {
	h := NewHandler(50 * time.Millisecond)
	h.OnShutdown(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		require.True(t, ok)
		<-ctx.Done()
		return ctx.Err()
	})

	require.ErrorIs(t, h.Shutdown(), context.DeadlineExceeded)
}

func TestWaitBlocksUntilContextDone(t *testing.T) {
	h := NewHandler(time.Second)
	h.OnShutdown(func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(ctx) }()

	select {
	case <-h.Done():
		t.Fatal("shutdown ran before cancel")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return")
	}
}

func TestConcurrentOnShutdown(t *testing.T) {
	h := NewHandler(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown(func(ctx context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Len(t, h.hooks, 10)
}
