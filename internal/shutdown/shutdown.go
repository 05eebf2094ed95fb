// Package shutdown runs registered teardown hooks when the process stops.
package shutdown

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Hook releases one resource within the deadline carried by ctx.
type Hook func(ctx context.Context) error

// Handler collects hooks and runs them once, in reverse registration order.
type Handler struct {
	timeout time.Duration

	mu    sync.Mutex
	hooks []Hook

	once sync.Once
	err  error
	done chan struct{}
}

// NewHandler creates a handler whose hooks share one timeout.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Register in startup order; teardown runs backwards.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Wait blocks until ctx is done, then runs Shutdown.
func (h *Handler) Wait(ctx context.Context) error {
	<-ctx.Done()
	return h.Shutdown()
}

// Shutdown runs every hook even if earlier ones fail and joins their errors.
// Later calls return the first result.
func (h *Handler) Shutdown() error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := make([]Hook, len(h.hooks))
		copy(hooks, h.hooks)
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		h.err = errors.Join(errs...)
		close(h.done)
	})
	return h.err
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
