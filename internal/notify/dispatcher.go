// Package notify delivers notifications asynchronously. Delivery is
// best-effort: a failed write is logged and dropped, never surfaced to the
// operation that triggered it.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Sink persists notifications. The postgres notification repository
// satisfies it.
type Sink interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// Dispatcher fans notification writes out to background goroutines.
type Dispatcher struct {
	sink    Sink
	log     *slog.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher writing to sink. timeout bounds each
// delivery attempt.
func NewDispatcher(sink Sink, log *slog.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		log:     log.With("component", "notify"),
		timeout: timeout,
	}
}

// Dispatch sends n in the background and returns immediately. The delivery
// uses a detached context so that the caller's request finishing (or
// failing) cannot cancel it.
func (d *Dispatcher) Dispatch(n domain.Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if _, err := d.sink.Create(ctx, &n); err != nil {
			d.log.Warn("notification dropped",
				"user_id", n.UserID,
				"type", n.Type,
				"error", err,
			)
		}
	}()
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and
// in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
