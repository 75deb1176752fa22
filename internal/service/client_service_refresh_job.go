package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-order-desk/internal/logger"
)

// DefaultRefreshInterval is used when Start gets a non-positive interval.
const DefaultRefreshInterval = 5 * time.Minute

type clientRefreshJob struct {
	orders ClientOrderService
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a clientRefreshJob that calls orders.List on a
// ticker. The job is idle until Start is called.
func NewClientRefreshJob(orders ClientOrderService, logger *logger.Logger) ClientRefreshJob {
	return &clientRefreshJob{orders: orders, logger: logger}
}

// Start implements ClientRefreshJob. It stops any previously running job,
// then launches a background goroutine that lists orders every interval. The
// goroutine exits when ctx is cancelled, Stop is called or the session
// expires.
func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				list, err := j.orders.List(jobCtx)
				switch {
				case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrNotAuthenticated):
					j.logger.Info().Err(err).Str("func", "clientRefreshJob").Msg("no session, refresh job exits")
					return
				case err != nil:
					j.logger.Warn().Err(err).Str("func", "clientRefreshJob").Msg("order refresh failed")
				default:
					j.logger.Debug().
						Str("func", "clientRefreshJob").
						Int("orders", len(list.Orders)).
						Bool("stale", list.Stale).
						Msg("orders refreshed")
				}
			}
		}
	}()
}

// Stop implements ClientRefreshJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
