package order

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"

	"github.com/starlines/starlines/pkg/ctbs"
)

// StatusFetcher is the slice of Workflow the monitor needs.
type StatusFetcher interface {
	Status(ctx context.Context, orderID, security string) (ctbs.OrderStatus, error)
}

// StatusUpdate is delivered once per observed transition.
type StatusUpdate struct {
	OrderID  string
	Status   ctbs.OrderStatus
	Observed time.Time
}

// Monitor polls one order until it reaches a terminal status or is stopped.
type Monitor struct {
	fetcher  StatusFetcher
	interval time.Duration

	// Deadline past which an unfinished reservation is reported expired.
	// Zero means no local expiry tracking.
	Deadline time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

const DefaultPollInterval = 30 * time.Second

func NewMonitor(fetcher StatusFetcher, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Monitor{
		fetcher:  fetcher,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// ParseInterval reads an ISO8601 duration such as PT30S. Used by the CLI so
// operators configure the poll cadence the same way as other period settings.
func ParseInterval(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	base := time.Now()
	return parsed.Shift(base).Sub(base), nil
}

// Watch polls until terminal state, local expiry, context cancellation or
// Stop. Updates are sent on the returned channel, one per transition, and
// the channel is closed when polling ends.
func (m *Monitor) Watch(ctx context.Context, orderID, security string) <-chan StatusUpdate {
	updates := make(chan StatusUpdate, 4)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		var lastSeen ctbs.OrderStatus

		poll := func() bool {
			if !m.Deadline.IsZero() && time.Now().After(m.Deadline) && !lastSeen.Paid() {
				if lastSeen != ctbs.OrderStatusExpired {
					updates <- StatusUpdate{OrderID: orderID, Status: ctbs.OrderStatusExpired, Observed: time.Now()}
				}
				return false
			}

			status, err := m.fetcher.Status(ctx, orderID, security)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				log.Warn().Err(err).Str("order_id", orderID).Msg("Order status poll failed")
				return true
			}

			if status != lastSeen {
				lastSeen = status
				updates <- StatusUpdate{OrderID: orderID, Status: status, Observed: time.Now()}
			}

			return !status.Terminal()
		}

		if !poll() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				if !poll() {
					return
				}
			}
		}
	}()

	return updates
}

// Stop ends polling. Safe to call more than once and after the monitor has
// already finished. The updates channel closing signals polling has ended.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}
