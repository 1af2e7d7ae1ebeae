// Package tracker polls the status of a food order until told to stop.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

// DefaultInterval is the polling period of the tracking screen.
const DefaultInterval = 5 * time.Second

var pollsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_tracker_polls_total",
		Help: "Order status reads made by running trackers.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(pollsTotal)
}

// StatusFetcher reads the current status of one order.
type StatusFetcher interface {
	OrderStatus(ctx context.Context, orderID int64) (string, error)
}

// FetcherFunc adapts a function to StatusFetcher.
type FetcherFunc func(ctx context.Context, orderID int64) (string, error)

func (f FetcherFunc) OrderStatus(ctx context.Context, orderID int64) (string, error) {
	return f(ctx, orderID)
}

// Tracker starts polls against a fetcher.
type Tracker struct {
	fetcher  StatusFetcher
	interval time.Duration
	logger   *slog.Logger
}

// New creates a tracker that reads status through fetcher every interval.
func New(fetcher StatusFetcher, interval time.Duration, logger *slog.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{fetcher: fetcher, interval: interval, logger: logger}
}

// Poll is one running tracking session.
type Poll struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	last domain.Progress
}

// Start reads the status immediately and then once per interval, calling
// onUpdate with every successful read. A failed read is logged and the last
// known state is kept. The poll ends when ctx is cancelled or Stop is called;
// no callback runs after Stop returns.
func (t *Tracker) Start(ctx context.Context, orderID int64, onUpdate func(domain.Progress)) *Poll {
	ctx, cancel := context.WithCancel(ctx)
	p := &Poll{
		cancel: cancel,
		done:   make(chan struct{}),
		last:   domain.NewProgress(orderID, domain.FoodOrderPending),
	}

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			t.refresh(ctx, p, orderID, onUpdate)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return p
}

func (t *Tracker) refresh(ctx context.Context, p *Poll, orderID int64, onUpdate func(domain.Progress)) {
	status, err := t.fetcher.OrderStatus(ctx, orderID)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		pollsTotal.WithLabelValues("error").Inc()
		t.logger.WarnContext(ctx, "order status poll failed",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()),
		)
		return
	}

	pollsTotal.WithLabelValues("ok").Inc()

	progress := domain.NewProgress(orderID, status)
	p.mu.Lock()
	p.last = progress
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(progress)
	}
}

// Last returns the most recent successfully read progress.
func (p *Poll) Last() domain.Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Stop cancels the poll and waits for it to finish. Safe to call twice.
func (p *Poll) Stop() {
	p.cancel()
	<-p.done
}

// Done is closed once the poll has exited.
func (p *Poll) Done() <-chan struct{} {
	return p.done
}
