// Package poller implements the periodic low-stock re-fetch behind the
// dashboard alert counters: a repeating timer task bound to the process
// lifetime and cancelled through its context on shutdown.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/api/metrics"
	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

const defaultInterval = 30 * time.Second

// Snapshot is the result of the most recent successful poll.
type Snapshot struct {
	Items     []domain.InventoryItem
	LowCount  int
	OutCount  int
	UpdatedAt time.Time
}

// Poller periodically fetches the low-stock alert list while the session is
// authenticated and keeps the latest snapshot for the dashboard to read.
type Poller struct {
	sessions  ports.SessionService
	inventory ports.InventoryClient
	interval  time.Duration
	log       zerolog.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// New creates a Poller. If interval <= 0, defaultInterval is used.
func New(sessions ports.SessionService, inventory ports.InventoryClient, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		sessions:  sessions,
		inventory: inventory,
		interval:  interval,
		log:       log,
	}
}

// Start launches the polling goroutine. It stops when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

// Snapshot returns the latest poll result. Zero value until the first
// successful poll after authentication.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll runs one cycle. Failures are logged and counted, never retried early:
// the next tick is the only retry policy.
func (p *Poller) poll(ctx context.Context) {
	session := p.sessions.Snapshot()
	if session.Status != domain.StatusAuthenticated {
		metrics.PollCyclesTotal.WithLabelValues("skipped").Inc()
		p.discard()
		return
	}

	items, err := p.inventory.LowStock(ctx, session.Token)
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("error").Inc()
		p.log.Warn().Err(err).Msg("low-stock poll failed")
		return
	}

	low, out := 0, 0
	for _, item := range items {
		if item.Quantity == 0 {
			out++
		} else {
			low++
		}
	}

	p.mu.Lock()
	p.snap = Snapshot{Items: items, LowCount: low, OutCount: out, UpdatedAt: time.Now()}
	p.mu.Unlock()

	metrics.PollCyclesTotal.WithLabelValues("ok").Inc()
	metrics.LowStockItems.WithLabelValues("low").Set(float64(low))
	metrics.LowStockItems.WithLabelValues("out").Set(float64(out))
}

// discard drops any stale snapshot once the session is gone, so a later
// operator never sees the previous operator's alerts.
func (p *Poller) discard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap.UpdatedAt.IsZero() {
		return
	}
	p.snap = Snapshot{}
	metrics.LowStockItems.WithLabelValues("low").Set(0)
	metrics.LowStockItems.WithLabelValues("out").Set(0)
}
