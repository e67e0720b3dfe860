// Package live approximates real-time multi-view consistency without a push
// channel: a timer-driven poller re-fetches the aggregated "today" view and
// also reacts to the refresh bus after mutations. Responses are sequenced so
// a slow response can never overwrite a newer one, and a response that raced
// a local edit is dropped rather than applied over it.
package live

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"babysteps/internal/logging"
	"babysteps/internal/models"
)

const (
	// DefaultInterval between polls.
	DefaultInterval = 15 * time.Second
	// DefaultSettleDelay gives the server time to persist a mutation before
	// the forced refresh that follows it.
	DefaultSettleDelay = 100 * time.Millisecond
)

// Fetcher is the read-side transport the poller needs.
type Fetcher interface {
	FetchToday(ctx context.Context, email, babyID string) (*models.TodayView, error)
}

// Snapshot is the poller's last known state, exposed to the UI together
// with loading/error/timestamp. Err is surfaced with a manual Refresh as
// the retry path; the poller itself never retries a failed fetch early.
type Snapshot struct {
	View      *models.TodayView
	Err       error
	FetchedAt time.Time
	Loading   bool
}

// Poller periodically pulls the today view for the current baby.
type Poller struct {
	fetcher Fetcher
	log     logging.Logger
	bus     *Bus

	interval    time.Duration
	settleDelay time.Duration

	// identity and babyID resolve the current email and active baby at
	// fetch time, so baby switches take effect on the next poll.
	identity func() string
	babyID   func() string

	// localRevision, when set, lets the poller detect that a local edit
	// happened while a fetch was in flight.
	localRevision func() int64

	issued  atomic.Int64
	mu      sync.RWMutex
	applied int64
	snap    Snapshot
}

func NewPoller(fetcher Fetcher, log logging.Logger, bus *Bus, identity, babyID func() string) *Poller {
	return &Poller{
		fetcher:     fetcher,
		log:         log,
		bus:         bus,
		interval:    DefaultInterval,
		settleDelay: DefaultSettleDelay,
		identity:    identity,
		babyID:      babyID,
	}
}

// SetInterval overrides the poll interval. Call before Run.
func (p *Poller) SetInterval(d time.Duration) { p.interval = d }

// SetSettleDelay overrides the post-mutation settle delay. Call before Run.
func (p *Poller) SetSettleDelay(d time.Duration) { p.settleDelay = d }

// SetLocalRevision wires the store's edit counter. Call before Run.
func (p *Poller) SetLocalRevision(fn func() int64) { p.localRevision = fn }

// Snapshot returns the last known state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Run polls on mount, on every interval tick, and on every bus signal,
// until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	refresh := p.bus.Subscribe()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		case <-refresh:
			// Give the server a beat to persist the mutation that
			// triggered the signal.
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.settleDelay):
			}
			p.Refresh(ctx)
		}
	}
}

// Refresh fetches once. It is also the manual retry action for the error
// state. Safe to call concurrently with Run; stale responses are dropped.
func (p *Poller) Refresh(ctx context.Context) {
	babyID := p.babyID()
	email := p.identity()
	if babyID == "" || email == "" {
		return
	}

	seq := p.issued.Add(1)
	var revBefore int64
	if p.localRevision != nil {
		revBefore = p.localRevision()
	}

	p.mu.Lock()
	p.snap.Loading = true
	p.mu.Unlock()

	view, err := p.fetcher.FetchToday(ctx, email, babyID)
	p.apply(ctx, seq, revBefore, view, err)
}

func (p *Poller) apply(ctx context.Context, seq, revBefore int64, view *models.TodayView, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.applied {
		p.log.Debug(ctx, "dropping out-of-order poll response", "seq", seq)
		return
	}

	if err == nil && p.localRevision != nil && p.localRevision() != revBefore {
		// A mutation landed while this fetch was in flight; the bus signal
		// it fired will fetch fresher data in a moment.
		p.log.Debug(ctx, "dropping poll response that raced a local edit", "seq", seq)
		p.snap.Loading = false
		return
	}

	p.applied = seq
	p.snap.Loading = false
	p.snap.Err = err
	if err == nil {
		p.snap.View = view
		p.snap.FetchedAt = time.Now()
	} else {
		p.log.Error(ctx, "live data fetch failed", "error", err)
	}
}
