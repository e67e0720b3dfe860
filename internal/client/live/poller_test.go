package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"babysteps/internal/logging"
	"babysteps/internal/models"

	"github.com/stretchr/testify/require"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(discard{}, nil)))
}

type stubFetcher struct {
	mu    sync.Mutex
	calls int
	view  *models.TodayView
	err   error
	// block, when non-nil, is received from before returning, letting a
	// test hold one fetch in flight.
	block chan struct{}
}

func (f *stubFetcher) FetchToday(ctx context.Context, email, babyID string) (*models.TodayView, error) {
	f.mu.Lock()
	f.calls++
	view, err, block := f.view, f.err, f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return view, err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestPoller(f Fetcher) (*Poller, *Bus) {
	bus := NewBus()
	p := NewPoller(f, testLogger(), bus,
		func() string { return "parent@example.com" },
		func() string { return "b1" },
	)
	p.SetSettleDelay(time.Millisecond)
	return p, bus
}

func TestRefreshAppliesView(t *testing.T) {
	f := &stubFetcher{view: &models.TodayView{BabyID: "b1", Stats: models.TodayStats{FeedingCount: 3}}}
	p, _ := newTestPoller(f)

	p.Refresh(context.Background())

	snap := p.Snapshot()
	require.NoError(t, snap.Err)
	require.False(t, snap.Loading)
	require.NotNil(t, snap.View)
	require.Equal(t, 3, snap.View.Stats.FeedingCount)
	require.False(t, snap.FetchedAt.IsZero())
}

func TestRefreshSurfacesErrorAndManualRetryClears(t *testing.T) {
	f := &stubFetcher{err: errors.New("boom")}
	p, _ := newTestPoller(f)

	p.Refresh(context.Background())
	require.Error(t, p.Snapshot().Err)

	f.mu.Lock()
	f.err = nil
	f.view = &models.TodayView{BabyID: "b1"}
	f.mu.Unlock()

	p.Refresh(context.Background())
	require.NoError(t, p.Snapshot().Err)
	require.NotNil(t, p.Snapshot().View)
}

func TestStaleResponseDoesNotOverwriteNewer(t *testing.T) {
	block := make(chan struct{})
	f := &stubFetcher{view: &models.TodayView{BabyID: "b1", Stats: models.TodayStats{FeedingCount: 1}}, block: block}
	p, _ := newTestPoller(f)

	// First fetch hangs in flight.
	done := make(chan struct{})
	go func() {
		p.Refresh(context.Background())
		close(done)
	}()

	// Second fetch completes first with fresher data.
	require.Eventually(t, func() bool { return f.callCount() == 1 }, time.Second, time.Millisecond)
	f.mu.Lock()
	f.block = nil
	f.view = &models.TodayView{BabyID: "b1", Stats: models.TodayStats{FeedingCount: 2}}
	f.mu.Unlock()
	p.Refresh(context.Background())
	require.Equal(t, 2, p.Snapshot().View.Stats.FeedingCount)

	// Now the stale first response resolves; it must be dropped.
	close(block)
	<-done
	require.Equal(t, 2, p.Snapshot().View.Stats.FeedingCount)
}

func TestResponseRacingLocalEditIsDropped(t *testing.T) {
	f := &stubFetcher{view: &models.TodayView{BabyID: "b1"}}
	p, _ := newTestPoller(f)

	var rev int64
	p.SetLocalRevision(func() int64 { return rev })

	// Bump the revision between fetch start and apply by making the fetcher
	// mutate it.
	f.block = nil
	base := f.view
	first := true
	p.fetcher = fetchFunc(func(ctx context.Context, email, babyID string) (*models.TodayView, error) {
		if first {
			first = false
			rev++
		}
		return base, nil
	})

	p.Refresh(context.Background())
	require.Nil(t, p.Snapshot().View, "response that raced a local edit must not apply")

	p.Refresh(context.Background())
	require.NotNil(t, p.Snapshot().View)
}

type fetchFunc func(ctx context.Context, email, babyID string) (*models.TodayView, error)

func (f fetchFunc) FetchToday(ctx context.Context, email, babyID string) (*models.TodayView, error) {
	return f(ctx, email, babyID)
}

func TestBusSignalTriggersFetch(t *testing.T) {
	f := &stubFetcher{view: &models.TodayView{BabyID: "b1"}}
	p, bus := newTestPoller(f)
	p.SetInterval(time.Hour) // only bus signals matter in this test

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// Initial fetch on mount.
	require.Eventually(t, func() bool { return f.callCount() >= 1 }, time.Second, time.Millisecond)

	bus.Notify()
	require.Eventually(t, func() bool { return f.callCount() >= 2 }, time.Second, time.Millisecond)
}

func TestRefreshSkipsWithoutBabyOrIdentity(t *testing.T) {
	f := &stubFetcher{view: &models.TodayView{}}
	bus := NewBus()
	p := NewPoller(f, testLogger(), bus,
		func() string { return "" },
		func() string { return "b1" },
	)

	p.Refresh(context.Background())
	require.Zero(t, f.callCount())
}
