package live

import "sync"

// Bus fans a refresh signal out to every subscribed poller. It is the
// in-process analog of the app-wide "refresh-live-data" event: any component
// performing a mutation calls Notify so pollers elsewhere re-fetch
// immediately instead of waiting for the next tick.
type Bus struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel that receives one signal per Notify. The
// channel is buffered; a slow subscriber coalesces bursts into one signal.
func (b *Bus) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Notify signals every subscriber without blocking.
func (b *Bus) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
