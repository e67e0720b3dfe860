package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"babysteps/internal/common"
	"babysteps/internal/logging"
	"babysteps/internal/models"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// OpKind is the mutation an operation mirrors.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Status is the sync state of one entry as seen by the UI.
type Status string

const (
	// StatusPending: enqueued, not yet confirmed by the server.
	StatusPending Status = "pending"
	// StatusSynced: the server confirmed the operation.
	StatusSynced Status = "synced"
	// StatusFailed: retries exhausted. Local state is kept as-is.
	StatusFailed Status = "failed"
	// StatusSkipped: no identifying email was stored, so the operation was
	// dropped as a deliberate offline no-op.
	StatusSkipped Status = "skipped"
)

// Operation is one queued mutation mirror.
type Operation struct {
	ID         string
	Kind       OpKind
	EntryID    string
	EntryKind  models.EntryKind
	Baby       models.Baby // create target, drives the ensure cascade
	Envelope   models.Envelope
	EnqueuedAt time.Time
}

// Outbox queues mutation mirrors and drains them in order on a background
// worker with capped exponential backoff. A failed operation never rolls
// back local state; it is marked failed and logged.
type Outbox struct {
	adapter *Adapter
	log     logging.Logger

	maxRetries  uint64
	baseBackoff time.Duration

	mu     sync.Mutex
	queue  []Operation
	status map[string]Status

	wake chan struct{}
}

func NewOutbox(adapter *Adapter, log logging.Logger) *Outbox {
	return &Outbox{
		adapter:     adapter,
		log:         log,
		maxRetries:  4,
		baseBackoff: 500 * time.Millisecond,
		status:      make(map[string]Status),
		wake:        make(chan struct{}, 1),
	}
}

// EnqueueCreate queues a create mirror for an entry of the given baby.
func (o *Outbox) EnqueueCreate(baby models.Baby, env models.Envelope, entryID string) {
	o.enqueue(Operation{
		ID:         uuid.NewString(),
		Kind:       OpCreate,
		EntryID:    entryID,
		EntryKind:  env.Kind,
		Baby:       baby,
		Envelope:   env,
		EnqueuedAt: time.Now(),
	})
}

// EnqueueUpdate queues an update mirror.
func (o *Outbox) EnqueueUpdate(env models.Envelope, entryID string) {
	o.enqueue(Operation{
		ID:         uuid.NewString(),
		Kind:       OpUpdate,
		EntryID:    entryID,
		EntryKind:  env.Kind,
		Envelope:   env,
		EnqueuedAt: time.Now(),
	})
}

// EnqueueDelete queues a delete mirror.
func (o *Outbox) EnqueueDelete(babyID, entryID string, kind models.EntryKind) {
	o.enqueue(Operation{
		ID:         uuid.NewString(),
		Kind:       OpDelete,
		EntryID:    entryID,
		EntryKind:  kind,
		Envelope:   models.Envelope{Kind: kind, BabyID: babyID},
		EnqueuedAt: time.Now(),
	})
}

func (o *Outbox) enqueue(op Operation) {
	o.mu.Lock()
	o.queue = append(o.queue, op)
	o.status[op.EntryID] = StatusPending
	o.mu.Unlock()

	select {
	case o.wake <- struct{}{}:
	default:
	}
}

// EntryStatus reports the last known sync state for an entry. Entries the
// outbox has never seen report synced: they came from the server.
func (o *Outbox) EntryStatus(entryID string) Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	if st, ok := o.status[entryID]; ok {
		return st
	}
	return StatusSynced
}

// PendingCount returns the number of queued operations.
func (o *Outbox) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

// Run drains the queue until ctx is cancelled. Start it on its own
// goroutine.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.wake:
		}
		o.drain(ctx)
	}
}

// Drain processes everything currently queued. Exposed for tests and for
// a final flush on shutdown.
func (o *Outbox) Drain(ctx context.Context) {
	o.drain(ctx)
}

func (o *Outbox) drain(ctx context.Context) {
	for {
		o.mu.Lock()
		if len(o.queue) == 0 {
			o.mu.Unlock()
			return
		}
		op := o.queue[0]
		o.queue = o.queue[1:]
		o.mu.Unlock()

		o.process(ctx, op)

		if ctx.Err() != nil {
			return
		}
	}
}

func (o *Outbox) process(ctx context.Context, op Operation) {
	backoff := retry.WithMaxRetries(o.maxRetries, retry.NewExponential(o.baseBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := o.attempt(ctx, op)
		if err == nil {
			return nil
		}
		if errors.Is(err, common.ErrorNoIdentity) {
			return err // not retryable: nothing will change until login
		}
		return retry.RetryableError(err)
	})

	switch {
	case err == nil:
		o.setStatus(op.EntryID, StatusSynced)
		o.log.Debug(ctx, "entry synced", "op", string(op.Kind), "kind", string(op.EntryKind), "entry_id", op.EntryID)
	case errors.Is(err, common.ErrorNoIdentity):
		o.setStatus(op.EntryID, StatusSkipped)
		o.log.Warn(ctx, "sync skipped, no identifying email stored", "op", string(op.Kind), "entry_id", op.EntryID)
	default:
		o.setStatus(op.EntryID, StatusFailed)
		// Deletes were already applied locally; flag the divergence loudly.
		if op.Kind == OpDelete {
			o.log.Error(ctx, "remote delete failed, local copy already removed", "entry_id", op.EntryID, "error", err)
		} else {
			o.log.Error(ctx, "sync failed, local state kept", "op", string(op.Kind), "entry_id", op.EntryID, "error", err)
		}
	}
}

func (o *Outbox) attempt(ctx context.Context, op Operation) error {
	switch op.Kind {
	case OpCreate:
		return o.adapter.CreateEntry(ctx, op.Baby, op.Envelope)
	case OpUpdate:
		return o.adapter.UpdateEntry(ctx, op.EntryID, op.Envelope)
	case OpDelete:
		return o.adapter.DeleteEntry(ctx, op.Envelope.BabyID, op.EntryID, op.EntryKind)
	default:
		return nil
	}
}

func (o *Outbox) setStatus(entryID string, st Status) {
	o.mu.Lock()
	o.status[entryID] = st
	o.mu.Unlock()
}
