package sync

import (
	"context"
	"fmt"
	"sync"

	"babysteps/internal/common"
	"babysteps/internal/models"
)

// Adapter wraps the transport with the ensure-exists cascade: a user and
// its baby must exist server-side before an entry can be attached to them.
// Successful ensures are cached per session and re-verified only after
// Invalidate (identity change), so entry creation does not re-upsert the
// same user and baby on every call.
type Adapter struct {
	client Client

	mu          sync.Mutex
	email       string
	userID      string
	knownBabies map[string]struct{}
}

func NewAdapter(client Client) *Adapter {
	return &Adapter{client: client, knownBabies: make(map[string]struct{})}
}

// SetIdentity records the identifying email used to authenticate mutation
// calls. Changing it invalidates the ensure cache.
func (a *Adapter) SetIdentity(email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.email != email {
		a.userID = ""
		a.knownBabies = make(map[string]struct{})
	}
	a.email = email
}

// Identity returns the current identifying email, or "" when none is set.
func (a *Adapter) Identity() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email
}

// Invalidate drops the ensure cache. Called on identity change or when the
// server reports the user or baby missing.
func (a *Adapter) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = ""
	a.knownBabies = make(map[string]struct{})
}

// EnsureBabyExists runs the user-then-baby cascade. A failure ensuring the
// user aborts the chain before any baby or entry write is attempted.
func (a *Adapter) EnsureBabyExists(ctx context.Context, baby models.Baby) error {
	a.mu.Lock()
	email := a.email
	userKnown := a.userID != ""
	_, babyKnown := a.knownBabies[baby.ID]
	a.mu.Unlock()

	if email == "" {
		return common.ErrorNoIdentity
	}
	if userKnown && babyKnown {
		return nil
	}

	if !userKnown {
		user, err := a.client.EnsureUser(ctx, email)
		if err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}
		a.mu.Lock()
		a.userID = user.ID
		a.mu.Unlock()
	}

	if !babyKnown {
		if err := a.client.EnsureBaby(ctx, email, baby); err != nil {
			return fmt.Errorf("ensure baby: %w", err)
		}
		a.mu.Lock()
		a.knownBabies[baby.ID] = struct{}{}
		a.mu.Unlock()
	}

	return nil
}

// UserID returns the cached server-side user id, or "" before the first
// successful ensure.
func (a *Adapter) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

// CreateEntry ensures the user/baby chain, then creates the entry.
func (a *Adapter) CreateEntry(ctx context.Context, baby models.Baby, env models.Envelope) error {
	if err := a.EnsureBabyExists(ctx, baby); err != nil {
		return err
	}
	return a.client.CreateEntry(ctx, a.Identity(), env)
}

// UpdateEntry replaces an entry. Requires the persisted identifying email.
func (a *Adapter) UpdateEntry(ctx context.Context, entryID string, env models.Envelope) error {
	email := a.Identity()
	if email == "" {
		return common.ErrorNoIdentity
	}
	return a.client.UpdateEntry(ctx, email, entryID, env)
}

// DeleteEntry removes an entry. Requires the persisted identifying email.
func (a *Adapter) DeleteEntry(ctx context.Context, babyID, entryID string, kind models.EntryKind) error {
	email := a.Identity()
	if email == "" {
		return common.ErrorNoIdentity
	}
	return a.client.DeleteEntry(ctx, email, babyID, entryID, kind)
}
