// Package store is the client's single in-memory source of truth for baby
// data, profile, settings, session timers, and derived notifications.
//
// Every mutator updates local state synchronously and returns immediately;
// the remote half is mirrored through the sync outbox and never blocks or
// rolls back the local change. Collections hold the union of all babies'
// entries; filtering by the current baby id happens in the getters.
package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	syncx "babysteps/internal/client/sync"
	"babysteps/internal/logging"
	"babysteps/internal/models"
)

// Mirror is the outbox surface the store mutators need.
type Mirror interface {
	EnqueueCreate(baby models.Baby, env models.Envelope, entryID string)
	EnqueueUpdate(env models.Envelope, entryID string)
	EnqueueDelete(babyID, entryID string, kind models.EntryKind)
	EntryStatus(entryID string) syncx.Status
}

// RemoteReader is the read-side transport used by profile bootstrap.
type RemoteReader interface {
	FetchProfile(ctx context.Context, email string) (*models.ProfileBundle, error)
	UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error
	UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) error
}

// IdentityStore persists the identifying email across restarts.
type IdentityStore interface {
	LoadEmail(ctx context.Context) (string, error)
	SaveEmail(ctx context.Context, email string) error
	ClearEmail(ctx context.Context) error
}

// Store holds all client state. Construct with New and share the one
// instance; it is safe for concurrent use.
type Store struct {
	log      logging.Logger
	mirror   Mirror
	remote   RemoteReader
	identity IdentityStore

	// now is a clock seam for tests.
	now func() time.Time

	// onMutate is invoked after every successful local mutation so live
	// pollers can refresh out of cycle. May be nil.
	onMutate func()

	// revision increments on every local mutation. The poller refuses to
	// surface a response that raced a newer local edit.
	revision atomic.Int64

	mu            sync.RWMutex
	profile       *models.UserProfile
	settings      models.AppSettings
	babies        []models.Baby
	currentBabyID string
	feedings      []models.FeedingEntry
	sleeps        []models.SleepEntry
	diapers       []models.DiaperEntry
	growth        []models.GrowthEntry
	family        []models.FamilyMember
	notifications []models.Notification
	loading       bool

	sleepTimer   SessionTimer
	feedingTimer SessionTimer
}

func New(log logging.Logger, mirror Mirror, remote RemoteReader, identity IdentityStore) *Store {
	return &Store{
		log:      log,
		mirror:   mirror,
		remote:   remote,
		identity: identity,
		now:      time.Now,
	}
}

// SetOnMutate registers the refresh broadcast fired after every mutation.
func (s *Store) SetOnMutate(fn func()) {
	s.onMutate = fn
}

func (s *Store) mutated() {
	s.revision.Add(1)
	if s.onMutate != nil {
		s.onMutate()
	}
}

// Revision returns the local edit counter.
func (s *Store) Revision() int64 {
	return s.revision.Load()
}

// Loading reports whether a profile bootstrap is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CurrentBaby returns the active baby, or false when none is selected.
func (s *Store) CurrentBaby() (models.Baby, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentBabyLocked()
}

func (s *Store) currentBabyLocked() (models.Baby, bool) {
	for _, b := range s.babies {
		if b.ID == s.currentBabyID {
			return b, true
		}
	}
	return models.Baby{}, false
}

// SelectBaby switches the active baby.
func (s *Store) SelectBaby(babyID string) {
	s.mu.Lock()
	s.currentBabyID = babyID
	s.mu.Unlock()
	s.mutated()
}

// UpsertBaby adds or replaces a baby and makes it current when it is the
// first one.
func (s *Store) UpsertBaby(b models.Baby) {
	s.mu.Lock()
	replaced := false
	for i := range s.babies {
		if s.babies[i].ID == b.ID {
			s.babies[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		s.babies = append(s.babies, b)
	}
	if s.currentBabyID == "" {
		s.currentBabyID = b.ID
	}
	s.mu.Unlock()
	s.mutated()
}

// Babies returns a copy of all babies.
func (s *Store) Babies() []models.Baby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Baby, len(s.babies))
	copy(out, s.babies)
	return out
}

// babyForEntry resolves the baby an entry belongs to, falling back to the
// current baby so the ensure cascade has a target even for imported ids.
func (s *Store) babyForEntry(babyID string) models.Baby {
	for _, b := range s.babies {
		if b.ID == babyID {
			return b
		}
	}
	return models.Baby{ID: babyID}
}

func (s *Store) mirrorCreate(entry models.TypedEntry) {
	env, err := models.Wrap(entry)
	if err != nil {
		s.log.Error(context.Background(), "encoding entry for sync", "entry_id", entry.GetID(), "error", err)
		return
	}
	s.mu.RLock()
	baby := s.babyForEntry(entry.GetBabyID())
	s.mu.RUnlock()
	s.mirror.EnqueueCreate(baby, env, entry.GetID())
}

func (s *Store) mirrorUpdate(entry models.TypedEntry) {
	env, err := models.Wrap(entry)
	if err != nil {
		s.log.Error(context.Background(), "encoding entry for sync", "entry_id", entry.GetID(), "error", err)
		return
	}
	s.mirror.EnqueueUpdate(env, entry.GetID())
}

// AddFeeding appends a feeding and mirrors it remotely.
func (s *Store) AddFeeding(f models.FeedingEntry) {
	s.mu.Lock()
	s.feedings = append(s.feedings, f)
	s.mu.Unlock()

	s.mirrorCreate(f)
	s.mutated()
}

// UpdateFeeding replaces a feeding by id.
func (s *Store) UpdateFeeding(f models.FeedingEntry) {
	s.mu.Lock()
	for i := range s.feedings {
		if s.feedings[i].ID == f.ID {
			s.feedings[i] = f
			break
		}
	}
	s.mu.Unlock()

	s.mirrorUpdate(f)
	s.mutated()
}

// RemoveFeeding filters a feeding out of local state, then mirrors the
// delete. The local copy is gone even if the remote delete later fails.
func (s *Store) RemoveFeeding(id string) {
	var babyID string
	s.mu.Lock()
	for i := range s.feedings {
		if s.feedings[i].ID == id {
			babyID = s.feedings[i].BabyID
			s.feedings = append(s.feedings[:i], s.feedings[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if babyID != "" {
		s.mirror.EnqueueDelete(babyID, id, models.EntryKindFeeding)
	}
	s.mutated()
}

// AddSleep appends a sleep entry and mirrors it remotely. An entry with a
// nil EndTime is an in-progress session.
func (s *Store) AddSleep(e models.SleepEntry) {
	s.mu.Lock()
	s.sleeps = append(s.sleeps, e)
	s.mu.Unlock()

	s.mirrorCreate(e)
	s.mutated()
}

// UpdateSleep replaces a sleep entry by id.
func (s *Store) UpdateSleep(e models.SleepEntry) {
	s.mu.Lock()
	for i := range s.sleeps {
		if s.sleeps[i].ID == e.ID {
			s.sleeps[i] = e
			break
		}
	}
	s.mu.Unlock()

	s.mirrorUpdate(e)
	s.mutated()
}

// RemoveSleep filters a sleep entry out of local state, then mirrors the
// delete.
func (s *Store) RemoveSleep(id string) {
	var babyID string
	s.mu.Lock()
	for i := range s.sleeps {
		if s.sleeps[i].ID == id {
			babyID = s.sleeps[i].BabyID
			s.sleeps = append(s.sleeps[:i], s.sleeps[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if babyID != "" {
		s.mirror.EnqueueDelete(babyID, id, models.EntryKindSleep)
	}
	s.mutated()
}

// AddDiaper appends a diaper change and mirrors it remotely.
func (s *Store) AddDiaper(e models.DiaperEntry) {
	s.mu.Lock()
	s.diapers = append(s.diapers, e)
	s.mu.Unlock()

	s.mirrorCreate(e)
	s.mutated()
}

// UpdateDiaper replaces a diaper change by id.
func (s *Store) UpdateDiaper(e models.DiaperEntry) {
	s.mu.Lock()
	for i := range s.diapers {
		if s.diapers[i].ID == e.ID {
			s.diapers[i] = e
			break
		}
	}
	s.mu.Unlock()

	s.mirrorUpdate(e)
	s.mutated()
}

// RemoveDiaper filters a diaper change out of local state, then mirrors the
// delete.
func (s *Store) RemoveDiaper(id string) {
	var babyID string
	s.mu.Lock()
	for i := range s.diapers {
		if s.diapers[i].ID == id {
			babyID = s.diapers[i].BabyID
			s.diapers = append(s.diapers[:i], s.diapers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if babyID != "" {
		s.mirror.EnqueueDelete(babyID, id, models.EntryKindDiaper)
	}
	s.mutated()
}

// AddGrowthEntry appends a growth measurement and mirrors it remotely.
func (s *Store) AddGrowthEntry(e models.GrowthEntry) {
	s.mu.Lock()
	s.growth = append(s.growth, e)
	s.mu.Unlock()

	s.mirrorCreate(e)
	s.mutated()
}

// RemoveGrowthEntry filters a growth measurement out of local state, then
// mirrors the delete.
func (s *Store) RemoveGrowthEntry(id string) {
	var babyID string
	s.mu.Lock()
	for i := range s.growth {
		if s.growth[i].ID == id {
			babyID = s.growth[i].BabyID
			s.growth = append(s.growth[:i], s.growth[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if babyID != "" {
		s.mirror.EnqueueDelete(babyID, id, models.EntryKindGrowth)
	}
	s.mutated()
}

// EntrySyncStatus exposes the outbox status for UI badges.
func (s *Store) EntrySyncStatus(entryID string) syncx.Status {
	return s.mirror.EntryStatus(entryID)
}
