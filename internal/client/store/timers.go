package store

import (
	"time"

	"babysteps/internal/models"

	"github.com/google/uuid"
)

// SessionTimer models the single active timed session per kind. Its idle
// shape is the zero value.
type SessionTimer struct {
	Running   bool
	StartedAt time.Time
	SessionID string
	// FeedingKind is set only on the feeding timer.
	FeedingKind models.FeedingKind
}

// Elapsed returns the wall-clock time since the session started.
func (t SessionTimer) Elapsed(now time.Time) time.Duration {
	if !t.Running {
		return 0
	}
	return now.Sub(t.StartedAt)
}

// nightSleepThreshold separates naps from night sleep by duration.
const nightSleepThreshold = 120 * time.Minute

// SleepTimer returns a snapshot of the sleep session timer.
func (s *Store) SleepTimer() SessionTimer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sleepTimer
}

// FeedingTimer returns a snapshot of the feeding session timer.
func (s *Store) FeedingTimer() SessionTimer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedingTimer
}

// StartSleepTimer begins a timed sleep session. Starting while one is
// already running is a no-op.
func (s *Store) StartSleepTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sleepTimer.Running {
		return
	}
	s.sleepTimer = SessionTimer{
		Running:   true,
		StartedAt: s.now(),
		SessionID: uuid.NewString(),
	}
}

// EndSleepTimer closes the running sleep session, records a SleepEntry via
// the normal add path, and resets the timer to idle. Ending while idle is a
// no-op: it returns false and creates nothing.
func (s *Store) EndSleepTimer(quality string) (models.SleepEntry, bool) {
	s.mu.Lock()
	if !s.sleepTimer.Running {
		s.mu.Unlock()
		return models.SleepEntry{}, false
	}
	timer := s.sleepTimer
	s.sleepTimer = SessionTimer{}
	baby, hasBaby := s.currentBabyLocked()
	s.mu.Unlock()

	if !hasBaby {
		return models.SleepEntry{}, false
	}

	end := s.now()
	duration := end.Sub(timer.StartedAt)

	sleepType := models.SleepNap
	if duration > nightSleepThreshold {
		sleepType = models.SleepNight
	}

	entry := models.SleepEntry{
		ID:        timer.SessionID,
		BabyID:    baby.ID,
		StartTime: timer.StartedAt,
		EndTime:   &end,
		Quality:   quality,
		Type:      sleepType,
	}
	s.AddSleep(entry)
	return entry, true
}

// StartFeedingSession begins a timed feeding of the given kind. Starting
// while one is already running is a no-op.
func (s *Store) StartFeedingSession(kind models.FeedingKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedingTimer.Running {
		return
	}
	s.feedingTimer = SessionTimer{
		Running:     true,
		StartedAt:   s.now(),
		SessionID:   uuid.NewString(),
		FeedingKind: kind,
	}
}

// EndFeedingSession closes the running feeding session and records a
// FeedingEntry. Ending while idle is a no-op.
func (s *Store) EndFeedingSession(amountML float64, mood string) (models.FeedingEntry, bool) {
	s.mu.Lock()
	if !s.feedingTimer.Running {
		s.mu.Unlock()
		return models.FeedingEntry{}, false
	}
	timer := s.feedingTimer
	s.feedingTimer = SessionTimer{}
	baby, hasBaby := s.currentBabyLocked()
	s.mu.Unlock()

	if !hasBaby {
		return models.FeedingEntry{}, false
	}

	duration := s.now().Sub(timer.StartedAt)

	entry := models.FeedingEntry{
		ID:          timer.SessionID,
		BabyID:      baby.ID,
		Kind:        timer.FeedingKind,
		AmountML:    amountML,
		DurationMin: int(duration.Minutes()),
		StartTime:   timer.StartedAt,
		Mood:        mood,
	}
	s.AddFeeding(entry)
	return entry, true
}
