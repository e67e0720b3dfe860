package store

import (
	"errors"
	"time"

	"babysteps/internal/models"

	"github.com/google/uuid"
)

// ErrQuickAddUnsupported is returned when a quick-add is asked for a diaper
// type the one-tap flow does not support ("dry" requires the full form).
var ErrQuickAddUnsupported = errors.New("diaper type not supported by quick add")

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TodayFeedings returns the current baby's feedings whose start time falls
// on the current calendar day.
func (s *Store) TodayFeedings() []models.FeedingEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	var out []models.FeedingEntry
	for _, f := range s.feedings {
		if f.BabyID == s.currentBabyID && sameDay(f.StartTime, now) {
			out = append(out, f)
		}
	}
	return out
}

// TodaySleeps returns the current baby's sleep entries that started today,
// including any still in progress.
func (s *Store) TodaySleeps() []models.SleepEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	var out []models.SleepEntry
	for _, e := range s.sleeps {
		if e.BabyID == s.currentBabyID && sameDay(e.StartTime, now) {
			out = append(out, e)
		}
	}
	return out
}

// TodayDiapers returns the current baby's diaper changes recorded today.
func (s *Store) TodayDiapers() []models.DiaperEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	var out []models.DiaperEntry
	for _, e := range s.diapers {
		if e.BabyID == s.currentBabyID && sameDay(e.Time, now) {
			out = append(out, e)
		}
	}
	return out
}

// GrowthEntries returns all growth measurements for the current baby,
// oldest first as appended.
func (s *Store) GrowthEntries() []models.GrowthEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.GrowthEntry
	for _, e := range s.growth {
		if e.BabyID == s.currentBabyID {
			out = append(out, e)
		}
	}
	return out
}

// LastFeeding returns the most recent feeding for the current baby across
// all days, or false when none exists.
func (s *Store) LastFeeding() (models.FeedingEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last models.FeedingEntry
	found := false
	for _, f := range s.feedings {
		if f.BabyID != s.currentBabyID {
			continue
		}
		if !found || f.StartTime.After(last.StartTime) {
			last, found = f, true
		}
	}
	return last, found
}

// CurrentlySleeping reports whether the current baby has a sleep in
// progress.
func (s *Store) CurrentlySleeping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sleeps {
		if e.BabyID == s.currentBabyID && e.InProgress() {
			return true
		}
	}
	return false
}

// TodayStats aggregates the current day. In-progress sleeps are excluded
// from the completed-minutes sum but drive CurrentlySleeping.
func (s *Store) TodayStats() models.TodayStats {
	stats := models.TodayStats{}

	for _, f := range s.TodayFeedings() {
		stats.FeedingCount++
		stats.TotalMilkML += f.AmountML
		t := f.StartTime
		if stats.LastFeeding == nil || t.After(*stats.LastFeeding) {
			stats.LastFeeding = &t
		}
	}

	for _, e := range s.TodaySleeps() {
		if d, done := e.CompletedDuration(); done {
			stats.SleepMinutes += int(d.Minutes())
		} else {
			stats.CurrentlySleeping = true
		}
	}

	stats.DiaperCount = len(s.TodayDiapers())
	return stats
}

// QuickAddDiaper records a one-tap diaper change of the given type for the
// current baby, stamped now. "dry" is rejected: it carries detail the
// quick-add flow cannot collect.
func (s *Store) QuickAddDiaper(t models.DiaperType) (models.DiaperEntry, error) {
	if t != models.DiaperWet && t != models.DiaperSoiled && t != models.DiaperMixed {
		return models.DiaperEntry{}, ErrQuickAddUnsupported
	}

	baby, ok := s.CurrentBaby()
	if !ok {
		return models.DiaperEntry{}, errors.New("no baby selected")
	}

	entry := models.DiaperEntry{
		ID:     uuid.NewString(),
		BabyID: baby.ID,
		Time:   s.now(),
		Type:   t,
	}
	s.AddDiaper(entry)
	return entry, nil
}
