package store

import (
	"fmt"
	"time"

	"babysteps/internal/health"
	"babysteps/internal/models"

	"github.com/google/uuid"
)

// withinQuietHours reports whether now falls inside the configured quiet
// window. A window whose start is after its end crosses midnight.
func withinQuietHours(now time.Time, start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	st, err1 := time.Parse("15:04", start)
	en, err2 := time.Parse("15:04", end)
	if err1 != nil || err2 != nil {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	startMin := st.Hour()*60 + st.Minute()
	endMin := en.Hour()*60 + en.Minute()

	if startMin <= endMin {
		return minutes >= startMin && minutes < endMin
	}
	return minutes >= startMin || minutes < endMin
}

// EvaluateAdvisories derives client-side notifications from current store
// state and notification settings: feeding overdue, insufficient sleep, and
// monthly milestones. Advisories are suppressed entirely while quiet hours
// are active, and each kind fires at most once per day per baby.
func (s *Store) EvaluateAdvisories() []models.Notification {
	baby, ok := s.CurrentBaby()
	if !ok {
		return nil
	}

	cfg := s.Settings().Notifications
	if !cfg.Enabled {
		return nil
	}

	now := s.now()
	if withinQuietHours(now, cfg.QuietHoursStart, cfg.QuietHoursEnd) {
		return nil
	}

	var fresh []models.Notification

	if cfg.FeedingReminders {
		interval := cfg.FeedingIntervalHours
		if interval <= 0 {
			interval = health.RecommendedFeedingIntervalHours(health.AgeInWeeks(baby.BirthDate, now))
		}
		last, found := s.LastFeeding()
		overdue := !found || now.Sub(last.StartTime) > time.Duration(interval*float64(time.Hour))
		if overdue && !s.CurrentlySleeping() {
			fresh = append(fresh, models.Notification{
				Kind:     models.NotificationFeedingLate,
				Priority: models.PriorityHigh,
				Message:  fmt.Sprintf("%s has not been fed for over %.1f hours", baby.Name, interval),
			})
		}
	}

	if cfg.SleepReminders {
		minimum := cfg.MinDailySleepMinutes
		if minimum <= 0 {
			minimum = health.RecommendedDailySleepMinutes(health.AgeInWeeks(baby.BirthDate, now))
		}
		// Only meaningful once most of the day has passed.
		if now.Hour() >= 18 && s.TodayStats().SleepMinutes < minimum {
			fresh = append(fresh, models.Notification{
				Kind:     models.NotificationSleepInsufficient,
				Priority: models.PriorityNormal,
				Message:  fmt.Sprintf("%s slept less than recommended today", baby.Name),
			})
		}
	}

	if cfg.MilestoneAlerts && now.Day() == baby.BirthDate.Day() {
		if months := health.AgeInMonths(baby.BirthDate, now); months > 0 {
			fresh = append(fresh, models.Notification{
				Kind:     models.NotificationMilestone,
				Priority: models.PriorityLow,
				Message:  fmt.Sprintf("%s is %d months old today", baby.Name, months),
			})
		}
	}

	var added []models.Notification
	s.mu.Lock()
	for _, n := range fresh {
		if s.hasAdvisoryTodayLocked(baby.ID, n.Kind, now) {
			continue
		}
		n.ID = uuid.NewString()
		n.BabyID = baby.ID
		n.CreatedAt = now
		s.notifications = append(s.notifications, n)
		added = append(added, n)
	}
	s.mu.Unlock()

	return added
}

func (s *Store) hasAdvisoryTodayLocked(babyID string, kind models.NotificationKind, now time.Time) bool {
	for _, n := range s.notifications {
		if n.BabyID == babyID && n.Kind == kind && sameDay(n.CreatedAt, now) {
			return true
		}
	}
	return false
}

// Notifications returns all advisories, newest last.
func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the number of unread advisories.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, in := range s.notifications {
		if !in.Read {
			n++
		}
	}
	return n
}

// MarkNotificationRead flags one advisory as read.
func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}
