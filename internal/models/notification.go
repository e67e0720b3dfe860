package models

import "time"

// NotificationKind classifies a client-generated advisory.
type NotificationKind string

const (
	NotificationFeedingLate       NotificationKind = "feeding-late"
	NotificationSleepInsufficient NotificationKind = "sleep-insufficient"
	NotificationMilestone         NotificationKind = "milestone"
)

// NotificationPriority orders advisories in the UI.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is an ephemeral advisory derived from store state. It is
// never persisted server-side.
type Notification struct {
	ID        string               `json:"id"`
	BabyID    string               `json:"babyId"`
	Kind      NotificationKind     `json:"kind"`
	Priority  NotificationPriority `json:"priority"`
	Message   string               `json:"message"`
	CreatedAt time.Time            `json:"createdAt"`
	Read      bool                 `json:"read"`
}
