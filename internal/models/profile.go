package models

import "time"

// UserProfile is the household account. One profile per household; the
// identifying email is also the only "session" credential the client keeps.
type UserProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role,omitempty"`
	Locale        string `json:"locale,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	PhoneVerified bool   `json:"phoneVerified"`
}

// ProfilePatch carries a partial profile update. Nil fields are left
// unchanged.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	Locale   *string `json:"locale,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// Apply merges the patch into the profile field-wise.
func (p *UserProfile) Apply(patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.Locale != nil {
		p.Locale = *patch.Locale
	}
	if patch.Timezone != nil {
		p.Timezone = *patch.Timezone
	}
}

// BabyBundle is one baby together with its nested entry collections, as
// returned by the profile bootstrap endpoint.
type BabyBundle struct {
	Baby     Baby           `json:"baby"`
	Feedings []FeedingEntry `json:"feedings"`
	Sleeps   []SleepEntry   `json:"sleeps"`
	Diapers  []DiaperEntry  `json:"diapers"`
	Growth   []GrowthEntry  `json:"growth"`
}

// ProfileBundle is the full bootstrap payload: profile, settings, and every
// baby with its entries.
type ProfileBundle struct {
	Profile  UserProfile  `json:"profile"`
	Settings AppSettings  `json:"settings"`
	Babies   []BabyBundle `json:"babies"`
}

// TodayStats summarizes the current calendar day for one baby.
type TodayStats struct {
	FeedingCount      int        `json:"feedingCount"`
	TotalMilkML       float64    `json:"totalMilkMl"`
	SleepMinutes      int        `json:"sleepMinutes"`
	DiaperCount       int        `json:"diaperCount"`
	LastFeeding       *time.Time `json:"lastFeeding,omitempty"`
	CurrentlySleeping bool       `json:"currentlySleeping"`
}

// TodayView is the aggregated live payload the poller fetches.
type TodayView struct {
	BabyID   string         `json:"babyId"`
	Feedings []FeedingEntry `json:"feedings"`
	Sleeps   []SleepEntry   `json:"sleeps"`
	Diapers  []DiaperEntry  `json:"diapers"`
	Stats    TodayStats     `json:"stats"`
}
