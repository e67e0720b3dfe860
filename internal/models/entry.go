package models

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrUnknownEntryKind = errors.New("unknown entry kind")

// EntryKind classifies a care entry.
type EntryKind string

const (
	EntryKindFeeding EntryKind = "feeding"
	EntryKindSleep   EntryKind = "sleep"
	EntryKindDiaper  EntryKind = "diaper"
	EntryKindGrowth  EntryKind = "growth"
)

// TypedEntry is implemented by every care entry kind.
type TypedEntry interface {
	GetKind() EntryKind
	GetID() string
	GetBabyID() string
}

// Envelope carries one care entry of any kind across the wire. Kind
// discriminates Details; Unwrap is the single place the discriminator is
// decoded, so callers match on concrete types instead of strings.
type Envelope struct {
	Kind    EntryKind       `json:"type"`
	BabyID  string          `json:"babyId"`
	Details json.RawMessage `json:"details"`
}

func Wrap[T TypedEntry](v T) (Envelope, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: v.GetKind(), BabyID: v.GetBabyID(), Details: b}, nil
}

func (e Envelope) Unwrap() (TypedEntry, error) {
	switch e.Kind {
	case EntryKindFeeding:
		var v FeedingEntry
		return v, json.Unmarshal(e.Details, &v)
	case EntryKindSleep:
		var v SleepEntry
		return v, json.Unmarshal(e.Details, &v)
	case EntryKindDiaper:
		var v DiaperEntry
		return v, json.Unmarshal(e.Details, &v)
	case EntryKindGrowth:
		var v GrowthEntry
		return v, json.Unmarshal(e.Details, &v)
	default:
		return nil, ErrUnknownEntryKind
	}
}

// FeedingKind distinguishes how the baby was fed.
type FeedingKind string

const (
	FeedingBottle FeedingKind = "bottle"
	FeedingBreast FeedingKind = "breast"
	FeedingSolid  FeedingKind = "solid"
)

// FeedingEntry records one feeding. AmountML applies to bottle and solid
// feedings; DurationMin to breast feedings and timed sessions.
type FeedingEntry struct {
	ID          string      `json:"id"`
	BabyID      string      `json:"babyId"`
	Kind        FeedingKind `json:"kind"`
	AmountML    float64     `json:"amountMl,omitempty"`
	DurationMin int         `json:"durationMin,omitempty"`
	StartTime   time.Time   `json:"startTime"`
	Mood        string      `json:"mood,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

func (x FeedingEntry) GetKind() EntryKind { return EntryKindFeeding }
func (x FeedingEntry) GetID() string      { return x.ID }
func (x FeedingEntry) GetBabyID() string  { return x.BabyID }

// SleepType distinguishes naps from night sleep.
type SleepType string

const (
	SleepNap   SleepType = "nap"
	SleepNight SleepType = "night"
)

// SleepEntry records one sleep. A nil EndTime means the sleep is still in
// progress: such entries are excluded from completed-duration sums but count
// toward "currently sleeping" status.
type SleepEntry struct {
	ID        string     `json:"id"`
	BabyID    string     `json:"babyId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Quality   string     `json:"quality,omitempty"`
	Type      SleepType  `json:"type"`
	Location  string     `json:"location,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

func (x SleepEntry) GetKind() EntryKind { return EntryKindSleep }
func (x SleepEntry) GetID() string      { return x.ID }
func (x SleepEntry) GetBabyID() string  { return x.BabyID }

// InProgress reports whether the sleep has not ended yet.
func (x SleepEntry) InProgress() bool { return x.EndTime == nil }

// CompletedDuration returns the sleep length, or 0 and false while the sleep
// is still in progress. Ongoing sleeps must never be treated as zero-length.
func (x SleepEntry) CompletedDuration() (time.Duration, bool) {
	if x.EndTime == nil {
		return 0, false
	}
	return x.EndTime.Sub(x.StartTime), true
}

// DiaperType classifies a change. "dry" is recorded only via the full form,
// never via quick-add.
type DiaperType string

const (
	DiaperWet    DiaperType = "wet"
	DiaperSoiled DiaperType = "soiled"
	DiaperMixed  DiaperType = "mixed"
	DiaperDry    DiaperType = "dry"
)

// WetnessDetail describes urine observations on a wet or mixed change.
type WetnessDetail struct {
	Volume string `json:"volume,omitempty"`
	Color  string `json:"color,omitempty"`
}

// StoolDetail describes stool observations on a soiled or mixed change.
type StoolDetail struct {
	Consistency string `json:"consistency,omitempty"`
	Color       string `json:"color,omitempty"`
}

// DiaperEntry records one diaper change.
type DiaperEntry struct {
	ID         string         `json:"id"`
	BabyID     string         `json:"babyId"`
	Time       time.Time      `json:"time"`
	Type       DiaperType     `json:"type"`
	Wetness    *WetnessDetail `json:"wetness,omitempty"`
	Stool      *StoolDetail   `json:"stool,omitempty"`
	DiaperSize string         `json:"diaperSize,omitempty"`
	Leak       bool           `json:"leak,omitempty"`
	Rash       bool           `json:"rash,omitempty"`
	Mood       string         `json:"mood,omitempty"`
	ChangedBy  string         `json:"changedBy,omitempty"`
}

func (x DiaperEntry) GetKind() EntryKind { return EntryKindDiaper }
func (x DiaperEntry) GetID() string      { return x.ID }
func (x DiaperEntry) GetBabyID() string  { return x.BabyID }

// GrowthEntry records a measurement session. Any subset of the three
// measurements may be present.
type GrowthEntry struct {
	ID                  string    `json:"id"`
	BabyID              string    `json:"babyId"`
	Date                time.Time `json:"date"`
	WeightGrams         *float64  `json:"weightGrams,omitempty"`
	HeightCm            *float64  `json:"heightCm,omitempty"`
	HeadCircumferenceCm *float64  `json:"headCircumferenceCm,omitempty"`
	Notes               string    `json:"notes,omitempty"`
}

func (x GrowthEntry) GetKind() EntryKind { return EntryKindGrowth }
func (x GrowthEntry) GetID() string      { return x.ID }
func (x GrowthEntry) GetBabyID() string  { return x.BabyID }
