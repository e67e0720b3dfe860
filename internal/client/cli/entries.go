package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"babysteps/internal/models"
)

func (a *App) currentBabyOrWarn() (models.Baby, bool) {
	baby, ok := a.store.CurrentBaby()
	if !ok {
		printlnFn("No baby selected; use 'baby' to add one")
	}
	return baby, ok
}

// Feed records a one-shot feeding stamped now.
func (a *App) Feed(ctx context.Context) error {
	baby, ok := a.currentBabyOrWarn()
	if !ok {
		return nil
	}

	kind, err := GetSimpleText(a.reader, "Kind (bottle/breast/solid)", os.Stdout)
	if err != nil {
		return err
	}
	switch models.FeedingKind(kind) {
	case models.FeedingBottle, models.FeedingBreast, models.FeedingSolid:
	default:
		printlnFn("Unknown feeding kind:", kind)
		return nil
	}

	amount, err := GetFloat(a.reader, "Amount in ml (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	entry := models.FeedingEntry{
		ID:        uuid.NewString(),
		BabyID:    baby.ID,
		Kind:      models.FeedingKind(kind),
		AmountML:  amount,
		StartTime: a.now(),
	}
	a.store.AddFeeding(entry)

	printlnFn("Feeding recorded")
	return nil
}

// StartFeeding begins a timed feeding session.
func (a *App) StartFeeding(ctx context.Context) error {
	if _, ok := a.currentBabyOrWarn(); !ok {
		return nil
	}

	kind, err := GetSimpleText(a.reader, "Kind (bottle/breast/solid)", os.Stdout)
	if err != nil {
		return err
	}

	a.store.StartFeedingSession(models.FeedingKind(kind))
	printlnFn("Feeding timer started")
	return nil
}

// StopFeeding ends the running feeding session, if any.
func (a *App) StopFeeding(ctx context.Context) error {
	amount, err := GetFloat(a.reader, "Amount in ml (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	entry, ok := a.store.EndFeedingSession(amount, "")
	if !ok {
		printlnFn("No feeding in progress")
		return nil
	}

	printlnFn(fmt.Sprintf("Feeding recorded: %d min", entry.DurationMin))
	return nil
}

// StartSleep begins a timed sleep session.
func (a *App) StartSleep(ctx context.Context) error {
	if _, ok := a.currentBabyOrWarn(); !ok {
		return nil
	}
	a.store.StartSleepTimer()
	printlnFn("Sleep timer started")
	return nil
}

// StopSleep ends the running sleep session, if any. Long sessions are
// classified as night sleep automatically.
func (a *App) StopSleep(ctx context.Context) error {
	entry, ok := a.store.EndSleepTimer("")
	if !ok {
		printlnFn("No sleep in progress")
		return nil
	}

	d, _ := entry.CompletedDuration()
	printlnFn(fmt.Sprintf("Sleep recorded: %s, %.0f min", entry.Type, d.Minutes()))
	return nil
}

// QuickDiaper records a one-tap diaper change.
func (a *App) QuickDiaper(ctx context.Context, kind string) error {
	if _, ok := a.currentBabyOrWarn(); !ok {
		return nil
	}

	_, err := a.store.QuickAddDiaper(models.DiaperType(kind))
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	printlnFn("Diaper change recorded")
	return nil
}

// Growth records a measurement session; any subset of the three
// measurements may be entered.
func (a *App) Growth(ctx context.Context) error {
	baby, ok := a.currentBabyOrWarn()
	if !ok {
		return nil
	}

	weight, err := GetFloat(a.reader, "Weight in grams (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	height, err := GetFloat(a.reader, "Height in cm (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	head, err := GetFloat(a.reader, "Head circumference in cm (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	entry := models.GrowthEntry{
		ID:     uuid.NewString(),
		BabyID: baby.ID,
		Date:   a.now(),
	}
	if weight > 0 {
		entry.WeightGrams = &weight
	}
	if height > 0 {
		entry.HeightCm = &height
	}
	if head > 0 {
		entry.HeadCircumferenceCm = &head
	}

	if entry.WeightGrams == nil && entry.HeightCm == nil && entry.HeadCircumferenceCm == nil {
		printlnFn("Nothing to record")
		return nil
	}

	a.store.AddGrowthEntry(entry)
	printlnFn("Measurements recorded")
	return nil
}
