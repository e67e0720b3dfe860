package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"babysteps/internal/health"
)

// Today prints the aggregated day: the poller's server snapshot when fresh,
// the local store otherwise.
func (a *App) Today(ctx context.Context) error {
	baby, ok := a.currentBabyOrWarn()
	if !ok {
		return nil
	}

	stats := a.store.TodayStats()
	snap := a.poller.Snapshot()
	switch {
	case snap.Err != nil:
		printlnFn("Live refresh failed, showing local data. Retrying...")
		a.poller.Refresh(ctx)
	case snap.View != nil && snap.View.BabyID == baby.ID:
		stats = snap.View.Stats
	}

	printlnFn(fmt.Sprintf("Today for %s:", baby.Name))
	printlnFn(fmt.Sprintf("  feedings: %d (%.0f ml)", stats.FeedingCount, stats.TotalMilkML))
	printlnFn(fmt.Sprintf("  sleep:    %d min", stats.SleepMinutes))
	printlnFn(fmt.Sprintf("  diapers:  %d", stats.DiaperCount))
	if stats.LastFeeding != nil {
		printlnFn(fmt.Sprintf("  last fed: %s", stats.LastFeeding.Format("15:04")))
	}
	if stats.CurrentlySleeping {
		printlnFn("  sleeping now")
	}
	return nil
}

// Advisories evaluates and prints the derived notifications.
func (a *App) Advisories(ctx context.Context) error {
	a.store.EvaluateAdvisories()

	all := a.store.Notifications()
	if len(all) == 0 {
		printlnFn("No alerts")
		return nil
	}

	for _, n := range all {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s [%s] %s", marker, n.Priority, n.Message))
		a.store.MarkNotificationRead(n.ID)
	}
	return nil
}

// Health prints age-based recommendations and growth percentiles for the
// current baby.
func (a *App) Health(ctx context.Context) error {
	baby, ok := a.currentBabyOrWarn()
	if !ok {
		return nil
	}

	now := a.now()
	weeks := health.AgeInWeeks(baby.BirthDate, now)
	months := health.AgeInMonths(baby.BirthDate, now)

	weight := baby.WeightGrams
	height := baby.HeightCm
	for _, g := range a.store.GrowthEntries() {
		if g.WeightGrams != nil {
			weight = *g.WeightGrams
		}
		if g.HeightCm != nil {
			height = *g.HeightCm
		}
	}

	printlnFn(fmt.Sprintf("%s is %d weeks old", baby.Name, weeks))
	if weight > 0 {
		printlnFn(fmt.Sprintf("  daily milk:   %.0f ml", health.RecommendedDailyMilkML(weeks, weight)))
		printlnFn(fmt.Sprintf("  weight:       P%d", health.WeightPercentile(months, weight/1000)))
	}
	if height > 0 {
		printlnFn(fmt.Sprintf("  height:       P%d", health.HeightPercentile(months, height)))
	}
	printlnFn(fmt.Sprintf("  feed every:   %.1f h", health.RecommendedFeedingIntervalHours(weeks)))
	printlnFn(fmt.Sprintf("  daily sleep:  %d min", health.RecommendedDailySleepMinutes(weeks)))
	return nil
}

// Settings shows the notification settings and lets the user toggle the
// advisory engine.
func (a *App) Settings(ctx context.Context) error {
	s := a.store.Settings()
	n := s.Notifications

	printlnFn(fmt.Sprintf("Notifications enabled: %t", n.Enabled))
	printlnFn(fmt.Sprintf("  feeding reminders:  %t (every %.1f h)", n.FeedingReminders, n.FeedingIntervalHours))
	printlnFn(fmt.Sprintf("  sleep reminders:    %t (min %d min/day)", n.SleepReminders, n.MinDailySleepMinutes))
	printlnFn(fmt.Sprintf("  milestone alerts:   %t", n.MilestoneAlerts))
	printlnFn(fmt.Sprintf("  quiet hours:        %s-%s", n.QuietHoursStart, n.QuietHoursEnd))

	answer, err := GetSimpleText(a.reader, "Toggle notifications? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "y") {
		enabled := !n.Enabled
		a.store.UpdateSettings(ctx, settingsTogglePatch(enabled))
		printlnFn(fmt.Sprintf("Notifications enabled: %t", enabled))
	}
	return nil
}
