package httpapi

import (
	"net/http"
	"time"

	"babysteps/internal/models"
)

// todayStats aggregates one day of typed entries. In-progress sleeps are
// excluded from the completed-minutes sum but drive CurrentlySleeping.
func todayStats(feedings []models.FeedingEntry, sleeps []models.SleepEntry, diapers []models.DiaperEntry) models.TodayStats {
	stats := models.TodayStats{}

	for _, f := range feedings {
		stats.FeedingCount++
		stats.TotalMilkML += f.AmountML
		t := f.StartTime
		if stats.LastFeeding == nil || t.After(*stats.LastFeeding) {
			stats.LastFeeding = &t
		}
	}

	for _, e := range sleeps {
		if d, done := e.CompletedDuration(); done {
			stats.SleepMinutes += int(d.Minutes())
		} else {
			stats.CurrentlySleeping = true
		}
	}

	stats.DiaperCount = len(diapers)
	return stats
}

// todayView serves the live payload the client poller consumes: everything
// recorded since local midnight plus the aggregated stats.
func (h *Handler) todayView(w http.ResponseWriter, r *http.Request) {
	babyID := r.PathValue("babyID")

	if _, err := h.babies.GetByID(r.Context(), babyID); err != nil {
		h.respondError(w, r, err)
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := h.entries.ListByBabySince(r.Context(), babyID, midnight)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	feedings, sleeps, diapers, _, err := splitRows(rows)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	view := models.TodayView{
		BabyID:   babyID,
		Feedings: feedings,
		Sleeps:   sleeps,
		Diapers:  diapers,
		Stats:    todayStats(feedings, sleeps, diapers),
	}

	h.respondJSON(w, http.StatusOK, view)
}
