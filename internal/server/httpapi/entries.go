package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"babysteps/internal/models"
	"babysteps/internal/server/repositories/entries"
)

// entryRow validates the envelope and flattens it into a storable row. The
// recorded-at column comes from the kind-specific timestamp so range queries
// work without touching the payload.
func entryRow(entryID string, env models.Envelope) (*entries.Row, error) {
	typed, err := env.Unwrap()
	if err != nil {
		return nil, err
	}

	var recordedAt time.Time
	switch v := typed.(type) {
	case models.FeedingEntry:
		recordedAt = v.StartTime
	case models.SleepEntry:
		recordedAt = v.StartTime
	case models.DiaperEntry:
		recordedAt = v.Time
	case models.GrowthEntry:
		recordedAt = v.Date
	default:
		return nil, models.ErrUnknownEntryKind
	}

	if entryID == "" {
		entryID = typed.GetID()
	}
	if entryID == "" {
		return nil, fmt.Errorf("entry id is required")
	}

	return &entries.Row{
		ID:         entryID,
		BabyID:     env.BabyID,
		Kind:       env.Kind,
		RecordedAt: recordedAt,
		Payload:    env.Details,
	}, nil
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	h.writeEntry(w, r, "")
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	h.writeEntry(w, r, r.PathValue("entryID"))
}

func (h *Handler) writeEntry(w http.ResponseWriter, r *http.Request, entryID string) {
	babyID := r.PathValue("babyID")

	var env models.Envelope
	if err := decodeBody(r, &env); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	env.BabyID = babyID

	row, err := entryRow(entryID, env)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.babies.GetByID(r.Context(), babyID); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.entries.Upsert(r.Context(), row); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"id": row.ID})
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	babyID := r.PathValue("babyID")
	entryID := r.PathValue("entryID")
	kind := models.EntryKind(r.URL.Query().Get("type"))

	if err := h.entries.Delete(r.Context(), babyID, entryID, kind); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}
