package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"babysteps/internal/models"
	"babysteps/internal/server/repositories/entries"
)

// splitRows decodes stored rows back into their typed collections. Rows with
// an unknown kind are skipped rather than failing the whole read; old clients
// must keep working when newer kinds appear.
func splitRows(rows []entries.Row) (f []models.FeedingEntry, s []models.SleepEntry, d []models.DiaperEntry, g []models.GrowthEntry, err error) {
	f = []models.FeedingEntry{}
	s = []models.SleepEntry{}
	d = []models.DiaperEntry{}
	g = []models.GrowthEntry{}

	for _, row := range rows {
		env := models.Envelope{Kind: row.Kind, BabyID: row.BabyID, Details: json.RawMessage(row.Payload)}
		typed, uerr := env.Unwrap()
		if errors.Is(uerr, models.ErrUnknownEntryKind) {
			continue
		}
		if uerr != nil {
			return nil, nil, nil, nil, uerr
		}
		switch v := typed.(type) {
		case models.FeedingEntry:
			f = append(f, v)
		case models.SleepEntry:
			s = append(s, v)
		case models.DiaperEntry:
			d = append(d, v)
		case models.GrowthEntry:
			g = append(g, v)
		}
	}
	return f, s, d, g, nil
}

// profileBundle is the bootstrap read: the whole household state in one
// round trip.
func (h *Handler) profileBundle(w http.ResponseWriter, r *http.Request) {
	email := identityEmail(r)
	if email == "" {
		http.Error(w, "identity required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	appSettings, err := h.settings.GetByUser(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	babyList, err := h.babies.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	bundle := models.ProfileBundle{
		Profile:  *user,
		Settings: *appSettings,
		Babies:   []models.BabyBundle{},
	}

	for _, baby := range babyList {
		rows, err := h.entries.ListByBaby(r.Context(), baby.ID)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		feedings, sleeps, diapers, growth, err := splitRows(rows)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		bundle.Babies = append(bundle.Babies, models.BabyBundle{
			Baby:     baby,
			Feedings: feedings,
			Sleeps:   sleeps,
			Diapers:  diapers,
			Growth:   growth,
		})
	}

	h.respondJSON(w, http.StatusOK, bundle)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	email := identityEmail(r)
	if email == "" {
		http.Error(w, "identity required", http.StatusBadRequest)
		return
	}

	var patch models.ProfilePatch
	if err := decodeBody(r, &patch); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	user.Apply(patch)

	if err := h.users.Update(r.Context(), user); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}
