package httpapi

import (
	"net/http"

	"babysteps/internal/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	s, err := h.settings.GetByUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, s)
}

// updateSettings deep-merges the patch into the stored bundle. Sending one
// nested field never clobbers its siblings.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	var patch models.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s, err := h.settings.GetByUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	s.Apply(patch)

	if err := h.settings.Save(r.Context(), s); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, s)
}
