package httpapi

import (
	"net/http"
	"strings"
)

type ensureUserRequest struct {
	Email string `json:"email"`
}

// ensureUser is the idempotent login: it creates the household account on
// first sight of an email and returns the existing one afterwards.
func (h *Handler) ensureUser(w http.ResponseWriter, r *http.Request) {
	var req ensureUserRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	profile, err := h.users.EnsureByEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}
