package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"babysteps/internal/common"
)

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(context.Background(), "encoding response", "error", err)
	}
}

// respondError maps sentinel errors to HTTP statuses. Anything unrecognized
// is a 500 and gets logged; the response body stays generic.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrorUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, common.ErrInvalidInvite):
		http.Error(w, "invalid invite", http.StatusForbidden)
	case errors.Is(err, common.ErrInviteExpired):
		http.Error(w, "invite expired", http.StatusGone)
	default:
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// identityEmail resolves the caller's household email from the identity
// header or, as a fallback, the email query parameter.
func identityEmail(r *http.Request) string {
	if v := r.Header.Get(common.IdentityHeaderName); v != "" {
		return v
	}
	return r.URL.Query().Get("email")
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
