// Package httpapi exposes the care-tracking boundary as a JSON HTTP API.
// Identity is the household email, carried in a header or query parameter;
// there is no session state on the server.
package httpapi

import (
	"context"
	"net/http"

	"babysteps/internal/logging"
	sc "babysteps/internal/server/config"
	"babysteps/internal/server/repositories/babies"
	"babysteps/internal/server/repositories/entries"
	"babysteps/internal/server/repositories/family"
	"babysteps/internal/server/repositories/settings"
	"babysteps/internal/server/repositories/users"
)

// AvatarPresigner hands out temporary object-storage URLs for avatar images.
type AvatarPresigner interface {
	PresignedPutURL(ctx context.Context, babyID string) (key string, url string, err error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

type Handler struct {
	logger   logging.Logger
	config   *sc.Config
	users    users.Repository
	babies   babies.Repository
	entries  entries.Repository
	settings settings.Repository
	family   family.Repository
	avatars  AvatarPresigner
}

func NewHandler(l logging.Logger, cfg *sc.Config,
	ur users.Repository, br babies.Repository, er entries.Repository,
	sr settings.Repository, fr family.Repository, av AvatarPresigner) *Handler {
	return &Handler{
		logger:   l.With("module", "httpapi"),
		config:   cfg,
		users:    ur,
		babies:   br,
		entries:  er,
		settings: sr,
		family:   fr,
		avatars:  av,
	}
}

// Routes registers every endpoint on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users/ensure", h.ensureUser)

	mux.HandleFunc("POST /api/babies", h.upsertBaby)
	mux.HandleFunc("POST /api/babies/{babyID}/avatar-upload", h.avatarUploadURL)
	mux.HandleFunc("PUT /api/babies/{babyID}/avatar", h.setAvatar)
	mux.HandleFunc("GET /api/babies/{babyID}/avatar", h.avatarDownloadURL)

	mux.HandleFunc("POST /api/babies/{babyID}/entries", h.createEntry)
	mux.HandleFunc("PUT /api/babies/{babyID}/entries/{entryID}", h.updateEntry)
	mux.HandleFunc("DELETE /api/babies/{babyID}/entries/{entryID}", h.deleteEntry)

	mux.HandleFunc("GET /api/babies/{babyID}/live", h.todayView)

	mux.HandleFunc("GET /api/profile", h.profileBundle)
	mux.HandleFunc("PUT /api/profile", h.updateProfile)

	mux.HandleFunc("GET /api/settings", h.getSettings)
	mux.HandleFunc("PUT /api/settings", h.updateSettings)

	mux.HandleFunc("POST /api/family/invites", h.createInvite)
	mux.HandleFunc("POST /api/family/invites/accept", h.acceptInvite)
	mux.HandleFunc("DELETE /api/family/invites/{inviteID}", h.revokeInvite)
	mux.HandleFunc("GET /api/family", h.listFamily)

	return mux
}
