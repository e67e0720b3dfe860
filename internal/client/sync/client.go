// Package sync mirrors local store mutations to the remote API. It keeps
// the fire-and-forget contract of the mutate path (local state is updated
// first and never rolled back) but routes the remote half through an
// outbox so failures are retried with backoff and surfaced as a per-entry
// sync status instead of silently diverging.
package sync

import (
	"context"

	"babysteps/internal/models"
)

// Client is the transport used to reach the remote API.
type Client interface {
	// EnsureUser looks up or creates the server-side user for an email.
	// Idempotent.
	EnsureUser(ctx context.Context, email string) (*models.UserProfile, error)

	// EnsureBaby upserts a baby by its stable id. Idempotent.
	EnsureBaby(ctx context.Context, email string, baby models.Baby) error

	// CreateEntry creates one care entry under its baby.
	CreateEntry(ctx context.Context, email string, env models.Envelope) error

	// UpdateEntry replaces one care entry.
	UpdateEntry(ctx context.Context, email string, entryID string, env models.Envelope) error

	// DeleteEntry removes one care entry.
	DeleteEntry(ctx context.Context, email, babyID, entryID string, kind models.EntryKind) error

	// FetchProfile returns the profile bootstrap bundle for an email.
	// Returns common.ErrorNotFound when the email is unknown.
	FetchProfile(ctx context.Context, email string) (*models.ProfileBundle, error)

	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error

	// FetchSettings returns the settings bundle for a user.
	FetchSettings(ctx context.Context, userID string) (*models.AppSettings, error)

	// UpdateSettings applies a partial settings update.
	UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) error

	// FetchToday returns the aggregated live view for one baby.
	FetchToday(ctx context.Context, email, babyID string) (*models.TodayView, error)
}
