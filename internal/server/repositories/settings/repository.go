// Package settings persists the per-user preference bundle as one JSONB
// payload.
package settings

import (
	"context"

	"babysteps/internal/models"
)

type Repository interface {
	// GetByUser returns the user's settings, creating the default bundle
	// on first access.
	GetByUser(ctx context.Context, userID string) (*models.AppSettings, error)

	// Save replaces the stored bundle.
	Save(ctx context.Context, s *models.AppSettings) error
}
