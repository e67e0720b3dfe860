// Package babies persists the tracked children.
package babies

import (
	"context"

	"babysteps/internal/models"
)

type Repository interface {
	// Upsert creates or replaces a baby keyed by its stable external id.
	Upsert(ctx context.Context, userID string, baby *models.Baby) error

	// GetByID returns common.ErrorNotFound when the id is unknown.
	GetByID(ctx context.Context, babyID string) (*models.Baby, error)

	// ListByUser returns all babies of a household, insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.Baby, error)

	// SetAvatarURL records the uploaded avatar location.
	SetAvatarURL(ctx context.Context, babyID, url string) error
}
