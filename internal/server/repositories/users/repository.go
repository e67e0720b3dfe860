// Package users persists the household accounts.
package users

import (
	"context"

	"babysteps/internal/models"
)

type Repository interface {
	// EnsureByEmail looks up a user by email, creating one when absent.
	// Idempotent upsert keyed by email.
	EnsureByEmail(ctx context.Context, email string) (*models.UserProfile, error)

	// GetByEmail returns common.ErrorNotFound when the email is unknown.
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)

	// Update writes the mutable profile fields.
	Update(ctx context.Context, profile *models.UserProfile) error
}
