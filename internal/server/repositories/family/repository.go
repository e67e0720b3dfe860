// Package family persists household invitations and memberships.
package family

import (
	"context"

	"babysteps/internal/models"
)

type Repository interface {
	// Insert stores a new pending invite together with the bcrypt hash of
	// its share code.
	Insert(ctx context.Context, m *models.FamilyMember, codeHash string) error
	// GetByID returns a single member record with its code hash.
	GetByID(ctx context.Context, id string) (*Row, error)
	// Redeem accepts an invite atomically: the row is re-read and locked
	// inside one transaction, verify runs against it, and on success the
	// status flips to accepted. An error from verify aborts the
	// transaction and leaves the row untouched.
	Redeem(ctx context.Context, id string, verify func(row *Row) error) (*models.FamilyMember, error)
	// ListByOwner returns every member of the owner's household, newest first.
	ListByOwner(ctx context.Context, ownerUserID string) ([]*models.FamilyMember, error)
	// UpdateStatus moves the invite through its lifecycle. Accepting also
	// stamps accepted_at.
	UpdateStatus(ctx context.Context, id string, status models.InviteStatus) error
}
