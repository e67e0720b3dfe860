// Package common defines shared constants and sentinel errors used across
// client and server layers of babysteps. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorNoIdentity is returned when an operation requires the persisted
	// identifying email and none is stored. Mutation paths treat it as a
	// warn-and-skip condition, not a failure.
	ErrorNoIdentity = errors.New("no identifying email")

	// ErrorStaleResponse marks a poll response that arrived after a newer
	// one had already been applied.
	ErrorStaleResponse = errors.New("stale response")

	// Validation / item-specific errors.
	ErrorBelowMinimumAge = errors.New("below medication minimum age")

	// Invite lifecycle errors.
	ErrInvalidInvite = errors.New("invalid invite token")
	ErrInviteExpired = errors.New("invite expired")
)
