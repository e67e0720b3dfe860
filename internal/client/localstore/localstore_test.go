package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "file:localstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEmailRoundTrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	email, err := s.LoadEmail(ctx)
	require.NoError(t, err)
	require.Empty(t, email)

	require.NoError(t, s.SaveEmail(ctx, "parent@example.com"))
	email, err = s.LoadEmail(ctx)
	require.NoError(t, err)
	require.Equal(t, "parent@example.com", email)

	// Saving again overwrites.
	require.NoError(t, s.SaveEmail(ctx, "other@example.com"))
	email, err = s.LoadEmail(ctx)
	require.NoError(t, err)
	require.Equal(t, "other@example.com", email)

	require.NoError(t, s.ClearEmail(ctx))
	email, err = s.LoadEmail(ctx)
	require.NoError(t, err)
	require.Empty(t, email)
}

func TestCurrentBabyRoundTrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCurrentBaby(ctx, "b1"))
	id, err := s.LoadCurrentBaby(ctx)
	require.NoError(t, err)
	require.Equal(t, "b1", id)
}
