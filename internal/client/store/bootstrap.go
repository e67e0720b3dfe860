package store

import (
	"context"
	"errors"
	"fmt"

	"babysteps/internal/common"
	"babysteps/internal/models"
)

// InitializeProfile bootstraps the store from the server for the given
// identifying email: profile, settings, and every baby's nested entry
// collections flattened into the flat in-memory arrays.
//
// A not-found profile is an expected outcome, not an error: the persisted
// email is cleared and the store resets to an empty state. Any other
// failure is returned and leaves the persisted email untouched.
func (s *Store) InitializeProfile(ctx context.Context, email string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	bundle, err := s.remote.FetchProfile(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "no profile for stored email, resetting", "email", email)
			if cerr := s.identity.ClearEmail(ctx); cerr != nil {
				s.log.Error(ctx, "clearing stored email", "error", cerr)
			}
			s.reset()
			return nil
		}
		return fmt.Errorf("profile bootstrap: %w", err)
	}

	s.mu.Lock()
	p := bundle.Profile
	s.profile = &p
	s.settings = bundle.Settings
	s.babies = s.babies[:0]
	s.feedings = s.feedings[:0]
	s.sleeps = s.sleeps[:0]
	s.diapers = s.diapers[:0]
	s.growth = s.growth[:0]
	for _, bb := range bundle.Babies {
		s.babies = append(s.babies, bb.Baby)
		s.feedings = append(s.feedings, bb.Feedings...)
		s.sleeps = append(s.sleeps, bb.Sleeps...)
		s.diapers = append(s.diapers, bb.Diapers...)
		s.growth = append(s.growth, bb.Growth...)
	}
	if len(s.babies) > 0 {
		s.currentBabyID = s.babies[0].ID
	}
	s.mu.Unlock()

	if err := s.identity.SaveEmail(ctx, email); err != nil {
		s.log.Error(ctx, "persisting identifying email", "error", err)
	}
	return nil
}

// Logout clears the persisted email and empties the in-memory state.
func (s *Store) Logout(ctx context.Context) {
	if err := s.identity.ClearEmail(ctx); err != nil {
		s.log.Error(ctx, "clearing stored email", "error", err)
	}
	s.reset()
	s.mutated()
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.settings = models.AppSettings{}
	s.babies = nil
	s.currentBabyID = ""
	s.feedings = nil
	s.sleeps = nil
	s.diapers = nil
	s.growth = nil
	s.family = nil
	s.notifications = nil
}

// Profile returns the loaded profile, or false before bootstrap.
func (s *Store) Profile() (models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return models.UserProfile{}, false
	}
	return *s.profile, true
}

// Settings returns the current settings bundle.
func (s *Store) Settings() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateProfile deep-merges the patch locally and mirrors it remotely.
// Remote failure is logged and never rolls the local merge back.
func (s *Store) UpdateProfile(ctx context.Context, patch models.ProfilePatch) {
	s.mu.Lock()
	if s.profile == nil {
		s.mu.Unlock()
		return
	}
	s.profile.Apply(patch)
	email := s.profile.Email
	s.mu.Unlock()

	if err := s.remote.UpdateProfile(ctx, email, patch); err != nil {
		s.log.Error(ctx, "profile sync failed, local state kept", "error", err)
	}
	s.mutated()
}

// UpdateSettings deep-merges the patch locally and mirrors it remotely.
// Nested groups merge field-wise, so a caller updating one notification
// threshold cannot drop its siblings.
func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) {
	s.mu.Lock()
	s.settings.Apply(patch)
	userID := s.settings.UserID
	s.mu.Unlock()

	if err := s.remote.UpdateSettings(ctx, userID, patch); err != nil {
		s.log.Error(ctx, "settings sync failed, local state kept", "error", err)
	}
	s.mutated()
}

// FamilyMembers returns a copy of the household's collaborators.
func (s *Store) FamilyMembers() []models.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FamilyMember, len(s.family))
	copy(out, s.family)
	return out
}

// SetFamilyMembers replaces the collaborator list (loaded from the server).
func (s *Store) SetFamilyMembers(members []models.FamilyMember) {
	s.mu.Lock()
	s.family = members
	s.mu.Unlock()
}
