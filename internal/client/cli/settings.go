package cli

import "babysteps/internal/models"

// settingsTogglePatch builds the deep patch that flips only the enabled
// flag, leaving every sibling field untouched.
func settingsTogglePatch(enabled bool) models.SettingsPatch {
	return models.SettingsPatch{
		Notifications: &models.NotificationSettingsPatch{Enabled: &enabled},
	}
}
