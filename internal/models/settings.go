package models

// NotificationSettings controls the client-side advisory engine. Quiet hours
// are local wall-clock times in "HH:MM" form; a window that crosses midnight
// (start > end) is supported.
type NotificationSettings struct {
	Enabled              bool    `json:"enabled"`
	FeedingReminders     bool    `json:"feedingReminders"`
	SleepReminders       bool    `json:"sleepReminders"`
	MilestoneAlerts      bool    `json:"milestoneAlerts"`
	FeedingIntervalHours float64 `json:"feedingIntervalHours"`
	MinDailySleepMinutes int     `json:"minDailySleepMinutes"`
	QuietHoursStart      string  `json:"quietHoursStart,omitempty"`
	QuietHoursEnd        string  `json:"quietHoursEnd,omitempty"`
}

// PrivacySettings controls sharing defaults for new family members.
type PrivacySettings struct {
	ShareGrowthData bool `json:"shareGrowthData"`
	ShareHealthData bool `json:"shareHealthData"`
	AnalyticsOptIn  bool `json:"analyticsOptIn"`
}

// BackupSettings controls server-side export behavior.
type BackupSettings struct {
	AutoBackup     bool   `json:"autoBackup"`
	FrequencyDays  int    `json:"frequencyDays"`
	IncludePhotos  bool   `json:"includePhotos"`
	LastBackupDate string `json:"lastBackupDate,omitempty"`
}

// AppSettings is the per-profile preference bundle.
type AppSettings struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	Theme         string               `json:"theme"`
	Units         string               `json:"units"`
	Locale        string               `json:"locale"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Backup        BackupSettings       `json:"backup"`
}

// NotificationSettingsPatch updates individual notification fields. Nil
// fields are left unchanged, so a caller updating one threshold cannot drop
// its siblings.
type NotificationSettingsPatch struct {
	Enabled              *bool    `json:"enabled,omitempty"`
	FeedingReminders     *bool    `json:"feedingReminders,omitempty"`
	SleepReminders       *bool    `json:"sleepReminders,omitempty"`
	MilestoneAlerts      *bool    `json:"milestoneAlerts,omitempty"`
	FeedingIntervalHours *float64 `json:"feedingIntervalHours,omitempty"`
	MinDailySleepMinutes *int     `json:"minDailySleepMinutes,omitempty"`
	QuietHoursStart      *string  `json:"quietHoursStart,omitempty"`
	QuietHoursEnd        *string  `json:"quietHoursEnd,omitempty"`
}

// PrivacySettingsPatch updates individual privacy fields.
type PrivacySettingsPatch struct {
	ShareGrowthData *bool `json:"shareGrowthData,omitempty"`
	ShareHealthData *bool `json:"shareHealthData,omitempty"`
	AnalyticsOptIn  *bool `json:"analyticsOptIn,omitempty"`
}

// BackupSettingsPatch updates individual backup fields.
type BackupSettingsPatch struct {
	AutoBackup     *bool   `json:"autoBackup,omitempty"`
	FrequencyDays  *int    `json:"frequencyDays,omitempty"`
	IncludePhotos  *bool   `json:"includePhotos,omitempty"`
	LastBackupDate *string `json:"lastBackupDate,omitempty"`
}

// SettingsPatch is a deep partial update of AppSettings. Each nested group
// is merged field-wise rather than replaced wholesale.
type SettingsPatch struct {
	Theme         *string                    `json:"theme,omitempty"`
	Units         *string                    `json:"units,omitempty"`
	Locale        *string                    `json:"locale,omitempty"`
	Notifications *NotificationSettingsPatch `json:"notifications,omitempty"`
	Privacy       *PrivacySettingsPatch      `json:"privacy,omitempty"`
	Backup        *BackupSettingsPatch       `json:"backup,omitempty"`
}

// Apply deep-merges the patch into the settings.
func (s *AppSettings) Apply(patch SettingsPatch) {
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.Units != nil {
		s.Units = *patch.Units
	}
	if patch.Locale != nil {
		s.Locale = *patch.Locale
	}
	if p := patch.Notifications; p != nil {
		n := &s.Notifications
		if p.Enabled != nil {
			n.Enabled = *p.Enabled
		}
		if p.FeedingReminders != nil {
			n.FeedingReminders = *p.FeedingReminders
		}
		if p.SleepReminders != nil {
			n.SleepReminders = *p.SleepReminders
		}
		if p.MilestoneAlerts != nil {
			n.MilestoneAlerts = *p.MilestoneAlerts
		}
		if p.FeedingIntervalHours != nil {
			n.FeedingIntervalHours = *p.FeedingIntervalHours
		}
		if p.MinDailySleepMinutes != nil {
			n.MinDailySleepMinutes = *p.MinDailySleepMinutes
		}
		if p.QuietHoursStart != nil {
			n.QuietHoursStart = *p.QuietHoursStart
		}
		if p.QuietHoursEnd != nil {
			n.QuietHoursEnd = *p.QuietHoursEnd
		}
	}
	if p := patch.Privacy; p != nil {
		v := &s.Privacy
		if p.ShareGrowthData != nil {
			v.ShareGrowthData = *p.ShareGrowthData
		}
		if p.ShareHealthData != nil {
			v.ShareHealthData = *p.ShareHealthData
		}
		if p.AnalyticsOptIn != nil {
			v.AnalyticsOptIn = *p.AnalyticsOptIn
		}
	}
	if p := patch.Backup; p != nil {
		b := &s.Backup
		if p.AutoBackup != nil {
			b.AutoBackup = *p.AutoBackup
		}
		if p.FrequencyDays != nil {
			b.FrequencyDays = *p.FrequencyDays
		}
		if p.IncludePhotos != nil {
			b.IncludePhotos = *p.IncludePhotos
		}
		if p.LastBackupDate != nil {
			b.LastBackupDate = *p.LastBackupDate
		}
	}
}

// DefaultSettings returns the settings a fresh profile starts with.
func DefaultSettings(userID string) AppSettings {
	return AppSettings{
		UserID: userID,
		Theme:  "system",
		Units:  "metric",
		Locale: "en",
		Notifications: NotificationSettings{
			Enabled:              true,
			FeedingReminders:     true,
			SleepReminders:       true,
			MilestoneAlerts:      true,
			FeedingIntervalHours: 3,
			MinDailySleepMinutes: 720,
			QuietHoursStart:      "22:00",
			QuietHoursEnd:        "07:00",
		},
		Privacy: PrivacySettings{ShareGrowthData: true},
		Backup:  BackupSettings{AutoBackup: false, FrequencyDays: 7},
	}
}
