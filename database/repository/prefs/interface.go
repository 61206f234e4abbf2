package prefsRepo

import "stillpoint/models"

// PrefsRepository stores per-device reminder preferences.
type PrefsRepository interface {
	Upsert(prefs *models.ReminderPrefs) error
	GetByDeviceID(deviceID string) (*models.ReminderPrefs, error)
	Disable(deviceID string) error
}
