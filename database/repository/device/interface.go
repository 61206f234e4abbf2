package deviceRepo

import "stillpoint/models"

// DeviceRepository manages registered mobile clients.
type DeviceRepository interface {
	Upsert(device *models.Device) error
	GetByID(id string) (*models.Device, error)
	UpdateFCMToken(id, token string) error
	Delete(id string) error
}
