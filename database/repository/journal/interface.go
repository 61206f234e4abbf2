package journalRepo

import "stillpoint/models"

// JournalRepository records suggestions served to devices.
type JournalRepository interface {
	Add(entry *models.JournalEntry) error
	ListByDevice(deviceID string, limit int) ([]models.JournalEntry, error)
	CountByCategory(deviceID string) (map[string]int64, error)
}
