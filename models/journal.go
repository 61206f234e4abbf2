package models

import "time"

// JournalEntry records one suggestion served to a device, backing the
// app's break-history screen.
type JournalEntry struct {
	ID              string    `bson:"id" json:"id"`
	DeviceID        string    `bson:"deviceId" json:"deviceId"`
	SuggestionID    string    `bson:"suggestionId" json:"suggestionId"`
	Title           string    `bson:"title" json:"title"`
	Category        string    `bson:"category" json:"category"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Skipped         bool      `bson:"skipped" json:"skipped"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
