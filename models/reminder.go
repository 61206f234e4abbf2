package models

import "time"

// ReminderPrefs is a device's daily reminder schedule.
type ReminderPrefs struct {
	DeviceID  string    `bson:"deviceId" json:"deviceId"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	Hour      int       `bson:"hour" json:"hour"`
	Minute    int       `bson:"minute" json:"minute"`
	Timezone  string    `bson:"timezone" json:"timezone"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReminderPayload travels inside the queued reminder task.
type ReminderPayload struct {
	DeviceID string `json:"deviceId"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	FireDate string `json:"fireDate"`
}
