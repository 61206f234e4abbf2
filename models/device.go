// File: stillpoint/models/device.go
package models

import "time"

// Device is a registered mobile client.
type Device struct {
	ID           string    `bson:"id" json:"id"`
	FCMToken     string    `bson:"fcmToken" json:"fcmToken"`
	Platform     string    `bson:"platform,omitempty" json:"platform,omitempty"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
