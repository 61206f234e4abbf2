package handlers

import (
	deviceRepoPkg "stillpoint/database/repository/device"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	DeviceRepo deviceRepoPkg.DeviceRepository

	// Device endpoints
	RegisterDeviceHandler gin.HandlerFunc

	// Suggestion endpoints
	DailySuggestionHandler gin.HandlerFunc
	SkipSuggestionHandler  gin.HandlerFunc

	// Location endpoints
	NearbyPlacesHandler gin.HandlerFunc

	// Reminder endpoints
	SetReminderHandler     gin.HandlerFunc
	DisableReminderHandler gin.HandlerFunc

	// Journal endpoints
	ListJournalHandler  gin.HandlerFunc
	JournalStatsHandler gin.HandlerFunc

	// Ops endpoints
	UsageSnapshotHandler gin.HandlerFunc
	ClearCachesHandler   gin.HandlerFunc
}
