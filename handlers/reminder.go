package handlers

import (
	"net/http"
	"time"

	"stillpoint/cron"
	prefsRepo "stillpoint/database/repository/prefs"
	"stillpoint/models"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler serves reminder preference endpoints.
type ReminderHandler struct {
	Prefs     prefsRepo.PrefsRepository
	Scheduler *cron.ReminderScheduler
}

// SetReminderRequest is the expected input for setting a daily reminder.
type SetReminderRequest struct {
	Hour     int    `json:"hour" binding:"min=0,max=23"`
	Minute   int    `json:"minute" binding:"min=0,max=59"`
	Timezone string `json:"timezone" binding:"required"`
}

// SetReminderHandler handles PUT /api/reminders. It stores the preference
// and schedules the next delivery.
func (h *ReminderHandler) SetReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	deviceID, ok := requestDeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing device identity"})
		return
	}

	var req SetReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reminder request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown timezone: " + req.Timezone})
		return
	}

	prefs := &models.ReminderPrefs{
		DeviceID:  deviceID,
		Enabled:   true,
		Hour:      req.Hour,
		Minute:    req.Minute,
		Timezone:  req.Timezone,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.Prefs.Upsert(prefs); err != nil {
		logger.Error("Failed to store reminder prefs", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reminder"})
		return
	}

	fireAt, err := h.Scheduler.ScheduleNext(prefs)
	if err != nil {
		logger.Error("Failed to schedule reminder", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reminder scheduled",
		"nextFire": fireAt.UTC().Format(time.RFC3339),
	})
}

// DisableReminderHandler handles DELETE /api/reminders. The stored
// preference is marked disabled; any task already queued is dropped by the
// worker when it fires.
func (h *ReminderHandler) DisableReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	deviceID, ok := requestDeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing device identity"})
		return
	}

	if err := h.Prefs.Disable(deviceID); err != nil {
		logger.Error("Failed to disable reminder", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder disabled"})
}
