package handlers

import (
	"net/http"
	"time"

	deviceRepo "stillpoint/database/repository/device"
	"stillpoint/models"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// deviceTokenTTL is how long an issued device token remains valid.
const deviceTokenTTL = 90 * 24 * time.Hour

// DeviceHandler serves device registration endpoints.
type DeviceHandler struct {
	Devices deviceRepo.DeviceRepository
}

// RegisterDeviceRequest is the expected input for device registration.
type RegisterDeviceRequest struct {
	DeviceID string `json:"deviceId"`
	FCMToken string `json:"fcmToken"`
	Platform string `json:"platform" binding:"required,oneof=ios android"`
}

// RegisterDeviceHandler handles POST /api/devices/register. Registration is
// idempotent: posting an existing device ID refreshes its FCM token and
// returns a fresh auth token.
func (h *DeviceHandler) RegisterDeviceHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid device registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if req.DeviceID == "" {
		req.DeviceID = uuid.New().String()
	}

	now := time.Now().UTC()
	device := &models.Device{
		ID:           req.DeviceID,
		FCMToken:     req.FCMToken,
		Platform:     req.Platform,
		RegisteredAt: now,
		UpdatedAt:    now,
	}
	if err := h.Devices.Upsert(device); err != nil {
		logger.Error("Failed to register device", zap.String("deviceID", req.DeviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device"})
		return
	}

	token, err := utils.GenerateDeviceToken(req.DeviceID, deviceTokenTTL)
	if err != nil {
		logger.Error("Failed to issue device token", zap.String("deviceID", req.DeviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deviceId": req.DeviceID,
		"token":    token,
	})
}
