package middleware

import (
	"net/http"
	"strings"

	deviceRepo "stillpoint/database/repository/device"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
)

// DeviceAuthMiddleware validates the bearer token and verifies that the
// device it was issued to is still registered. The device ID is placed in
// the request context under "deviceID".
func DeviceAuthMiddleware(devices deviceRepo.DeviceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		deviceID, err := utils.ExtractDeviceIDFromToken(tokenString)
		if err != nil || deviceID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		dev, err := devices.GetByID(deviceID)
		if err != nil || dev == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown device",
				"code":  0,
			})
			return
		}

		c.Set("deviceID", deviceID)
		c.Next()
	}
}
