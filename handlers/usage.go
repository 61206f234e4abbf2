package handlers

import (
	"net/http"

	"stillpoint/services/usage"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UsageHandler exposes the daily API usage counters.
type UsageHandler struct {
	Usage *usage.RedisTracker
}

// UsageSnapshotHandler handles GET /api/usage.
func (h *UsageHandler) UsageSnapshotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	snap, err := h.Usage.Snapshot(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read usage counters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read usage"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
