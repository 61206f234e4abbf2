package handlers

import (
	"net/http"
	"strconv"

	journalRepo "stillpoint/database/repository/journal"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JournalHandler serves the break journal endpoints.
type JournalHandler struct {
	Journal journalRepo.JournalRepository
}

// ListJournalHandler handles GET /api/journal. Optional query parameter
// limit (default 30, max 100).
func (h *JournalHandler) ListJournalHandler(c *gin.Context) {
	logger := utils.GetLogger()

	deviceID, ok := requestDeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing device identity"})
		return
	}

	limit := 30
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.Journal.ListByDevice(deviceID, limit)
	if err != nil {
		logger.Error("Failed to list journal", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// JournalStatsHandler handles GET /api/journal/stats, returning per-category
// counts of suggestions served to the device.
func (h *JournalHandler) JournalStatsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	deviceID, ok := requestDeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing device identity"})
		return
	}

	counts, err := h.Journal.CountByCategory(deviceID)
	if err != nil {
		logger.Error("Failed to compute journal stats", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"byCategory": counts})
}
