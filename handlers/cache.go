package handlers

import (
	"errors"
	"net/http"

	"stillpoint/services/history"
	"stillpoint/services/quota"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheHandler serves the operational cache-reset endpoint.
type CacheHandler struct {
	PlacesCache *quota.RequestCache
	AICache     *quota.RequestCache
	History     *history.RecentHistory
}

// ClearCachesHandler handles POST /api/cache/clear. All three stores are
// attempted even when an earlier one fails; failures are joined into one
// error response.
func (h *CacheHandler) ClearCachesHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ctx := c.Request.Context()

	err := errors.Join(
		h.PlacesCache.Clear(ctx),
		h.AICache.Clear(ctx),
		h.History.Clear(ctx),
	)
	if err != nil {
		logger.Error("Cache clear incomplete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache clear incomplete: " + err.Error()})
		return
	}

	logger.Info("Caches cleared")
	c.JSON(http.StatusOK, gin.H{"message": "Caches cleared"})
}
