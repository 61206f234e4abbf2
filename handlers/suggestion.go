package handlers

import (
	"net/http"
	"strconv"

	"stillpoint/models"
	"stillpoint/services/suggestion"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuggestionHandler serves micro-break suggestion endpoints.
type SuggestionHandler struct {
	Suggestions suggestion.Service
}

// parseOptionalCoordinate reads lat/lng query parameters. Both must be
// present and valid for a coordinate to be returned; anything else yields
// nil and the suggestion is served without location enrichment.
func parseOptionalCoordinate(c *gin.Context) *models.LatLng {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &models.LatLng{Latitude: lat, Longitude: lng}
}

func requestDeviceID(c *gin.Context) (string, bool) {
	val, exists := c.Get("deviceID")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// DailySuggestionHandler handles GET /api/suggestions/daily.
func (h *SuggestionHandler) DailySuggestionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	deviceID, ok := requestDeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing device identity"})
		return
	}

	loc := parseOptionalCoordinate(c)
	sugg, err := h.Suggestions.Daily(c.Request.Context(), deviceID, loc)
	if err != nil {
		logger.Error("Failed to produce daily suggestion", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to produce suggestion"})
		return
	}
	c.JSON(http.StatusOK, sugg)
}

// SkipSuggestionHandler handles POST /api/suggestions/skip.
func (h *SuggestionHandler) SkipSuggestionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	deviceID, ok := requestDeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing device identity"})
		return
	}

	loc := parseOptionalCoordinate(c)
	sugg, err := h.Suggestions.Skip(c.Request.Context(), deviceID, loc)
	if err != nil {
		logger.Error("Failed to produce replacement suggestion", zap.String("deviceID", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to produce suggestion"})
		return
	}
	c.JSON(http.StatusOK, sugg)
}
