package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"stillpoint/services/places"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlacesHandler exposes the raw nearby-places lookup.
type PlacesHandler struct {
	Gateway places.Gateway
}

// NearbyPlacesHandler handles GET /api/locations/nearby. Required query
// parameters: lat, lng. Optional: radius (meters), types (comma separated),
// maxResults, bypassCache.
func (h *PlacesHandler) NearbyPlacesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing lat/lng"})
		return
	}

	radius := 1500
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 50000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
			return
		}
		radius = parsed
	}

	maxResults := 20
	if raw := c.Query("maxResults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxResults"})
			return
		}
		maxResults = parsed
	}

	var types []string
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	req := places.SearchRequest{
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: radius,
		Types:        types,
		MaxResults:   maxResults,
		BypassCache:  c.Query("bypassCache") == "true",
	}

	results, err := h.Gateway.SearchNearby(c.Request.Context(), req)
	if err != nil {
		logger.Error("Nearby places lookup failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Places lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(results),
		"places": results,
	})
}
