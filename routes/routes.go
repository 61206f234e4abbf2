package routes

import (
	"net/http"
	"time"

	"stillpoint/handlers"
	"stillpoint/middleware"
	"stillpoint/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDeviceRoutes registers device registration endpoints.
func RegisterDeviceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/devices")
	{
		api.POST("/register", hb.RegisterDeviceHandler)
	}
}

// RegisterSuggestionRoutes registers micro-break suggestion endpoints.
func RegisterSuggestionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/suggestions")
	{
		api.Use(middleware.DeviceAuthMiddleware(hb.DeviceRepo))
		api.GET("/daily", hb.DailySuggestionHandler)
		api.POST("/skip", hb.SkipSuggestionHandler)
	}
}

// RegisterLocationRoutes registers nearby-location endpoints.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/locations")
	{
		api.Use(middleware.DeviceAuthMiddleware(hb.DeviceRepo))
		api.GET("/nearby", hb.NearbyPlacesHandler)
	}
}

// RegisterReminderRoutes registers reminder preference endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.DeviceAuthMiddleware(hb.DeviceRepo))
		api.PUT("", hb.SetReminderHandler)
		api.DELETE("", hb.DisableReminderHandler)
	}
}

// RegisterJournalRoutes registers break journal endpoints.
func RegisterJournalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/journal")
	{
		api.Use(middleware.DeviceAuthMiddleware(hb.DeviceRepo))
		api.GET("", hb.ListJournalHandler)
		api.GET("/stats", hb.JournalStatsHandler)
	}
}

// RegisterOpsRoutes registers operational endpoints.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/usage", hb.UsageSnapshotHandler)
		api.POST("/cache/clear", hb.ClearCachesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Stillpoint",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterDeviceRoutes(r, hb)
	RegisterSuggestionRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
	RegisterJournalRoutes(r, hb)
	RegisterOpsRoutes(r, hb)
	RegisterHealthRoute(r)
}
