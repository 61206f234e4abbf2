// File: stillpoint/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stillpoint/config"
	"stillpoint/cron"
	"stillpoint/database"
	deviceRepoPkg "stillpoint/database/repository/device"
	journalRepoPkg "stillpoint/database/repository/journal"
	prefsRepoPkg "stillpoint/database/repository/prefs"
	"stillpoint/handlers"
	"stillpoint/routes"
	"stillpoint/services/history"
	ai "stillpoint/services/intelligence"
	"stillpoint/services/notification"
	"stillpoint/services/places"
	"stillpoint/services/quota"
	"stillpoint/services/selection"
	"stillpoint/services/suggestion"
	"stillpoint/services/usage"
	"stillpoint/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":   utils.GetCacheClient(),
		"history": utils.GetHistoryClient(),
		"stats":   utils.GetStatsClient(),
	}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	deviceRepo := deviceRepoPkg.NewMongoDeviceRepo()
	prefsRepo := prefsRepoPkg.NewMongoPrefsRepo()
	journalRepo := journalRepoPkg.NewMongoJournalRepo()

	// shared quota machinery.
	limiter := quota.NewLimiter()
	limiter.SetLimit(places.LimiterAPI,
		config.AppConfig.PlacesMaxRequests,
		time.Duration(config.AppConfig.PlacesWindowSec)*time.Second)
	limiter.SetLimit(suggestion.LimiterAPI,
		config.AppConfig.GeminiMaxRequests,
		time.Duration(config.AppConfig.GeminiWindowSec)*time.Second)

	placesCache := quota.NewRequestCache("places",
		time.Duration(config.AppConfig.PlacesCacheTTLHours)*time.Hour,
		time.Hour,
		utils.GetCacheClient(), utils.PlacesCachePrefix, logger)
	aiCache := quota.NewRequestCache("ai",
		time.Duration(config.AppConfig.SuggestionCacheTTLSec)*time.Second,
		time.Duration(config.AppConfig.SuggestionCacheTTLSec)*time.Second,
		utils.GetCacheClient(), utils.SuggestionCachePrefix, logger)

	// services.
	usageTracker := usage.NewRedisTracker(utils.GetStatsClient(), logger)
	gateway := places.NewGoogleGateway(config.AppConfig.GoogleAPIKey, placesCache, limiter, usageTracker, logger)
	recentHistory := history.NewRecentHistory(utils.GetHistoryClient(), history.DefaultCapacity, logger)
	engine := selection.NewEngine(gateway, recentHistory, logger)

	geminiClient, err := ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	suggestionService := suggestion.NewDefaultSuggestionService(
		geminiClient, aiCache, limiter, engine, journalRepo, usageTracker, logger)

	notificationService, err := notification.NewDefaultNotificationService(deviceRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderScheduler := cron.NewReminderScheduler()
	defer reminderScheduler.Close()
	cron.InitReminderWorker(notificationService, prefsRepo, reminderScheduler)

	// handlers.
	deviceHandler := &handlers.DeviceHandler{Devices: deviceRepo}
	suggestionHandler := &handlers.SuggestionHandler{Suggestions: suggestionService}
	placesHandler := &handlers.PlacesHandler{Gateway: gateway}
	reminderHandler := &handlers.ReminderHandler{Prefs: prefsRepo, Scheduler: reminderScheduler}
	journalHandler := &handlers.JournalHandler{Journal: journalRepo}
	usageHandler := &handlers.UsageHandler{Usage: usageTracker}
	cacheHandler := &handlers.CacheHandler{PlacesCache: placesCache, AICache: aiCache, History: recentHistory}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		DeviceRepo: deviceRepo,

		RegisterDeviceHandler: deviceHandler.RegisterDeviceHandler,

		DailySuggestionHandler: suggestionHandler.DailySuggestionHandler,
		SkipSuggestionHandler:  suggestionHandler.SkipSuggestionHandler,

		NearbyPlacesHandler: placesHandler.NearbyPlacesHandler,

		SetReminderHandler:     reminderHandler.SetReminderHandler,
		DisableReminderHandler: reminderHandler.DisableReminderHandler,

		ListJournalHandler:  journalHandler.ListJournalHandler,
		JournalStatsHandler: journalHandler.JournalStatsHandler,

		UsageSnapshotHandler: usageHandler.UsageSnapshotHandler,
		ClearCachesHandler:   cacheHandler.ClearCachesHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
