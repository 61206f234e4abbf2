package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Per-IP HTTP rate limit.
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisHistoryDB       int    `mapstructure:"REDIS_HISTORY_DB"`
	RedisStatsDB         int    `mapstructure:"REDIS_STATS_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google Places API key (used by both the modern and legacy endpoints).
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Gemini API key for suggestion text generation.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Outbound API quotas, enforced by the blocking limiter.
	PlacesMaxRequests int `mapstructure:"PLACES_MAX_REQUESTS"`
	PlacesWindowSec   int `mapstructure:"PLACES_WINDOW_SEC"`
	GeminiMaxRequests int `mapstructure:"GEMINI_MAX_REQUESTS"`
	GeminiWindowSec   int `mapstructure:"GEMINI_WINDOW_SEC"`

	// Cache lifetimes. Places results stay fresh for hours; suggestion
	// text expires in about a minute to preserve variety.
	PlacesCacheTTLHours   int `mapstructure:"PLACES_CACHE_TTL_HOURS"`
	SuggestionCacheTTLSec int `mapstructure:"SUGGESTION_CACHE_TTL_SEC"`

	// Path to the Firebase service account key for FCM pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_HISTORY_DB", 1)
	viper.SetDefault("REDIS_STATS_DB", 2)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("PLACES_MAX_REQUESTS", 30)
	viper.SetDefault("PLACES_WINDOW_SEC", 60)
	viper.SetDefault("GEMINI_MAX_REQUESTS", 10)
	viper.SetDefault("GEMINI_WINDOW_SEC", 60)
	viper.SetDefault("PLACES_CACHE_TTL_HOURS", 6)
	viper.SetDefault("SUGGESTION_CACHE_TTL_SEC", 60)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
