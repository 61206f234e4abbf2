// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"stillpoint/config"
)

var (
	// CacheClient backs the places and suggestion request caches.
	CacheClient *redis.Client
	// HistoryClient backs the recently-shown location history.
	HistoryClient *redis.Client
	// StatsClient backs the daily API usage counters.
	StatsClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes every Redis client the service uses.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	HistoryClient = newRedisClient(config.AppConfig.RedisHistoryDB)
	StatsClient = newRedisClient(config.AppConfig.RedisStatsDB)
}

// GetCacheClient returns the request cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	}
	return CacheClient
}

// GetHistoryClient returns the location history client.
func GetHistoryClient() *redis.Client {
	if HistoryClient == nil {
		HistoryClient = newRedisClient(config.AppConfig.RedisHistoryDB)
	}
	return HistoryClient
}

// GetStatsClient returns the usage counter client.
func GetStatsClient() *redis.Client {
	if StatsClient == nil {
		StatsClient = newRedisClient(config.AppConfig.RedisStatsDB)
	}
	return StatsClient
}
