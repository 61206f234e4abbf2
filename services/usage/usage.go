package usage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"stillpoint/models"
	"stillpoint/utils"
)

// Tracker is the fire-and-forget monitoring sink for paid API calls.
// Implementations must never let a tracking failure reach the caller.
type Tracker interface {
	TrackPlaces(cached bool)
	TrackGemini(tokens int)
}

// RedisTracker keeps daily counters in Redis.
type RedisTracker struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisTracker(client *redis.Client, logger *zap.Logger) *RedisTracker {
	return &RedisTracker{Client: client, Logger: logger}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// counterTTL keeps stale daily counters from accumulating forever.
const counterTTL = 45 * 24 * time.Hour

func (t *RedisTracker) incr(field string, by int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := utils.UsagePrefix + field + ":" + dateKey(time.Now())
		if err := t.Client.IncrBy(ctx, key, by).Err(); err != nil {
			t.Logger.Debug("usage counter update failed", zap.String("key", key), zap.Error(err))
			return
		}
		t.Client.Expire(ctx, key, counterTTL)
	}()
}

// TrackPlaces records one places lookup; cached lookups are free and
// counted separately.
func (t *RedisTracker) TrackPlaces(cached bool) {
	if cached {
		t.incr("places_cached", 1)
		return
	}
	t.incr("places", 1)
}

// TrackGemini records one text-generation call and its token count.
func (t *RedisTracker) TrackGemini(tokens int) {
	t.incr("gemini", 1)
	if tokens > 0 {
		t.incr("gemini_tokens", int64(tokens))
	}
}

// Snapshot reads today's counters for the stats endpoint.
func (t *RedisTracker) Snapshot(ctx context.Context) (models.UsageSnapshot, error) {
	date := dateKey(time.Now())
	snap := models.UsageSnapshot{Date: date}

	read := func(field string) int64 {
		v, err := t.Client.Get(ctx, utils.UsagePrefix+field+":"+date).Int64()
		if err != nil && err != redis.Nil {
			t.Logger.Debug("usage counter read failed", zap.String("field", field), zap.Error(err))
		}
		return v
	}

	snap.PlacesCalls = read("places")
	snap.PlacesCached = read("places_cached")
	snap.GeminiCalls = read("gemini")
	snap.GeminiTokens = read("gemini_tokens")
	return snap, nil
}
