package history

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"stillpoint/utils"
)

// DefaultCapacity bounds how many recently shown place IDs are remembered.
const DefaultCapacity = 10

// RecentHistory is a bounded set of place IDs recently shown to the user.
// It feeds the novelty score only; membership never excludes a place. The
// set is mirrored in memory for the process lifetime and persisted to Redis
// so it survives restarts. Storage failures are logged and ignored; a cold
// history is always safe.
type RecentHistory struct {
	client   *redis.Client
	key      string
	capacity int
	logger   *zap.Logger

	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
}

// NewRecentHistory builds the store and loads any persisted IDs. client may
// be nil for a purely in-memory history (tests).
func NewRecentHistory(client *redis.Client, capacity int, logger *zap.Logger) *RecentHistory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := &RecentHistory{
		client:   client,
		key:      utils.HistoryKey,
		capacity: capacity,
		logger:   logger,
		ids:      make(map[string]struct{}, capacity),
	}
	h.load()
	return h
}

func (h *RecentHistory) load() {
	if h.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ids, err := h.client.LRange(ctx, h.key, 0, int64(h.capacity)-1).Result()
	if err != nil {
		h.logger.Warn("failed to load recent location history", zap.Error(err))
		return
	}
	// Redis holds newest first; order keeps oldest first.
	for i := len(ids) - 1; i >= 0; i-- {
		h.ids[ids[i]] = struct{}{}
		h.order = append(h.order, ids[i])
	}
}

// Contains reports whether the place ID was recently shown.
func (h *RecentHistory) Contains(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.ids[id]
	return ok
}

// Record adds a place ID, evicting the oldest entry at capacity.
func (h *RecentHistory) Record(ctx context.Context, id string) {
	h.mu.Lock()
	if _, ok := h.ids[id]; ok {
		h.mu.Unlock()
		return
	}
	h.ids[id] = struct{}{}
	h.order = append(h.order, id)
	if len(h.order) > h.capacity {
		oldest := h.order[0]
		h.order = h.order[1:]
		delete(h.ids, oldest)
	}
	h.mu.Unlock()

	if h.client == nil {
		return
	}
	pipe := h.client.TxPipeline()
	pipe.LPush(ctx, h.key, id)
	pipe.LTrim(ctx, h.key, 0, int64(h.capacity)-1)
	if _, err := pipe.Exec(ctx); err != nil {
		h.logger.Warn("failed to persist recent location history", zap.Error(err))
	}
}

// Clear drops the history in memory and in Redis.
func (h *RecentHistory) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.ids = make(map[string]struct{}, h.capacity)
	h.order = nil
	h.mu.Unlock()

	if h.client == nil {
		return nil
	}
	return h.client.Del(ctx, h.key).Err()
}
