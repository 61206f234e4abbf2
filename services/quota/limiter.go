package quota

import (
	"context"
	"sync"
	"time"
)

// apiLimit is a registered quota for one named API.
type apiLimit struct {
	max    int
	window time.Duration
}

// Limiter enforces per-API request quotas over a sliding window. Unlike the
// per-IP HTTP middleware, this limiter never rejects: Wait blocks the caller
// until the named API is under its quota, then records the request.
type Limiter struct {
	mu     sync.Mutex
	limits map[string]apiLimit
	log    map[string][]time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter creates a Limiter with no registered quotas. APIs without a
// registered quota pass through Wait immediately.
func NewLimiter() *Limiter {
	return &Limiter{
		limits: make(map[string]apiLimit),
		log:    make(map[string][]time.Time),
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SetLimit registers or overwrites the quota for a named API. This is pure
// configuration; nothing is counted until Wait is called. A non-positive
// max would leave Wait with no slot to ever hand out, so it is clamped to
// one request per window.
func (l *Limiter) SetLimit(api string, max int, window time.Duration) {
	if max <= 0 {
		max = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits[api] = apiLimit{max: max, window: window}
}

// Wait blocks until the named API is under its quota, records the request
// and returns. It is an explicit loop rather than a recursive re-check so a
// pathological quota cannot grow the call stack. The only early return is
// context cancellation.
func (l *Limiter) Wait(ctx context.Context, api string) error {
	for {
		l.mu.Lock()
		limit, ok := l.limits[api]
		if !ok {
			l.mu.Unlock()
			return nil
		}

		now := l.now()
		cutoff := now.Add(-limit.window)
		kept := l.log[api][:0]
		for _, ts := range l.log[api] {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		l.log[api] = kept

		if len(kept) < limit.max {
			l.log[api] = append(l.log[api], now)
			l.mu.Unlock()
			return nil
		}

		// Over quota: wait until the oldest retained request ages out,
		// then re-evaluate from scratch.
		wait := kept[0].Add(limit.window).Sub(now)
		l.mu.Unlock()

		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}
