package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL keeps leaderboard views slightly stale rather than hammering the
// standings query on every request.
const cacheTTL = 60 * time.Second

// Cache memoizes ranked windows in Redis. A nil client disables caching.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func cacheKey(userID int64, size int) string {
	return fmt.Sprintf("leaderboard:window:%d:%d", userID, size)
}

// Get returns the cached window for the learner, or ok=false on miss,
// disabled cache, or any Redis error.
func (c *Cache) Get(ctx context.Context, userID int64, size int) ([]RankedEntry, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, cacheKey(userID, size)).Bytes()
	if err != nil {
		return nil, false
	}

	var window []RankedEntry
	if err := json.Unmarshal(raw, &window); err != nil {
		return nil, false
	}
	return window, true
}

// Set stores the window with the standard TTL. Errors are swallowed; the
// cache is best effort.
func (c *Cache) Set(ctx context.Context, userID int64, size int, window []RankedEntry) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(window)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(userID, size), raw, cacheTTL)
}
