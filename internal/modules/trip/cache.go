// README: Redis read-through cache for customer trip statistics.
package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"tripdesk/internal/types"
)

const statsKeyPrefix = "trip:stats:%s"

// StatsCache is best effort: a miss or a redis failure falls back to the
// store, never to an error for the caller.
type StatsCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStatsCache(redis *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{redis: redis, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context, customerID types.ID) (*Stats, bool) {
	raw, err := c.redis.Get(ctx, statsKey(customerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Debug("stats cache read failed")
		}
		return nil, false
	}
	var st Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, false
	}
	return &st, true
}

func (c *StatsCache) Set(ctx context.Context, customerID types.ID, st *Stats) {
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, statsKey(customerID), raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("stats cache write failed")
	}
}

// Invalidate drops the cached buckets after any mutation that changes a
// customer's status counts.
func (c *StatsCache) Invalidate(ctx context.Context, customerID types.ID) {
	if err := c.redis.Del(ctx, statsKey(customerID)).Err(); err != nil {
		logrus.WithError(err).Debug("stats cache invalidate failed")
	}
}

func statsKey(customerID types.ID) string {
	return fmt.Sprintf(statsKeyPrefix, customerID)
}
