package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yol1/scoring-system/internal/core/domain"
)

const defaultScoreTTL = 24 * time.Hour

// ScoreCache is a read-through cache for stored scores backed by Redis.
// Scores never change once persisted, so entries only expire to bound memory.
// Key format: score:<code>
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreCache creates a ScoreCache. A non-positive ttl selects defaultScoreTTL.
func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = defaultScoreTTL
	}
	return &ScoreCache{client: client, ttl: ttl}
}

// Get returns the cached value for code; found is false on a miss.
func (c *ScoreCache) Get(ctx context.Context, code string) (int, bool, error) {
	v, err := c.client.Get(ctx, c.key(code)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("score cache get: %w", err)
	}
	return v, true, nil
}

// Set stores the score value. Existing keys are left alone.
func (c *ScoreCache) Set(ctx context.Context, score *domain.Score) error {
	if err := c.client.SetNX(ctx, c.key(score.Code), score.Value, c.ttl).Err(); err != nil {
		return fmt.Errorf("score cache set: %w", err)
	}
	return nil
}

func (c *ScoreCache) key(code string) string {
	return "score:" + code
}
