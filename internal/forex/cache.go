package forex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"declara/internal/port"
)

// CachedProvider memoizes quotes in Redis so repeated previews inside the
// cache window do not burn the external API's request quota. Cache failures
// degrade to a direct fetch, never to an error.
type CachedProvider struct {
	inner port.RateProvider
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedProvider wraps a provider with a Redis cache.
func NewCachedProvider(inner port.RateProvider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(base, quote string) string {
	return fmt.Sprintf("forex:rate:%s:%s", base, quote)
}

func (c *CachedProvider) Rate(ctx context.Context, base, quote string, asOf time.Time) (*port.RateQuote, error) {
	key := cacheKey(base, quote)

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached port.RateQuote
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			cached.Source += " (cached)"
			return &cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("forex.CachedProvider: cache read failed, fetching live: %v", err)
	}

	q, err := c.inner.Rate(ctx, base, quote, asOf)
	if err != nil {
		return nil, err
	}

	if payload, merr := json.Marshal(q); merr == nil {
		if serr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			log.Printf("forex.CachedProvider: cache write failed: %v", serr)
		}
	}
	return q, nil
}
