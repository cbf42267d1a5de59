package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/platform/metrics"
	"roadside-dispatch-service/internal/platform/obs"
	"roadside-dispatch-service/internal/ports"
)

const distanceKeyPrefix = "distance:"

// RedisDistanceCache is a Redis-backed cache for origin->destination distance results.
// Keys embed both coordinates at fixed precision, so a moved provider is a miss.
type RedisDistanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client, TTL: ttl}
}

func distanceKey(origin, destination domain.Coordinates) string {
	return distanceKeyPrefix + origin.Key() + "|" + destination.Key()
}

// Fetch cached distances for one origin and multiple destinations.
func (c *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("distance cache: redis client is nil")
	}

	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]domain.Coordinates, 0, len(destinations))
	keys := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if _, ok := seen[d.Key()]; ok {
			continue
		}
		seen[d.Key()] = struct{}{}
		uniq = append(uniq, d)
		keys = append(keys, distanceKey(origin, d))
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get distance cache: mget: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			metrics.DistanceCacheLookups.WithLabelValues("miss").Inc()
			continue
		}

		var r ports.DistanceResult
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			// A corrupt entry is treated as a miss and overwritten on the next put.
			metrics.DistanceCacheLookups.WithLabelValues("miss").Inc()
			continue
		}
		metrics.DistanceCacheLookups.WithLabelValues("hit").Inc()
		out[uniq[i].Key()] = r
	}

	return out, nil
}

// Store many cached distance results for a single origin.
// Results are keyed by destination Coordinates.Key().
func (c *RedisDistanceCache) PutMany(
	ctx context.Context,
	origin domain.Coordinates,
	results map[string]ports.DistanceResult,
) error {
	if c.Client == nil {
		return errors.New("distance cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for destKey, r := range results {
		if destKey == "" {
			return fmt.Errorf("insert distance cache: empty destination key")
		}

		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("insert distance cache dest=%q: marshal: %w", destKey, err)
		}
		pipe.Set(ctx, distanceKeyPrefix+origin.Key()+"|"+destKey, b, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert distance cache: exec pipeline: %w", err)
	}

	return nil
}
