// Package cache keeps validated restaurant aggregates in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
)

const (
	keyPrefix        = "menu-sites:aggregate:"
	generationPrefix = "menu-sites:generation:"
)

// setIfCurrent writes KEYS[1] only while the generation in KEYS[2] still
// equals ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfCurrent = redis.NewScript(`
if (redis.call("GET", KEYS[2]) or "0") ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// NewClient connects to a redis:// URL and pings it.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// AggregateRedisCache stores aggregates under the exact tenant key, so a
// subdomain and a custom domain of the same restaurant are separate entries.
type AggregateRedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAggregateRedisCache(rdb *redis.Client, ttl time.Duration) *AggregateRedisCache {
	return &AggregateRedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(key tenant.Key) string {
	return keyPrefix + key.String()
}

func generationKey(key tenant.Key) string {
	return generationPrefix + key.String()
}

func (c *AggregateRedisCache) Get(
	ctx context.Context,
	key tenant.Key,
) (*menu.Aggregate, bool, error) {

	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var agg menu.Aggregate
	if err := json.Unmarshal(raw, &agg); err != nil {
		// A stale encoding is treated as a miss and overwritten on the next set.
		return nil, false, nil
	}
	return &agg, true, nil
}

// Generation is bumped by every Invalidate of key. A fetch reads it first
// and hands it back to Set.
func (c *AggregateRedisCache) Generation(ctx context.Context, key tenant.Key) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores agg unless key was invalidated after gen was read, in which
// case the aggregate may predate the change and is dropped.
func (c *AggregateRedisCache) Set(
	ctx context.Context,
	key tenant.Key,
	gen int64,
	agg *menu.Aggregate,
) (bool, error) {

	raw, err := json.Marshal(agg)
	if err != nil {
		return false, err
	}

	stored, err := setIfCurrent.Run(ctx, c.rdb,
		[]string{cacheKey(key), generationKey(key)},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate drops the entries of every key a restaurant can be reached by
// and bumps their generations so in-flight fetches cannot write them back.
func (c *AggregateRedisCache) Invalidate(ctx context.Context, keys ...tenant.Key) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, generationKey(k))
			pipe.Del(ctx, cacheKey(k))
		}
		return nil
	})
	return err
}
