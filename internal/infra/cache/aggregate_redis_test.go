package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu/menutest"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
)

func TestCacheKeyKeepsKindAndValue(t *testing.T) {
	sub := tenant.Key{Value: "bobspizza", Kind: tenant.KindSubdomain}
	custom := tenant.Key{Value: "bobspizza", Kind: tenant.KindCustomDomain}

	assert.Equal(t, "menu-sites:aggregate:subdomain:bobspizza", cacheKey(sub))
	assert.NotEqual(t, cacheKey(sub), cacheKey(custom))
}

func TestGenerationKeyIsSeparateFromEntry(t *testing.T) {
	key := tenant.Key{Value: "bobspizza", Kind: tenant.KindSubdomain}
	assert.Equal(t, "menu-sites:generation:subdomain:bobspizza", generationKey(key))
}

// openTestRedis connects to TEST_REDIS_URL; the tests are skipped without it.
func openTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	rdb, err := NewClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestAggregateRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := openTestRedis(t)

	key := tenant.Key{Value: "cache-test-bobspizza", Kind: tenant.KindSubdomain}
	agg, err := menu.Build(menutest.Restaurant(), key)
	require.NoError(t, err)

	c := NewAggregateRedisCache(rdb, time.Minute)
	require.NoError(t, c.Invalidate(ctx, key))

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	gen, err := c.Generation(ctx, key)
	require.NoError(t, err)
	stored, err := c.Set(ctx, key, gen, agg)
	require.NoError(t, err)
	require.True(t, stored)

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, agg, got)

	require.NoError(t, c.Invalidate(ctx, key))
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAggregateRedisCache_SetAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	rdb := openTestRedis(t)

	key := tenant.Key{Value: "cache-test-race", Kind: tenant.KindSubdomain}
	agg, err := menu.Build(menutest.Restaurant(), key)
	require.NoError(t, err)

	c := NewAggregateRedisCache(rdb, time.Minute)
	gen, err := c.Generation(ctx, key)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, key))

	stored, err := c.Set(ctx, key, gen, agg)
	require.NoError(t, err)
	assert.False(t, stored)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
