package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly-gateway/internal/auth"
)

func TestCachedTokenValidity(t *testing.T) {
	var nilToken *auth.CachedToken
	assert.False(t, nilToken.IsValid())
	assert.False(t, (&auth.CachedToken{}).IsValid())

	fresh := &auth.CachedToken{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, fresh.IsValid())

	// Within the expiry buffer counts as stale.
	nearlyExpired := &auth.CachedToken{Token: "tok", ExpiresAt: time.Now().Add(auth.TokenExpiryBuffer / 2)}
	assert.False(t, nearlyExpired.IsValid())

	expired := &auth.CachedToken{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
	assert.False(t, expired.IsValid())
}

func TestMemoryTokenCache(t *testing.T) {
	ctx := context.Background()
	cache := auth.NewMemoryTokenCache()

	cached, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, cache.Set(ctx, "u1", "tok-1", time.Hour))

	cached, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "tok-1", cached.Token)

	// A token inside the expiry buffer reads back as a miss.
	require.NoError(t, cache.Set(ctx, "u2", "tok-2", auth.TokenExpiryBuffer/2))
	cached, err = cache.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, cache.Delete(ctx, "u1"))
	cached, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisTokenCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	ctx := context.Background()
	cache := auth.NewRedisTokenCache(client)

	cached, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, cache.Set(ctx, "u1", "tok-1", time.Hour))

	cached, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "tok-1", cached.Token)

	require.NoError(t, cache.Delete(ctx, "u1"))
	cached, err = cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisTokenCacheRequiresClient(t *testing.T) {
	ctx := context.Background()
	cache := &auth.RedisTokenCache{}

	_, err := cache.Get(ctx, "u1")
	assert.Error(t, err)
	assert.Error(t, cache.Set(ctx, "u1", "tok", time.Hour))
	assert.Error(t, cache.Delete(ctx, "u1"))
}
