package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// TokenExpiryBuffer is the window before actual expiry within which a
	// cached token is treated as already stale.
	TokenExpiryBuffer = 60 * time.Second

	tokenKeyPrefix = "session_token:"
)

// CachedToken is an access token with its expiry time.
type CachedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsValid reports whether the token is still usable, with a buffer before
// actual expiry.
func (t *CachedToken) IsValid() bool {
	if t == nil || t.Token == "" {
		return false
	}
	return time.Now().Add(TokenExpiryBuffer).Before(t.ExpiresAt)
}

// TokenCache stores access tokens between requests so every backend call
// does not cost a provider round trip.
type TokenCache interface {
	Get(ctx context.Context, uid string) (*CachedToken, error)
	Set(ctx context.Context, uid, token string, expiresIn time.Duration) error
	Delete(ctx context.Context, uid string) error
}

// MemoryTokenCache is the default in-process cache.
type MemoryTokenCache struct {
	mu     sync.Mutex
	tokens map[string]*CachedToken
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{tokens: make(map[string]*CachedToken)}
}

func (c *MemoryTokenCache) Get(ctx context.Context, uid string) (*CachedToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached := c.tokens[uid]
	if !cached.IsValid() {
		return nil, nil
	}
	return cached, nil
}

func (c *MemoryTokenCache) Set(ctx context.Context, uid, token string, expiresIn time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[uid] = &CachedToken{
		Token:     token,
		ExpiresAt: time.Now().Add(expiresIn),
	}
	return nil
}

func (c *MemoryTokenCache) Delete(ctx context.Context, uid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, uid)
	return nil
}

// RedisTokenCache shares tokens across gateway instances.
type RedisTokenCache struct {
	Client *redis.Client
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{Client: client}
}

func (c *RedisTokenCache) Get(ctx context.Context, uid string) (*CachedToken, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	tokenJSON, err := c.Client.Get(ctx, tokenKeyPrefix+uid).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var cached CachedToken
	if err := json.Unmarshal([]byte(tokenJSON), &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached token: %w", err)
	}

	if !cached.IsValid() {
		return nil, nil
	}
	return &cached, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, uid, token string, expiresIn time.Duration) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	cached := &CachedToken{
		Token:     token,
		ExpiresAt: time.Now().Add(expiresIn),
	}

	tokenJSON, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal cached token: %w", err)
	}

	// Redis TTL gets a buffer past token expiry for clock skew.
	ttl := expiresIn + TokenExpiryBuffer
	if err := c.Client.Set(ctx, tokenKeyPrefix+uid, tokenJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}
	return nil
}

func (c *RedisTokenCache) Delete(ctx context.Context, uid string) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return c.Client.Del(ctx, tokenKeyPrefix+uid).Err()
}
