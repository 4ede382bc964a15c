package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/locagest-api/internal/config"
)

type Client struct {
	Client *redis.Client // Exposé pour les services qui pilotent leurs propres clés
}

// NewClient creates a new Redis client
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Get retrieves a value from Redis
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set sets a value in Redis with expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// Delete removes keys from Redis
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// GetTenantID retrieves the tenant id cached for a slug
func (c *Client) GetTenantID(ctx context.Context, slug string) (string, error) {
	return c.Get(ctx, fmt.Sprintf("tenant:slug:%s", slug))
}

// SetTenantID caches the tenant id for a slug
func (c *Client) SetTenantID(ctx context.Context, slug, tenantID string, expiration time.Duration) error {
	return c.Set(ctx, fmt.Sprintf("tenant:slug:%s", slug), tenantID, expiration)
}

// InvalidateTenant removes cached data for a tenant slug
func (c *Client) InvalidateTenant(ctx context.Context, slug string) error {
	return c.Delete(ctx, fmt.Sprintf("tenant:slug:%s", slug))
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.Client.Close()
}
