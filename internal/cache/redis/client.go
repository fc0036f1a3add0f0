package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oggyb/textsms-relay/internal/cache"
	"github.com/redis/go-redis/v9"
)

// Client is a thin Redis-backed implementation of the cache interface.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client with the given address, password and DB number.
func New(addr, password string, dbNumber int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNumber,
	})
	return &Client{rdb: rdb}
}

// Ping checks if Redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Set stores a value with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", cache.ErrNotFound, key)
	}
	return v, err
}

// Incr atomically increments the numeric value at key.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

var _ cache.Cache = (*Client)(nil)
