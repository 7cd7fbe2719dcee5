package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix is prepended to every key
const DefaultRedisPrefix = "exnota:"

// DefaultRedisTimeout is the default per-command timeout
const DefaultRedisTimeout = 5 * time.Second

// RedisConfig configures the redis store
type RedisConfig struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
	// Prefix is prepended to every key (default: exnota:)
	Prefix string
	// Timeout is the per-command timeout (default 5s)
	Timeout time.Duration
}

// RedisStore keeps values in redis
type RedisStore struct {
	config RedisConfig
	client *goredis.Client
}

// NewRedisStore creates a redis store from the given config
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis store requires a URL")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis store: invalid URL: %w", err)
	}

	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRedisTimeout
	}

	return &RedisStore{
		config: cfg,
		client: goredis.NewClient(opts),
	}, nil
}

// Get returns the value stored under key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	v, err := s.client.Get(ctx, s.config.Prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key without expiry
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.config.Prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.config.Prefix+key).Err(); err != nil {
		return fmt.Errorf("redis: delete %s: %w", key, err)
	}
	return nil
}

// Close releases the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
