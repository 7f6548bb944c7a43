package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zfogg/harmonic-analysis/internal/logger"
	"go.uber.org/zap"
)

// RedisStore adapts a connection-pooled Redis client into the cache.Store
// interface, letting memoized analyses be shared across processes instead
// of living only in one process's LRU.
// It is never required: the interpretation service defaults to an
// in-process LRU and only uses this when a caller explicitly wires one in.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed cache store with connection
// pooling. host/port/password follow the usual Redis client conventions
// and defaults.
func NewRedisStore(host, port, password, keyPrefix string) (*RedisStore, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.ErrorWithFields("failed to connect to redis cache backend", err)
		return nil, err
	}

	logger.Log.Debug("redis cache backend connected", zap.String("address", addr))
	return &RedisStore{client: client, prefix: keyPrefix}, nil
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set implements Store. A ttl <= 0 is treated as "no expiry", matching
// redis.Client.Set's own convention.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		logger.WarnWithFields("redis cache set failed", err)
	}
}

// Len returns the number of keys under this store's prefix. It is O(n) in
// the keyspace and intended for diagnostics, not the request hot path.
func (s *RedisStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pattern := s.key("*")
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return 0
	}
	return len(keys)
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
