package store

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pancyguard:"

// RedisBackend stores each guild blob as a string key "pancyguard:<kind>:<guild>".
// SET replaces the value atomically.
type RedisBackend struct {
	rdb *goredis.Client
}

// NewRedisBackend creates a Redis backend from a URL and verifies the connection.
func NewRedisBackend(redisURL string) (*RedisBackend, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	rdb := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RedisBackend{rdb: rdb}, nil
}

func redisKey(kind Kind, guildID string) string {
	return redisKeyPrefix + string(kind) + ":" + guildID
}

func (r *RedisBackend) Load(ctx context.Context, kind Kind, guildID string) ([]byte, bool, error) {
	raw, err := r.rdb.Get(ctx, redisKey(kind, guildID)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get", kind, guildID, err)
	}
	return raw, true, nil
}

func (r *RedisBackend) Save(ctx context.Context, kind Kind, guildID string, data []byte) error {
	if err := r.rdb.Set(ctx, redisKey(kind, guildID), data, 0).Err(); err != nil {
		return unavailable("set", kind, guildID, err)
	}
	return nil
}

func (r *RedisBackend) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	err := r.rdb.Ping(ctx).Err()
	return time.Since(start), err
}

func (r *RedisBackend) Name() string {
	return "redis"
}

func (r *RedisBackend) Close(context.Context) error {
	return r.rdb.Close()
}
