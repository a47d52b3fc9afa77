package database

import (
	"context"
	"fmt"
	"strings"

	"Backend-Retreat-Survey/src/logging"

	"github.com/redis/go-redis/v9"
)

// RedisOptions accepts either a bare host:port or a redis:// URL.
func RedisOptions(uri string) (*redis.Options, error) {
	if strings.Contains(uri, "://") {
		return redis.ParseURL(uri)
	}
	return &redis.Options{Addr: uri}, nil
}

// NewRedis builds a client and checks it with PING.
func NewRedis(ctx context.Context, uri string) (*redis.Client, error) {
	opts, err := RedisOptions(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URI: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect Redis: %w", err)
	}

	logging.Infof("[database] Redis connected addr=%s", opts.Addr)
	return client, nil
}
