package repository

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to addr, which may be a bare host:port or a redis:// URL.
// An empty addr disables Redis and returns a nil client.
func InitRedis(addr string, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		if password != "" {
			parsed.Password = password
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}
