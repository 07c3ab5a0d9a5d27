package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrConnect - префикс ошибки подключения.
const ErrConnect = "failed to connect to redis"

// NewClient создает клиент go-redis и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	return rdb, nil
}
