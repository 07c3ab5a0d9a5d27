// Package redis реализует хранилище ключ-значение на Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
)

// Константы для логирования и ошибок.
const (
	LogMethodGet = "get"
	LogMethodSet = "set"

	ErrorFailedToGet   = "failed to get value from redis"
	ErrorFailedToSet   = "failed to set value in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// KV реализует storage.KV. Значения хранятся без TTL.
type KV struct {
	client redis.UniversalClient
	prefix string
}

var _ storage.KV = (*KV)(nil)

// New оборачивает готовый клиент. prefix добавляется к каждому ключу.
func New(client redis.UniversalClient, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

// Get возвращает значение ключа.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", k.prefix+key))

	value, err := k.client.Get(ctx, k.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, true, nil
}

// Set перезаписывает значение ключа.
func (k *KV) Set(ctx context.Context, key, value string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", k.prefix+key))

	if err := k.client.Set(ctx, k.prefix+key, value, 0).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Close закрывает клиент.
func (k *KV) Close() error {
	if err := k.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
