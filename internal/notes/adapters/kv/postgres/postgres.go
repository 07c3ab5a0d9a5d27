// Package postgres реализует хранилище ключ-значение на таблице kv_store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
)

// SQL-запросы.
const (
	QueryGet = `SELECT value FROM kv_store WHERE key = $1`
	QuerySet = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// Сообщения об ошибках.
const (
	ErrGetValue = "failed to get value from postgres"
	ErrSetValue = "failed to set value in postgres"
)

// Pool - подмножество pgxpool.Pool, достаточное для хранилища.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// KV реализует storage.KV.
type KV struct {
	pool Pool
}

var _ storage.KV = (*KV)(nil)

// New создает хранилище поверх пула. Таблица должна быть создана миграциями.
func New(pool Pool) *KV {
	return &KV{pool: pool}
}

// Get возвращает значение ключа.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "KV.Get"), zap.String("key", key))

	var value string
	err := k.pool.QueryRow(ctx, QueryGet, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Error(ctx, ErrGetValue, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrGetValue, err)
	}
	return value, true, nil
}

// Set вставляет или обновляет значение ключа.
func (k *KV) Set(ctx context.Context, key, value string) error {
	log := logger.Log(ctx).With(zap.String("method", "KV.Set"), zap.String("key", key))

	if _, err := k.pool.Exec(ctx, QuerySet, key, value); err != nil {
		log.Error(ctx, ErrSetValue, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSetValue, err)
	}
	return nil
}

// Close закрывает пул.
func (k *KV) Close() error {
	k.pool.Close()
	return nil
}
