// Package sqlite реализует хранилище ключ-значение в файле SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // драйвер database/sql "sqlite"

	"stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
)

// Константы для логирования и ошибок.
const (
	LogMethodOpen = "open"
	LogMethodGet  = "get"
	LogMethodSet  = "set"
	LogOpened     = "sqlite store opened"

	ErrorFailedToCreateDir    = "failed to create sqlite directory"
	ErrorFailedToOpen         = "failed to open sqlite database"
	ErrorFailedToCreateSchema = "failed to create sqlite schema"
	ErrorFailedToGet          = "failed to get value from sqlite"
	ErrorFailedToSet          = "failed to set value in sqlite"
	ErrorFailedToClose        = "failed to close sqlite database"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

const (
	queryGet = `SELECT value FROM kv_store WHERE key = ?`
	querySet = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// KV реализует storage.KV.
type KV struct {
	db *sql.DB
}

var _ storage.KV = (*KV)(nil)

// Open открывает или создает базу по пути dbPath.
func Open(ctx context.Context, dbPath string) (*KV, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodOpen), zap.String("path", dbPath))

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Error(ctx, ErrorFailedToCreateDir, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToCreateDir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		log.Error(ctx, ErrorFailedToOpen, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToOpen, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Error(ctx, ErrorFailedToCreateSchema, zap.Error(err))
		return nil, errors.Join(fmt.Errorf("%s: %w", ErrorFailedToCreateSchema, err), db.Close())
	}

	log.Debug(ctx, LogOpened)
	return &KV{db: db}, nil
}

// Get возвращает значение ключа.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	var value string
	err := k.db.QueryRowContext(ctx, queryGet, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, true, nil
}

// Set вставляет или обновляет значение ключа.
func (k *KV) Set(ctx context.Context, key, value string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := k.db.ExecContext(ctx, querySet, key, value, now); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Close закрывает базу.
func (k *KV) Close() error {
	if err := k.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
