// Package kv выбирает и открывает хранилище ключ-значение по конфигурации.
package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stickynotes/internal/notes/adapters/kv/file"
	"stickynotes/internal/notes/adapters/kv/memory"
	kvpostgres "stickynotes/internal/notes/adapters/kv/postgres"
	kvredis "stickynotes/internal/notes/adapters/kv/redis"
	"stickynotes/internal/notes/adapters/kv/sqlite"
	"stickynotes/internal/notes/config"
	"stickynotes/internal/notes/ports/storage"
	"stickynotes/migrations"
	"stickynotes/pkg/db/postgres"
	dbredis "stickynotes/pkg/db/redis"
	"stickynotes/pkg/logger"
)

// Константы сообщений.
const (
	LogOpening = "opening storage backend"
	LogOpened  = "storage backend ready"

	ErrOpenBackend = "failed to open storage backend"
)

// Open создает хранилище выбранного типа. Для postgres перед открытием
// применяются миграции таблицы kv_store.
func Open(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	log := logger.Log(ctx).With(zap.String("backend", string(cfg.Storage.Backend)))
	log.Info(ctx, LogOpening)

	kv, err := open(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrOpenBackend, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpenBackend, err)
	}

	log.Info(ctx, LogOpened)
	return kv, nil
}

func open(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		return file.New(ctx, cfg.Storage.FileDir)
	case config.BackendSQLite:
		return sqlite.Open(ctx, cfg.Storage.SQLitePath)
	case config.BackendRedis:
		client, err := dbredis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			return nil, err
		}
		return kvredis.New(client, cfg.Redis.KeyPrefix), nil
	case config.BackendPostgres:
		if err := postgres.MigrateFS(ctx, migrations.FS, migrations.NotesDir, cfg.Postgres.GetConnectionURL()); err != nil {
			return nil, err
		}
		db, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			return nil, err
		}
		return kvpostgres.New(db.Pool()), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Storage.Backend)
	}
}
