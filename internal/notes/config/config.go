// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"stickynotes/internal/notes/layout"
	pkgconfig "stickynotes/pkg/config"
	"stickynotes/pkg/logger"
)

// EnvConfigPath - переменная с путем к необязательному файлу конфигурации.
const EnvConfigPath = "NOTES_CONFIG_PATH"

const serviceName = "notes"

// Константы сообщений.
const (
	LogConfigLoaded     = "notes configuration"
	ErrFailedLoadConfig = "failed to load notes configuration"
	ErrInvalidConfig    = "invalid notes configuration"
)

// Config - полная конфигурация сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Layout   layout.Config  `yaml:"layout"`
}

// Load читает конфигурацию из окружения и, если задан NOTES_CONFIG_PATH, из файла.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log(ctx).Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage_backend", string(cfg.Storage.Backend)),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами.
func (c *Config) Validate() error {
	return errors.Join(c.Storage.Validate(), c.Layout.Validate())
}
