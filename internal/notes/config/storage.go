package config

import (
	"errors"
	"fmt"
)

// Backend - тип хранилища ключ-значение.
type Backend string

// Поддерживаемые хранилища.
const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// ErrUnknownBackend возвращается для неподдерживаемого значения NOTES_STORAGE_BACKEND.
var ErrUnknownBackend = errors.New("unknown storage backend")

// StorageConfig - выбор хранилища и ключи документов.
type StorageConfig struct {
	Backend     Backend `yaml:"backend" env:"NOTES_STORAGE_BACKEND" env-default:"file"`
	NotesKey    string  `yaml:"notes_key" env:"NOTES_STORAGE_NOTES_KEY" env-default:"animated-notes-app-notes"`
	AppStateKey string  `yaml:"app_state_key" env:"NOTES_STORAGE_APP_STATE_KEY" env-default:"animated-notes-app-state"`
	FileDir     string  `yaml:"file_dir" env:"NOTES_STORAGE_FILE_DIR" env-default:"data"`
	SQLitePath  string  `yaml:"sqlite_path" env:"NOTES_STORAGE_SQLITE_PATH" env-default:"data/notes.db"`
}

// Validate проверяет тип хранилища.
func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
	}
}
