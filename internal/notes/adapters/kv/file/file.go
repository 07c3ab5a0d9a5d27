// Package file хранит каждый ключ в отдельном файле каталога.
// Запись атомарна: новое содержимое пишется во временный файл и
// переименовывается поверх старого.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
)

const (
	fileSuffix = ".json"
	dirPerm    = 0o755
	filePerm   = 0o600
)

// Сообщения об ошибках.
const (
	ErrCreateDir = "failed to create storage directory"
	ErrRead      = "failed to read key file"
	ErrWrite     = "failed to write key file"
)

// KV реализует storage.KV на файловой системе.
type KV struct {
	dir string
}

var _ storage.KV = (*KV)(nil)

// New создает каталог dir при необходимости.
func New(ctx context.Context, dir string) (*KV, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		logger.Log(ctx).Error(ctx, ErrCreateDir, zap.String("dir", dir), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreateDir, err)
	}
	return &KV{dir: dir}, nil
}

// Dir возвращает каталог хранилища.
func (k *KV) Dir() string {
	return k.dir
}

// Get читает файл ключа.
func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(k.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrRead, err)
	}
	return string(data), true, nil
}

// Set атомарно заменяет файл ключа.
func (k *KV) Set(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(k.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWrite, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("%s: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpName, k.path(key)); err != nil {
		return fmt.Errorf("%s: %w", ErrWrite, err)
	}
	return nil
}

// Close ничего не делает: файлы не держатся открытыми.
func (k *KV) Close() error {
	return nil
}

// path экранирует ключ, чтобы он был допустимым именем файла.
func (k *KV) path(key string) string {
	return filepath.Join(k.dir, url.PathEscape(key)+fileSuffix)
}
