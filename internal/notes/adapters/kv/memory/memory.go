// Package memory - хранилище ключ-значение в памяти процесса.
package memory

import (
	"context"
	"errors"
	"sync"

	"stickynotes/internal/notes/ports/storage"
)

// ErrClosed возвращается после Close.
var ErrClosed = errors.New("memory store is closed")

// KV реализует storage.KV на map.
type KV struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

var _ storage.KV = (*KV)(nil)

// New создает пустое хранилище.
func New() *KV {
	return &KV{data: make(map[string]string)}
}

// Get возвращает значение ключа.
func (m *KV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set перезаписывает значение ключа.
func (m *KV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

// Close делает хранилище недоступным, имитируя отключенное хранилище.
func (m *KV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
