// Package storage объявляет порты хранилища сервиса заметок.
package storage

import (
	"context"

	"stickynotes/internal/notes/domain/entities"
)

// KV - долговременное хранилище строк по ключу.
type KV interface {
	// Get возвращает found=false без ошибки, если ключ отсутствует.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set перезаписывает значение ключа.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Store читает и пишет сериализованные документы заметок и настроек.
//
// Методы Load* всегда возвращают пригодное значение: при отсутствии или
// повреждении данных это пустая коллекция или настройки по умолчанию,
// а ошибка лишь сообщает причину и может быть отброшена вызывающим.
type Store interface {
	SaveNotes(ctx context.Context, notes []entities.Note) error
	LoadNotes(ctx context.Context) ([]entities.Note, error)
	SaveAppState(ctx context.Context, state entities.AppState) error
	LoadAppState(ctx context.Context) (entities.AppState, error)
}
