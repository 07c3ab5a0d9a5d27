// Package storage реализует адаптер, сериализующий заметки и настройки
// в два JSON-документа поверх произвольного key-value хранилища.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stickynotes/internal/notes/domain/entities"
	ports "stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
	"stickynotes/pkg/metrics"
)

// Ключи документов по умолчанию.
const (
	DefaultNotesKey    = "animated-notes-app-notes"
	DefaultAppStateKey = "animated-notes-app-state"
)

// Имена операций для логов и метрик.
const (
	OpSaveNotes    = "save_notes"
	OpLoadNotes    = "load_notes"
	OpSaveAppState = "save_app_state"
	OpLoadAppState = "load_app_state"
)

// Сообщения logger и ошибок.
const (
	ErrSaveNotes       = "failed to save notes"
	ErrLoadNotes       = "failed to load notes"
	ErrSaveAppState    = "failed to save app state"
	ErrLoadAppState    = "failed to load app state"
	LogNotesSkipped    = "skipped unusable notes in stored document"
	LogDocumentMissing = "stored document is absent, using default"
)

// Store реализует ports.Store.
type Store struct {
	kv       ports.KV
	notesKey string
	stateKey string
	metrics  *metrics.Metrics
}

var _ ports.Store = (*Store)(nil)

// Option настраивает Store.
type Option func(*Store)

// WithKeys задает ключи документов заметок и настроек.
func WithKeys(notesKey, stateKey string) Option {
	return func(s *Store) {
		if notesKey != "" {
			s.notesKey = notesKey
		}
		if stateKey != "" {
			s.stateKey = stateKey
		}
	}
}

// WithMetrics включает учет операций в prometheus.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore создает адаптер поверх kv.
func NewStore(kv ports.KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		notesKey: DefaultNotesKey,
		stateKey: DefaultAppStateKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveNotes перезаписывает документ коллекции целиком.
func (s *Store) SaveNotes(ctx context.Context, notes []entities.Note) error {
	log := logger.Log(ctx).With(zap.String("op", OpSaveNotes), zap.String("key", s.notesKey))

	err := s.save(ctx, s.notesKey, func() (string, error) { return encodeNotes(notes) })
	s.metrics.StoreOperation(OpSaveNotes, err)
	if err != nil {
		log.Error(ctx, ErrSaveNotes, zap.Error(err), zap.Int("count", len(notes)))
		return fmt.Errorf("%s: %w", ErrSaveNotes, err)
	}

	log.Debug(ctx, "notes saved", zap.Int("count", len(notes)))
	return nil
}

// LoadNotes читает коллекцию. Всегда возвращает не-nil срез.
func (s *Store) LoadNotes(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("op", OpLoadNotes), zap.String("key", s.notesKey))

	data, found, err := s.kv.Get(ctx, s.notesKey)
	if err != nil {
		s.metrics.StoreOperation(OpLoadNotes, err)
		log.Error(ctx, ErrLoadNotes, zap.Error(err))
		return []entities.Note{}, fmt.Errorf("%s: %w", ErrLoadNotes, err)
	}
	if !found || data == "" {
		s.metrics.StoreOperation(OpLoadNotes, nil)
		log.Debug(ctx, LogDocumentMissing)
		return []entities.Note{}, nil
	}

	notes, skipped, err := decodeNotes(data)
	s.metrics.StoreOperation(OpLoadNotes, err)
	if err != nil {
		log.Error(ctx, ErrLoadNotes, zap.Error(err))
		return []entities.Note{}, fmt.Errorf("%s: %w", ErrLoadNotes, err)
	}
	if skipped > 0 {
		log.Warn(ctx, LogNotesSkipped, zap.Int("skipped", skipped))
	}

	log.Debug(ctx, "notes loaded", zap.Int("count", len(notes)))
	return notes, nil
}

// SaveAppState перезаписывает документ настроек.
func (s *Store) SaveAppState(ctx context.Context, state entities.AppState) error {
	log := logger.Log(ctx).With(zap.String("op", OpSaveAppState), zap.String("key", s.stateKey))

	err := s.save(ctx, s.stateKey, func() (string, error) { return encodeAppState(state) })
	s.metrics.StoreOperation(OpSaveAppState, err)
	if err != nil {
		log.Error(ctx, ErrSaveAppState, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSaveAppState, err)
	}
	return nil
}

// LoadAppState читает настройки, возвращая значения по умолчанию при отсутствии или повреждении.
func (s *Store) LoadAppState(ctx context.Context) (entities.AppState, error) {
	log := logger.Log(ctx).With(zap.String("op", OpLoadAppState), zap.String("key", s.stateKey))

	data, found, err := s.kv.Get(ctx, s.stateKey)
	if err == nil && (!found || data == "") {
		s.metrics.StoreOperation(OpLoadAppState, nil)
		log.Debug(ctx, LogDocumentMissing)
		return entities.AppState{}, nil
	}

	var state entities.AppState
	if err == nil {
		state, err = decodeAppState(data)
	}
	s.metrics.StoreOperation(OpLoadAppState, err)
	if err != nil {
		log.Error(ctx, ErrLoadAppState, zap.Error(err))
		return entities.AppState{}, fmt.Errorf("%s: %w", ErrLoadAppState, err)
	}
	return state, nil
}

func (s *Store) save(ctx context.Context, key string, encode func() (string, error)) error {
	data, err := encode()
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, data)
}
