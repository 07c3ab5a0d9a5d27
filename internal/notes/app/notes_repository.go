// Package app реализует бизнес-логику сервиса заметок: упорядоченную
// коллекцию заметок с записью в хранилище после каждого изменения и
// настройки отображения.
package app

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"stickynotes/internal/notes/domain/entities"
	"stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
	"stickynotes/pkg/metrics"
)

// Ошибки уровня бизнес-логики.
var (
	ErrLoading     = errors.New("still loading from store")
	ErrIDExhausted = errors.New("could not generate a unique note id")
)

// Сообщения logger.
const (
	LogInitializing       = "loading notes from store"
	LogInitialized        = "notes loaded"
	LogLoadFailed         = "store unavailable, starting with empty collection"
	LogPersistFailed      = "failed to persist notes, keeping in-memory state"
	LogMutationWhileLoad  = "mutation rejected while notes are loading"
	LogNoteAdded          = "note added"
	LogNoteUpdated        = "note updated"
	LogNoteUpdateNotFound = "update for unknown note ignored"
	LogNoteDeleted        = "note deleted"
	LogNoteDeleteNotFound = "delete for unknown note ignored"
)

// Имена операций для метрик.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

const maxIDAttempts = 16

// NotesRepository владеет коллекцией заметок в памяти, упорядоченной от
// новых к старым. Каждое изменение синхронно записывает всю коллекцию в
// хранилище; ошибка записи логируется и не влияет на состояние в памяти.
type NotesRepository struct {
	store   storage.Store
	newID   func() string
	now     func() time.Time
	metrics *metrics.Metrics

	once    sync.Once
	mu      sync.RWMutex
	notes   []entities.Note
	loading bool
}

// RepositoryOption настраивает NotesRepository.
type RepositoryOption func(*NotesRepository)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *NotesRepository) {
		r.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(gen func() string) RepositoryOption {
	return func(r *NotesRepository) {
		r.newID = gen
	}
}

// WithRepositoryMetrics включает учет изменений коллекции.
func WithRepositoryMetrics(m *metrics.Metrics) RepositoryOption {
	return func(r *NotesRepository) {
		r.metrics = m
	}
}

// NewNotesRepository создает репозиторий в состоянии загрузки.
// До вызова Initialize изменения отклоняются с ErrLoading.
func NewNotesRepository(store storage.Store, opts ...RepositoryOption) *NotesRepository {
	r := &NotesRepository{
		store:   store,
		newID:   func() string { return ulid.Make().String() },
		now:     time.Now,
		notes:   []entities.Note{},
		loading: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize загружает коллекцию из хранилища. Выполняется один раз,
// повторные вызовы ничего не делают.
func (r *NotesRepository) Initialize(ctx context.Context) {
	r.once.Do(func() {
		log := logger.Log(ctx)
		log.Info(ctx, LogInitializing)

		notes, err := r.store.LoadNotes(ctx)
		if err != nil {
			log.Warn(ctx, LogLoadFailed, zap.Error(err))
		}
		if notes == nil {
			notes = []entities.Note{}
		}

		r.mu.Lock()
		r.notes = notes
		r.loading = false
		r.mu.Unlock()

		log.Info(ctx, LogInitialized, zap.Int("count", len(notes)))
	})
}

// Loading сообщает, что начальная загрузка еще не завершена.
func (r *NotesRepository) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

// Notes возвращает копию коллекции.
func (r *NotesRepository) Notes() []entities.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.notes)
}

// Count возвращает число заметок.
func (r *NotesRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}

// Get возвращает заметку по id.
func (r *NotesRepository) Get(id string) (entities.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.notes[i], true
	}
	return entities.Note{}, false
}

// AddNote создает заметку и помещает ее в начало коллекции.
func (r *NotesRepository) AddNote(ctx context.Context, in entities.NoteInput) (entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ready(ctx); err != nil {
		return entities.Note{}, err
	}

	id, err := r.uniqueID()
	if err != nil {
		return entities.Note{}, err
	}

	note := entities.NewNote(id, in, r.now())
	r.notes = slices.Insert(r.notes, 0, note)

	logger.Log(ctx).Debug(ctx, LogNoteAdded, zap.String("note_id", id))
	r.persist(ctx, OpAdd)
	return note, nil
}

// UpdateNote сливает переданные поля в заметку и обновляет UpdatedAt.
// Для неизвестного id ничего не меняет и возвращает found=false;
// запись коллекции в хранилище выполняется в обоих случаях.
func (r *NotesRepository) UpdateNote(ctx context.Context, id string, u entities.NoteUpdate) (entities.Note, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ready(ctx); err != nil {
		return entities.Note{}, false, err
	}

	log := logger.Log(ctx).With(zap.String("note_id", id))

	i := r.indexOf(id)
	if i < 0 {
		log.Debug(ctx, LogNoteUpdateNotFound)
		r.persist(ctx, OpUpdate)
		return entities.Note{}, false, nil
	}

	r.notes[i].Apply(u, r.now())
	updated := r.notes[i]

	log.Debug(ctx, LogNoteUpdated)
	r.persist(ctx, OpUpdate)
	return updated, true, nil
}

// DeleteNote удаляет заметку по id. Удаление неизвестного id - не ошибка.
func (r *NotesRepository) DeleteNote(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ready(ctx); err != nil {
		return false, err
	}

	log := logger.Log(ctx).With(zap.String("note_id", id))

	i := r.indexOf(id)
	if i >= 0 {
		r.notes = slices.Delete(r.notes, i, i+1)
		log.Debug(ctx, LogNoteDeleted)
	} else {
		log.Debug(ctx, LogNoteDeleteNotFound)
	}

	r.persist(ctx, OpDelete)
	return i >= 0, nil
}

// SearchNotes ищет подстроку в заголовке или тексте без учета регистра.
// Пустой запрос возвращает всю коллекцию в исходном порядке.
func (r *NotesRepository) SearchNotes(query string) []entities.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(query) == "" {
		return slices.Clone(r.notes)
	}

	q := strings.ToLower(query)
	found := make([]entities.Note, 0)
	for _, n := range r.notes {
		if n.Matches(q) {
			found = append(found, n)
		}
	}
	return found
}

// ready вызывается под блокировкой.
func (r *NotesRepository) ready(ctx context.Context) error {
	if r.loading {
		logger.Log(ctx).Warn(ctx, LogMutationWhileLoad)
		return ErrLoading
	}
	return nil
}

func (r *NotesRepository) indexOf(id string) int {
	return slices.IndexFunc(r.notes, func(n entities.Note) bool { return n.ID == id })
}

func (r *NotesRepository) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := r.newID()
		if id != "" && r.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// persist пишет коллекцию под блокировкой вызывающего, чтобы порядок
// записей совпадал с порядком изменений.
func (r *NotesRepository) persist(ctx context.Context, op string) {
	r.metrics.NoteMutation(op, len(r.notes))
	if err := r.store.SaveNotes(ctx, slices.Clone(r.notes)); err != nil {
		logger.Log(ctx).Warn(ctx, LogPersistFailed, zap.String("op", op), zap.Error(err))
	}
}
