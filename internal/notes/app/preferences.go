package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"stickynotes/internal/notes/domain/entities"
	"stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
)

// Сообщения logger для настроек.
const (
	LogPreferencesLoadFailed    = "app state unavailable, using defaults"
	LogPreferencesPersistFailed = "failed to persist app state, keeping in-memory value"
	LogPreferencesWhileLoad     = "app state change rejected while loading"
)

// Preferences хранит настройки отображения. Загружаются один раз,
// записываются при каждом изменении. До загрузки изменения отклоняются,
// чтобы значения по умолчанию не затерли сохраненные.
type Preferences struct {
	store storage.Store

	once    sync.Once
	mu      sync.RWMutex
	state   entities.AppState
	loading bool
}

// NewPreferences создает менеджер настроек в состоянии загрузки.
func NewPreferences(store storage.Store) *Preferences {
	return &Preferences{store: store, loading: true}
}

// Initialize загружает настройки из хранилища один раз.
func (p *Preferences) Initialize(ctx context.Context) {
	p.once.Do(func() {
		state, err := p.store.LoadAppState(ctx)
		if err != nil {
			logger.Log(ctx).Warn(ctx, LogPreferencesLoadFailed, zap.Error(err))
		}

		p.mu.Lock()
		p.state = state
		p.loading = false
		p.mu.Unlock()
	})
}

// Loading сообщает, что настройки еще не загружены.
func (p *Preferences) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// State возвращает текущие настройки.
func (p *Preferences) State() entities.AppState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Set заменяет настройки и записывает их.
func (p *Preferences) Set(ctx context.Context, state entities.AppState) (entities.AppState, error) {
	return p.update(ctx, func(s *entities.AppState) { *s = state })
}

// Merge применяет change к текущим настройкам под одной блокировкой.
func (p *Preferences) Merge(ctx context.Context, change func(*entities.AppState)) (entities.AppState, error) {
	return p.update(ctx, change)
}

// ToggleTransparency переключает режим прозрачности.
func (p *Preferences) ToggleTransparency(ctx context.Context) (entities.AppState, error) {
	return p.update(ctx, func(s *entities.AppState) { s.IsTransparent = !s.IsTransparent })
}

// ToggleDarkMode переключает темную тему.
func (p *Preferences) ToggleDarkMode(ctx context.Context) (entities.AppState, error) {
	return p.update(ctx, func(s *entities.AppState) { s.IsDarkMode = !s.IsDarkMode })
}

func (p *Preferences) update(ctx context.Context, change func(*entities.AppState)) (entities.AppState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loading {
		logger.Log(ctx).Warn(ctx, LogPreferencesWhileLoad)
		return p.state, ErrLoading
	}

	change(&p.state)

	if err := p.store.SaveAppState(ctx, p.state); err != nil {
		logger.Log(ctx).Warn(ctx, LogPreferencesPersistFailed, zap.Error(err))
	}
	return p.state, nil
}
