package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stickynotes/internal/notes/adapters/kv/memory"
	"stickynotes/internal/notes/adapters/storage"
	"stickynotes/internal/notes/app"
	"stickynotes/internal/notes/domain/entities"
)

var errStorageUnavailable = errors.New("storage unavailable")

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveNotes(ctx context.Context, notes []entities.Note) error {
	return m.Called(ctx, notes).Error(0)
}

func (m *mockStore) LoadNotes(ctx context.Context) ([]entities.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Note), args.Error(1)
}

func (m *mockStore) SaveAppState(ctx context.Context, state entities.AppState) error {
	return m.Called(ctx, state).Error(0)
}

func (m *mockStore) LoadAppState(ctx context.Context) (entities.AppState, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.AppState), args.Error(1)
}

// fakeClock возвращает строго возрастающее время.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("note-%d", n)
	}
}

func newRepo(t *testing.T) (*app.NotesRepository, *storage.Store) {
	t.Helper()
	store := storage.NewStore(memory.New())
	repo := app.NewNotesRepository(store,
		app.WithClock(newFakeClock().Now),
		app.WithIDGenerator(sequentialIDs()))
	repo.Initialize(context.Background())
	return repo, store
}

func ids(notes []entities.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestNotesRepository_Scenario(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	require.Empty(t, repo.Notes())

	a, err := repo.AddNote(ctx, entities.NoteInput{Title: "A", Content: "x"})
	require.NoError(t, err)
	notes := repo.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "A", notes[0].Title)
	assert.Equal(t, "x", notes[0].Content)

	b, err := repo.AddNote(ctx, entities.NoteInput{Title: "B", Content: "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, ids(repo.Notes()))

	found, err := repo.DeleteNote(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{b.ID}, ids(repo.Notes()))

	assert.Equal(t, []string{b.ID}, ids(repo.SearchNotes("y")))
	assert.Empty(t, repo.SearchNotes("z"))
}

func TestNotesRepository_AddNote(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	note, err := repo.AddNote(ctx, entities.NoteInput{Title: "   ", Content: "body"})
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultTitle, note.Title)
	assert.Equal(t, entities.DefaultColor, note.Color)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	assert.False(t, note.CreatedAt.IsZero())

	second, err := repo.AddNote(ctx, entities.NoteInput{Title: "second", Color: "#fce7f3"})
	require.NoError(t, err)
	assert.Equal(t, second.ID, repo.Notes()[0].ID, "newest note goes first")
	assert.Equal(t, "#fce7f3", second.Color)
}

func TestNotesRepository_UpdateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("merges fields and refreshes updatedAt", func(t *testing.T) {
		repo, _ := newRepo(t)
		note, err := repo.AddNote(ctx, entities.NoteInput{Title: "A", Content: "x"})
		require.NoError(t, err)

		updated, found, err := repo.UpdateNote(ctx, note.ID, entities.NoteUpdate{Content: strPtr("changed")})
		require.NoError(t, err)
		require.True(t, found)

		assert.Equal(t, "A", updated.Title)
		assert.Equal(t, "changed", updated.Content)
		assert.Equal(t, note.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))

		stored, ok := repo.Get(note.ID)
		require.True(t, ok)
		assert.Equal(t, updated, stored)
	})

	t.Run("unknown id leaves collection unchanged", func(t *testing.T) {
		repo, _ := newRepo(t)
		_, err := repo.AddNote(ctx, entities.NoteInput{Title: "A"})
		require.NoError(t, err)
		before := repo.Notes()

		_, found, err := repo.UpdateNote(ctx, "missing", entities.NoteUpdate{Title: strPtr("X")})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, before, repo.Notes())
	})

	t.Run("keeps position in collection", func(t *testing.T) {
		repo, _ := newRepo(t)
		a, _ := repo.AddNote(ctx, entities.NoteInput{Title: "A"})
		b, _ := repo.AddNote(ctx, entities.NoteInput{Title: "B"})

		_, _, err := repo.UpdateNote(ctx, a.ID, entities.NoteUpdate{Title: strPtr("A2")})
		require.NoError(t, err)
		assert.Equal(t, []string{b.ID, a.ID}, ids(repo.Notes()))
	})
}

func TestNotesRepository_DeleteNote(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	a, _ := repo.AddNote(ctx, entities.NoteInput{Title: "A", Content: "1"})
	b, _ := repo.AddNote(ctx, entities.NoteInput{Title: "B", Content: "2"})
	c, _ := repo.AddNote(ctx, entities.NoteInput{Title: "C", Content: "3"})

	found, err := repo.DeleteNote(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []entities.Note{c, a}, repo.Notes())

	found, err = repo.DeleteNote(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, found, "second delete is a no-op")
	assert.Equal(t, []entities.Note{c, a}, repo.Notes())
}

func TestNotesRepository_SearchNotes(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	a, _ := repo.AddNote(ctx, entities.NoteInput{Title: "Shopping", Content: "milk"})
	b, _ := repo.AddNote(ctx, entities.NoteInput{Title: "Work", Content: "Quarterly REPORT"})
	c, _ := repo.AddNote(ctx, entities.NoteInput{Title: "report ideas", Content: ""})

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{c.ID, b.ID, a.ID}},
		{"   ", []string{c.ID, b.ID, a.ID}},
		{"report", []string{c.ID, b.ID}},
		{"REPORT", []string{c.ID, b.ID}},
		{"MiLk", []string{a.ID}},
		{"absent", []string{}},
	}

	for _, tt := range tests {
		t.Run("query="+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(repo.SearchNotes(tt.query)))
		})
	}

	t.Run("result does not alias collection", func(t *testing.T) {
		result := repo.SearchNotes("")
		result[0].Title = "mutated"
		assert.Equal(t, "report ideas", repo.Notes()[0].Title)
	})
}

func TestNotesRepository_UniqueIDsUnderRandomOperations(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	// Генератор нарочно повторяет id, чтобы проверить перегенерацию.
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	repo := app.NewNotesRepository(storage.NewStore(memory.New()),
		app.WithIDGenerator(func() string { return pool[rng.Intn(len(pool))] }))
	repo.Initialize(ctx)

	for i := 0; i < 500; i++ {
		notes := repo.Notes()
		switch op := rng.Intn(3); {
		case op == 0 || len(notes) == 0:
			_, err := repo.AddNote(ctx, entities.NoteInput{Title: fmt.Sprintf("n%d", i)})
			if err != nil {
				require.ErrorIs(t, err, app.ErrIDExhausted)
			}
		case op == 1:
			target := notes[rng.Intn(len(notes))].ID
			_, _, err := repo.UpdateNote(ctx, target, entities.NoteUpdate{Content: strPtr("u")})
			require.NoError(t, err)
		default:
			target := notes[rng.Intn(len(notes))].ID
			_, err := repo.DeleteNote(ctx, target)
			require.NoError(t, err)
		}

		seen := map[string]bool{}
		for _, n := range repo.Notes() {
			require.False(t, seen[n.ID], "duplicate id %s", n.ID)
			seen[n.ID] = true
		}
	}
}

func TestNotesRepository_IDExhausted(t *testing.T) {
	ctx := context.Background()
	repo := app.NewNotesRepository(storage.NewStore(memory.New()),
		app.WithIDGenerator(func() string { return "same" }))
	repo.Initialize(ctx)

	_, err := repo.AddNote(ctx, entities.NoteInput{Title: "first"})
	require.NoError(t, err)

	_, err = repo.AddNote(ctx, entities.NoteInput{Title: "second"})
	assert.ErrorIs(t, err, app.ErrIDExhausted)
	assert.Equal(t, 1, repo.Count())
}

func TestNotesRepository_DefaultIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := app.NewNotesRepository(storage.NewStore(memory.New()))
	repo.Initialize(ctx)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		note, err := repo.AddNote(ctx, entities.NoteInput{Title: "t"})
		require.NoError(t, err)
		require.NotEmpty(t, note.ID)
		require.False(t, seen[note.ID])
		seen[note.ID] = true
	}
}

func TestNotesRepository_PersistsSynchronously(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	a, _ := repo.AddNote(ctx, entities.NoteInput{Title: "A"})
	stored, err := store.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids(stored))

	_, _, err = repo.UpdateNote(ctx, a.ID, entities.NoteUpdate{Title: strPtr("A2")})
	require.NoError(t, err)
	stored, _ = store.LoadNotes(ctx)
	assert.Equal(t, "A2", stored[0].Title)

	_, err = repo.DeleteNote(ctx, a.ID)
	require.NoError(t, err)
	stored, _ = store.LoadNotes(ctx)
	assert.Empty(t, stored)

	t.Run("reloads into a fresh repository", func(t *testing.T) {
		b, _ := repo.AddNote(ctx, entities.NoteInput{Title: "B", Content: "kept"})

		fresh := app.NewNotesRepository(store)
		fresh.Initialize(ctx)

		got, ok := fresh.Get(b.ID)
		require.True(t, ok)
		assert.Equal(t, "kept", got.Content)
		assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestNotesRepository_LoadingGate(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	repo := app.NewNotesRepository(store)

	assert.True(t, repo.Loading())

	_, err := repo.AddNote(ctx, entities.NoteInput{Title: "early"})
	assert.ErrorIs(t, err, app.ErrLoading)
	_, _, err = repo.UpdateNote(ctx, "x", entities.NoteUpdate{})
	assert.ErrorIs(t, err, app.ErrLoading)
	_, err = repo.DeleteNote(ctx, "x")
	assert.ErrorIs(t, err, app.ErrLoading)
	assert.Empty(t, repo.SearchNotes(""))

	store.AssertNotCalled(t, "SaveNotes", mock.Anything, mock.Anything)

	existing := []entities.Note{{ID: "persisted", Title: "kept"}}
	store.On("LoadNotes", mock.Anything).Return(existing, nil).Once()

	repo.Initialize(ctx)
	repo.Initialize(ctx)

	assert.False(t, repo.Loading())
	assert.Equal(t, existing, repo.Notes())
	store.AssertNumberOfCalls(t, "LoadNotes", 1)
}

func TestNotesRepository_StoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("load failure starts empty", func(t *testing.T) {
		store := new(mockStore)
		store.On("LoadNotes", mock.Anything).Return([]entities.Note{}, errStorageUnavailable).Once()

		repo := app.NewNotesRepository(store)
		repo.Initialize(ctx)

		assert.False(t, repo.Loading())
		assert.Empty(t, repo.Notes())
	})

	t.Run("nil from store is treated as empty", func(t *testing.T) {
		store := new(mockStore)
		store.On("LoadNotes", mock.Anything).Return(nil, errStorageUnavailable).Once()

		repo := app.NewNotesRepository(store)
		repo.Initialize(ctx)

		assert.NotNil(t, repo.Notes())
	})

	t.Run("write failure keeps in-memory state", func(t *testing.T) {
		store := new(mockStore)
		store.On("LoadNotes", mock.Anything).Return([]entities.Note{}, nil).Once()
		store.On("SaveNotes", mock.Anything, mock.Anything).Return(errStorageUnavailable)

		repo := app.NewNotesRepository(store, app.WithIDGenerator(sequentialIDs()))
		repo.Initialize(ctx)

		note, err := repo.AddNote(ctx, entities.NoteInput{Title: "A"})
		require.NoError(t, err)
		_, found, err := repo.UpdateNote(ctx, note.ID, entities.NoteUpdate{Content: strPtr("c")})
		require.NoError(t, err)
		assert.True(t, found)

		assert.Equal(t, 1, repo.Count())
		store.AssertNumberOfCalls(t, "SaveNotes", 2)
	})

	t.Run("no-op mutations still write", func(t *testing.T) {
		store := new(mockStore)
		store.On("LoadNotes", mock.Anything).Return([]entities.Note{}, nil).Once()
		store.On("SaveNotes", mock.Anything, []entities.Note{}).Return(nil).Twice()

		repo := app.NewNotesRepository(store)
		repo.Initialize(ctx)

		_, _, err := repo.UpdateNote(ctx, "missing", entities.NoteUpdate{Title: strPtr("x")})
		require.NoError(t, err)
		_, err = repo.DeleteNote(ctx, "missing")
		require.NoError(t, err)

		store.AssertExpectations(t)
	})
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults, toggles and persistence", func(t *testing.T) {
		store := storage.NewStore(memory.New())
		prefs := app.NewPreferences(store)
		prefs.Initialize(ctx)

		assert.Equal(t, entities.AppState{}, prefs.State())

		state, err := prefs.ToggleDarkMode(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.AppState{IsDarkMode: true}, state)

		state, err = prefs.ToggleTransparency(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.AppState{IsTransparent: true, IsDarkMode: true}, state)

		stored, err := store.LoadAppState(ctx)
		require.NoError(t, err)
		assert.Equal(t, state, stored)

		reloaded := app.NewPreferences(store)
		reloaded.Initialize(ctx)
		assert.Equal(t, state, reloaded.State())
	})

	t.Run("set replaces state", func(t *testing.T) {
		prefs := app.NewPreferences(storage.NewStore(memory.New()))
		prefs.Initialize(ctx)

		want := entities.AppState{IsTransparent: true}
		got, err := prefs.Set(ctx, want)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want, prefs.State())
	})

	t.Run("merge keeps untouched fields", func(t *testing.T) {
		store := storage.NewStore(memory.New())
		require.NoError(t, store.SaveAppState(ctx, entities.AppState{IsDarkMode: true}))

		prefs := app.NewPreferences(store)
		prefs.Initialize(ctx)

		got, err := prefs.Merge(ctx, func(s *entities.AppState) { s.IsTransparent = true })
		require.NoError(t, err)
		assert.Equal(t, entities.AppState{IsTransparent: true, IsDarkMode: true}, got)
	})

	t.Run("changes before load are rejected and do not overwrite storage", func(t *testing.T) {
		store := storage.NewStore(memory.New())
		saved := entities.AppState{IsDarkMode: true}
		require.NoError(t, store.SaveAppState(ctx, saved))

		prefs := app.NewPreferences(store)
		assert.True(t, prefs.Loading())

		_, err := prefs.ToggleTransparency(ctx)
		require.ErrorIs(t, err, app.ErrLoading)
		_, err = prefs.ToggleDarkMode(ctx)
		require.ErrorIs(t, err, app.ErrLoading)
		_, err = prefs.Set(ctx, entities.AppState{IsTransparent: true})
		require.ErrorIs(t, err, app.ErrLoading)

		stored, err := store.LoadAppState(ctx)
		require.NoError(t, err)
		assert.Equal(t, saved, stored)

		prefs.Initialize(ctx)
		assert.False(t, prefs.Loading())
		assert.Equal(t, saved, prefs.State())

		state, err := prefs.ToggleTransparency(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.AppState{IsTransparent: true, IsDarkMode: true}, state)
	})

	t.Run("write failure keeps in-memory value", func(t *testing.T) {
		store := new(mockStore)
		store.On("LoadAppState", mock.Anything).Return(entities.AppState{}, errStorageUnavailable).Once()
		store.On("SaveAppState", mock.Anything, mock.Anything).Return(errStorageUnavailable).Once()

		prefs := app.NewPreferences(store)
		prefs.Initialize(ctx)

		state, err := prefs.ToggleTransparency(ctx)
		require.NoError(t, err)
		assert.True(t, state.IsTransparent)
		assert.True(t, prefs.State().IsTransparent)
		store.AssertExpectations(t)
	})
}
