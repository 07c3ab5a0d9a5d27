// Package services описывает порты бизнес-логики, которые используют адаптеры представления.
package services

import (
	"context"

	"stickynotes/internal/notes/domain/entities"
)

// NotesRepository - упорядоченная коллекция заметок.
type NotesRepository interface {
	Loading() bool
	Notes() []entities.Note
	Get(id string) (entities.Note, bool)
	AddNote(ctx context.Context, in entities.NoteInput) (entities.Note, error)
	UpdateNote(ctx context.Context, id string, u entities.NoteUpdate) (entities.Note, bool, error)
	DeleteNote(ctx context.Context, id string) (bool, error)
	SearchNotes(query string) []entities.Note
}

// Preferences - настройки отображения.
type Preferences interface {
	Loading() bool
	State() entities.AppState
	Merge(ctx context.Context, change func(*entities.AppState)) (entities.AppState, error)
	ToggleTransparency(ctx context.Context) (entities.AppState, error)
	ToggleDarkMode(ctx context.Context) (entities.AppState, error)
}
