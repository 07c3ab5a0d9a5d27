// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"stickynotes/internal/notes/domain/entities"
)

// Note - заметка в ответе API. Border - цвет рамки для цвета заметки.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	Border    string    `json:"border"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromNote преобразует доменную заметку.
func FromNote(n entities.Note) Note {
	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Color:     n.Color,
		Border:    entities.BorderColor(n.Color),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ListNotesResponse содержит список заметок.
type ListNotesResponse struct {
	Notes []Note `json:"notes"`
	Count int    `json:"count"`
}

// FromNotes преобразует коллекцию, сохраняя порядок.
func FromNotes(notes []entities.Note) ListNotesResponse {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, FromNote(n))
	}
	return ListNotesResponse{Notes: out, Count: len(out)}
}
