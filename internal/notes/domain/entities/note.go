// Package entities описывает доменные сущности сервиса заметок.
package entities

import (
	"strings"
	"time"
)

// Значения по умолчанию для новой заметки.
const (
	DefaultTitle     = "Untitled"
	MaxContentLength = 500
	MaxTitleLength   = 200
)

// Note - пользовательская заметка.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput - данные для создания заметки.
type NoteInput struct {
	Title   string
	Content string
	Color   string
}

// NoteUpdate - частичное обновление. nil означает, что поле не передано.
type NoteUpdate struct {
	Title   *string
	Content *string
	Color   *string
}

// IsEmpty сообщает, что обновление не содержит ни одного поля.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Color == nil
}

// NewNote создает заметку с нормализованным заголовком и цветом.
// CreatedAt и UpdatedAt совпадают.
func NewNote(id string, in NoteInput, now time.Time) Note {
	color := in.Color
	if color == "" {
		color = DefaultColor
	}
	return Note{
		ID:        id,
		Title:     NormalizeTitle(in.Title),
		Content:   in.Content,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeTitle обрезает пробелы и подставляет DefaultTitle для пустого заголовка.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

// Apply сливает переданные поля в заметку и обновляет UpdatedAt.
func (n *Note) Apply(u NoteUpdate, now time.Time) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Color != nil {
		n.Color = *u.Color
	}
	n.UpdatedAt = now
}

// Matches проверяет вхождение уже приведенной к нижнему регистру строки
// в заголовок или текст заметки.
func (n Note) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Content), lowerQuery)
}

// AppState - настройки отображения, не связанные с заметками.
type AppState struct {
	IsTransparent bool `json:"isTransparent"`
	IsDarkMode    bool `json:"isDarkMode"`
}
