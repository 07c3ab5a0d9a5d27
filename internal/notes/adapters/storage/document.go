package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stickynotes/internal/notes/domain/entities"
)

// Ошибки разбора сохраненных документов.
var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrInvalidNoteID     = errors.New("note has no usable id")
)

// legacyTimeLayouts - форматы дат, встречающиеся в старых документах,
// где дата сохранялась строкой локали.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 15:04:05",
	"1/2/2006",
	"2.1.2006, 15:04:05",
	"2.1.2006",
	"2006-01-02",
	time.RFC1123,
}

// storedNote - заметка в том виде, в каком она лежит в хранилище.
// Поля сырые, чтобы принимать и числовые id, и строки дат в разных форматах.
type storedNote struct {
	ID        json.RawMessage `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Color     string          `json:"color"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

// decodeNotes разбирает документ коллекции. Заметки без id и повторы id
// пропускаются, их число возвращается в skipped.
func decodeNotes(data string) (notes []entities.Note, skipped int, err error) {
	var raw []storedNote
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	notes = make([]entities.Note, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		note, ok := r.toEntity()
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[note.ID]; dup {
			skipped++
			continue
		}
		seen[note.ID] = struct{}{}
		notes = append(notes, note)
	}
	return notes, skipped, nil
}

func (r storedNote) toEntity() (entities.Note, bool) {
	id, err := decodeID(r.ID)
	if err != nil {
		return entities.Note{}, false
	}

	created, _ := decodeTime(r.CreatedAt)
	updated, ok := decodeTime(r.UpdatedAt)
	if !ok {
		updated = created
	}

	color := r.Color
	if color == "" {
		color = entities.DefaultColor
	}

	return entities.Note{
		ID:        id,
		Title:     r.Title,
		Content:   r.Content,
		Color:     color,
		CreatedAt: created,
		UpdatedAt: updated,
	}, true
}

// decodeID принимает строковый или числовой id.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrInvalidNoteID
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", ErrInvalidNoteID
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", ErrInvalidNoteID
	}
	return n.String(), nil
}

// decodeTime принимает строку даты в одном из известных форматов
// или число миллисекунд Unix. Нераспознанная дата дает нулевое время.
func decodeTime(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range legacyTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func encodeNotes(notes []entities.Note) (string, error) {
	if notes == nil {
		notes = []entities.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeAppState(data string) (entities.AppState, error) {
	var state entities.AppState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return entities.AppState{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return state, nil
}

func encodeAppState(state entities.AppState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
