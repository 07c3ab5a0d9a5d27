// Package validation проверяет входные данные заметок на границах приложения:
// в HTTP запросах и флагах notesctl.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"stickynotes/internal/notes/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=500"`
	Color   string `json:"color" validate:"omitempty,palette"`
}

// Input преобразует запрос во входные данные репозитория.
func (r *CreateNoteRequest) Input() entities.NoteInput {
	return entities.NoteInput{Title: r.Title, Content: r.Content, Color: r.Color}
}

// UpdateNoteRequest содержит частичное обновление заметки.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=500"`
	Color   *string `json:"color" validate:"omitempty,palette"`
}

// Update преобразует запрос в частичное обновление.
func (r *UpdateNoteRequest) Update() entities.NoteUpdate {
	return entities.NoteUpdate{Title: r.Title, Content: r.Content, Color: r.Color}
}

// TagPalette - правило проверки цвета заметки.
const TagPalette = "palette"

// Validator проверяет запросы по тегам validate.
type Validator struct {
	validate *validator.Validate
}

// NewValidator создает Validator с правилом palette и именами полей из тегов json.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Ошибка возможна только при пустом имени тега.
	_ = v.RegisterValidation(TagPalette, func(fl validator.FieldLevel) bool {
		return entities.IsPaletteColor(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate возвращает список нарушений или nil.
func (v *Validator) Validate(req any) []string {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return out
}
