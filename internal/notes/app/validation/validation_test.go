package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stickynotes/internal/notes/app/validation"
	"stickynotes/internal/notes/domain/entities"
)

func ptr[T any](v T) *T { return &v }

func TestValidator_CreateNoteRequest(t *testing.T) {
	v := validation.NewValidator()

	tests := []struct {
		name string
		req  validation.CreateNoteRequest
		want []string
	}{
		{name: "empty is valid", req: validation.CreateNoteRequest{}},
		{name: "palette color", req: validation.CreateNoteRequest{Title: "a", Content: "b", Color: "#dbeafe"}},
		{name: "content at limit", req: validation.CreateNoteRequest{Content: strings.Repeat("я", entities.MaxContentLength)}},
		{
			name: "content too long",
			req:  validation.CreateNoteRequest{Content: strings.Repeat("x", entities.MaxContentLength+1)},
			want: []string{"content: max=500"},
		},
		{
			name: "title too long",
			req:  validation.CreateNoteRequest{Title: strings.Repeat("t", entities.MaxTitleLength+1)},
			want: []string{"title: max=200"},
		},
		{
			name: "foreign color",
			req:  validation.CreateNoteRequest{Color: "#ffffff"},
			want: []string{"color: palette"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(&tt.req))
		})
	}
}

func TestValidator_UpdateNoteRequest(t *testing.T) {
	v := validation.NewValidator()

	assert.Nil(t, v.Validate(&validation.UpdateNoteRequest{}))
	assert.Nil(t, v.Validate(&validation.UpdateNoteRequest{Title: ptr(""), Color: ptr("#fed7aa")}))
	assert.Equal(t, []string{"color: palette"}, v.Validate(&validation.UpdateNoteRequest{Color: ptr("red")}))
	assert.Equal(t, []string{"content: max=500"},
		v.Validate(&validation.UpdateNoteRequest{Content: ptr(strings.Repeat("x", 501))}))
}

func TestCreateNoteRequest_Input(t *testing.T) {
	req := validation.CreateNoteRequest{Title: "t", Content: "c", Color: "#dbeafe"}
	assert.Equal(t, entities.NoteInput{Title: "t", Content: "c", Color: "#dbeafe"}, req.Input())
}
