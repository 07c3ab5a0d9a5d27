package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"stickynotes/internal/notes/domain/entities"
	"stickynotes/internal/notes/layout"
)

const previewLength = 40

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func printNotes(w io.Writer, asJSON bool, notes ...entities.Note) error {
	if asJSON {
		if notes == nil {
			notes = []entities.Note{}
		}
		return encodeJSON(w, notes)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOLOR\tUPDATED\tCONTENT")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.Title, n.Color, n.UpdatedAt.Local().Format(time.DateTime), preview(n.Content))
	}
	return tw.Flush()
}

func printLayout(w io.Writer, asJSON bool, items []layout.Placement) error {
	if asJSON {
		return encodeJSON(w, items)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tX\tY")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", it.ID, it.X, it.Y)
	}
	return tw.Flush()
}

func printState(w io.Writer, asJSON bool, state entities.AppState) error {
	if asJSON {
		return encodeJSON(w, state)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "transparent\t%t\n", state.IsTransparent)
	fmt.Fprintf(tw, "dark mode\t%t\n", state.IsDarkMode)
	return tw.Flush()
}

// preview сворачивает текст заметки в одну строку для таблицы.
func preview(content string) string {
	line := strings.Join(strings.Fields(content), " ")
	if r := []rune(line); len(r) > previewLength {
		return string(r[:previewLength-1]) + "…"
	}
	return line
}
