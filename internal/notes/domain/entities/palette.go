package entities

// Swatch - цвет палитры и соответствующий ему цвет рамки.
type Swatch struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Border string `json:"border"`
}

// DefaultColor - цвет заметки, если он не задан.
const DefaultColor = "#fef3c7"

const defaultBorder = "#f59e0b"

// Palette - фиксированный набор цветов заметок.
var Palette = []Swatch{
	{Name: "Yellow", Value: "#fef3c7", Border: "#f59e0b"},
	{Name: "Pink", Value: "#fce7f3", Border: "#ec4899"},
	{Name: "Blue", Value: "#dbeafe", Border: "#3b82f6"},
	{Name: "Green", Value: "#d1fae5", Border: "#10b981"},
	{Name: "Purple", Value: "#e9d5ff", Border: "#8b5cf6"},
	{Name: "Orange", Value: "#fed7aa", Border: "#f97316"},
}

// IsPaletteColor сообщает, входит ли цвет в палитру.
func IsPaletteColor(color string) bool {
	for _, s := range Palette {
		if s.Value == color {
			return true
		}
	}
	return false
}

// BorderColor возвращает цвет рамки для цвета заметки.
func BorderColor(color string) string {
	for _, s := range Palette {
		if s.Value == color {
			return s.Border
		}
	}
	return defaultBorder
}
