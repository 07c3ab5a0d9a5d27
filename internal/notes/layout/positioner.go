// Package layout вычисляет начальные позиции карточек заметок на холсте.
//
// Позиция зависит только от номера карточки и размеров области просмотра,
// поэтому одна и та же заметка при тех же размерах окна всегда появляется
// в одном месте. Соседние карточки сдвинуты лесенкой; пересечение
// несоседних карточек допустимо.
package layout

import (
	"errors"
	"fmt"
)

// ErrNegativeValue возвращается, если размер или отступ раскладки отрицателен.
var ErrNegativeValue = errors.New("layout value must not be negative")

// Point - координаты левого верхнего угла карточки.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Config задает размеры карточки и шаг лесенки.
type Config struct {
	CardWidth  int `yaml:"card_width" env:"NOTES_LAYOUT_CARD_WIDTH" env-default:"320"`
	CardHeight int `yaml:"card_height" env:"NOTES_LAYOUT_CARD_HEIGHT" env-default:"250"`
	Padding    int `yaml:"padding" env:"NOTES_LAYOUT_PADDING" env-default:"20"`
	OriginX    int `yaml:"origin_x" env:"NOTES_LAYOUT_ORIGIN_X" env-default:"50"`
	OriginY    int `yaml:"origin_y" env:"NOTES_LAYOUT_ORIGIN_Y" env-default:"100"`
	StepX      int `yaml:"step_x" env:"NOTES_LAYOUT_STEP_X" env-default:"30"`
	StepY      int `yaml:"step_y" env:"NOTES_LAYOUT_STEP_Y" env-default:"40"`
	MarginX    int `yaml:"margin_x" env:"NOTES_LAYOUT_MARGIN_X" env-default:"100"`
	MarginY    int `yaml:"margin_y" env:"NOTES_LAYOUT_MARGIN_Y" env-default:"200"`
}

// DefaultConfig возвращает значения, совпадающие с env-default.
func DefaultConfig() Config {
	return Config{
		CardWidth:  320,
		CardHeight: 250,
		Padding:    20,
		OriginX:    50,
		OriginY:    100,
		StepX:      30,
		StepY:      40,
		MarginX:    100,
		MarginY:    200,
	}
}

// Validate проверяет, что все размеры и отступы неотрицательны.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"card_width", c.CardWidth},
		{"card_height", c.CardHeight},
		{"padding", c.Padding},
		{"origin_x", c.OriginX},
		{"origin_y", c.OriginY},
		{"step_x", c.StepX},
		{"step_y", c.StepY},
		{"margin_x", c.MarginX},
		{"margin_y", c.MarginY},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeValue, f.name, f.value)
		}
	}
	return nil
}

// Positioner - чистая функция расположения карточек.
type Positioner struct {
	cfg Config
}

// NewPositioner создает Positioner.
func NewPositioner(cfg Config) Positioner {
	return Positioner{cfg: cfg}
}

// PositionFor возвращает позицию карточки с номером index.
// Пока карточка помещается в область просмотра, она целиком остается в ней.
func (p Positioner) PositionFor(index, viewportWidth, viewportHeight int) Point {
	if index < 0 {
		index = 0
	}
	return Point{
		X: axis(index, viewportWidth, p.cfg.CardWidth, p.cfg.OriginX, p.cfg.StepX, p.cfg.MarginX, p.cfg.Padding),
		Y: axis(index, viewportHeight, p.cfg.CardHeight, p.cfg.OriginY, p.cfg.StepY, p.cfg.MarginY, p.cfg.Padding),
	}
}

// Placement - позиция карточки с идентификатором заметки.
type Placement struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// Place располагает карточки в порядке ids.
func (p Positioner) Place(ids []string, viewportWidth, viewportHeight int) []Placement {
	out := make([]Placement, 0, len(ids))
	for i, id := range ids {
		pt := p.PositionFor(i, viewportWidth, viewportHeight)
		out = append(out, Placement{ID: id, X: pt.X, Y: pt.Y})
	}
	return out
}

// Layout возвращает позиции первых n карточек.
func (p Positioner) Layout(n, viewportWidth, viewportHeight int) []Point {
	if n < 0 {
		n = 0
	}
	points := make([]Point, n)
	for i := range points {
		points[i] = p.PositionFor(i, viewportWidth, viewportHeight)
	}
	return points
}

func axis(index, viewport, card, origin, step, margin, padding int) int {
	upper := max(0, viewport-card)

	offset := 0
	if span := upper - margin; span > 0 {
		offset = (index % span) * (step % span) % span
	}

	lower := min(padding, upper)
	return clamp(origin+offset, lower, upper)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
