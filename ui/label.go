package ui

import (
	"image/color"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
)

// Align selects how a label relates to its position.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label is a piece of screen-space text anchored at the entity
// position.
type Label struct {
	engine.BaseEntity
	Text  string
	Size  float64
	Color color.Color
	Align Align
}

// NewLabel creates a left-aligned label at the given position.
func NewLabel(id, text string, x, y float64) *Label {
	l := &Label{
		BaseEntity: engine.NewEntity(id),
		Text:       text,
		Size:       16,
		Color:      ColorText,
	}
	l.X, l.Y = x, y
	return l
}

func (l *Label) DrawUI(s *draw.Surface) {
	if l.Text == "" {
		return
	}
	switch l.Align {
	case AlignCenter:
		s.TextCentered(l.Text, l.X, l.Y, l.Size, l.Color)
	case AlignRight:
		w, _ := s.MeasureText(l.Text, l.Size)
		s.Text(l.Text, l.X-w, l.Y, l.Size, l.Color)
	default:
		s.Text(l.Text, l.X, l.Y, l.Size, l.Color)
	}
}
