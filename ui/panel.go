package ui

import (
	"image/color"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
)

// Panel is a plain screen-space rectangle, usually the backdrop behind
// other widgets at a lower depth.
type Panel struct {
	engine.BaseEntity
	W, H    float64
	Fill    color.Color
	Outline color.Color
}

// NewPanel creates a panel with the default backdrop colors.
func NewPanel(id string, w, h float64) *Panel {
	return &Panel{
		BaseEntity: engine.NewEntity(id),
		W:          w,
		H:          h,
		Fill:       ColorPanel,
		Outline:    ColorOutline,
	}
}

func (p *Panel) DrawUI(s *draw.Surface) {
	s.FillRect(p.X, p.Y, p.W, p.H, p.Fill)
	if p.Outline != nil {
		s.StrokeRect(p.X, p.Y, p.W, p.H, 1, p.Outline)
	}
}
