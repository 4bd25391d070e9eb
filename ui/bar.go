package ui

import (
	"image/color"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
)

// ProgressBar is a horizontal fill bar. Value outside [0, 1] renders
// clamped.
type ProgressBar struct {
	engine.BaseEntity
	W, H  float64
	Value float64

	Fill    color.Color
	Back    color.Color
	Outline color.Color
}

// NewProgressBar creates an empty bar.
func NewProgressBar(id string) *ProgressBar {
	return &ProgressBar{
		BaseEntity: engine.NewEntity(id),
		W:          200,
		H:          14,
		Fill:       ColorAccent,
		Back:       ColorPanel,
		Outline:    ColorOutline,
	}
}

// Fraction returns the value clamped to [0, 1].
func (p *ProgressBar) Fraction() float64 {
	switch {
	case p.Value < 0:
		return 0
	case p.Value > 1:
		return 1
	}
	return p.Value
}

func (p *ProgressBar) DrawUI(s *draw.Surface) {
	s.FillRect(p.X, p.Y, p.W, p.H, p.Back)
	if frac := p.Fraction(); frac > 0 {
		s.FillRect(p.X, p.Y, p.W*frac, p.H, p.Fill)
	}
	s.StrokeRect(p.X, p.Y, p.W, p.H, 1, p.Outline)
}
