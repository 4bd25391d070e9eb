package draw

import (
	"bytes"
	"fmt"
	"image/color"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// fontCache holds one face source and the faces derived from it,
// keyed by point size. Faces are cheap but not free, and text draws
// happen every frame.
type fontCache struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

func newFontCache() *fontCache {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		// The bundled font is a compile-time constant; failing to
		// parse it is a programmer error.
		panic(fmt.Sprintf("draw: parse bundled font: %v", err))
	}
	return &fontCache{source: src, faces: map[float64]*text.GoTextFace{}}
}

func (c *fontCache) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

// SetFontSource replaces the default font for all later text calls.
// Already-derived faces are discarded.
func (s *Surface) SetFontSource(src *text.GoTextFaceSource) {
	if src == nil {
		return
	}
	s.fonts.source = src
	s.fonts.faces = map[float64]*text.GoTextFace{}
}

// Text draws str with its top-left corner at x,y in the current
// transform.
func (s *Surface) Text(str string, x, y, size float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.cur())
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = s.filter
	text.Draw(s.dst, str, s.fonts.face(size), op)
}

// TextCentered draws str horizontally centered on cx with its top
// edge at y.
func (s *Surface) TextCentered(str string, cx, y, size float64, clr color.Color) {
	w, _ := s.MeasureText(str, size)
	s.Text(str, cx-w/2, y, size, clr)
}

// MeasureText reports the rendered size of str at the given point
// size, before any transform.
func (s *Surface) MeasureText(str string, size float64) (w, h float64) {
	f := s.fonts.face(size)
	return text.Measure(str, f, f.Metrics().HLineGap+f.Metrics().HAscent+f.Metrics().HDescent)
}
