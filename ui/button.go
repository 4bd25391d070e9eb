package ui

import (
	"image/color"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
	"github.com/wesleyshynes/based-engine-2/input"
)

// Button is a clickable screen-space rectangle. A click is a pointer
// press that starts inside the button and releases inside it; pressing
// inside and dragging out before release does not fire.
type Button struct {
	engine.BaseEntity
	Text     string
	W, H     float64
	Size     float64
	Disabled bool
	OnClick  func()

	Fill        color.Color
	FillHover   color.Color
	FillPressed color.Color
	Outline     color.Color
	TextColor   color.Color

	in      *input.State
	hovered bool
	pressed bool
}

// NewButton creates a button reading the given input state. Position
// and size come from the entity fields; wire OnClick before the first
// frame.
func NewButton(id, text string, in *input.State) *Button {
	return &Button{
		BaseEntity:  engine.NewEntity(id),
		Text:        text,
		W:           160,
		H:           44,
		Size:        18,
		Fill:        ColorPanel,
		FillHover:   color.RGBA{R: 0x32, G: 0x32, B: 0x48, A: 0xf0},
		FillPressed: color.RGBA{R: 0x1c, G: 0x1c, B: 0x2a, A: 0xf0},
		Outline:     ColorOutline,
		TextColor:   ColorText,
		in:          in,
	}
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool { return b.hovered }

// Pressed reports whether a press started on the button and has not
// released yet.
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) Update(dt float64) {
	if b.in == nil {
		return
	}
	px, py := b.in.Pointer()
	inside := Contains(px, py, b.X, b.Y, b.W, b.H)
	b.hovered = inside && !b.Disabled

	if b.Disabled {
		b.pressed = false
		return
	}
	if inside && b.in.PointerJustPressed() {
		b.pressed = true
	}
	if b.in.PointerJustReleased() {
		if b.pressed && inside && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = false
	}
}

func (b *Button) DrawUI(s *draw.Surface) {
	fill := b.Fill
	switch {
	case b.pressed:
		fill = b.FillPressed
	case b.hovered:
		fill = b.FillHover
	}
	s.FillRect(b.X, b.Y, b.W, b.H, fill)
	s.StrokeRect(b.X, b.Y, b.W, b.H, 2, b.Outline)

	clr := b.TextColor
	if b.Disabled {
		clr = ColorMuted
	}
	_, th := s.MeasureText(b.Text, b.Size)
	s.TextCentered(b.Text, b.X+b.W/2, b.Y+(b.H-th)/2, b.Size, clr)
}
