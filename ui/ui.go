// Package ui provides screen-space widgets built on the entity
// lifecycle: labels, buttons, progress bars and panels. Widgets are
// ordinary entities, added to a level and depth-sorted like anything
// else, but they render in DrawUI so the camera never moves them.
package ui

import "image/color"

// Default widget palette. Individual widgets expose color fields that
// override these.
var (
	ColorPanel   = color.RGBA{R: 0x24, G: 0x24, B: 0x34, A: 0xf0}
	ColorAccent  = color.RGBA{R: 0x6e, G: 0x9f, B: 0xff, A: 0xff}
	ColorText    = color.RGBA{R: 0xe4, G: 0xe4, B: 0xec, A: 0xff}
	ColorMuted   = color.RGBA{R: 0x8a, G: 0x8a, B: 0x9c, A: 0xff}
	ColorOutline = color.RGBA{R: 0x44, G: 0x44, B: 0x58, A: 0xff}
)

// Contains reports whether the point lies inside the rectangle with
// top-left corner (x, y).
func Contains(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
