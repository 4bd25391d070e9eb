package draw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (leading # optional)
// into an alpha-premultiplied color.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b, a uint64
	a = 0xff
	var err error
	switch len(hex) {
	case 3:
		if r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 8); err == nil {
			if g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 8); err == nil {
				b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 8)
			}
		}
	case 6, 8:
		if r, err = strconv.ParseUint(hex[0:2], 16, 8); err == nil {
			if g, err = strconv.ParseUint(hex[2:4], 16, 8); err == nil {
				if b, err = strconv.ParseUint(hex[4:6], 16, 8); err == nil && len(hex) == 8 {
					a, err = strconv.ParseUint(hex[6:8], 16, 8)
				}
			}
		}
	default:
		return color.RGBA{}, fmt.Errorf("draw: invalid hex color %q", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("draw: invalid hex color %q", s)
	}
	// color.RGBA is premultiplied.
	return color.RGBA{
		R: uint8(r * a / 0xff),
		G: uint8(g * a / 0xff),
		B: uint8(b * a / 0xff),
		A: uint8(a),
	}, nil
}

// Hex is ParseHex with a fallback to opaque black on bad input.
func Hex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
