package draw

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"six digit", "#1a2b3c", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}, false},
		{"no hash", "ff8000", color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"short form", "#f80", color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, false},
		{"with alpha", "#ff000080", color.RGBA{R: 0x80, G: 0, B: 0, A: 0x80}, false},
		{"padded", "  #fff ", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"wrong length", "#ffff", color.RGBA{}, true},
		{"not hex", "#zzzzzz", color.RGBA{}, true},
		{"empty", "", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexFallsBackToBlack(t *testing.T) {
	if got := Hex("nonsense"); got != (color.RGBA{A: 0xff}) {
		t.Errorf("Hex(nonsense) = %v, expected opaque black", got)
	}
	if got := Hex("#abcdef"); got == (color.RGBA{A: 0xff}) {
		t.Error("Hex(#abcdef) fell back unexpectedly")
	}
}
