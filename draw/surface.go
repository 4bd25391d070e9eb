// Package draw wraps the frame's render target with a small set of
// primitive drawing commands: filled and stroked shapes, lines, images
// and text. A Surface is stateless per call apart from its transform
// stack, which the engine pushes the camera matrix onto for the world
// pass and pops for the UI pass.
package draw

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSubImage is the 1x1 source pixel used for triangle fills.
var whiteSubImage *ebiten.Image

func init() {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Surface issues draw commands against the current frame image. The
// engine owns one Surface for the lifetime of the process and retargets
// it each frame with Begin.
type Surface struct {
	dst       *ebiten.Image
	stack     []ebiten.GeoM
	filter    ebiten.Filter
	antialias bool
	fonts     *fontCache
}

// NewSurface creates a Surface with an identity transform and the
// bundled default font.
func NewSurface() *Surface {
	return &Surface{
		stack:     []ebiten.GeoM{{}},
		filter:    ebiten.FilterLinear,
		antialias: true,
		fonts:     newFontCache(),
	}
}

// Begin retargets the surface at the image for this frame and resets
// the transform stack.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.stack = s.stack[:0]
	s.stack = append(s.stack, ebiten.GeoM{})
}

// SetPixelPerfect switches image sampling to nearest-neighbor and
// disables shape antialiasing.
func (s *Surface) SetPixelPerfect(on bool) {
	if on {
		s.filter = ebiten.FilterNearest
		s.antialias = false
	} else {
		s.filter = ebiten.FilterLinear
		s.antialias = true
	}
}

// W returns the width of the current target in pixels.
func (s *Surface) W() float64 {
	if s.dst == nil {
		return 0
	}
	return float64(s.dst.Bounds().Dx())
}

// H returns the height of the current target in pixels.
func (s *Surface) H() float64 {
	if s.dst == nil {
		return 0
	}
	return float64(s.dst.Bounds().Dy())
}

// Fill floods the whole target with a color.
func (s *Surface) Fill(clr color.Color) {
	s.dst.Fill(clr)
}

// Push composes a transform under the current one. Coordinates passed
// to later draw calls are mapped through the composite.
func (s *Surface) Push(g ebiten.GeoM) {
	m := g
	m.Concat(s.cur())
	s.stack = append(s.stack, m)
}

// Pop restores the transform active before the matching Push. Popping
// the root transform is a no-op.
func (s *Surface) Pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *Surface) cur() ebiten.GeoM {
	return s.stack[len(s.stack)-1]
}

func (s *Surface) apply(x, y float64) (float64, float64) {
	g := s.cur()
	return g.Apply(x, y)
}

// scale reports the uniform scale magnitude of the current transform,
// used to size radii and stroke widths.
func (s *Surface) scale() float64 {
	g := s.cur()
	a := g.Element(0, 0)
	c := g.Element(1, 0)
	return math.Hypot(a, c)
}

// FillRect fills the rectangle with top-left corner x,y. Correct under
// rotation: the corners are transformed individually.
func (s *Surface) FillRect(x, y, w, h float64, clr color.Color) {
	s.FillPolygon([]float64{x, y, x + w, y, x + w, y + h, x, y + h}, clr)
}

// StrokeRect outlines the rectangle with the given stroke width.
func (s *Surface) StrokeRect(x, y, w, h, width float64, clr color.Color) {
	s.StrokePolygon([]float64{x, y, x + w, y, x + w, y + h, x, y + h}, width, clr)
}

// FillCircle fills a circle centered at cx,cy. The radius scales with
// the current transform, which is exact for uniform zoom and rotation.
func (s *Surface) FillCircle(cx, cy, r float64, clr color.Color) {
	tx, ty := s.apply(cx, cy)
	vector.DrawFilledCircle(s.dst, float32(tx), float32(ty), float32(r*s.scale()), clr, s.antialias)
}

// StrokeCircle outlines a circle centered at cx,cy.
func (s *Surface) StrokeCircle(cx, cy, r, width float64, clr color.Color) {
	tx, ty := s.apply(cx, cy)
	k := s.scale()
	vector.StrokeCircle(s.dst, float32(tx), float32(ty), float32(r*k), float32(width*k), clr, s.antialias)
}

// Line draws a segment between two points.
func (s *Surface) Line(x0, y0, x1, y1, width float64, clr color.Color) {
	ax, ay := s.apply(x0, y0)
	bx, by := s.apply(x1, y1)
	vector.StrokeLine(s.dst, float32(ax), float32(ay), float32(bx), float32(by), float32(width*s.scale()), clr, s.antialias)
}

// FillPolygon fills the polygon given as flat x,y pairs. Fewer than
// three points draws nothing.
func (s *Surface) FillPolygon(pts []float64, clr color.Color) {
	if len(pts) < 6 {
		return
	}
	p := s.path(pts, true)
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	s.drawTriangles(vs, is, clr)
}

// StrokePolygon outlines the closed polygon given as flat x,y pairs.
func (s *Surface) StrokePolygon(pts []float64, width float64, clr color.Color) {
	if len(pts) < 4 {
		return
	}
	p := s.path(pts, true)
	op := &vector.StrokeOptions{Width: float32(width * s.scale()), LineJoin: vector.LineJoinMiter}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, op)
	s.drawTriangles(vs, is, clr)
}

func (s *Surface) path(pts []float64, closed bool) *vector.Path {
	var p vector.Path
	x, y := s.apply(pts[0], pts[1])
	p.MoveTo(float32(x), float32(y))
	for i := 2; i+1 < len(pts); i += 2 {
		x, y = s.apply(pts[i], pts[i+1])
		p.LineTo(float32(x), float32(y))
	}
	if closed {
		p.Close()
	}
	return &p
}

func (s *Surface) drawTriangles(vs []ebiten.Vertex, is []uint16, clr color.Color) {
	r, g, b, a := clr.RGBA()
	cr := float32(r) / 0xffff
	cg := float32(g) / 0xffff
	cb := float32(b) / 0xffff
	ca := float32(a) / 0xffff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: s.antialias}
	s.dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// ImageOpts adjusts how Image renders. Zero scale values mean 1.
// Anchor is a fraction of the image size: 0,0 places x,y at the
// top-left corner, 0.5,0.5 at the center.
type ImageOpts struct {
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Alpha    float64
	AnchorX  float64
	AnchorY  float64
}

// Image draws img with its anchor at x,y under the current transform.
func (s *Surface) Image(img *ebiten.Image, x, y float64, opts ImageOpts) {
	if img == nil {
		return
	}
	sx, sy := opts.ScaleX, opts.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = 1
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	op := &ebiten.DrawImageOptions{Filter: s.filter}
	op.GeoM.Translate(-w*opts.AnchorX, -h*opts.AnchorY)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(opts.Rotation)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.cur())
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.dst.DrawImage(img, op)
}
