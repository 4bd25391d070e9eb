// Package camera maintains the view transform between world and screen
// space: position, zoom, rotation and screen shake, with optional
// target following and bounds clamping.
package camera

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Target is anything the camera can follow. The reference is weak: it
// is re-read every frame and may be cleared at any time.
type Target interface {
	Position() (x, y float64)
}

// Rect is an axis-aligned rectangle in world space.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Camera converts between world and screen coordinates. Position is
// the world point at the center of the view.
type Camera struct {
	x, y     float64
	zoom     float64
	rotation float64

	targetX, targetY float64
	targetZoom       float64
	followSpeed      float64
	zoomSpeed        float64
	target           Target

	bounds    *Rect
	viewW     float64
	viewH     float64
	shakeLeft float64
	shakeDur  float64
	shakeAmp  float64
	shakeX    float64
	shakeY    float64
}

// New creates a camera centered on the origin with zoom 1 for a view
// of the given pixel size.
func New(viewW, viewH float64) *Camera {
	return &Camera{
		zoom:        1,
		targetZoom:  1,
		followSpeed: 5,
		zoomSpeed:   5,
		viewW:       viewW,
		viewH:       viewH,
	}
}

// SetViewport updates the view size after a window resize.
func (c *Camera) SetViewport(w, h float64) {
	c.viewW, c.viewH = w, h
}

// Viewport returns the current view size in pixels.
func (c *Camera) Viewport() (w, h float64) {
	return c.viewW, c.viewH
}

// Position returns the world point at the view center, without shake.
func (c *Camera) Position() (x, y float64) {
	return c.x, c.y
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// Rotation returns the view rotation in radians.
func (c *Camera) Rotation() float64 {
	return c.rotation
}

// SetRotation sets the view rotation in radians.
func (c *Camera) SetRotation(r float64) {
	c.rotation = r
}

// SnapTo moves the camera immediately, abandoning any interpolation
// in progress.
func (c *Camera) SnapTo(x, y float64) {
	c.x, c.y = x, y
	c.targetX, c.targetY = x, y
}

// MoveTo sets the point the camera eases toward.
func (c *Camera) MoveTo(x, y float64) {
	c.targetX, c.targetY = x, y
}

// SetZoom sets the zoom factor immediately. Values at or below zero
// are clamped to a small positive minimum.
func (c *Camera) SetZoom(z float64) {
	z = max(z, 0.01)
	c.zoom = z
	c.targetZoom = z
}

// ZoomTo sets the zoom factor the camera eases toward.
func (c *Camera) ZoomTo(z float64) {
	c.targetZoom = max(z, 0.01)
}

// SetFollowSpeed adjusts how quickly the camera approaches its target
// position. Higher is snappier.
func (c *Camera) SetFollowSpeed(speed float64) {
	c.followSpeed = speed
}

// SetZoomSpeed adjusts how quickly the camera approaches its target
// zoom.
func (c *Camera) SetZoomSpeed(speed float64) {
	c.zoomSpeed = speed
}

// Follow points the camera at a moving target. Pass the entity or body
// to track; the camera reads its position each frame and never owns
// it.
func (c *Camera) Follow(t Target) {
	c.target = t
}

// Unfollow clears the follow target. The camera stays where it is.
func (c *Camera) Unfollow() {
	c.target = nil
}

// SetBounds keeps the view inside the given world rectangle. If the
// rectangle is smaller than the view, the view centers on it.
func (c *Camera) SetBounds(x, y, w, h float64) {
	c.bounds = &Rect{X: x, Y: y, W: w, H: h}
}

// ClearBounds removes the view constraint.
func (c *Camera) ClearBounds() {
	c.bounds = nil
}

// Shake kicks off a screen shake of the given pixel amplitude that
// decays linearly over the duration in seconds.
func (c *Camera) Shake(amplitude, duration float64) {
	if duration <= 0 || amplitude <= 0 {
		return
	}
	c.shakeAmp = amplitude
	c.shakeDur = duration
	c.shakeLeft = duration
}

// Update advances interpolation and shake by dt seconds. The engine
// calls this once per frame before the level updates.
func (c *Camera) Update(dt float64) {
	if c.target != nil {
		c.targetX, c.targetY = c.target.Position()
	}

	// Exponential approach: a fixed fraction of the remaining distance
	// per frame, scaled by dt. Not physically exact, and intentionally
	// so.
	step := clamp01(c.followSpeed * dt)
	c.x += (c.targetX - c.x) * step
	c.y += (c.targetY - c.y) * step

	zstep := clamp01(c.zoomSpeed * dt)
	c.zoom += (c.targetZoom - c.zoom) * zstep

	c.clampToBounds()

	if c.shakeLeft > 0 {
		c.shakeLeft = max(c.shakeLeft-dt, 0)
		amp := c.shakeAmp * (c.shakeLeft / c.shakeDur)
		c.shakeX = (rand.Float64()*2 - 1) * amp
		c.shakeY = (rand.Float64()*2 - 1) * amp
	} else {
		c.shakeX, c.shakeY = 0, 0
	}
}

func (c *Camera) clampToBounds() {
	if c.bounds == nil {
		return
	}
	b := *c.bounds
	halfW := c.viewW / (2 * c.zoom)
	halfH := c.viewH / (2 * c.zoom)
	c.x = clampCenter(c.x, b.X, b.W, halfW)
	c.y = clampCenter(c.y, b.Y, b.H, halfH)
}

func clampCenter(v, lo, span, half float64) float64 {
	if span <= 2*half {
		return lo + span/2
	}
	return clampf(v, lo+half, lo+span-half)
}

// Transform returns the world-to-screen matrix for this frame,
// including shake.
func (c *Camera) Transform() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-(c.x + c.shakeX), -(c.y + c.shakeY))
	g.Rotate(c.rotation)
	g.Scale(c.zoom, c.zoom)
	g.Translate(c.viewW/2, c.viewH/2)
	return g
}

// WorldToScreen maps a world point to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	g := c.Transform()
	return g.Apply(wx, wy)
}

// ScreenToWorld maps a screen pixel to world coordinates. It is the
// inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	g := c.Transform()
	if !g.IsInvertible() {
		return sx, sy
	}
	g.Invert()
	return g.Apply(sx, sy)
}

// VisibleRect returns the world-space bounding box of the view,
// conservative under rotation. Useful for culling.
func (c *Camera) VisibleRect() Rect {
	corners := [4][2]float64{
		{0, 0},
		{c.viewW, 0},
		{0, c.viewH},
		{c.viewW, c.viewH},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		wx, wy := c.ScreenToWorld(p[0], p[1])
		minX = min(minX, wx)
		minY = min(minY, wy)
		maxX = max(maxX, wx)
		maxY = max(maxY, wy)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clampf(v, 0, 1)
}
