// Package physics is a thin facade over the Chipmunk rigid-body
// simulation. It owns body creation, forces, spatial queries and
// collision callbacks; the solver itself belongs to the wrapped
// library.
//
// The simulation advances one fixed 1/60 s step per rendered frame
// regardless of the frame's real elapsed time. Render rate and physics
// rate are deliberately decoupled; levels that want compatible physics
// behavior call Step exactly once per update.
package physics

import (
	"github.com/jakecoffman/cp/v2"
)

const fixedStep = 1.0 / 60.0

// collisionType tags every shape so one pair handler sees all
// contacts.
const collisionType cp.CollisionType = 1

// Vec2 is a 2D vector in world coordinates.
type Vec2 struct {
	X, Y float64
}

// Hit is one ray cast intersection.
type Hit struct {
	Body     *Body
	X, Y     float64
	NormalX  float64
	NormalY  float64
	Fraction float64
}

// World wraps one simulation space. Not safe for concurrent use; the
// engine runs one frame at a time.
type World struct {
	space    *cp.Space
	bodies   map[*Body]struct{}
	time     float64
	stepping bool

	deferredAdd    []*Body
	deferredRemove []*Body
}

// NewWorld creates a space with the given gravity. Screen coordinates
// grow downward, so positive gy pulls down.
func NewWorld(gx, gy float64) *World {
	w := &World{
		space:  cp.NewSpace(),
		bodies: map[*Body]struct{}{},
	}
	w.space.SetGravity(cp.Vector{X: gx, Y: gy})

	handler := w.space.NewCollisionHandler(collisionType, collisionType)
	handler.BeginFunc = w.onBegin
	handler.SeparateFunc = w.onSeparate
	return w
}

// SetGravity changes the global gravity vector.
func (w *World) SetGravity(gx, gy float64) {
	w.space.SetGravity(cp.Vector{X: gx, Y: gy})
}

// SetDamping sets the fraction of velocity a body keeps per second of
// simulation. 1, the default, means no drag. Top-down worlds with no
// gravity use low values so loose bodies coast to a stop.
func (w *World) SetDamping(d float64) {
	w.space.SetDamping(d)
}

// Time returns the total simulated time in seconds.
func (w *World) Time() float64 {
	return w.time
}

// Count returns the number of live bodies.
func (w *World) Count() int {
	return len(w.bodies)
}

// Step advances the simulation by exactly one fixed step. Bodies
// created or removed by collision callbacks are committed after the
// step completes.
func (w *World) Step() {
	w.stepping = true
	w.space.Step(fixedStep)
	w.stepping = false
	w.time += fixedStep

	for _, b := range w.deferredAdd {
		w.attach(b)
	}
	w.deferredAdd = w.deferredAdd[:0]
	for _, b := range w.deferredRemove {
		w.detach(b)
	}
	w.deferredRemove = w.deferredRemove[:0]
}

// onBegin fans a new contact out to both bodies' start callbacks.
// Both sides always hear about the pair, in no guaranteed order.
func (w *World) onBegin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := w.pair(arb)
	if a == nil || b == nil {
		return true
	}
	if a.onStart != nil {
		a.onStart(b)
	}
	if b.onStart != nil {
		b.onStart(a)
	}
	return true
}

func (w *World) onSeparate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b := w.pair(arb)
	if a == nil || b == nil {
		return
	}
	if a.onEnd != nil {
		a.onEnd(b)
	}
	if b.onEnd != nil {
		b.onEnd(a)
	}
}

// pair recovers the owning wrapper bodies from the raw simulation
// bodies through the UserData back-reference.
func (w *World) pair(arb *cp.Arbiter) (*Body, *Body) {
	ra, rb := arb.Bodies()
	a, _ := ra.UserData.(*Body)
	b, _ := rb.UserData.(*Body)
	return a, b
}

// NewCircle creates a circle body centered at x,y.
func (w *World) NewCircle(label string, x, y, radius float64, def BodyDef) *Body {
	b := newBody(w, label, def, shapeSpec{kind: shapeCircle, radius: radius})
	b.raw.SetPosition(cp.Vector{X: x, Y: y})
	w.add(b)
	return b
}

// NewBox creates a rectangle body centered at x,y.
func (w *World) NewBox(label string, x, y, width, height float64, def BodyDef) *Body {
	b := newBody(w, label, def, shapeSpec{kind: shapeBox, w: width, h: height})
	b.raw.SetPosition(cp.Vector{X: x, Y: y})
	w.add(b)
	return b
}

// NewPolygon creates a convex polygon body at x,y from vertices given
// relative to the body center.
func (w *World) NewPolygon(label string, x, y float64, verts []Vec2, def BodyDef) *Body {
	b := newBody(w, label, def, shapeSpec{kind: shapePoly, verts: verts})
	b.raw.SetPosition(cp.Vector{X: x, Y: y})
	w.add(b)
	return b
}

func (w *World) add(b *Body) {
	if w.stepping {
		w.deferredAdd = append(w.deferredAdd, b)
		return
	}
	w.attach(b)
}

func (w *World) attach(b *Body) {
	if b.removed {
		return
	}
	w.space.AddBody(b.raw)
	w.space.AddShape(b.shape)
	w.bodies[b] = struct{}{}
	b.attached = true
}

// Remove takes a body out of the simulation. Safe to call from a
// collision callback (the removal is committed after the step) and
// safe to call twice.
func (w *World) Remove(b *Body) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	if w.stepping {
		w.deferredRemove = append(w.deferredRemove, b)
		return
	}
	w.detach(b)
}

func (w *World) detach(b *Body) {
	if !b.attached {
		delete(w.bodies, b)
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.raw)
	delete(w.bodies, b)
	b.attached = false
}

// Each visits every live body.
func (w *World) Each(fn func(*Body)) {
	for b := range w.bodies {
		fn(b)
	}
}

// QueryRegion returns the bodies whose shapes overlap the axis-aligned
// rectangle with top-left corner x,y.
func (w *World) QueryRegion(x, y, width, height float64) []*Body {
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	seen := map[*Body]struct{}{}
	var out []*Body
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		b, ok := shape.Body().UserData.(*Body)
		if !ok || b.removed {
			return
		}
		if _, dup := seen[b]; dup {
			return
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}, nil)
	return out
}

// RayCast returns the first body hit along the segment, if any.
func (w *World) RayCast(x0, y0, x1, y1 float64) (Hit, bool) {
	info := w.space.SegmentQueryFirst(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x1, Y: y1}, 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return Hit{}, false
	}
	b, ok := info.Shape.Body().UserData.(*Body)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Body:     b,
		X:        info.Point.X,
		Y:        info.Point.Y,
		NormalX:  info.Normal.X,
		NormalY:  info.Normal.Y,
		Fraction: info.Alpha,
	}, true
}

// RayCastAll returns every body intersected by the segment, in
// traversal order of the spatial index.
func (w *World) RayCastAll(x0, y0, x1, y1 float64) []Hit {
	var out []Hit
	fn := func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		b, ok := shape.Body().UserData.(*Body)
		if !ok || b.removed {
			return
		}
		out = append(out, Hit{
			Body:     b,
			X:        point.X,
			Y:        point.Y,
			NormalX:  normal.X,
			NormalY:  normal.Y,
			Fraction: alpha,
		})
	}
	w.space.SegmentQuery(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x1, Y: y1}, 0, cp.SHAPE_FILTER_ALL, fn, nil)
	return out
}
