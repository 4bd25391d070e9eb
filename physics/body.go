package physics

import (
	"github.com/jakecoffman/cp/v2"
)

// BodyDef configures a new body. The zero value is a dynamic,
// collision-resolving body of mass 1 with no friction or bounce.
type BodyDef struct {
	Static     bool
	Sensor     bool
	Mass       float64
	Friction   float64
	Elasticity float64
}

type shapeKind int

const (
	shapeCircle shapeKind = iota
	shapeBox
	shapePoly
)

type shapeSpec struct {
	kind   shapeKind
	radius float64
	w, h   float64
	verts  []Vec2
}

// Body is one rigid body in a World. Collision callbacks receive the
// other Body of the pair; Label and UserData let callers route from
// there.
type Body struct {
	Label    string
	UserData any

	world    *World
	raw      *cp.Body
	shape    *cp.Shape
	spec     shapeSpec
	def      BodyDef
	scaleX   float64
	scaleY   float64
	onStart  func(other *Body)
	onEnd    func(other *Body)
	attached bool
	removed  bool
}

func newBody(w *World, label string, def BodyDef, spec shapeSpec) *Body {
	if def.Mass <= 0 {
		def.Mass = 1
	}
	b := &Body{
		Label:  label,
		world:  w,
		spec:   spec,
		def:    def,
		scaleX: 1,
		scaleY: 1,
	}
	if def.Static {
		b.raw = cp.NewStaticBody()
	} else {
		b.raw = cp.NewBody(def.Mass, b.moment())
	}
	b.raw.UserData = b
	b.shape = b.buildShape()
	return b
}

func (b *Body) moment() float64 {
	s := b.scaledSpec()
	switch s.kind {
	case shapeCircle:
		return cp.MomentForCircle(b.def.Mass, 0, s.radius, cp.Vector{})
	case shapeBox:
		return cp.MomentForBox(b.def.Mass, s.w, s.h)
	default:
		verts := cpVerts(s.verts)
		return cp.MomentForPoly(b.def.Mass, len(verts), verts, cp.Vector{}, 0)
	}
}

// scaledSpec applies the current scale factors to the original shape
// dimensions. Circles use the mean factor since the simulation has no
// elliptical shape.
func (b *Body) scaledSpec() shapeSpec {
	s := b.spec
	switch s.kind {
	case shapeCircle:
		s.radius *= (b.scaleX + b.scaleY) / 2
	case shapeBox:
		s.w *= b.scaleX
		s.h *= b.scaleY
	case shapePoly:
		scaled := make([]Vec2, len(s.verts))
		for i, v := range s.verts {
			scaled[i] = Vec2{X: v.X * b.scaleX, Y: v.Y * b.scaleY}
		}
		s.verts = scaled
	}
	return s
}

func (b *Body) buildShape() *cp.Shape {
	s := b.scaledSpec()
	var shape *cp.Shape
	switch s.kind {
	case shapeCircle:
		shape = cp.NewCircle(b.raw, s.radius, cp.Vector{})
	case shapeBox:
		shape = cp.NewBox(b.raw, s.w, s.h, 0)
	default:
		verts := cpVerts(s.verts)
		shape = cp.NewPolyShapeRaw(b.raw, len(verts), verts, 0)
	}
	shape.SetSensor(b.def.Sensor)
	shape.SetFriction(b.def.Friction)
	shape.SetElasticity(b.def.Elasticity)
	shape.SetCollisionType(collisionType)
	shape.UserData = b
	return shape
}

func cpVerts(verts []Vec2) []cp.Vector {
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		out[i] = cp.Vector{X: v.X, Y: v.Y}
	}
	return out
}

// Position returns the body center in world coordinates. The
// signature matches what the camera follows.
func (b *Body) Position() (x, y float64) {
	p := b.raw.Position()
	return p.X, p.Y
}

// SetPosition teleports the body. Moving a static body reindexes its
// shapes so queries stay correct.
func (b *Body) SetPosition(x, y float64) {
	b.raw.SetPosition(cp.Vector{X: x, Y: y})
	if b.def.Static && b.attached {
		b.world.space.ReindexShape(b.shape)
	}
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() (vx, vy float64) {
	v := b.raw.Velocity()
	return v.X, v.Y
}

// SetVelocity sets the linear velocity directly.
func (b *Body) SetVelocity(vx, vy float64) {
	b.raw.SetVelocity(vx, vy)
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.raw.Angle()
}

// SetAngle sets the body rotation in radians.
func (b *Body) SetAngle(a float64) {
	b.raw.SetAngle(a)
	if b.def.Static && b.attached {
		b.world.space.ReindexShape(b.shape)
	}
}

// ApplyForce applies a continuous force at the body center, in units
// of mass distance per second squared.
func (b *Body) ApplyForce(fx, fy float64) {
	b.raw.ApplyForceAtWorldPoint(cp.Vector{X: fx, Y: fy}, b.raw.Position())
}

// ApplyImpulse applies an instant momentum change at the body center.
func (b *Body) ApplyImpulse(ix, iy float64) {
	b.raw.ApplyImpulseAtWorldPoint(cp.Vector{X: ix, Y: iy}, b.raw.Position())
}

// Scale returns the current scale factors.
func (b *Body) Scale() (sx, sy float64) {
	return b.scaleX, b.scaleY
}

// SetScale resizes the collision shape by rebuilding it from the
// original dimensions. Mass stays fixed; the moment of inertia is
// recomputed for the new shape.
func (b *Body) SetScale(sx, sy float64) {
	if sx <= 0 || sy <= 0 || b.removed {
		return
	}
	b.scaleX, b.scaleY = sx, sy
	if b.attached {
		b.world.space.RemoveShape(b.shape)
	}
	b.shape = b.buildShape()
	if b.attached {
		b.world.space.AddShape(b.shape)
	}
	if !b.def.Static {
		b.raw.SetMoment(b.moment())
	}
}

// Static reports whether the body is immovable and ignores forces.
func (b *Body) Static() bool {
	return b.def.Static
}

// Sensor reports whether the body detects contacts without resolving
// them.
func (b *Body) Sensor() bool {
	return b.def.Sensor
}

// Removed reports whether the body has been taken out of the
// simulation.
func (b *Body) Removed() bool {
	return b.removed
}

// OnCollisionStart registers the callback invoked when another body
// begins touching this one. Both bodies of a pair are notified.
func (b *Body) OnCollisionStart(fn func(other *Body)) {
	b.onStart = fn
}

// OnCollisionEnd registers the callback invoked when a contact ends.
func (b *Body) OnCollisionEnd(fn func(other *Body)) {
	b.onEnd = fn
}
