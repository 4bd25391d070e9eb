package arena

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wesleyshynes/based-engine-2/draw"
	"github.com/wesleyshynes/based-engine-2/engine"
	"github.com/wesleyshynes/based-engine-2/input"
	"github.com/wesleyshynes/based-engine-2/physics"
)

const (
	playerRadius = 18.0
	playerForce  = 2400.0
	playerMaxV   = 420.0
	coinRadius   = 12.0
	crateSize    = 44.0
)

// player is the puck the user steers. Keys or a held pointer apply
// force; the body's velocity is capped so shoves stay controllable.
type player struct {
	engine.BaseEntity
	world *physics.World
	in    *input.State
	body  *physics.Body
}

func newPlayer(world *physics.World, in *input.State, x, y float64) *player {
	p := &player{
		BaseEntity: engine.NewEntity("player"),
		world:      world,
		in:         in,
	}
	p.X, p.Y = x, y
	p.Tag("player")
	return p
}

func (p *player) Create() {
	p.body = p.world.NewCircle("player", p.X, p.Y, playerRadius, physics.BodyDef{
		Mass:       1,
		Friction:   0.4,
		Elasticity: 0.6,
	})
	p.body.UserData = p
}

func (p *player) Update(dt float64) {
	var dx, dy float64
	if p.in.KeyHeld(ebiten.KeyArrowLeft) || p.in.KeyHeld(ebiten.KeyA) {
		dx -= 1
	}
	if p.in.KeyHeld(ebiten.KeyArrowRight) || p.in.KeyHeld(ebiten.KeyD) {
		dx += 1
	}
	if p.in.KeyHeld(ebiten.KeyArrowUp) || p.in.KeyHeld(ebiten.KeyW) {
		dy -= 1
	}
	if p.in.KeyHeld(ebiten.KeyArrowDown) || p.in.KeyHeld(ebiten.KeyS) {
		dy += 1
	}
	if dx == 0 && dy == 0 && p.in.PointerHeld() {
		wx, wy := p.in.PointerWorld()
		dx, dy = wx-p.X, wy-p.Y
		if math.Hypot(dx, dy) < playerRadius {
			dx, dy = 0, 0
		}
	}
	if dx != 0 || dy != 0 {
		n := math.Hypot(dx, dy)
		p.body.ApplyForce(dx/n*playerForce, dy/n*playerForce)
	}

	if vx, vy := p.body.Velocity(); math.Hypot(vx, vy) > playerMaxV {
		k := playerMaxV / math.Hypot(vx, vy)
		p.body.SetVelocity(vx*k, vy*k)
	}

	p.X, p.Y = p.body.Position()
}

func (p *player) Draw(s *draw.Surface) {
	s.FillCircle(p.X, p.Y, playerRadius, colorPlayer)
	s.StrokeCircle(p.X, p.Y, playerRadius, 2, colorFloor)
	// Nose marks the current heading.
	if vx, vy := p.body.Velocity(); math.Hypot(vx, vy) > 10 {
		n := math.Hypot(vx, vy)
		s.FillCircle(p.X+vx/n*playerRadius*0.55, p.Y+vy/n*playerRadius*0.55, 5, colorFloor)
	}
}

func (p *player) Destroy() {
	p.world.Remove(p.body)
}

// coin is a static sensor. Touching it scores; the touch is detected
// by the physics pair handler, the removal goes through the level's
// pending queue.
type coin struct {
	engine.BaseEntity
	world     *physics.World
	body      *physics.Body
	onCollect func(c *coin)
	taken     bool
	spin      float64
}

func newCoin(world *physics.World, id string, x, y float64, onCollect func(c *coin)) *coin {
	c := &coin{
		BaseEntity: engine.NewEntity(id),
		world:      world,
		onCollect:  onCollect,
	}
	c.X, c.Y = x, y
	c.Tag("coin")
	return c
}

func (c *coin) Create() {
	c.body = c.world.NewCircle("coin", c.X, c.Y, coinRadius, physics.BodyDef{
		Static: true,
		Sensor: true,
	})
	c.body.UserData = c
	c.body.OnCollisionStart(func(other *physics.Body) {
		if c.taken || other.Label != "player" {
			return
		}
		c.taken = true
		if c.onCollect != nil {
			c.onCollect(c)
		}
	})
}

func (c *coin) Update(dt float64) {
	c.spin += dt * 4
}

func (c *coin) Draw(s *draw.Surface) {
	// Squash horizontally to fake a spin.
	w := coinRadius * math.Abs(math.Cos(c.spin))
	s.FillCircle(c.X, c.Y, coinRadius, colorCoin)
	if w > 1 {
		s.FillPolygon([]float64{
			c.X - w, c.Y,
			c.X, c.Y - coinRadius,
			c.X + w, c.Y,
			c.X, c.Y + coinRadius,
		}, colorFloor)
	}
}

func (c *coin) Destroy() {
	c.world.Remove(c.body)
}

// crate is a loose dynamic box the player can shove around.
type crate struct {
	engine.BaseEntity
	world *physics.World
	body  *physics.Body
}

func newCrate(world *physics.World, id string, x, y float64) *crate {
	c := &crate{
		BaseEntity: engine.NewEntity(id),
		world:      world,
	}
	c.X, c.Y = x, y
	c.Tag("crate")
	return c
}

func (c *crate) Create() {
	c.body = c.world.NewBox("crate", c.X, c.Y, crateSize, crateSize, physics.BodyDef{
		Mass:       2,
		Friction:   0.7,
		Elasticity: 0.2,
	})
	c.body.UserData = c
}

func (c *crate) Update(dt float64) {
	c.X, c.Y = c.body.Position()
	c.Rotation = c.body.Angle()
}

func (c *crate) Draw(s *draw.Surface) {
	var g ebiten.GeoM
	g.Rotate(c.Rotation)
	g.Translate(c.X, c.Y)
	s.Push(g)
	half := crateSize / 2
	s.FillRect(-half, -half, crateSize, crateSize, colorCrate)
	s.StrokeRect(-half, -half, crateSize, crateSize, 2, colorFloor)
	s.Line(-half, -half, half, half, 2, colorFloor)
	s.Pop()
}

func (c *crate) Destroy() {
	c.world.Remove(c.body)
}

// wall is a static arena boundary segment.
type wall struct {
	engine.BaseEntity
	world *physics.World
	body  *physics.Body
	w, h  float64
}

func newWall(world *physics.World, id string, x, y, w, h float64) *wall {
	e := &wall{
		BaseEntity: engine.NewEntity(id),
		world:      world,
		w:          w,
		h:          h,
	}
	e.X, e.Y = x, y
	e.Tag("wall")
	return e
}

func (e *wall) Create() {
	e.body = e.world.NewBox("wall", e.X, e.Y, e.w, e.h, physics.BodyDef{
		Static:     true,
		Friction:   0.8,
		Elasticity: 0.5,
	})
	e.body.UserData = e
}

func (e *wall) Draw(s *draw.Surface) {
	s.FillRect(e.X-e.w/2, e.Y-e.h/2, e.w, e.h, colorWall)
}

func (e *wall) Destroy() {
	e.world.Remove(e.body)
}
