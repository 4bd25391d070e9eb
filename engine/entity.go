package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/wesleyshynes/based-engine-2/draw"
)

// Entity is a game object owned by exactly one level. Concrete
// entities embed BaseEntity for state and default hooks, overriding
// the hooks they care about.
//
// Lifecycle: after Add the entity sits in the level's pending queue
// until the next frame starts, when it joins the live set and Create
// runs. It then receives Update while active and Draw/DrawUI while
// visible, until a Remove takes effect, at which point Destroy runs
// exactly once and the entity never hears from the level again.
type Entity interface {
	ID() string
	Active() bool
	Visible() bool
	Depth() int
	Position() (x, y float64)
	HasTag(tag string) bool

	Create()
	Update(dt float64)
	Draw(s *draw.Surface)
	DrawUI(s *draw.Surface)
	Resize(w, h float64)
	Destroy()
}

var entitySeq atomic.Uint64

// BaseEntity carries the state every entity shares: transform, the
// flags gating update and draw, draw depth and tags. Position and
// transform fields are exported for direct access in entity code.
type BaseEntity struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64

	id      string
	active  bool
	visible bool
	depth   int
	tags    map[string]struct{}
}

// NewEntity returns entity state under the given identifier, active
// and visible, with unit scale. An empty id gets a generated unique
// one. The identifier is immutable afterwards.
func NewEntity(id string) BaseEntity {
	if id == "" {
		id = fmt.Sprintf("entity-%d", entitySeq.Add(1))
	}
	return BaseEntity{
		id:      id,
		active:  true,
		visible: true,
		ScaleX:  1,
		ScaleY:  1,
	}
}

// ID returns the unique identifier assigned at creation.
func (e *BaseEntity) ID() string { return e.id }

// Active reports whether the entity receives updates.
func (e *BaseEntity) Active() bool { return e.active }

// SetActive gates the update hook without touching visibility.
func (e *BaseEntity) SetActive(v bool) { e.active = v }

// Visible reports whether the entity is drawn.
func (e *BaseEntity) Visible() bool { return e.visible }

// SetVisible gates the draw hooks without touching updates.
func (e *BaseEntity) SetVisible(v bool) { e.visible = v }

// Depth returns the draw-order key. Lower depths draw first, behind
// higher ones; entities sharing a depth draw in insertion order.
func (e *BaseEntity) Depth() int { return e.depth }

// SetDepth changes the draw-order key.
func (e *BaseEntity) SetDepth(d int) { e.depth = d }

// Position returns the entity position, satisfying what the camera
// follows.
func (e *BaseEntity) Position() (x, y float64) { return e.X, e.Y }

// SetPosition moves the entity.
func (e *BaseEntity) SetPosition(x, y float64) {
	e.X, e.Y = x, y
}

// Tag adds a label for ad-hoc grouping.
func (e *BaseEntity) Tag(tag string) {
	if e.tags == nil {
		e.tags = map[string]struct{}{}
	}
	e.tags[tag] = struct{}{}
}

// Untag removes a label.
func (e *BaseEntity) Untag(tag string) {
	delete(e.tags, tag)
}

// HasTag reports label membership.
func (e *BaseEntity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

// Create runs when the entity joins the live set. Default no-op.
func (e *BaseEntity) Create() {}

// Update runs once per frame while the entity is active. Default
// no-op.
func (e *BaseEntity) Update(dt float64) {}

// Draw renders world-space content. Default no-op.
func (e *BaseEntity) Draw(s *draw.Surface) {}

// DrawUI renders screen-space content after the camera transform is
// removed. Default no-op.
func (e *BaseEntity) DrawUI(s *draw.Surface) {}

// Resize runs when the view size changes. Default no-op.
func (e *BaseEntity) Resize(w, h float64) {}

// Destroy runs exactly once when the entity leaves the live set.
// Default no-op.
func (e *BaseEntity) Destroy() {}
