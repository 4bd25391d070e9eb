package engine

import (
	"context"
	"sort"

	"github.com/wesleyshynes/based-engine-2/draw"
)

// Level is one scene: a menu, a playfield, a game-over screen.
// Concrete levels embed BaseLevel, which owns the entity set, and
// override the hooks they need. Base exposes the embedded state to
// the engine, which drives the frame in a fixed order: pending adds,
// pending removes, the level Update, then entity updates.
type Level interface {
	Base() *BaseLevel

	Preload(ctx context.Context) error
	Create()
	Update(dt float64)
	Draw(s *draw.Surface)
	DrawUI(s *draw.Surface)
	Resize(w, h float64)
	Destroy()
}

// BaseLevel holds a level's entities. Adds and removes requested at
// any point during a frame are buffered and applied at the top of the
// next one, so hooks always iterate a set that does not shift under
// them. The zero value is ready to use.
type BaseLevel struct {
	engine *Engine

	entities []Entity
	index    map[string]Entity

	pendingAdd    []Entity
	pendingRemove map[string]struct{}

	initialized bool
}

// Base returns the embedded level state.
func (l *BaseLevel) Base() *BaseLevel { return l }

// Engine returns the engine that owns the level. Nil until the level
// has been constructed through a registered level func.
func (l *BaseLevel) Engine() *Engine { return l.engine }

func (l *BaseLevel) bind(e *Engine) { l.engine = e }

// Initialized reports whether Create has completed.
func (l *BaseLevel) Initialized() bool { return l.initialized }

// Add queues an entity for insertion at the top of the next frame,
// where it joins the live set and its Create hook runs. Safe to call
// from any level or entity hook. Returns the entity for chaining.
func (l *BaseLevel) Add(e Entity) Entity {
	if e == nil {
		return nil
	}
	l.pendingAdd = append(l.pendingAdd, e)
	return e
}

// Remove queues the entity with the given id for removal. Its Destroy
// hook runs when the removal is applied at the top of the next frame.
// Unknown ids and repeated removes are no-ops.
func (l *BaseLevel) Remove(id string) {
	if l.pendingRemove == nil {
		l.pendingRemove = map[string]struct{}{}
	}
	l.pendingRemove[id] = struct{}{}
}

// RemoveEntity queues the entity itself for removal.
func (l *BaseLevel) RemoveEntity(e Entity) {
	if e != nil {
		l.Remove(e.ID())
	}
}

// Get returns the live entity with the given id. Entities still in
// the pending-add queue are not yet live.
func (l *BaseLevel) Get(id string) (Entity, bool) {
	e, ok := l.index[id]
	return e, ok
}

// Count returns the number of live entities.
func (l *BaseLevel) Count() int { return len(l.entities) }

// Entities returns the live set in insertion order. The returned
// slice is a copy.
func (l *BaseLevel) Entities() []Entity {
	out := make([]Entity, len(l.entities))
	copy(out, l.entities)
	return out
}

// WithTag returns the live entities carrying the tag, in insertion
// order.
func (l *BaseLevel) WithTag(tag string) []Entity {
	var out []Entity
	for _, e := range l.entities {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the first live entity matching the predicate.
func (l *BaseLevel) Find(pred func(Entity) bool) (Entity, bool) {
	for _, e := range l.entities {
		if pred(e) {
			return e, true
		}
	}
	return nil, false
}

// FindAll returns every live entity matching the predicate.
func (l *BaseLevel) FindAll(pred func(Entity) bool) []Entity {
	var out []Entity
	for _, e := range l.entities {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// flush applies the buffered mutations: adds first, in request order,
// each entity's Create running as it joins, then removes, each
// entity's Destroy running as it leaves. Adds or removes requested by
// those hooks land in the next frame's buffers.
func (l *BaseLevel) flush() {
	adds := l.pendingAdd
	removes := l.pendingRemove
	l.pendingAdd = nil
	l.pendingRemove = nil

	for _, e := range adds {
		if l.index == nil {
			l.index = map[string]Entity{}
		}
		if old, ok := l.index[e.ID()]; ok {
			// Same id twice: the newcomer replaces the old
			// entity, which is torn down first.
			l.unlink(old)
			old.Destroy()
		}
		l.entities = append(l.entities, e)
		l.index[e.ID()] = e
		e.Create()
	}

	for id := range removes {
		e, ok := l.index[id]
		if !ok {
			continue
		}
		l.unlink(e)
		e.Destroy()
	}
}

func (l *BaseLevel) unlink(e Entity) {
	delete(l.index, e.ID())
	for i, cur := range l.entities {
		if cur == e {
			l.entities = append(l.entities[:i], l.entities[i+1:]...)
			break
		}
	}
}

// updateEntities runs the Update hook of every active live entity, in
// insertion order.
func (l *BaseLevel) updateEntities(dt float64) {
	for _, e := range l.entities {
		if e.Active() {
			e.Update(dt)
		}
	}
}

// visibleByDepth returns the visible live entities ordered back to
// front. The sort is stable, so entities sharing a depth keep their
// insertion order.
func (l *BaseLevel) visibleByDepth() []Entity {
	out := make([]Entity, 0, len(l.entities))
	for _, e := range l.entities {
		if e.Visible() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth() < out[j].Depth()
	})
	return out
}

func (l *BaseLevel) drawEntities(s *draw.Surface) {
	for _, e := range l.visibleByDepth() {
		e.Draw(s)
	}
}

func (l *BaseLevel) drawEntitiesUI(s *draw.Surface) {
	for _, e := range l.visibleByDepth() {
		e.DrawUI(s)
	}
}

func (l *BaseLevel) broadcastResize(w, h float64) {
	for _, e := range l.entities {
		e.Resize(w, h)
	}
}

// teardown destroys every live entity and resets the level state.
// Entities still waiting in the pending-add queue were never created
// and are dropped without their Destroy hook.
func (l *BaseLevel) teardown() {
	for _, e := range l.entities {
		e.Destroy()
	}
	l.entities = nil
	l.index = nil
	l.pendingAdd = nil
	l.pendingRemove = nil
	l.initialized = false
}

// Preload runs off the game loop before Create and may block on asset
// fetches, reporting progress through the engine. Default no-op.
func (l *BaseLevel) Preload(ctx context.Context) error { return nil }

// Create runs on the game loop once Preload has succeeded. Default
// no-op.
func (l *BaseLevel) Create() {}

// Update runs once per frame before the entity updates. Default
// no-op.
func (l *BaseLevel) Update(dt float64) {}

// Draw renders world-space content under the camera transform, before
// the entities. Default no-op.
func (l *BaseLevel) Draw(s *draw.Surface) {}

// DrawUI renders screen-space content after the entity UI pass.
// Default no-op.
func (l *BaseLevel) DrawUI(s *draw.Surface) {}

// Resize runs after the entity resize broadcast when the view size
// changes. Default no-op.
func (l *BaseLevel) Resize(w, h float64) {}

// Destroy runs after the level's entities are torn down. Default
// no-op.
func (l *BaseLevel) Destroy() {}
