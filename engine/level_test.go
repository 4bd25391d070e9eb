package engine

import (
	"strings"
	"sync"
	"testing"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) joined() string {
	return strings.Join(r.all(), " ")
}

type testEntity struct {
	BaseEntity
	rec      *recorder
	creates  int
	updates  int
	destroys int
	resizes  int
	onUpdate func(e *testEntity, dt float64)
	onCreate func(e *testEntity)
}

func newTestEntity(id string, rec *recorder) *testEntity {
	return &testEntity{BaseEntity: NewEntity(id), rec: rec}
}

func (e *testEntity) Create() {
	e.creates++
	if e.rec != nil {
		e.rec.add(e.ID() + ".create")
	}
	if e.onCreate != nil {
		e.onCreate(e)
	}
}

func (e *testEntity) Update(dt float64) {
	e.updates++
	if e.onUpdate != nil {
		e.onUpdate(e, dt)
	}
}

func (e *testEntity) Destroy() {
	e.destroys++
	if e.rec != nil {
		e.rec.add(e.ID() + ".destroy")
	}
}

func (e *testEntity) Resize(w, h float64) {
	e.resizes++
	if e.rec != nil {
		e.rec.add(e.ID() + ".resize")
	}
}

// runFrame drives the level the way the engine does each tick.
func runFrame(lvl Level, dt float64) {
	base := lvl.Base()
	base.flush()
	lvl.Update(dt)
	base.updateEntities(dt)
}

type plainLevel struct {
	BaseLevel
	onUpdate func(l *plainLevel, dt float64)
}

func (l *plainLevel) Update(dt float64) {
	if l.onUpdate != nil {
		l.onUpdate(l, dt)
	}
}

func TestAddIsDeferredToNextFrame(t *testing.T) {
	lvl := &plainLevel{}
	a := newTestEntity("a", nil)

	lvl.Add(a)
	if lvl.Count() != 0 {
		t.Fatalf("Count() = %d before frame, expected 0", lvl.Count())
	}
	if _, ok := lvl.Get("a"); ok {
		t.Error("Get(a) found a pending entity")
	}

	runFrame(lvl, 0.016)
	if lvl.Count() != 1 {
		t.Fatalf("Count() = %d after frame, expected 1", lvl.Count())
	}
	if a.creates != 1 {
		t.Errorf("creates = %d, expected 1", a.creates)
	}
	if a.updates != 1 {
		t.Errorf("updates = %d, expected 1; entities added this frame update this frame", a.updates)
	}
}

func TestMutationsDuringUpdateApplyNextFrame(t *testing.T) {
	lvl := &plainLevel{}
	b := newTestEntity("b", nil)
	lvl.Add(b)
	runFrame(lvl, 0.016)

	var sawDuringFrame int
	lvl.onUpdate = func(l *plainLevel, dt float64) {
		l.Add(newTestEntity("a", nil))
		l.Remove("b")
		sawDuringFrame = l.Count()
	}
	runFrame(lvl, 0.016)
	lvl.onUpdate = nil

	if sawDuringFrame != 1 {
		t.Errorf("live count during update = %d, expected 1; mutations must not apply mid-frame", sawDuringFrame)
	}
	if b.updates != 2 {
		t.Errorf("b.updates = %d, expected 2; removal lands next frame", b.updates)
	}

	runFrame(lvl, 0.016)
	if _, ok := lvl.Get("b"); ok {
		t.Error("b still live after its removal drained")
	}
	if _, ok := lvl.Get("a"); !ok {
		t.Error("a not live after its add drained")
	}
}

func TestRemovedEntityNeverUpdatesAgain(t *testing.T) {
	lvl := &plainLevel{}
	e := newTestEntity("doomed", nil)
	lvl.Add(e)
	runFrame(lvl, 0.016)

	lvl.Remove("doomed")
	runFrame(lvl, 0.016)
	updatesAtRemoval := e.updates

	runFrame(lvl, 0.016)
	runFrame(lvl, 0.016)

	if e.destroys != 1 {
		t.Errorf("destroys = %d, expected exactly 1", e.destroys)
	}
	if e.updates != updatesAtRemoval {
		t.Errorf("updates grew from %d to %d after destroy", updatesAtRemoval, e.updates)
	}
}

func TestRepeatedRemoveDestroysOnce(t *testing.T) {
	lvl := &plainLevel{}
	e := newTestEntity("x", nil)
	lvl.Add(e)
	runFrame(lvl, 0.016)

	lvl.Remove("x")
	lvl.Remove("x")
	runFrame(lvl, 0.016)
	lvl.Remove("x")
	runFrame(lvl, 0.016)

	if e.destroys != 1 {
		t.Errorf("destroys = %d, expected 1", e.destroys)
	}
}

func TestInactiveEntitySkipsUpdate(t *testing.T) {
	lvl := &plainLevel{}
	e := newTestEntity("sleeper", nil)
	lvl.Add(e)
	runFrame(lvl, 0.016)

	e.SetActive(false)
	runFrame(lvl, 0.016)
	if e.updates != 1 {
		t.Errorf("updates = %d, expected 1 while inactive", e.updates)
	}

	e.SetActive(true)
	runFrame(lvl, 0.016)
	if e.updates != 2 {
		t.Errorf("updates = %d, expected 2 after reactivation", e.updates)
	}
}

func TestAddDuringCreateLandsNextFrame(t *testing.T) {
	lvl := &plainLevel{}
	parent := newTestEntity("parent", nil)
	parent.onCreate = func(e *testEntity) {
		lvl.Add(newTestEntity("child", nil))
	}
	lvl.Add(parent)

	runFrame(lvl, 0.016)
	if _, ok := lvl.Get("child"); ok {
		t.Error("child live in the same frame its parent was created")
	}
	runFrame(lvl, 0.016)
	if _, ok := lvl.Get("child"); !ok {
		t.Error("child not live one frame after parent create")
	}
}

func TestDrawOrderSortsByDepthStable(t *testing.T) {
	lvl := &plainLevel{}
	c := newTestEntity("c", nil)
	c.SetDepth(1)
	a := newTestEntity("a", nil)
	a.SetDepth(0)
	b := newTestEntity("b", nil)
	b.SetDepth(1)
	lvl.Add(c)
	lvl.Add(a)
	lvl.Add(b)
	runFrame(lvl, 0.016)

	var got []string
	for _, e := range lvl.visibleByDepth() {
		got = append(got, e.ID())
	}
	want := []string{"a", "c", "b"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("draw order = %v, expected %v; equal depths keep insertion order", got, want)
		}
	}
}

func TestInvisibleEntityExcludedFromDrawOrder(t *testing.T) {
	lvl := &plainLevel{}
	a := newTestEntity("a", nil)
	b := newTestEntity("b", nil)
	b.SetVisible(false)
	lvl.Add(a)
	lvl.Add(b)
	runFrame(lvl, 0.016)

	order := lvl.visibleByDepth()
	if len(order) != 1 || order[0].ID() != "a" {
		t.Errorf("visibleByDepth() has %d entities, expected just a", len(order))
	}
}

func TestQueries(t *testing.T) {
	lvl := &plainLevel{}
	a := newTestEntity("a", nil)
	a.Tag("enemy")
	b := newTestEntity("b", nil)
	b.Tag("enemy")
	b.Tag("boss")
	c := newTestEntity("c", nil)
	lvl.Add(a)
	lvl.Add(b)
	lvl.Add(c)
	runFrame(lvl, 0.016)

	if got := len(lvl.WithTag("enemy")); got != 2 {
		t.Errorf("WithTag(enemy) = %d entities, expected 2", got)
	}
	if got := len(lvl.WithTag("boss")); got != 1 {
		t.Errorf("WithTag(boss) = %d entities, expected 1", got)
	}

	e, ok := lvl.Find(func(e Entity) bool { return e.HasTag("boss") })
	if !ok || e.ID() != "b" {
		t.Errorf("Find(boss) = %v, expected b", e)
	}
	if _, ok := lvl.Find(func(e Entity) bool { return e.HasTag("ally") }); ok {
		t.Error("Find(ally) matched, expected no match")
	}

	all := lvl.FindAll(func(e Entity) bool { return !e.HasTag("boss") })
	if len(all) != 2 {
		t.Errorf("FindAll(non-boss) = %d entities, expected 2", len(all))
	}

	snap := lvl.Entities()
	if len(snap) != 3 {
		t.Fatalf("Entities() = %d, expected 3", len(snap))
	}
	snap[0] = nil
	if lvl.Entities()[0] == nil {
		t.Error("Entities() exposed internal slice, expected a copy")
	}
}

func TestTeardownDestroysEntitiesThenResets(t *testing.T) {
	rec := &recorder{}
	lvl := &plainLevel{}
	lvl.Add(newTestEntity("a", rec))
	lvl.Add(newTestEntity("b", rec))
	runFrame(lvl, 0.016)

	pending := newTestEntity("never", rec)
	lvl.Add(pending)
	lvl.teardown()

	got := rec.joined()
	if got != "a.create b.create a.destroy b.destroy" {
		t.Errorf("events = %q, expected creates then destroys in order", got)
	}
	if pending.destroys != 0 {
		t.Error("entity that was never created got destroyed")
	}
	if lvl.Count() != 0 {
		t.Errorf("Count() = %d after teardown, expected 0", lvl.Count())
	}
}

func TestAddWithDuplicateIDReplaces(t *testing.T) {
	lvl := &plainLevel{}
	old := newTestEntity("hero", nil)
	lvl.Add(old)
	runFrame(lvl, 0.016)

	repl := newTestEntity("hero", nil)
	lvl.Add(repl)
	runFrame(lvl, 0.016)

	if old.destroys != 1 {
		t.Errorf("old.destroys = %d, expected 1", old.destroys)
	}
	got, _ := lvl.Get("hero")
	if got != Entity(repl) {
		t.Error("Get(hero) did not return the replacement")
	}
	if lvl.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", lvl.Count())
	}
}

func TestGeneratedEntityIDsAreUnique(t *testing.T) {
	a := NewEntity("")
	b := NewEntity("")
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("generated ids %q and %q, expected distinct non-empty", a.ID(), b.ID())
	}
	if !a.Active() || !a.Visible() {
		t.Error("new entity not active and visible by default")
	}
	if a.ScaleX != 1 || a.ScaleY != 1 {
		t.Errorf("new entity scale = (%v, %v), expected unit", a.ScaleX, a.ScaleY)
	}
}
