package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type transLevel struct {
	BaseLevel
	name     string
	rec      *recorder
	preload  func(ctx context.Context) error
	onCreate func(l *transLevel)
	created  bool
}

func (l *transLevel) Preload(ctx context.Context) error {
	l.rec.add(l.name + ".preload")
	if l.preload != nil {
		return l.preload(ctx)
	}
	return nil
}

func (l *transLevel) Create() {
	l.created = true
	l.rec.add(l.name + ".create")
	if l.onCreate != nil {
		l.onCreate(l)
	}
}

func (l *transLevel) Resize(w, h float64) {
	l.rec.add(l.name + ".resize")
}

func (l *transLevel) Destroy() {
	l.rec.add(l.name + ".destroy")
}

func newTestEngine() *Engine {
	return New(DefaultConfig())
}

// waitLoaded steps the engine until the in-flight load commits.
func waitLoaded(t *testing.T, e *Engine) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for e.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("level load never finished")
		}
		e.Advance(0.016)
		time.Sleep(time.Millisecond)
	}
}

func TestLoadLevelRunsPreloadThenCreate(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	var lvl *transLevel
	e.RegisterLevel("menu", func(e *Engine) Level {
		lvl = &transLevel{name: "menu", rec: rec}
		return lvl
	})

	e.LoadLevel("menu")
	e.Advance(0.016)
	waitLoaded(t, e)

	if got := rec.joined(); got != "menu.preload menu.create menu.resize" {
		t.Errorf("events = %q, expected preload, create, resize in order", got)
	}
	if e.ActiveLevelKey() != "menu" {
		t.Errorf("ActiveLevelKey() = %q, expected menu", e.ActiveLevelKey())
	}
	if !lvl.Initialized() {
		t.Error("level not marked initialized after create")
	}
	if lvl.Engine() != e {
		t.Error("level not bound to its engine")
	}
}

func TestTransitionDestroysOldLevelFirst(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	e.RegisterLevel("a", func(e *Engine) Level { return &transLevel{name: "a", rec: rec} })
	e.RegisterLevel("b", func(e *Engine) Level { return &transLevel{name: "b", rec: rec} })

	e.LoadLevel("a")
	e.Advance(0.016)
	waitLoaded(t, e)
	e.LoadLevel("b")
	e.Advance(0.016)
	waitLoaded(t, e)

	want := "a.preload a.create a.resize a.destroy b.preload b.create b.resize"
	if got := rec.joined(); got != want {
		t.Errorf("events = %q, expected %q; the old level must be gone before the new preload starts", got, want)
	}
}

func TestUnknownLevelKeepsCurrentLevel(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	e.RegisterLevel("a", func(e *Engine) Level { return &transLevel{name: "a", rec: rec} })

	e.LoadLevel("a")
	e.Advance(0.016)
	waitLoaded(t, e)

	e.LoadLevel("missing")
	e.Advance(0.016)
	if e.ActiveLevelKey() != "a" {
		t.Errorf("ActiveLevelKey() = %q after unknown key, expected a", e.ActiveLevelKey())
	}
	if e.Loading() {
		t.Error("engine loading after a rejected transition")
	}
}

func TestSupersededLoadNeverCommits(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	release := make(chan struct{})
	var slow *transLevel
	e.RegisterLevel("slow", func(e *Engine) Level {
		slow = &transLevel{name: "slow", rec: rec, preload: func(ctx context.Context) error {
			<-release
			return nil
		}}
		return slow
	})
	e.RegisterLevel("fast", func(e *Engine) Level { return &transLevel{name: "fast", rec: rec} })

	e.LoadLevel("slow")
	e.Advance(0.016)
	e.LoadLevel("fast")
	e.Advance(0.016)
	waitLoaded(t, e)

	close(release)
	for i := 0; i < 5; i++ {
		e.Advance(0.016)
		time.Sleep(time.Millisecond)
	}

	if slow.created {
		t.Error("superseded level still ran Create")
	}
	if e.ActiveLevelKey() != "fast" {
		t.Errorf("ActiveLevelKey() = %q, expected fast", e.ActiveLevelKey())
	}
}

func TestStopDropsInFlightLoad(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	release := make(chan struct{})
	var slow *transLevel
	e.RegisterLevel("slow", func(e *Engine) Level {
		slow = &transLevel{name: "slow", rec: rec, preload: func(ctx context.Context) error {
			<-release
			return nil
		}}
		return slow
	})

	e.LoadLevel("slow")
	e.Advance(0.016)
	e.Stop()
	close(release)

	deadline := time.Now().Add(2 * time.Second)
	for e.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("load result never drained")
		}
		e.Advance(0.016)
		time.Sleep(time.Millisecond)
	}
	if slow.created {
		t.Error("Create ran on a stopped engine")
	}
}

func TestPreloadFailureClearsLoading(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	var lvl *transLevel
	e.RegisterLevel("broken", func(e *Engine) Level {
		lvl = &transLevel{name: "broken", rec: rec, preload: func(ctx context.Context) error {
			return errors.New("asset server down")
		}}
		return lvl
	})

	e.LoadLevel("broken")
	e.Advance(0.016)
	waitLoaded(t, e)

	if lvl.created {
		t.Error("Create ran after a failed preload")
	}
	if lvl.Initialized() {
		t.Error("level marked initialized after a failed preload")
	}
	if e.ActiveLevelKey() != "broken" {
		t.Errorf("ActiveLevelKey() = %q, expected the partially initialized level to stay current", e.ActiveLevelKey())
	}
}

func TestPreloadPanicIsContained(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	var lvl *transLevel
	e.RegisterLevel("panicky", func(e *Engine) Level {
		lvl = &transLevel{name: "panicky", rec: rec, preload: func(ctx context.Context) error {
			panic("corrupt asset")
		}}
		return lvl
	})

	e.LoadLevel("panicky")
	e.Advance(0.016)
	waitLoaded(t, e)

	if lvl.created {
		t.Error("Create ran after preload panicked")
	}
}

func TestCreatePanicStillClearsLoading(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	var lvl *transLevel
	e.RegisterLevel("fragile", func(e *Engine) Level {
		lvl = &transLevel{name: "fragile", rec: rec, onCreate: func(l *transLevel) {
			panic("nil texture")
		}}
		return lvl
	})

	e.LoadLevel("fragile")
	e.Advance(0.016)
	waitLoaded(t, e)

	if lvl.Initialized() {
		t.Error("level marked initialized after Create panicked")
	}
	if e.Loading() {
		t.Error("loading flag stuck after Create panicked")
	}
}

func TestLoadingProgressClampsAndGates(t *testing.T) {
	e := newTestEngine()

	e.SetLoadingProgress(0.5, "ignored")
	if p, msg := e.LoadingProgress(); p != 0 || msg != "" {
		t.Errorf("LoadingProgress() = (%v, %q) outside a load, expected (0, \"\")", p, msg)
	}

	e.loading.Store(true)
	tests := []struct {
		name string
		frac float64
		want float64
	}{
		{"below range", -0.5, 0},
		{"above range", 1.7, 1},
		{"in range", 0.25, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.SetLoadingProgress(tt.frac)
			if p, _ := e.LoadingProgress(); p != tt.want {
				t.Errorf("LoadingProgress() = %v, expected %v", p, tt.want)
			}
		})
	}

	e.SetLoadingProgress(0.75, "textures")
	if p, msg := e.LoadingProgress(); p != 0.75 || msg != "textures" {
		t.Errorf("LoadingProgress() = (%v, %q), expected (0.75, textures)", p, msg)
	}
}

func TestTickDeltaIsCapped(t *testing.T) {
	e := newTestEngine()
	if dt := e.tickDelta(); dt != 0 {
		t.Errorf("first tickDelta() = %v, expected 0", dt)
	}

	e.lastTick = time.Now().Add(-5 * time.Second)
	if dt := e.tickDelta(); dt != maxDelta {
		t.Errorf("tickDelta() after 5s stall = %v, expected cap %v", dt, maxDelta)
	}
}

func TestFPSRecomputesOncePerSecond(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 49; i++ {
		e.Advance(0.02)
	}
	if e.FPS() != 0 {
		t.Errorf("FPS() = %v before a full second accumulated, expected 0", e.FPS())
	}
	e.Advance(0.02)
	if got := e.FPS(); got < 49 || got > 51 {
		t.Errorf("FPS() = %v, expected about 50", got)
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	e.RegisterLevel("dup", func(e *Engine) Level { return &transLevel{name: "first", rec: rec} })
	e.RegisterLevel("dup", func(e *Engine) Level { return &transLevel{name: "second", rec: rec} })

	e.LoadLevel("dup")
	e.Advance(0.016)
	waitLoaded(t, e)

	if got := rec.joined(); got != "second.preload second.create second.resize" {
		t.Errorf("events = %q, expected only the second registration to run", got)
	}
}

func TestRegistryListsSortedKeys(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	e.RegisterLevels(map[string]LevelFunc{
		"menu":  func(e *Engine) Level { return &transLevel{name: "menu", rec: rec} },
		"arena": func(e *Engine) Level { return &transLevel{name: "arena", rec: rec} },
		"over":  func(e *Engine) Level { return &transLevel{name: "over", rec: rec} },
	})

	got := e.Levels()
	want := []string{"arena", "menu", "over"}
	if len(got) != len(want) {
		t.Fatalf("Levels() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Levels() = %v, expected %v", got, want)
		}
	}
	if !e.HasLevel("menu") || e.HasLevel("bonus") {
		t.Error("HasLevel() disagrees with registered keys")
	}
}

func TestResizeCascadesEntitiesThenLevel(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	e.RegisterLevel("a", func(e *Engine) Level {
		lvl := &transLevel{name: "a", rec: rec}
		lvl.onCreate = func(l *transLevel) {
			ent := newTestEntity("ent", rec)
			l.Add(ent)
		}
		return lvl
	})

	e.LoadLevel("a")
	e.Advance(0.016)
	waitLoaded(t, e)
	e.Advance(0.016) // drain the entity added during create

	e.resize(800, 600)

	if w, h := e.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = (%v, %v), expected (800, 600)", w, h)
	}
	if w, h := e.Camera().Viewport(); w != 800 || h != 600 {
		t.Errorf("camera viewport = (%v, %v), expected (800, 600)", w, h)
	}
	events := rec.joined()
	wantTail := "ent.resize a.resize"
	if len(events) < len(wantTail) || events[len(events)-len(wantTail):] != wantTail {
		t.Errorf("events = %q, expected entities resized before the level hook", events)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	e := newTestEngine()
	e.Stop()
	e.Stop()
	if e.Running() {
		t.Error("Running() = true after Stop on a never-started engine")
	}
	if err := e.Update(); !errors.Is(err, ebiten.Termination) {
		t.Error("Update() after Stop did not request termination")
	}
}

func TestEngineServicesAvailable(t *testing.T) {
	e := newTestEngine()
	if e.Camera() == nil || e.Input() == nil || e.Sound() == nil || e.Assets() == nil || e.Log() == nil {
		t.Fatal("engine services missing after New")
	}
	if e.Save() == nil {
		t.Error("Save() = nil with in-memory store config")
	}
	cfg := e.Config()
	if cfg.Window.Width != 960 || cfg.Window.Height != 540 || cfg.Loop.TPS != 60 {
		t.Errorf("Config() defaults = %dx%d at %d tps, expected 960x540 at 60", cfg.Window.Width, cfg.Window.Height, cfg.Loop.TPS)
	}
}
