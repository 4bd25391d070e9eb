package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeyEdgeStates(t *testing.T) {
	s := New()

	s.Apply(Snapshot{Keys: []ebiten.Key{ebiten.KeySpace}})
	if !s.KeyJustPressed(ebiten.KeySpace) || !s.KeyHeld(ebiten.KeySpace) {
		t.Error("expected just-pressed and held on the press frame")
	}

	s.Apply(Snapshot{Keys: []ebiten.Key{ebiten.KeySpace}})
	if s.KeyJustPressed(ebiten.KeySpace) {
		t.Error("just-pressed must clear after one frame")
	}
	if !s.KeyHeld(ebiten.KeySpace) {
		t.Error("held must persist while the key stays down")
	}

	s.Apply(Snapshot{})
	if !s.KeyJustReleased(ebiten.KeySpace) {
		t.Error("expected just-released on the release frame")
	}
	if s.KeyHeld(ebiten.KeySpace) {
		t.Error("held must clear on release")
	}

	s.Apply(Snapshot{})
	if s.KeyJustReleased(ebiten.KeySpace) {
		t.Error("just-released must clear after one frame")
	}
}

func TestPointerFollowsMouse(t *testing.T) {
	s := New()

	s.Apply(Snapshot{CursorX: 15, CursorY: 25, MouseDown: true})
	if !s.PointerJustPressed() || !s.PointerHeld() {
		t.Error("expected pointer press edge and held")
	}
	if x, y := s.Pointer(); x != 15 || y != 25 {
		t.Errorf("Pointer() = (%v, %v), expected (15, 25)", x, y)
	}

	s.Apply(Snapshot{CursorX: 16, CursorY: 25, MouseDown: true})
	if s.PointerJustPressed() {
		t.Error("press edge must clear after one frame")
	}

	s.Apply(Snapshot{CursorX: 16, CursorY: 25})
	if !s.PointerJustReleased() {
		t.Error("expected pointer release edge")
	}
}

func TestPointerPrefersTouch(t *testing.T) {
	s := New()

	s.Apply(Snapshot{
		CursorX: 1, CursorY: 1,
		Touches: []Touch{{ID: 3, X: 100, Y: 200}},
	})
	if x, y := s.Pointer(); x != 100 || y != 200 {
		t.Errorf("Pointer() = (%v, %v), expected the touch position (100, 200)", x, y)
	}
	if !s.PointerJustPressed() {
		t.Error("a new touch must register as a pointer press")
	}

	s.Apply(Snapshot{CursorX: 1, CursorY: 1})
	if !s.PointerJustReleased() {
		t.Error("ending the touch must register as a pointer release")
	}
}

func TestTouchLifecycle(t *testing.T) {
	s := New()

	s.Apply(Snapshot{Touches: []Touch{{ID: 7, X: 10, Y: 10}}})
	tp, ok := s.TouchByID(7)
	if !ok || !tp.JustPressed {
		t.Fatalf("TouchByID(7) = %+v, %v, expected a just-pressed touch", tp, ok)
	}

	s.Apply(Snapshot{Touches: []Touch{{ID: 7, X: 12, Y: 11}, {ID: 8, X: 50, Y: 50}}})
	tp, _ = s.TouchByID(7)
	if tp.JustPressed {
		t.Error("touch 7 must no longer be just-pressed on its second frame")
	}
	if tp.X != 12 || tp.Y != 11 {
		t.Errorf("touch 7 at (%v, %v), expected (12, 11)", tp.X, tp.Y)
	}
	if len(s.Touches()) != 2 {
		t.Errorf("Touches() has %d entries, expected 2", len(s.Touches()))
	}

	s.Apply(Snapshot{Touches: []Touch{{ID: 8, X: 51, Y: 50}}})
	rel := s.ReleasedTouches()
	if len(rel) != 1 || rel[0].ID != 7 {
		t.Fatalf("ReleasedTouches() = %+v, expected touch 7", rel)
	}
	if rel[0].X != 12 || rel[0].Y != 11 {
		t.Errorf("released touch at (%v, %v), expected last known (12, 11)", rel[0].X, rel[0].Y)
	}

	s.Apply(Snapshot{Touches: []Touch{{ID: 8, X: 51, Y: 50}}})
	if len(s.ReleasedTouches()) != 0 {
		t.Error("released touches must clear after one frame")
	}
}

func TestPointerWorldUsesConverter(t *testing.T) {
	s := New()
	s.SetWorldConverter(func(sx, sy float64) (float64, float64) {
		return sx / 2, sy / 2
	})

	s.Apply(Snapshot{CursorX: 100, CursorY: 60})
	if x, y := s.PointerWorld(); x != 50 || y != 30 {
		t.Errorf("PointerWorld() = (%v, %v), expected (50, 30)", x, y)
	}
}
