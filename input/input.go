// Package input unifies keyboard, mouse and touch into one per-frame
// state. Held state reflects the current frame; just-pressed and
// just-released edges are valid for exactly one frame and replaced on
// the next sample.
//
// The pointer is the mouse cursor unified with the first active touch,
// so game code written against Pointer works unchanged on touch
// screens.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Touch is one active or just-ended touch point. The ID is transient:
// it identifies the touch only for its lifetime.
type Touch struct {
	ID          ebiten.TouchID
	X, Y        float64
	JustPressed bool
}

// Snapshot is the raw device state for one frame. The engine samples
// one per tick; tests construct them directly.
type Snapshot struct {
	Keys      []ebiten.Key
	CursorX   float64
	CursorY   float64
	MouseDown bool
	WheelY    float64
	Touches   []Touch
}

// State answers input queries for the current frame.
type State struct {
	held         map[ebiten.Key]bool
	justPressed  map[ebiten.Key]bool
	justReleased map[ebiten.Key]bool

	pointerX, pointerY float64
	pointerHeld        bool
	pointerJustDown    bool
	pointerJustUp      bool
	wheelY             float64

	touches  map[ebiten.TouchID]Touch
	released []Touch

	toWorld func(sx, sy float64) (float64, float64)

	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
}

// New returns an empty input state.
func New() *State {
	return &State{
		held:         map[ebiten.Key]bool{},
		justPressed:  map[ebiten.Key]bool{},
		justReleased: map[ebiten.Key]bool{},
		touches:      map[ebiten.TouchID]Touch{},
	}
}

// SetWorldConverter installs the screen-to-world mapping used by
// PointerWorld, normally the camera's.
func (s *State) SetWorldConverter(fn func(sx, sy float64) (float64, float64)) {
	s.toWorld = fn
}

// Update samples the devices and recomputes held and edge state. The
// engine calls this once at the top of every tick.
func (s *State) Update() {
	s.keyBuf = inpututil.AppendPressedKeys(s.keyBuf[:0])
	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])

	snap := Snapshot{
		Keys:      s.keyBuf,
		MouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	cx, cy := ebiten.CursorPosition()
	snap.CursorX, snap.CursorY = float64(cx), float64(cy)
	_, snap.WheelY = ebiten.Wheel()
	for _, id := range s.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		snap.Touches = append(snap.Touches, Touch{ID: id, X: float64(tx), Y: float64(ty)})
	}
	s.Apply(snap)
}

// Apply replaces the frame state from a snapshot. Edges are computed
// against the previous snapshot, which is what clears them after one
// frame.
func (s *State) Apply(snap Snapshot) {
	prev := s.held
	s.held = make(map[ebiten.Key]bool, len(snap.Keys))
	s.justPressed = map[ebiten.Key]bool{}
	s.justReleased = map[ebiten.Key]bool{}
	for _, k := range snap.Keys {
		s.held[k] = true
		if !prev[k] {
			s.justPressed[k] = true
		}
	}
	for k := range prev {
		if !s.held[k] {
			s.justReleased[k] = true
		}
	}

	prevTouches := s.touches
	s.touches = make(map[ebiten.TouchID]Touch, len(snap.Touches))
	s.released = s.released[:0]
	for _, t := range snap.Touches {
		if _, ok := prevTouches[t.ID]; !ok {
			t.JustPressed = true
		}
		s.touches[t.ID] = t
	}
	for id, t := range prevTouches {
		if _, ok := s.touches[id]; !ok {
			t.JustPressed = false
			s.released = append(s.released, t)
		}
	}

	wasHeld := s.pointerHeld
	if len(snap.Touches) > 0 {
		s.pointerX, s.pointerY = snap.Touches[0].X, snap.Touches[0].Y
		s.pointerHeld = true
	} else {
		s.pointerX, s.pointerY = snap.CursorX, snap.CursorY
		s.pointerHeld = snap.MouseDown
	}
	s.pointerJustDown = s.pointerHeld && !wasHeld
	s.pointerJustUp = !s.pointerHeld && wasHeld
	s.wheelY = snap.WheelY
}

// KeyHeld reports whether the key is down this frame.
func (s *State) KeyHeld(k ebiten.Key) bool { return s.held[k] }

// KeyJustPressed reports whether the key went down this frame.
func (s *State) KeyJustPressed(k ebiten.Key) bool { return s.justPressed[k] }

// KeyJustReleased reports whether the key went up this frame.
func (s *State) KeyJustReleased(k ebiten.Key) bool { return s.justReleased[k] }

// AnyKeyJustPressed reports whether any key went down this frame.
func (s *State) AnyKeyJustPressed() bool { return len(s.justPressed) > 0 }

// Pointer returns the pointer position in screen pixels.
func (s *State) Pointer() (x, y float64) { return s.pointerX, s.pointerY }

// PointerWorld returns the pointer position in world coordinates.
func (s *State) PointerWorld() (x, y float64) {
	if s.toWorld == nil {
		return s.pointerX, s.pointerY
	}
	return s.toWorld(s.pointerX, s.pointerY)
}

// PointerHeld reports whether the pointer is down this frame.
func (s *State) PointerHeld() bool { return s.pointerHeld }

// PointerJustPressed reports whether the pointer went down this frame.
func (s *State) PointerJustPressed() bool { return s.pointerJustDown }

// PointerJustReleased reports whether the pointer went up this frame.
func (s *State) PointerJustReleased() bool { return s.pointerJustUp }

// WheelY returns this frame's vertical scroll offset.
func (s *State) WheelY() float64 { return s.wheelY }

// Touches returns the active touch points in no particular order.
func (s *State) Touches() []Touch {
	out := make([]Touch, 0, len(s.touches))
	for _, t := range s.touches {
		out = append(out, t)
	}
	return out
}

// TouchByID looks up an active touch by its transient identifier.
func (s *State) TouchByID(id ebiten.TouchID) (Touch, bool) {
	t, ok := s.touches[id]
	return t, ok
}

// ReleasedTouches returns touches that ended this frame, at their last
// known position.
func (s *State) ReleasedTouches() []Touch {
	return s.released
}
