package reel

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeInput is a hand-driven InputSource.
type fakeInput struct {
	x, y    int
	on      bool
	keys    []ebiten.Key
	pressed map[ebiten.MouseButton]bool
	just    map[ebiten.MouseButton]bool
	updates int
}

func (f *fakeInput) Update() { f.updates++ }
func (f *fakeInput) Pointer() (int, int, bool) { return f.x, f.y, f.on }
func (f *fakeInput) ButtonPressed(b ebiten.MouseButton) bool { return f.pressed[b] }
func (f *fakeInput) ButtonJustPressed(b ebiten.MouseButton) bool { return f.just[b] }

func (f *fakeInput) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.keys...)
}

func TestSnapshotCopiesSource(t *testing.T) {
	src := &fakeInput{
		x: 12, y: 34, on: true,
		keys:    []ebiten.Key{ebiten.KeySpace},
		pressed: map[ebiten.MouseButton]bool{ebiten.MouseButtonRight: true},
		just:    map[ebiten.MouseButton]bool{ebiten.MouseButtonRight: true},
	}
	s := Snapshot(src)
	if src.updates != 1 {
		t.Errorf("Update calls = %d, want 1", src.updates)
	}
	if s.Pointer() != (Vec2{12, 34}) || !s.OnScreen {
		t.Errorf("pointer = %v on=%v", s.Pointer(), s.OnScreen)
	}
	if !s.KeyPressed(ebiten.KeySpace) || s.KeyPressed(ebiten.KeyA) {
		t.Error("key state mismatch")
	}
	if !s.ButtonPressed(ebiten.MouseButtonRight) || !s.ButtonJustPressed(ebiten.MouseButtonRight) {
		t.Error("right button should be pressed and just pressed")
	}
	if s.ButtonPressed(ebiten.MouseButtonLeft) {
		t.Error("left button should be up")
	}
	if s.ButtonPressed(ebiten.MouseButton(7)) || s.ButtonJustPressed(-1) {
		t.Error("out-of-range buttons should read as up")
	}

	// Later device activity must not leak into the snapshot.
	src.keys[0] = ebiten.KeyEscape
	src.keys = append(src.keys, ebiten.KeyW)
	if !s.KeyPressed(ebiten.KeySpace) || s.KeyPressed(ebiten.KeyW) {
		t.Error("snapshot changed after the source did")
	}
}

func TestSnapshotNilSource(t *testing.T) {
	s := Snapshot(nil)
	if s.OnScreen || len(s.Keys()) != 0 || s.ButtonPressed(ebiten.MouseButtonLeft) {
		t.Errorf("nil source snapshot = %+v, want zero", s)
	}
}

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		name  string
		keys  []ebiten.Key
		arrow Vec2
		wasd  Vec2
	}{
		{"none", nil, Vec2{}, Vec2{}},
		{"up", []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, Vec2{0, -1}, Vec2{0, -1}},
		{"down right", []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowRight}, Vec2{1, 1}, Vec2{}},
		{"opposites cancel", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyA}, Vec2{}, Vec2{-1, 0}},
		{"wasd diagonal", []ebiten.Key{ebiten.KeyS, ebiten.KeyD}, Vec2{}, Vec2{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot(&fakeInput{keys: tt.keys})
			if got := s.ArrowVector(); got != tt.arrow {
				t.Errorf("ArrowVector = %v, want %v", got, tt.arrow)
			}
			if got := s.WASDVector(); got != tt.wasd {
				t.Errorf("WASDVector = %v, want %v", got, tt.wasd)
			}
		})
	}
}
