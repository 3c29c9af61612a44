package reel

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource is the device collaborator sampled once per tick. Update is
// called inside the loop's locked section before any other method.
type InputSource interface {
	Update()
	// Pointer returns the cursor position in screen pixels and whether it is
	// over the viewport.
	Pointer() (x, y int, onScreen bool)
	// AppendPressedKeys appends every key currently held to keys.
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
	ButtonPressed(b ebiten.MouseButton) bool
	ButtonJustPressed(b ebiten.MouseButton) bool
}

// numButtons covers left, right and middle.
const numButtons = 3

// InputState is the immutable snapshot a tick observes. Later device
// activity does not affect a snapshot already taken.
type InputState struct {
	PointerX, PointerY int
	OnScreen           bool

	keys        []ebiten.Key
	pressed     [numButtons]bool
	justPressed [numButtons]bool
}

// Snapshot samples src into a new InputState. A nil source yields the zero
// state: pointer off screen, nothing pressed.
func Snapshot(src InputSource) InputState {
	var s InputState
	if src == nil {
		return s
	}
	src.Update()
	s.PointerX, s.PointerY, s.OnScreen = src.Pointer()
	s.keys = src.AppendPressedKeys(nil)
	for b := range numButtons {
		btn := ebiten.MouseButton(b)
		s.pressed[b] = src.ButtonPressed(btn)
		s.justPressed[b] = src.ButtonJustPressed(btn)
	}
	return s
}

// Pointer returns the sampled cursor position as a vector.
func (s *InputState) Pointer() Vec2 {
	return Vec2{X: float64(s.PointerX), Y: float64(s.PointerY)}
}

// KeyPressed reports whether k was held when the snapshot was taken.
func (s *InputState) KeyPressed(k ebiten.Key) bool {
	return slices.Contains(s.keys, k)
}

// Keys returns the held keys. The returned slice MUST NOT be mutated.
func (s *InputState) Keys() []ebiten.Key {
	return s.keys
}

// ButtonPressed reports whether b was held.
func (s *InputState) ButtonPressed(b ebiten.MouseButton) bool {
	if b < 0 || int(b) >= numButtons {
		return false
	}
	return s.pressed[b]
}

// ButtonJustPressed reports whether b went down since the previous tick.
func (s *InputState) ButtonJustPressed(b ebiten.MouseButton) bool {
	if b < 0 || int(b) >= numButtons {
		return false
	}
	return s.justPressed[b]
}

// ArrowVector returns the arrow-key direction, each axis in {-1, 0, 1}.
// Y grows downward, so Up yields Y = -1.
func (s *InputState) ArrowVector() Vec2 {
	return s.axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowUp, ebiten.KeyArrowDown)
}

// WASDVector returns the W/A/S/D direction, each axis in {-1, 0, 1}.
func (s *InputState) WASDVector() Vec2 {
	return s.axis(ebiten.KeyA, ebiten.KeyD, ebiten.KeyW, ebiten.KeyS)
}

func (s *InputState) axis(left, right, up, down ebiten.Key) Vec2 {
	var v Vec2
	if s.KeyPressed(left) {
		v.X--
	}
	if s.KeyPressed(right) {
		v.X++
	}
	if s.KeyPressed(up) {
		v.Y--
	}
	if s.KeyPressed(down) {
		v.Y++
	}
	return v
}

// EbitenInput reads the keyboard and mouse through Ebitengine. It must be
// sampled from the ebiten Update goroutine.
type EbitenInput struct {
	width, height int
}

// NewEbitenInput creates an input source for a width x height viewport.
func NewEbitenInput(width, height int) *EbitenInput {
	return &EbitenInput{width: width, height: height}
}

// Update implements InputSource. Ebitengine refreshes device state itself.
func (in *EbitenInput) Update() {}

// Pointer implements InputSource.
func (in *EbitenInput) Pointer() (x, y int, onScreen bool) {
	x, y = ebiten.CursorPosition()
	onScreen = x >= 0 && y >= 0 && x < in.width && y < in.height
	return x, y, onScreen
}

// AppendPressedKeys implements InputSource.
func (in *EbitenInput) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(keys)
}

// ButtonPressed implements InputSource.
func (in *EbitenInput) ButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

// ButtonJustPressed implements InputSource.
func (in *EbitenInput) ButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}
