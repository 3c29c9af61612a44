package reel

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep is a single action in an input script.
//
//	{"action": "move", "x": 100, "y": 40}
//	{"action": "press", "key": "ArrowRight"}
//	{"action": "click", "x": 320, "y": 240, "button": "left"}
//	{"action": "wait", "frames": 30}
//	{"action": "release", "key": "ArrowRight"}
//	{"action": "screenshot", "label": "after-walk"}
type scriptStep struct {
	Action string      `json:"action"`
	Key    *ebiten.Key `json:"key,omitempty"`
	Button string      `json:"button,omitempty"`
	X      int         `json:"x,omitempty"`
	Y      int         `json:"y,omitempty"`
	Frames int         `json:"frames,omitempty"`
	Label  string      `json:"label,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptedInput is an InputSource that replays a JSON script, one step per
// tick. It drives headless runs and tests the way a user would drive the
// keyboard and mouse.
type ScriptedInput struct {
	// Width and Height bound the on-screen test for the pointer. Zero means
	// any non-negative position is on screen.
	Width, Height int

	// OnScreenshot is called for "screenshot" steps.
	OnScreenshot func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	x, y          int
	moved         bool
	keys          []ebiten.Key
	pressed       [numButtons]bool
	justPressed   [numButtons]bool
	releaseOnNext [numButtons]bool
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(data []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("reel: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("reel: parse input script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("reel: parse input script: step %d: %w", i, err)
		}
	}
	return &ScriptedInput{steps: script.Steps}, nil
}

func (st *scriptStep) validate() error {
	switch st.Action {
	case "press", "release":
		if st.Key == nil && st.Button == "" {
			return fmt.Errorf("%s needs a key or button", st.Action)
		}
	case "click", "move", "wait", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if st.Button != "" {
		if _, ok := parseButton(st.Button); !ok {
			return fmt.Errorf("unknown button %q", st.Button)
		}
	}
	return nil
}

func parseButton(name string) (ebiten.MouseButton, bool) {
	switch strings.ToLower(name) {
	case "", "left":
		return ebiten.MouseButtonLeft, true
	case "right":
		return ebiten.MouseButtonRight, true
	case "middle":
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}

// Done reports whether every step has run.
func (s *ScriptedInput) Done() bool {
	return s.done
}

// Update implements InputSource by executing at most one step.
func (s *ScriptedInput) Update() {
	s.justPressed = [numButtons]bool{}
	for b, release := range s.releaseOnNext {
		if release {
			s.pressed[b] = false
			s.releaseOnNext[b] = false
		}
	}

	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "move":
		s.moveTo(st.X, st.Y)
	case "press":
		if st.Key != nil {
			if !slices.Contains(s.keys, *st.Key) {
				s.keys = append(s.keys, *st.Key)
			}
		} else {
			b, _ := parseButton(st.Button)
			s.justPressed[b] = !s.pressed[b]
			s.pressed[b] = true
		}
	case "release":
		if st.Key != nil {
			if i := slices.Index(s.keys, *st.Key); i >= 0 {
				s.keys = slices.Delete(s.keys, i, i+1)
			}
		} else {
			b, _ := parseButton(st.Button)
			s.pressed[b] = false
		}
	case "click":
		s.moveTo(st.X, st.Y)
		b, _ := parseButton(st.Button)
		s.pressed[b] = true
		s.justPressed[b] = true
		s.releaseOnNext[b] = true
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		if s.OnScreenshot != nil {
			s.OnScreenshot(st.Label)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}

func (s *ScriptedInput) moveTo(x, y int) {
	s.x, s.y = x, y
	s.moved = true
}

// Pointer implements InputSource. Before the first move or click the pointer
// is off screen.
func (s *ScriptedInput) Pointer() (x, y int, onScreen bool) {
	onScreen = s.moved && s.x >= 0 && s.y >= 0 &&
		(s.Width <= 0 || s.x < s.Width) &&
		(s.Height <= 0 || s.y < s.Height)
	return s.x, s.y, onScreen
}

// AppendPressedKeys implements InputSource.
func (s *ScriptedInput) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, s.keys...)
}

// ButtonPressed implements InputSource.
func (s *ScriptedInput) ButtonPressed(b ebiten.MouseButton) bool {
	if b < 0 || int(b) >= numButtons {
		return false
	}
	return s.pressed[b]
}

// ButtonJustPressed implements InputSource.
func (s *ScriptedInput) ButtonJustPressed(b ebiten.MouseButton) bool {
	if b < 0 || int(b) >= numButtons {
		return false
	}
	return s.justPressed[b]
}
