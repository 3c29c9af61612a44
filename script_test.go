package reel

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func mustScript(t *testing.T, js string) *ScriptedInput {
	t.Helper()
	s, err := LoadInputScript([]byte(js))
	if err != nil {
		t.Fatalf("LoadInputScript: %v", err)
	}
	return s
}

func TestLoadInputScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		js   string
		want string
	}{
		{"bad json", `{`, "parse input script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, "unknown action"},
		{"press without target", `{"steps": [{"action": "press"}]}`, "needs a key or button"},
		{"unknown button", `{"steps": [{"action": "click", "button": "side"}]}`, "unknown button"},
		{"unknown key", `{"steps": [{"action": "press", "key": "NoSuchKey"}]}`, "parse input script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInputScript([]byte(tt.js))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScriptPointerOffScreenUntilMoved(t *testing.T) {
	s := mustScript(t, `{"steps": [{"action": "wait", "frames": 1}, {"action": "move", "x": 5, "y": 6}]}`)
	s.Update()
	if _, _, on := s.Pointer(); on {
		t.Error("pointer should start off screen")
	}
	s.Update()
	if x, y, on := s.Pointer(); !on || x != 5 || y != 6 {
		t.Errorf("Pointer = (%d, %d, %v), want (5, 6, true)", x, y, on)
	}
}

func TestScriptPointerBounds(t *testing.T) {
	s := mustScript(t, `{"steps": [{"action": "move", "x": 120, "y": 10}]}`)
	s.Width, s.Height = 100, 100
	s.Update()
	if _, _, on := s.Pointer(); on {
		t.Error("pointer right of the viewport should be off screen")
	}
	s.Width = 0
	if _, _, on := s.Pointer(); !on {
		t.Error("zero width should not bound the pointer")
	}
}

func TestScriptKeys(t *testing.T) {
	s := mustScript(t, `{"steps": [
		{"action": "press", "key": "ArrowRight"},
		{"action": "press", "key": "ArrowRight"},
		{"action": "press", "key": "A"},
		{"action": "release", "key": "ArrowRight"}
	]}`)
	s.Update()
	s.Update()
	if got := s.AppendPressedKeys(nil); len(got) != 1 || got[0] != ebiten.KeyArrowRight {
		t.Fatalf("keys = %v, want [ArrowRight]", got)
	}
	s.Update()
	s.Update()
	if got := s.AppendPressedKeys(nil); len(got) != 1 || got[0] != ebiten.KeyA {
		t.Errorf("keys = %v, want [A]", got)
	}
	if !s.Done() {
		t.Error("script should be done after its last step")
	}
}

func TestScriptButtonPressRelease(t *testing.T) {
	s := mustScript(t, `{"steps": [
		{"action": "press", "button": "right"},
		{"action": "wait", "frames": 1},
		{"action": "release", "button": "right"}
	]}`)
	s.Update()
	if !s.ButtonPressed(ebiten.MouseButtonRight) || !s.ButtonJustPressed(ebiten.MouseButtonRight) {
		t.Fatal("press should set pressed and just pressed")
	}
	s.Update()
	if !s.ButtonPressed(ebiten.MouseButtonRight) || s.ButtonJustPressed(ebiten.MouseButtonRight) {
		t.Fatal("held button is no longer just pressed")
	}
	s.Update()
	if s.ButtonPressed(ebiten.MouseButtonRight) {
		t.Error("release should clear the button")
	}
}

func TestScriptClickLastsOneTick(t *testing.T) {
	s := mustScript(t, `{"steps": [{"action": "click", "x": 10, "y": 20}]}`)
	s.Update()
	if !s.ButtonJustPressed(ebiten.MouseButtonLeft) || !s.ButtonPressed(ebiten.MouseButtonLeft) {
		t.Fatal("click should press the left button")
	}
	if x, y, _ := s.Pointer(); x != 10 || y != 20 {
		t.Errorf("click moved pointer to (%d, %d), want (10, 20)", x, y)
	}
	s.Update()
	if s.ButtonPressed(ebiten.MouseButtonLeft) || s.ButtonJustPressed(ebiten.MouseButtonLeft) {
		t.Error("click should release on the next tick")
	}
}

func TestScriptWaitCountsTicks(t *testing.T) {
	s := mustScript(t, `{"steps": [{"action": "wait", "frames": 3}, {"action": "move", "x": 1, "y": 1}]}`)
	for i := range 3 {
		s.Update()
		if _, _, on := s.Pointer(); on {
			t.Fatalf("moved during wait tick %d", i)
		}
	}
	s.Update()
	if _, _, on := s.Pointer(); !on {
		t.Error("move should run on the tick after the wait")
	}
}

func TestScriptScreenshotHook(t *testing.T) {
	s := mustScript(t, `{"steps": [{"action": "screenshot", "label": "start"}]}`)
	var labels []string
	s.OnScreenshot = func(l string) { labels = append(labels, l) }
	s.Update()
	s.Update()
	if len(labels) != 1 || labels[0] != "start" {
		t.Errorf("labels = %v, want [start]", labels)
	}
}

func TestScriptBindsToLoopScreenshots(t *testing.T) {
	s := mustScript(t, `{"steps": [{"action": "screenshot", "label": "a"}]}`)
	l := newTestLoop(t, nil)
	l.SetInput(s)
	l.Tick()
	if len(l.screenshots) != 1 || l.screenshots[0] != "a" {
		t.Errorf("queued screenshots = %v, want [a]", l.screenshots)
	}
}
