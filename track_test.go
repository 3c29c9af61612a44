package reel

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// testFrames returns n distinct w x h frames.
func testFrames(n, w, h int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = ebiten.NewImage(w, h)
	}
	return frames
}

func testSet(name string, n int) *FrameSet {
	return NewFrameSet(name, testFrames(n, 8, 8)...)
}

func TestTrackAdvanceLoopWraps(t *testing.T) {
	tr := NewTrack(testSet("walk", 4))
	want := []int{1, 2, 3, 0, 1}
	for i, w := range want {
		tr.Advance(1)
		if tr.Frame() != w {
			t.Fatalf("step %d: frame = %d, want %d", i, tr.Frame(), w)
		}
	}
	tr.Advance(6)
	if tr.Frame() != 3 {
		t.Errorf("after +6: frame = %d, want 3", tr.Frame())
	}
	tr.Advance(-5)
	if tr.Frame() != 2 {
		t.Errorf("after -5: frame = %d, want 2", tr.Frame())
	}
}

func TestTrackStopAtEndClamps(t *testing.T) {
	tr := NewTrack(testSet("once", 3))
	tr.SetMode(ModeStopAtEnd)
	if tr.AtEnd() {
		t.Fatal("AtEnd before playing")
	}
	tr.Advance(1)
	if tr.AtEnd() {
		t.Fatal("AtEnd on frame 1 of 3")
	}
	tr.Advance(1)
	if !tr.AtEnd() {
		t.Fatal("AtEnd should be true on last frame")
	}
	for range 5 {
		tr.Advance(1)
	}
	if tr.Frame() != 2 || !tr.AtEnd() {
		t.Errorf("frame = %d, AtEnd = %v; want clamped on 2", tr.Frame(), tr.AtEnd())
	}
	tr.Advance(-10)
	if tr.Frame() != 0 {
		t.Errorf("frame = %d after -10, want 0", tr.Frame())
	}
}

func TestTrackLoopNeverAtEnd(t *testing.T) {
	tr := NewTrack(testSet("loop", 2))
	tr.Advance(1)
	if tr.AtEnd() {
		t.Error("looping track must not report AtEnd")
	}
}

func TestTrackBackwardTraversal(t *testing.T) {
	set := testSet("spin", 4)
	set.Direction = Backward
	tr := NewTrack(set)
	if tr.Frame() != 3 || tr.Cursor() != 0 {
		t.Fatalf("start: frame %d cursor %d, want frame 3 cursor 0", tr.Frame(), tr.Cursor())
	}
	if tr.CurrentFrame() != set.Frames[3] {
		t.Error("CurrentFrame should be the last stored frame")
	}
	tr.Advance(1)
	if tr.Frame() != 2 {
		t.Errorf("frame = %d, want 2", tr.Frame())
	}
	tr.SetMode(ModeStopAtEnd)
	tr.Advance(10)
	if tr.Frame() != 0 || !tr.AtEnd() {
		t.Errorf("frame = %d, AtEnd = %v; want 0, true", tr.Frame(), tr.AtEnd())
	}
}

func TestTrackDirectionFlipKeepsFrame(t *testing.T) {
	set := testSet("spin", 5)
	tr := NewTrack(set)
	tr.Advance(2)
	before := tr.CurrentFrame()

	tr.SetDirection(Backward)
	if tr.CurrentFrame() != before {
		t.Fatal("flipping direction changed the visible frame")
	}
	tr.Advance(1)
	if tr.CurrentFrame() != set.Frames[1] {
		t.Errorf("after flip and advance: frame %d, want 1", tr.Frame())
	}

	tr.SetDirection(Forward)
	tr.Advance(1)
	if tr.CurrentFrame() != set.Frames[2] {
		t.Errorf("after flip back and advance: frame %d, want 2", tr.Frame())
	}
}

func TestTrackReset(t *testing.T) {
	tr := NewTrack(testSet("walk", 4))
	tr.Advance(3)
	tr.Reset()
	if tr.Frame() != 0 {
		t.Errorf("forward reset: frame = %d, want 0", tr.Frame())
	}
	tr.SetDirection(Backward)
	tr.Reset()
	if tr.Frame() != 3 {
		t.Errorf("backward reset: frame = %d, want 3", tr.Frame())
	}
}

func TestTrackStepTicksPerFrame(t *testing.T) {
	tr := NewTrack(testSet("slow", 3))
	tr.SetTicksPerFrame(3)
	moves := 0
	for range 9 {
		if tr.Step() {
			moves++
		}
	}
	if moves != 3 {
		t.Errorf("moves = %d, want 3", moves)
	}
	if tr.Frame() != 0 {
		t.Errorf("frame = %d after a full cycle, want 0", tr.Frame())
	}
}

func TestTrackSetTicksPerFrameFloor(t *testing.T) {
	tr := NewTrack(testSet("fast", 2))
	tr.SetTicksPerFrame(0)
	if tr.TicksPerFrame() != 1 {
		t.Errorf("TicksPerFrame = %d, want 1", tr.TicksPerFrame())
	}
}

func TestTrackEmpty(t *testing.T) {
	tr := NewTrack(NewFrameSet("empty"))
	tr.Advance(3)
	if tr.Step() {
		t.Error("empty track should never move")
	}
	if tr.CurrentFrame() != nil {
		t.Error("empty track should have no frame")
	}
	if tr.AtEnd() {
		t.Error("empty track is never at end")
	}
}

func TestTrackSingleFrameStopAtEnd(t *testing.T) {
	tr := NewTrack(testSet("still", 1))
	tr.SetMode(ModeStopAtEnd)
	if !tr.AtEnd() {
		t.Error("single-frame stop-at-end track starts at its end")
	}
}
