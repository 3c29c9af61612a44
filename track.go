package reel

import "github.com/hajimehoshi/ebiten/v2"

// FrameSet is the decoded, read-only part of an animation track. A single
// FrameSet is shared by every clip built from the same source asset, so its
// fields must not be modified after it has been handed to a FrameCache.
type FrameSet struct {
	Name   string
	Frames []*ebiten.Image

	// Playback defaults copied into each Track created from this set.
	Mode          LoopMode
	Direction     Direction
	TicksPerFrame int
}

// NewFrameSet creates a looping, forward FrameSet advancing once per tick.
func NewFrameSet(name string, frames ...*ebiten.Image) *FrameSet {
	return &FrameSet{Name: name, Frames: frames, TicksPerFrame: 1}
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.Frames)
}

// Track is one clip's playback state over a shared FrameSet: loop mode,
// direction and cursor. Tracks are never shared between clips.
type Track struct {
	set  *FrameSet
	mode LoopMode
	dir  Direction

	// pos indexes set.Frames directly, independent of direction, so that
	// flipping direction keeps the visible frame.
	pos int

	ticksPerFrame int
	wait          int
}

// NewTrack creates playback state for set, starting at its traversal start.
func NewTrack(set *FrameSet) *Track {
	t := &Track{set: set, ticksPerFrame: 1}
	if set != nil {
		t.mode = set.Mode
		t.dir = set.Direction
		if set.TicksPerFrame > 1 {
			t.ticksPerFrame = set.TicksPerFrame
		}
	}
	t.Reset()
	return t
}

// Name returns the track name.
func (t *Track) Name() string {
	if t.set == nil {
		return ""
	}
	return t.set.Name
}

// Len returns the number of frames in the track.
func (t *Track) Len() int {
	return t.set.Len()
}

// Mode returns the loop mode.
func (t *Track) Mode() LoopMode { return t.mode }

// SetMode changes the loop mode without moving the cursor.
func (t *Track) SetMode(m LoopMode) { t.mode = m }

// Direction returns the traversal direction.
func (t *Track) Direction() Direction { return t.dir }

// SetDirection changes the traversal order. The frame currently shown stays
// the same; only the order of subsequent frames changes.
func (t *Track) SetDirection(d Direction) { t.dir = d }

// TicksPerFrame returns how many Step calls each frame is held for.
func (t *Track) TicksPerFrame() int { return t.ticksPerFrame }

// SetTicksPerFrame sets the frame hold time. Values below 1 are treated as 1.
func (t *Track) SetTicksPerFrame(n int) {
	if n < 1 {
		n = 1
	}
	t.ticksPerFrame = n
}

// Cursor returns the current index in traversal order.
func (t *Track) Cursor() int {
	n := t.Len()
	if n == 0 {
		return 0
	}
	if t.dir == Backward {
		return n - 1 - t.pos
	}
	return t.pos
}

// Frame returns the stored frame index currently shown.
func (t *Track) Frame() int { return t.pos }

// Reset moves the cursor to the start of the traversal order.
func (t *Track) Reset() {
	t.wait = 0
	t.pos = 0
	if t.dir == Backward && t.Len() > 0 {
		t.pos = t.Len() - 1
	}
}

// Advance moves the cursor n steps in traversal order, wrapping in ModeLoop
// and clamping on the last frame in ModeStopAtEnd. Negative n moves against
// the traversal order. No-op on an empty track.
func (t *Track) Advance(n int) {
	size := t.Len()
	if size == 0 || n == 0 {
		return
	}
	c := t.Cursor() + n
	if t.mode == ModeLoop {
		c = ((c % size) + size) % size
	} else {
		c = max(0, min(c, size-1))
	}
	if t.dir == Backward {
		t.pos = size - 1 - c
	} else {
		t.pos = c
	}
}

// Step is the tick-driven advance: it moves one frame every TicksPerFrame
// calls. It reports whether the cursor moved.
func (t *Track) Step() bool {
	if t.Len() <= 1 {
		return false
	}
	t.wait++
	if t.wait < t.ticksPerFrame {
		return false
	}
	t.wait = 0
	before := t.pos
	t.Advance(1)
	return t.pos != before
}

// AtEnd reports whether a stop-at-end track is on its last traversal frame.
func (t *Track) AtEnd() bool {
	n := t.Len()
	return n > 0 && t.mode == ModeStopAtEnd && t.Cursor() == n-1
}

// CurrentFrame returns the frame at the cursor, or nil for an empty track.
func (t *Track) CurrentFrame() *ebiten.Image {
	if t.Len() == 0 {
		return nil
	}
	return t.set.Frames[t.pos]
}
