package reel

import (
	"fmt"
	"log"
	"math"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clip is a positioned, transformable entity wrapping a set of named
// animation tracks. Exactly one track is active at a time (none only when the
// clip has no tracks at all).
//
// Clip fields and methods must only be touched by the tick that owns the
// model (see Loop); clips are not safe for concurrent use.
type Clip struct {
	Name string

	// Position in world units.
	X, Y float64
	// OriginX, OriginY is the pivot, subtracted before scale and rotation.
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
	// Rotation in radians.
	Rotation float64

	// Radius overrides the circle collision radius when > 0. Otherwise half
	// the minor dimension of the current frame is used.
	Radius float64

	// RemoveOnFinish queues the clip for removal from its display list once a
	// stop-at-end track finishes.
	RemoveOnFinish bool

	tracks   map[string]*Track
	names    []string
	current  string
	finished bool

	// parent is the display list holding the clip, used only for removal
	// bookkeeping. It does not keep the clip alive.
	parent *DisplayList
	logger *log.Logger
}

// NewClip creates a clip with one track per frame set. The first set becomes
// the active track.
func NewClip(name string, sets ...*FrameSet) *Clip {
	c := &Clip{
		Name:   name,
		ScaleX: 1,
		ScaleY: 1,
		tracks: make(map[string]*Track, len(sets)),
	}
	for _, s := range sets {
		c.AddTrack(s)
	}
	return c
}

// LoadClip builds a clip from an asset path through cache. A file becomes a
// single-frame track named after the file, a directory a single track named
// after the directory; with multi each entry of the directory becomes its own
// track. On failure the error is logged and a clip without tracks is
// returned; drawing such a clip is a no-op.
func LoadClip(cache *FrameCache, p string, multi bool) *Clip {
	c := NewClip(path.Base(cleanAssetPath(p)))
	sets, err := cache.ClipSets(p, multi)
	if err != nil {
		cache.log().Printf("reel: clip %s: %v", p, err)
		return c
	}
	for _, s := range sets {
		c.AddTrack(s)
	}
	return c
}

// SetLogger replaces the diagnostic logger.
func (c *Clip) SetLogger(l *log.Logger) { c.logger = l }

func (c *Clip) diag() *log.Logger {
	if c.logger != nil {
		return c.logger
	}
	if c.parent != nil {
		return c.parent.diag()
	}
	return defaultLogger
}

// AddTrack adds playback state for set. A track with the same name is
// replaced. The first track added becomes active.
func (c *Clip) AddTrack(set *FrameSet) *Track {
	if set == nil {
		return nil
	}
	t := NewTrack(set)
	if _, exists := c.tracks[set.Name]; !exists {
		c.names = append(c.names, set.Name)
		sort.Strings(c.names)
	}
	c.tracks[set.Name] = t
	if c.current == "" {
		c.current = set.Name
	}
	return t
}

// Track returns the named track, or nil.
func (c *Clip) Track(name string) *Track {
	return c.tracks[name]
}

// TrackNames returns the declared track names in name order.
// The returned slice MUST NOT be mutated.
func (c *Clip) TrackNames() []string {
	return c.names
}

// CurrentTrack returns the name of the active track.
func (c *Clip) CurrentTrack() string {
	return c.current
}

func (c *Clip) active() *Track {
	return c.tracks[c.current]
}

// SwapAndRestart activates the named track from the start of its traversal
// order and clears the finished flag. An unknown name is logged and ignored.
func (c *Clip) SwapAndRestart(name string) error {
	t, ok := c.tracks[name]
	if !ok {
		err := fmt.Errorf("reel: clip %q: %w %q", c.Name, ErrUnknownTrack, name)
		c.diag().Print(err)
		return err
	}
	c.current = name
	c.finished = false
	t.Reset()
	return nil
}

// SwapAndResume leaves the clip untouched when name is already active and
// otherwise behaves like SwapAndRestart. It is meant to be called every tick
// with "the animation that should be playing now"; repeated calls with the
// same name never reset the cursor or the finished flag.
func (c *Clip) SwapAndResume(name string) error {
	if name == c.current {
		if _, ok := c.tracks[name]; ok {
			return nil
		}
	}
	return c.SwapAndRestart(name)
}

// StopAtEnd makes the active track play once and hold its last frame.
func (c *Clip) StopAtEnd() {
	if t := c.active(); t != nil {
		t.SetMode(ModeStopAtEnd)
	}
}

// Loop makes the active track wrap around.
func (c *Clip) Loop() {
	if t := c.active(); t != nil {
		t.SetMode(ModeLoop)
	}
}

// SetDirection sets the active track's traversal direction without changing
// the frame currently shown.
func (c *Clip) SetDirection(d Direction) {
	if t := c.active(); t != nil {
		t.SetDirection(d)
	}
}

// IsAtEnd reports whether the active stop-at-end track has finished. It stays
// true until the next SwapAndRestart (or SwapAndResume to another track).
func (c *Clip) IsAtEnd() bool {
	return c.finished
}

// Update advances the active track by one tick. A stop-at-end track that
// reaches its last frame marks the clip finished; finished clips no longer
// advance.
func (c *Clip) Update() {
	t := c.active()
	if t == nil || c.finished {
		return
	}
	t.Step()
	if t.AtEnd() {
		c.finished = true
		if c.RemoveOnFinish && c.parent != nil {
			c.parent.RemoveNextTime(c)
		}
	}
}

// CurrentFrame returns the active track's current frame, or nil.
func (c *Clip) CurrentFrame() *ebiten.Image {
	t := c.active()
	if t == nil {
		return nil
	}
	return t.CurrentFrame()
}

// SetOrigin sets the pivot used for scale and rotation. X and Y are unchanged.
func (c *Clip) SetOrigin(ox, oy float64) {
	c.OriginX = ox
	c.OriginY = oy
}

// SetPosition sets X and Y.
func (c *Clip) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// SetScale sets ScaleX and ScaleY.
func (c *Clip) SetScale(sx, sy float64) {
	c.ScaleX = sx
	c.ScaleY = sy
}

// AimAt rotates the clip so its positive X axis points at (x, y).
func (c *Clip) AimAt(x, y float64) {
	c.Rotation = math.Atan2(y-c.Y, x-c.X)
}

// IsTransformed reports whether the clip is scaled or rotated and therefore
// needs an affine draw.
func (c *Clip) IsTransformed() bool {
	return c.ScaleX != 1 || c.ScaleY != 1 || c.Rotation != 0
}

// Dimensions returns the current frame size in pixels, or (0, 0).
func (c *Clip) Dimensions() (w, h int) {
	f := c.CurrentFrame()
	if f == nil {
		return 0, 0
	}
	b := f.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the unscaled box the current frame occupies in world space:
// the position shifted by the origin, sized by the frame.
func (c *Clip) Bounds() Rect {
	w, h := c.Dimensions()
	return Rect{X: c.X - c.OriginX, Y: c.Y - c.OriginY, Width: float64(w), Height: float64(h)}
}

// CollisionRadius returns Radius, or half the minor frame dimension.
func (c *Clip) CollisionRadius() float64 {
	if c.Radius > 0 {
		return c.Radius
	}
	w, h := c.Dimensions()
	return float64(min(w, h)) / 2
}

// HitTest reports whether c and other overlap under the given shape model.
// It does not modify either clip.
func (c *Clip) HitTest(other *Clip, shape Shape) bool {
	if other == nil {
		return false
	}
	a, b := c.Bounds(), other.Bounds()
	switch shape {
	case ShapeRect:
		return a.Intersects(b)
	default:
		ca, cb := a.Center(), b.Center()
		return CircleCollision(ca.X, ca.Y, c.CollisionRadius(), cb.X, cb.Y, other.CollisionRadius())
	}
}

// Parent returns the display list currently holding the clip, or nil.
func (c *Clip) Parent() *DisplayList {
	return c.parent
}

// RemoveNextTime queues the clip for removal from its display list at the
// next tick boundary. No-op when the clip is not displayed.
func (c *Clip) RemoveNextTime() {
	if c.parent != nil {
		c.parent.RemoveNextTime(c)
	}
}
