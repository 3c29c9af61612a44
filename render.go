package reel

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Painter is the render sink. It is handed each visible clip's current frame
// together with either an integer offset or a full affine matrix. Painters
// do not report errors back to the engine.
type Painter interface {
	Fill(c color.Color)
	DrawAt(frame *ebiten.Image, x, y int)
	DrawTransformed(frame *ebiten.Image, m Matrix)
}

// RenderCommand is a single resolved draw for one clip.
type RenderCommand struct {
	Clip  *Clip
	Frame *ebiten.Image
	Layer int

	// Transformed selects between the plain blit at (X, Y) and Matrix.
	Transformed bool
	X, Y        int
	Matrix      Matrix
}

// Renderer turns a DisplayList into draw commands for the current frame.
type Renderer struct {
	// Viewport is the visible rectangle; clips outside it are culled.
	Viewport Rect
	// ShiftX, ShiftY is the global level shift added to every clip position.
	ShiftX, ShiftY float64
	// Background is filled before any clip is drawn. Nil skips the fill.
	Background color.Color

	// Debug logs per-frame command and cull counts to the list's logger.
	Debug bool

	commands []RenderCommand
	culled   int
}

const defaultCommandCap = 256

// NewRenderer creates a renderer for a width x height viewport.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Viewport: Rect{Width: float64(width), Height: float64(height)},
		commands: make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Commands returns the commands produced by the last Resolve. The returned
// slice MUST NOT be mutated and is reused by the next Resolve.
func (r *Renderer) Commands() []RenderCommand {
	return r.commands
}

// Culled returns how many clips the last Resolve skipped as off-screen.
func (r *Renderer) Culled() int {
	return r.culled
}

// Resolve walks the list in draw order and emits one command per visible
// clip. Clips without a current frame, and clips whose shifted bounds do not
// intersect the viewport, are skipped.
func (r *Renderer) Resolve(d *DisplayList) []RenderCommand {
	r.commands = r.commands[:0]
	r.culled = 0
	d.Each(func(layer int, c *Clip) {
		frame := c.CurrentFrame()
		if frame == nil {
			return
		}
		if r.shouldCull(c) {
			r.culled++
			return
		}
		cmd := RenderCommand{Clip: c, Frame: frame, Layer: layer}
		if c.IsTransformed() {
			cmd.Transformed = true
			cmd.Matrix = ResolveTransform(c, r.ShiftX, r.ShiftY)
		} else {
			cmd.X = int(math.Round(c.X - c.OriginX + r.ShiftX))
			cmd.Y = int(math.Round(c.Y - c.OriginY + r.ShiftY))
			cmd.Matrix = Translation(float64(cmd.X), float64(cmd.Y))
		}
		r.commands = append(r.commands, cmd)
	})
	return r.commands
}

// shouldCull uses the unscaled frame bounds, as the fast path would draw
// them; a heavily scaled or rotated clip near the edge may be culled early.
func (r *Renderer) shouldCull(c *Clip) bool {
	b := c.Bounds()
	b.X += r.ShiftX
	b.Y += r.ShiftY
	return !b.Intersects(r.Viewport)
}

// Render resolves d, paints the commands in order, and then drains d's
// removal queue so that clips queued during this tick were still drawn.
func (r *Renderer) Render(d *DisplayList, p Painter) {
	var t0 time.Time
	if r.Debug {
		t0 = time.Now()
	}

	if r.Background != nil {
		p.Fill(r.Background)
	}
	for i := range r.Resolve(d) {
		cmd := &r.commands[i]
		if cmd.Transformed {
			p.DrawTransformed(cmd.Frame, cmd.Matrix)
		} else {
			p.DrawAt(cmd.Frame, cmd.X, cmd.Y)
		}
	}
	removed := d.FlushRemovals()

	if r.Debug {
		debugLogFrame(d.diag(), frameStats{
			elapsed:  time.Since(t0),
			commands: len(r.commands),
			culled:   r.culled,
			removed:  removed,
			clips:    d.Len(),
		})
		debugCheckLayers(d)
	}
}

// EbitenPainter draws onto an *ebiten.Image.
type EbitenPainter struct {
	Target *ebiten.Image
	Filter ebiten.Filter
}

// NewEbitenPainter creates a painter drawing onto target with bilinear
// filtering for transformed frames.
func NewEbitenPainter(target *ebiten.Image) *EbitenPainter {
	return &EbitenPainter{Target: target, Filter: ebiten.FilterLinear}
}

// Fill implements Painter.
func (p *EbitenPainter) Fill(c color.Color) {
	p.Target.Fill(c)
}

// DrawAt implements Painter.
func (p *EbitenPainter) DrawAt(frame *ebiten.Image, x, y int) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	p.Target.DrawImage(frame, &op)
}

// DrawTransformed implements Painter.
func (p *EbitenPainter) DrawTransformed(frame *ebiten.Image, m Matrix) {
	var op ebiten.DrawImageOptions
	op.GeoM = m.GeoM()
	op.Filter = p.Filter
	p.Target.DrawImage(frame, &op)
}
