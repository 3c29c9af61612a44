package reel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields together. Create one with
// TweenPosition, TweenScale, TweenRotation or TweenShift and call Update
// from the update function, usually with Tick.DT.
//
// Tweens are not owned by the loop. A tween whose clip has been removed from
// its display list keeps writing to the clip until it is done.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds the group to its start values.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

func newTween2(a, b *float64, toA, toB float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(*a), float32(toA), duration, fn)
	g.tweens[1] = gween.New(float32(*b), float32(toB), duration, fn)
	g.fields[0] = a
	g.fields[1] = b
	return g
}

// TweenPosition moves c to (toX, toY) over duration seconds.
func TweenPosition(c *Clip, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTween2(&c.X, &c.Y, toX, toY, duration, fn)
}

// TweenScale scales c to (toSX, toSY) over duration seconds.
func TweenScale(c *Clip, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTween2(&c.ScaleX, &c.ScaleY, toSX, toSY, duration, fn)
}

// TweenRotation turns c to the target angle in radians.
func TweenRotation(c *Clip, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(c.Rotation), float32(to), duration, fn)
	g.fields[0] = &c.Rotation
	return g
}

// TweenShift scrolls the renderer's level shift to (toX, toY).
func TweenShift(r *Renderer, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTween2(&r.ShiftX, &r.ShiftY, toX, toY, duration, fn)
}
