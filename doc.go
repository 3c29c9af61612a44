// Package reel is a small 2D sprite and animation runtime for [Ebitengine].
//
// Reel keeps a layered display list of animated clips, advances their
// animation tracks once per fixed-rate tick, resolves rect and circle
// overlap tests, and turns the list into positioned, scaled and rotated draw
// commands every frame.
//
// # Quick start
//
// Build a [Loop] from a [Config], add clips to its [DisplayList] and hand it
// to [RunGame], which opens a window and drives the loop at the configured
// tick rate:
//
//	cache := reel.NewFrameCache(reel.NewDirLoader("assets"))
//	loop, _ := reel.NewLoop(reel.DefaultConfig(), func(t *reel.Tick) {
//		// game logic, with the model locked
//	})
//	hero := reel.LoadClip(cache, "images/hero", true)
//	loop.List().AddChild(hero, 1)
//	reel.RunGame(loop)
//
// For headless runs, call [Loop.Run] with a [Painter] of your own, or call
// [Loop.Tick] and [Loop.Render] directly.
//
// # Clips and tracks
//
// A [Clip] owns a set of named [Track]s, one of which is active. Each track
// plays a shared, immutable [FrameSet] forward or backward, looping or
// stopping on its last frame. [Clip.SwapAndResume] is meant to be called
// every tick with the animation that should be playing; it only restarts
// the track when the name changes.
//
// Frame sets come from a [FrameCache], so every clip built from the same
// asset path shares the decoded images. A path naming an image file yields a
// single-frame track; a directory yields one track of its images in name
// order, shaped by an optional clip.yaml manifest (mode, direction, ticks
// per frame, sprite sheet slicing). Loading a directory as multi-track turns
// each of its entries into a track. TexturePacker atlases are served through
// [AtlasLoader].
//
// # Tick order
//
// Each [Loop.Tick] runs with the model locked and, in order: removes the
// clips queued by [DisplayList.RemoveNextTime], samples the [InputSource]
// into an [InputState], steps every displayed clip's animation, runs the
// update function, and notifies [Loop.OnFrame]. [Loop.Render] takes the
// same lock.
//
// [Ebitengine]: https://ebitengine.org
package reel
