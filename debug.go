package reel

import (
	"log"
	"time"
)

// frameStats holds per-frame timing and draw metrics.
// Only populated when Renderer.Debug is true.
type frameStats struct {
	elapsed  time.Duration
	commands int
	culled   int
	removed  int
	clips    int
}

// debugLogFrame prints render stats to l.
func debugLogFrame(l *log.Logger, stats frameStats) {
	l.Printf("reel: render: %v | commands: %d | culled: %d | removed: %d | clips: %d",
		stats.elapsed, stats.commands, stats.culled, stats.removed, stats.clips)
}

// debugMaxLayerSize is the clip count above which a layer is reported.
// Every clip lookup is a linear scan, so very large layers slow the tick.
const debugMaxLayerSize = 1000

// debugCheckLayers warns when a layer holds more than debugMaxLayerSize clips.
func debugCheckLayers(d *DisplayList) {
	for i, layer := range d.layers {
		if len(layer) > debugMaxLayerSize {
			d.diag().Printf("reel: warning: layer %d has %d clips (threshold %d)", i, len(layer), debugMaxLayerSize)
		}
	}
}

// debugTickSlow reports a tick that overran its period. The next tick is
// simply delayed; nothing is dropped or caught up.
func debugTickSlow(l *log.Logger, index uint64, took, period time.Duration) {
	l.Printf("reel: warning: tick %d took %v (period %v)", index, took, period)
}
