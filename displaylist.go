package reel

import (
	"fmt"
	"log"
)

// DisplayList is an ordered set of layers, each an ordered sequence of clips.
// Layers are drawn in index order and clips within a layer in sequence order,
// so later entries appear in front of earlier ones. The number of layers is
// fixed at construction. A clip is held by at most one layer.
//
// Clips are found by linear search, so operations taking only a *Clip are
// O(layers x layer size).
type DisplayList struct {
	layers      [][]*Clip
	removeQueue []*Clip
	logger      *log.Logger
}

// NewDisplayList creates a list with the given number of layers (at least 1).
func NewDisplayList(layers int) *DisplayList {
	if layers < 1 {
		layers = 1
	}
	return &DisplayList{layers: make([][]*Clip, layers)}
}

// SetLogger replaces the diagnostic logger. Clips without their own logger
// report through the list holding them.
func (d *DisplayList) SetLogger(l *log.Logger) { d.logger = l }

func (d *DisplayList) diag() *log.Logger { return loggerOr(d.logger) }

func (d *DisplayList) report(err error) error {
	d.diag().Print(err)
	return err
}

// NumLayers returns the fixed layer count.
func (d *DisplayList) NumLayers() int { return len(d.layers) }

// Layer returns the clips on layer i, back to front. The returned slice MUST
// NOT be mutated. Out-of-range layers yield nil.
func (d *DisplayList) Layer(i int) []*Clip {
	if i < 0 || i >= len(d.layers) {
		return nil
	}
	return d.layers[i]
}

// Len returns the total number of displayed clips.
func (d *DisplayList) Len() int {
	n := 0
	for _, l := range d.layers {
		n += len(l)
	}
	return n
}

// Each calls fn for every clip in draw order.
func (d *DisplayList) Each(fn func(layer int, c *Clip)) {
	for i, l := range d.layers {
		for _, c := range l {
			fn(i, c)
		}
	}
}

// AddChild appends c to the front of layer. A clip already in the list is
// moved. An out-of-range layer is reported and nothing changes.
func (d *DisplayList) AddChild(c *Clip, layer int) error {
	if c == nil {
		return d.report(fmt.Errorf("reel: add nil clip: %w", ErrClipNotFound))
	}
	if layer < 0 || layer >= len(d.layers) {
		return d.report(fmt.Errorf("reel: add %q to layer %d of %d: %w", c.Name, layer, len(d.layers), ErrLayerOutOfRange))
	}
	if old, i := d.find(c); old >= 0 {
		d.removeAt(old, i)
	}
	d.layers[layer] = append(d.layers[layer], c)
	c.parent = d
	return nil
}

// LayerContaining returns the index of the layer holding c, or -1 (reported)
// when c is not displayed. If c ever appeared in several layers, which the
// list never produces itself, the highest index is returned.
func (d *DisplayList) LayerContaining(c *Clip) int {
	layer := -1
	for i, l := range d.layers {
		if indexOf(l, c) >= 0 {
			layer = i
		}
	}
	if layer == -1 {
		d.report(d.notFound(c))
	}
	return layer
}

// Contains reports whether c is displayed, without reporting a miss.
func (d *DisplayList) Contains(c *Clip) bool {
	l, _ := d.find(c)
	return l >= 0
}

// IndexOf returns c's position within its layer, or -1.
func (d *DisplayList) IndexOf(c *Clip) int {
	_, i := d.find(c)
	return i
}

// RemoveChild removes c from whichever layer holds it.
func (d *DisplayList) RemoveChild(c *Clip) error {
	l, i := d.find(c)
	if l < 0 {
		return d.report(d.notFound(c))
	}
	d.removeAt(l, i)
	return nil
}

// RemoveNextTime queues c for removal at the next tick boundary, so a clip
// can remove itself while the layers are being traversed.
func (d *DisplayList) RemoveNextTime(c *Clip) {
	if c == nil || indexOf(d.removeQueue, c) >= 0 {
		return
	}
	d.removeQueue = append(d.removeQueue, c)
}

// Pending returns the number of clips waiting in the removal queue.
func (d *DisplayList) Pending() int { return len(d.removeQueue) }

// FlushRemovals removes every queued clip and empties the queue. Clips that
// were already removed by other means are skipped silently.
func (d *DisplayList) FlushRemovals() int {
	n := 0
	for i, c := range d.removeQueue {
		if l, j := d.find(c); l >= 0 {
			d.removeAt(l, j)
			n++
		}
		d.removeQueue[i] = nil
	}
	d.removeQueue = d.removeQueue[:0]
	return n
}

// RemoveAllChildren empties every layer.
func (d *DisplayList) RemoveAllChildren() {
	for i := range d.layers {
		d.clearLayer(i)
	}
}

// RemoveAllChildrenOnLayer empties one layer.
func (d *DisplayList) RemoveAllChildrenOnLayer(layer int) error {
	if layer < 0 || layer >= len(d.layers) {
		return d.report(fmt.Errorf("reel: clear layer %d of %d: %w", layer, len(d.layers), ErrLayerOutOfRange))
	}
	d.clearLayer(layer)
	return nil
}

// MoveLayer moves c to the front of another layer.
func (d *DisplayList) MoveLayer(c *Clip, layer int) error {
	if layer < 0 || layer >= len(d.layers) {
		return d.report(fmt.Errorf("reel: move %q to layer %d of %d: %w", clipName(c), layer, len(d.layers), ErrLayerOutOfRange))
	}
	l, i := d.find(c)
	if l < 0 {
		return d.report(d.notFound(c))
	}
	d.removeAt(l, i)
	d.layers[layer] = append(d.layers[layer], c)
	c.parent = d
	return nil
}

// SwapChildren exchanges the draw positions of a and b. On the same layer
// their indices are swapped; across layers each takes the other's index in
// the other's layer.
func (d *DisplayList) SwapChildren(a, b *Clip) error {
	la, ia := d.find(a)
	if la < 0 {
		return d.report(d.notFound(a))
	}
	lb, ib := d.find(b)
	if lb < 0 {
		return d.report(d.notFound(b))
	}
	d.layers[la][ia], d.layers[lb][ib] = b, a
	return nil
}

// BringToFront swaps c with the front-most clip of its layer.
func (d *DisplayList) BringToFront(c *Clip) error {
	l, i := d.find(c)
	if l < 0 {
		return d.report(d.notFound(c))
	}
	layer := d.layers[l]
	last := len(layer) - 1
	layer[i], layer[last] = layer[last], layer[i]
	return nil
}

// SendToBack swaps c with the back-most clip of its layer.
func (d *DisplayList) SendToBack(c *Clip) error {
	l, i := d.find(c)
	if l < 0 {
		return d.report(d.notFound(c))
	}
	layer := d.layers[l]
	layer[i], layer[0] = layer[0], layer[i]
	return nil
}

// --- Helpers ---

// find returns the layer and index of c, or (-1, -1).
func (d *DisplayList) find(c *Clip) (layer, index int) {
	if c == nil {
		return -1, -1
	}
	for l := len(d.layers) - 1; l >= 0; l-- {
		if i := indexOf(d.layers[l], c); i >= 0 {
			return l, i
		}
	}
	return -1, -1
}

// removeAt removes the clip at index i of layer l. Uses copy+nil to avoid
// retaining a dangling pointer in the backing array.
func (d *DisplayList) removeAt(l, i int) {
	layer := d.layers[l]
	c := layer[i]
	copy(layer[i:], layer[i+1:])
	layer[len(layer)-1] = nil
	d.layers[l] = layer[:len(layer)-1]
	if c.parent == d {
		c.parent = nil
	}
}

func (d *DisplayList) clearLayer(l int) {
	for i, c := range d.layers[l] {
		if c.parent == d {
			c.parent = nil
		}
		d.layers[l][i] = nil
	}
	d.layers[l] = d.layers[l][:0]
}

func (d *DisplayList) notFound(c *Clip) error {
	return fmt.Errorf("reel: could not find clip %q: %w", clipName(c), ErrClipNotFound)
}

func indexOf(s []*Clip, c *Clip) int {
	for i, x := range s {
		if x == c {
			return i
		}
	}
	return -1
}

func clipName(c *Clip) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}
