package reel

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// atlasRegion describes a sub-rectangle within an atlas page.
type atlasRegion struct {
	page    int
	x, y    int
	w, h    int // visual size of the packed rect
	srcW    int // untrimmed size as authored
	srcH    int
	offX    int // trim offset inside the untrimmed size
	offY    int
	rotated bool // stored 90 degrees clockwise
}

func (r atlasRegion) trimmed() bool {
	return r.offX != 0 || r.offY != 0 || r.srcW != r.w || r.srcH != r.h
}

// Atlas holds TexturePacker page images and their named regions. Region
// names are treated as slash-separated paths ("player/walk/0001.png"), so an
// atlas can stand in for a directory tree of frame images.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]atlasRegion
	frames  map[string]*ebiten.Image
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// images. Both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists) are accepted.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("reel: parse atlas JSON: %w", err)
	}

	a := &Atlas{
		Pages:   pages,
		regions: make(map[string]atlasRegion),
		frames:  make(map[string]*ebiten.Image),
	}

	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("reel: parse atlas textures: %w", err)
		}
		for i, tex := range textures {
			a.addFrames(tex.Frames, i)
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("reel: parse atlas frames: %w", err)
		}
		a.addFrames(frames, 0)
	default:
		return nil, fmt.Errorf("reel: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	for name, r := range a.regions {
		if r.page >= len(pages) || pages[r.page] == nil {
			return nil, fmt.Errorf("reel: atlas region %q: page %d not provided", name, r.page)
		}
	}
	return a, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func (a *Atlas) addFrames(frames map[string]jsonFrame, page int) {
	for name, f := range frames {
		r := atlasRegion{
			page:    page,
			x:       f.Frame.X,
			y:       f.Frame.Y,
			w:       f.Frame.W,
			h:       f.Frame.H,
			srcW:    f.SourceSize.W,
			srcH:    f.SourceSize.H,
			rotated: f.Rotated,
		}
		if f.Trimmed {
			r.offX = f.SpriteSourceSize.X
			r.offY = f.SpriteSourceSize.Y
		}
		if r.srcW == 0 || r.srcH == 0 {
			r.srcW, r.srcH = r.w, r.h
		}
		a.regions[cleanAssetPath(name)] = r
	}
}

// Len returns the number of regions.
func (a *Atlas) Len() int { return len(a.regions) }

// Frame returns the image for the named region at its untrimmed size.
// Plain regions share the page's pixels; rotated or trimmed regions are
// redrawn once into their own image.
func (a *Atlas) Frame(name string) (*ebiten.Image, bool) {
	name = cleanAssetPath(name)
	if img, ok := a.frames[name]; ok {
		return img, true
	}
	r, ok := a.regions[name]
	if !ok {
		return nil, false
	}
	page := a.Pages[r.page]

	var img *ebiten.Image
	if !r.rotated && !r.trimmed() {
		img = page.SubImage(image.Rect(r.x, r.y, r.x+r.w, r.y+r.h)).(*ebiten.Image)
	} else {
		sub := page.SubImage(image.Rect(r.x, r.y, r.x+r.storedW(), r.y+r.storedH())).(*ebiten.Image)
		img = ebiten.NewImage(r.srcW, r.srcH)
		var op ebiten.DrawImageOptions
		if r.rotated {
			// Stored 90 degrees clockwise: turn back and shift down by the
			// visual height.
			op.GeoM.Rotate(-math.Pi / 2)
			op.GeoM.Translate(0, float64(r.h))
		}
		op.GeoM.Translate(float64(r.offX), float64(r.offY))
		img.DrawImage(sub, &op)
	}
	a.frames[name] = img
	return img, true
}

func (r atlasRegion) storedW() int {
	if r.rotated {
		return r.h
	}
	return r.w
}

func (r atlasRegion) storedH() int {
	if r.rotated {
		return r.w
	}
	return r.h
}

// AtlasLoader serves frame sets out of an Atlas, so clips can be loaded from
// packed sprites through a FrameCache exactly as from a directory tree.
// Directory manifests do not apply; every set loops forward.
type AtlasLoader struct {
	Atlas *Atlas
}

// NewAtlasLoader creates a loader over a.
func NewAtlasLoader(a *Atlas) *AtlasLoader {
	return &AtlasLoader{Atlas: a}
}

// LoadFrameSet implements Loader. A region name yields a single frame; a
// region prefix ("player/walk") yields its direct image children in name
// order.
func (l *AtlasLoader) LoadFrameSet(p string) (*FrameSet, error) {
	p = cleanAssetPath(p)
	if img, ok := l.Atlas.Frame(p); ok {
		return NewFrameSet(path.Base(p), img), nil
	}
	names := l.children(p)
	set := NewFrameSet(path.Base(p))
	for _, name := range names {
		img, ok := l.Atlas.Frame(path.Join(p, name))
		if !ok {
			continue
		}
		set.Frames = append(set.Frames, img)
	}
	if len(set.Frames) == 0 {
		return nil, fmt.Errorf("reel: load atlas %s: %w", p, ErrNoFrames)
	}
	return set, nil
}

// Entries implements Loader.
func (l *AtlasLoader) Entries(p string) ([]string, error) {
	p = cleanAssetPath(p)
	seen := make(map[string]bool)
	prefix := dirPrefix(p)
	for name := range l.Atlas.regions {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		child, _, _ := strings.Cut(rest, "/")
		seen[child] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("reel: list atlas %s: %w", p, ErrNoFrames)
	}
	entries := make([]string, 0, len(seen))
	for name := range seen {
		entries = append(entries, name)
	}
	sort.Strings(entries)
	return entries, nil
}

// children returns the image regions directly under p, in name order.
func (l *AtlasLoader) children(p string) []string {
	prefix := dirPrefix(p)
	var names []string
	for name := range l.Atlas.regions {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" || strings.Contains(rest, "/") {
			continue
		}
		names = append(names, rest)
	}
	sort.Strings(names)
	return names
}

func dirPrefix(p string) string {
	if p == "." {
		return ""
	}
	return p + "/"
}
