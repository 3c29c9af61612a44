package reel

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF frames
	_ "image/jpeg" // register JPEG frames
	_ "image/png"  // register PNG frames
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register BMP frames
	_ "golang.org/x/image/webp" // register WebP frames
	"gopkg.in/yaml.v3"
)

// ManifestName is the optional per-directory file describing how the frames
// in that directory play back.
const ManifestName = "clip.yaml"

// Loader decodes animation assets. Paths are slash-separated and relative to
// the loader's root.
type Loader interface {
	// LoadFrameSet decodes the asset at p. A file yields a single-frame set
	// named after the file; a directory yields a set of its images in name
	// order, named after the directory.
	LoadFrameSet(p string) (*FrameSet, error)
	// Entries lists the loadable children of directory p (images and
	// sub-directories), in name order.
	Entries(p string) ([]string, error)
}

// Manifest is the YAML form of clip.yaml.
type Manifest struct {
	Mode          string     `yaml:"mode"`      // "loop" (default) or "stop_at_end"
	Direction     string     `yaml:"direction"` // "forward" (default) or "backward"
	TicksPerFrame int        `yaml:"ticks_per_frame"`
	Sheet         *SheetSpec `yaml:"sheet"`
}

// SheetSpec slices a sprite sheet into frames laid out left-to-right,
// top-to-bottom.
type SheetSpec struct {
	Image       string `yaml:"image"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Start       int    `yaml:"start"` // index of the first frame to read
	Count       int    `yaml:"count"` // 0 reads to the end of the sheet
}

// ParseManifest decodes clip.yaml data.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("reel: unmarshal %s: %w", ManifestName, err)
	}
	return &m, nil
}

func (m *Manifest) apply(set *FrameSet) error {
	switch strings.ToLower(m.Mode) {
	case "", "loop":
		set.Mode = ModeLoop
	case "stop_at_end", "stop-at-end", "once":
		set.Mode = ModeStopAtEnd
	default:
		return fmt.Errorf("reel: %s: unknown mode %q", ManifestName, m.Mode)
	}
	switch strings.ToLower(m.Direction) {
	case "", "forward":
		set.Direction = Forward
	case "backward":
		set.Direction = Backward
	default:
		return fmt.Errorf("reel: %s: unknown direction %q", ManifestName, m.Direction)
	}
	if m.TicksPerFrame > 1 {
		set.TicksPerFrame = m.TicksPerFrame
	}
	return nil
}

// FSLoader loads frames from an fs.FS.
type FSLoader struct {
	FS fs.FS
}

// NewFSLoader creates a loader over fsys (for example an embed.FS).
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{FS: fsys}
}

// NewDirLoader creates a loader rooted at an on-disk directory.
func NewDirLoader(dir string) *FSLoader {
	return &FSLoader{FS: os.DirFS(dir)}
}

// LoadFrameSet implements Loader.
func (l *FSLoader) LoadFrameSet(p string) (*FrameSet, error) {
	p = cleanAssetPath(p)
	info, err := fs.Stat(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reel: load %s: %w", p, err)
	}
	if !info.IsDir() {
		img, err := l.decode(p)
		if err != nil {
			return nil, err
		}
		return NewFrameSet(path.Base(p), img), nil
	}

	set := NewFrameSet(path.Base(p))
	var manifest *Manifest
	if data, err := fs.ReadFile(l.FS, path.Join(p, ManifestName)); err == nil {
		if manifest, err = ParseManifest(data); err != nil {
			return nil, fmt.Errorf("reel: load %s: %w", p, err)
		}
		if err := manifest.apply(set); err != nil {
			return nil, fmt.Errorf("reel: load %s: %w", p, err)
		}
	}

	if manifest != nil && manifest.Sheet != nil {
		sheet, err := l.decode(path.Join(p, manifest.Sheet.Image))
		if err != nil {
			return nil, err
		}
		frames, err := SliceSheet(sheet, *manifest.Sheet)
		if err != nil {
			return nil, fmt.Errorf("reel: load %s: %w", p, err)
		}
		set.Frames = frames
		return set, nil
	}

	entries, err := fs.ReadDir(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reel: load %s: %w", p, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		img, err := l.decode(path.Join(p, e.Name()))
		if err != nil {
			return nil, err
		}
		set.Frames = append(set.Frames, img)
	}
	if len(set.Frames) == 0 {
		return nil, fmt.Errorf("reel: load %s: %w", p, ErrNoFrames)
	}
	return set, nil
}

// Entries implements Loader.
func (l *FSLoader) Entries(p string) ([]string, error) {
	p = cleanAssetPath(p)
	entries, err := fs.ReadDir(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reel: list %s: %w", p, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || isImageFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (l *FSLoader) decode(p string) (*ebiten.Image, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reel: load %s: %w", p, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reel: decode %s: %w", p, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// SliceSheet cuts sheet into frames of spec.FrameWidth x spec.FrameHeight.
// The returned frames are sub-images sharing the sheet's pixels.
func SliceSheet(sheet *ebiten.Image, spec SheetSpec) ([]*ebiten.Image, error) {
	if spec.FrameWidth <= 0 || spec.FrameHeight <= 0 {
		return nil, fmt.Errorf("sheet %s: frame size %dx%d", spec.Image, spec.FrameWidth, spec.FrameHeight)
	}
	b := sheet.Bounds()
	cols := b.Dx() / spec.FrameWidth
	rows := b.Dy() / spec.FrameHeight
	total := cols * rows
	start := max(spec.Start, 0)
	count := spec.Count
	if count <= 0 || start+count > total {
		count = total - start
	}
	if count <= 0 {
		return nil, fmt.Errorf("sheet %s: %w", spec.Image, ErrNoFrames)
	}
	frames := make([]*ebiten.Image, count)
	for i := range frames {
		idx := start + i
		x := b.Min.X + (idx%cols)*spec.FrameWidth
		y := b.Min.Y + (idx/cols)*spec.FrameHeight
		frames[i] = sheet.SubImage(image.Rect(x, y, x+spec.FrameWidth, y+spec.FrameHeight)).(*ebiten.Image)
	}
	return frames, nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}

// cleanAssetPath normalizes user-supplied paths such as "images/red/" or
// "./images/dot.png" into fs.FS form.
func cleanAssetPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}
