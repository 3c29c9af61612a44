package reel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next frame drawn by the
// Ebitengine host. The PNG is written to Config.ScreenshotDir with a
// timestamped name. It must be called from an update or Do callback, or
// from a ScriptedInput "screenshot" step.
func (l *Loop) Screenshot(label string) {
	l.screenshots = append(l.screenshots, label)
}

// flushScreenshots writes every queued capture of screen. Called at the end
// of Draw with the model locked.
func (l *Loop) flushScreenshots(screen *ebiten.Image) {
	defer func() { l.screenshots = l.screenshots[:0] }()

	dir := l.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.diag().Printf("reel: screenshot: mkdir %s: %v", dir, err)
		return
	}

	// ReadPixels yields premultiplied RGBA, which is image.RGBA's layout.
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	stamp := time.Now().Format("20060102_150405")
	for i, label := range l.screenshots {
		name := fmt.Sprintf("%s_%03d_%s.png", stamp, i, sanitizeLabel(label))
		if err := writePNG(filepath.Join(dir, name), img); err != nil {
			l.diag().Printf("reel: screenshot: %v", err)
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
