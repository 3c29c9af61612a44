package tileboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/image/draw"
)

var red = color.RGBA{R: 255, A: 255}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func quiet(b *Board) *Board {
	b.SetLogger(log.New(io.Discard, "", 0))
	return b
}

func TestSetTileSizeDerivesGrid(t *testing.T) {
	b := quiet(New(100, 50))
	if cols, rows := b.Dimensions(); cols != 0 || rows != 0 {
		t.Fatalf("Dimensions before sizing = %dx%d, want 0x0", cols, rows)
	}
	if err := b.SetTileSize(32, 16); err != nil {
		t.Fatal(err)
	}
	if cols, rows := b.Dimensions(); cols != 3 || rows != 3 {
		t.Errorf("Dimensions = %dx%d, want 3x3", cols, rows)
	}
	if err := b.SetTileSize(0, 16); !errors.Is(err, ErrNotSized) {
		t.Errorf("SetTileSize(0, 16) = %v, want ErrNotSized", err)
	}
}

func TestNewGrid(t *testing.T) {
	b, err := NewGrid(100, 100, 10, 10, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if cols, rows := b.Dimensions(); cols != 4 || rows != 5 {
		t.Errorf("Dimensions = %dx%d, want 4x5", cols, rows)
	}
	if _, err := NewGrid(100, 100, 10, 10, 11, 1); !errors.Is(err, ErrTooManyTiles) {
		t.Errorf("oversized grid err = %v, want ErrTooManyTiles", err)
	}
	if _, err := NewGrid(100, 100, 0, 10, 1, 1); !errors.Is(err, ErrNotSized) {
		t.Errorf("zero tile err = %v, want ErrNotSized", err)
	}
}

func TestDrawTileErrorsInOrder(t *testing.T) {
	b := quiet(New(40, 40))
	b.AddTile("red", solid(10, 10, red))
	if err := b.DrawTile("red", 0, 0); !errors.Is(err, ErrNotSized) {
		t.Errorf("unsized draw = %v, want ErrNotSized", err)
	}
	b.SetTileSize(10, 10)
	if err := b.DrawTile("red", 4, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out of bounds draw = %v, want ErrOutOfBounds", err)
	}
	if err := b.DrawTile("blue", 0, 0); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("unknown tile draw = %v, want ErrUnknownTile", err)
	}
	if err := b.DrawTileAt("red", image.Pt(3, 3)); err != nil {
		t.Fatal(err)
	}
	if got := b.Image().RGBAAt(35, 35); got != red {
		t.Errorf("pixel (35,35) = %v, want red", got)
	}
	if got := b.Image().RGBAAt(5, 5); got.A != 0 {
		t.Errorf("pixel (5,5) = %v, want transparent", got)
	}
}

func TestDrawTileNativeSizeAndScaler(t *testing.T) {
	b := quiet(New(40, 20))
	b.SetTileSize(20, 20)
	b.AddTile("small", solid(5, 5, red))
	b.DrawTile("small", 0, 0)
	if got := b.Image().RGBAAt(10, 10); got.A != 0 {
		t.Errorf("native draw reached (10,10): %v", got)
	}

	b.Scaler = draw.NearestNeighbor
	b.DrawTile("small", 1, 0)
	if got := b.Image().RGBAAt(39, 19); got != red {
		t.Errorf("scaled draw should fill its cell, (39,19) = %v", got)
	}
}

func TestFillBoard(t *testing.T) {
	b := quiet(New(30, 20))
	b.SetTileSize(10, 10)
	b.AddTile("red", solid(10, 10, red))
	if err := b.FillBoard("red"); err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{{0, 0}, {29, 19}, {15, 5}} {
		if got := b.Image().RGBAAt(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	if err := b.FillBoard("none"); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("FillBoard(none) = %v, want ErrUnknownTile", err)
	}
	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := b.Image().RGBAAt(15, 5); got.A != 0 {
		t.Errorf("pixel after Clear = %v, want transparent", got)
	}
}

func TestLoadTileFromFS(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(8, 8, red)); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	b := New(16, 16)
	b.SetLogger(log.New(&logs, "", 0))
	b.FS = fstest.MapFS{
		"tiles/floor.png": &fstest.MapFile{Data: buf.Bytes()},
		"tiles/bad.png":   &fstest.MapFile{Data: []byte("junk")},
	}
	if err := b.LoadTile("floor", "tiles/floor.png"); err != nil {
		t.Fatal(err)
	}
	b.SetTileSize(8, 8)
	if err := b.DrawTile("floor", 1, 1); err != nil {
		t.Fatal(err)
	}
	if got := b.Image().RGBAAt(12, 12); got != red {
		t.Errorf("pixel = %v, want red", got)
	}

	if err := b.LoadTile("x", "tiles/missing.png"); err == nil || !strings.Contains(err.Error(), "could not load") {
		t.Errorf("missing tile err = %v", err)
	}
	if err := b.LoadTile("x", "tiles/bad.png"); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("bad tile err = %v", err)
	}
	if !strings.Contains(logs.String(), "missing.png") {
		t.Errorf("log = %q, want failures reported", logs.String())
	}
}

func TestFinalizeFreezes(t *testing.T) {
	b := quiet(New(10, 10))
	b.SetTileSize(10, 10)
	b.AddTile("red", solid(10, 10, red))
	b.FillBoard("red")
	b.Finalize()
	if b.Active() {
		t.Fatal("board should be inactive after Finalize")
	}
	for name, err := range map[string]error{
		"draw":  b.DrawTile("red", 0, 0),
		"fill":  b.FillBoard("red"),
		"add":   b.AddTile("x", solid(1, 1, red)),
		"load":  b.LoadTile("x", "x.png"),
		"clear": b.Clear(),
	} {
		if !errors.Is(err, ErrFinalized) {
			t.Errorf("%s after Finalize = %v, want ErrFinalized", name, err)
		}
	}
	if got := b.Image().RGBAAt(5, 5); got != red {
		t.Error("Finalize should keep the pixels")
	}
	if b.EbitenImage().Bounds().Dx() != 10 {
		t.Error("EbitenImage should match the board size")
	}
}
