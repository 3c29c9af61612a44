// Package tileboard composites named tile images onto a fixed-size grid
// image, for static backgrounds. It has no knowledge of clips or display
// lists; the finished board is just an image that can be wrapped in a clip.
package tileboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF tiles
	_ "image/jpeg" // register JPEG tiles
	_ "image/png"  // register PNG tiles
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp" // register BMP tiles
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP tiles
)

// Errors reported by Board operations. Each is logged and returned; none
// leaves the board in a partial state.
var (
	ErrNotSized     = errors.New("tileboard: tile size not set")
	ErrOutOfBounds  = errors.New("tileboard: tile position out of bounds")
	ErrUnknownTile  = errors.New("tileboard: unknown tile")
	ErrFinalized    = errors.New("tileboard: board has been finalized")
	ErrTooManyTiles = errors.New("tileboard: grid does not fit the image")
)

// Tileboard is the narrow surface of a tile grid.
type Tileboard interface {
	SetTileSize(width, height int) error
	LoadTile(name, filename string) error
	DrawTile(name string, col, row int) error
	FillBoard(name string) error
	Dimensions() (cols, rows int)
}

var _ Tileboard = (*Board)(nil)

// Board is an RGBA image divided into a grid of equally sized cells. Tiles
// are drawn at their native size with their top-left corner on a cell
// corner, unless Scaler is set, in which case each tile is resampled to fill
// its cell exactly.
type Board struct {
	// FS is where LoadTile reads from. Nil reads the local file system.
	FS fs.FS
	// Scaler, if set, resizes tiles to the cell size.
	Scaler draw.Scaler

	img           *image.RGBA
	width, height int
	tileW, tileH  int
	cols, rows    int
	tiles         map[string]image.Image
	active        bool
	logger        *log.Logger
}

// New creates a transparent width x height board. SetTileSize must be called
// before tiles can be drawn.
func New(width, height int) *Board {
	return &Board{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
		tiles:  make(map[string]image.Image),
		active: true,
	}
}

// NewGrid creates a board with an explicit cols x rows grid of tileW x tileH
// cells. The grid must fit inside the image.
func NewGrid(width, height, tileW, tileH, cols, rows int) (*Board, error) {
	if tileW <= 0 || tileH <= 0 || cols < 0 || rows < 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles of %dx%d", ErrNotSized, cols, rows, tileW, tileH)
	}
	if tileW*cols > width || tileH*rows > height {
		return nil, fmt.Errorf("%w: %dx%d tiles of %dx%d in %dx%d", ErrTooManyTiles, cols, rows, tileW, tileH, width, height)
	}
	b := New(width, height)
	b.tileW, b.tileH = tileW, tileH
	b.cols, b.rows = cols, rows
	return b, nil
}

// SetLogger replaces the diagnostic logger (default: the standard logger).
func (b *Board) SetLogger(l *log.Logger) { b.logger = l }

func (b *Board) report(err error) error {
	if b.logger != nil {
		b.logger.Print(err)
	} else {
		log.Print(err)
	}
	return err
}

// SetTileSize sets the cell size in pixels and derives the grid from the
// image size; partial cells at the right and bottom edges are not used.
func (b *Board) SetTileSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return b.report(fmt.Errorf("%w: %dx%d", ErrNotSized, width, height))
	}
	b.tileW, b.tileH = width, height
	b.cols = b.width / width
	b.rows = b.height / height
	return nil
}

// TileSize returns the cell size, or (0, 0) before SetTileSize.
func (b *Board) TileSize() (width, height int) {
	return b.tileW, b.tileH
}

// LoadTile decodes filename and registers it under name, replacing any tile
// already registered with that name.
func (b *Board) LoadTile(name, filename string) error {
	if !b.active {
		return b.report(fmt.Errorf("load %s: %w", name, ErrFinalized))
	}
	var (
		data []byte
		err  error
	)
	if b.FS != nil {
		data, err = fs.ReadFile(b.FS, filename)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return b.report(fmt.Errorf("tileboard: could not load %s: %w", filename, err))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return b.report(fmt.Errorf("tileboard: decode %s: %w", filename, err))
	}
	b.tiles[name] = img
	return nil
}

// AddTile registers an already decoded image under name.
func (b *Board) AddTile(name string, img image.Image) error {
	if !b.active {
		return b.report(fmt.Errorf("add %s: %w", name, ErrFinalized))
	}
	b.tiles[name] = img
	return nil
}

// DrawTile draws the named tile into cell (col, row).
func (b *Board) DrawTile(name string, col, row int) error {
	if !b.active {
		return b.report(fmt.Errorf("draw %s: %w", name, ErrFinalized))
	}
	if b.tileW <= 0 || b.tileH <= 0 {
		return b.report(fmt.Errorf("draw %s: %w", name, ErrNotSized))
	}
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return b.report(fmt.Errorf("draw %s at (%d,%d) of %dx%d: %w", name, col, row, b.cols, b.rows, ErrOutOfBounds))
	}
	tile, ok := b.tiles[name]
	if !ok {
		return b.report(fmt.Errorf("draw %q: %w", name, ErrUnknownTile))
	}

	x, y := col*b.tileW, row*b.tileH
	if b.Scaler != nil {
		dst := image.Rect(x, y, x+b.tileW, y+b.tileH)
		b.Scaler.Scale(b.img, dst, tile, tile.Bounds(), draw.Over, nil)
		return nil
	}
	tb := tile.Bounds()
	dst := image.Rect(x, y, x+tb.Dx(), y+tb.Dy())
	draw.Draw(b.img, dst, tile, tb.Min, draw.Over)
	return nil
}

// DrawTileAt draws the named tile into the cell at p (column, row).
func (b *Board) DrawTileAt(name string, p image.Point) error {
	return b.DrawTile(name, p.X, p.Y)
}

// FillBoard draws the named tile into every cell, row by row. It stops at
// the first failure.
func (b *Board) FillBoard(name string) error {
	if !b.active {
		return b.report(fmt.Errorf("fill %s: %w", name, ErrFinalized))
	}
	if b.tileW <= 0 || b.tileH <= 0 {
		return b.report(fmt.Errorf("fill %s: %w", name, ErrNotSized))
	}
	if _, ok := b.tiles[name]; !ok {
		return b.report(fmt.Errorf("fill %q: %w", name, ErrUnknownTile))
	}
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if err := b.DrawTile(name, col, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dimensions returns the grid size in cells. Both are 0 before SetTileSize.
func (b *Board) Dimensions() (cols, rows int) {
	return b.cols, b.rows
}

// Clear resets every pixel to transparent. Loaded tiles are kept.
func (b *Board) Clear() error {
	if !b.active {
		return b.report(fmt.Errorf("clear: %w", ErrFinalized))
	}
	draw.Draw(b.img, b.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return nil
}

// Finalize freezes the board: the image is kept, the tile set is released,
// and every later mutation fails with ErrFinalized.
func (b *Board) Finalize() {
	b.active = false
	b.tiles = nil
}

// Active reports whether the board can still be changed.
func (b *Board) Active() bool {
	return b.active
}

// Image returns the composited pixels. The image is shared with the board
// and changes while the board is active.
func (b *Board) Image() *image.RGBA {
	return b.img
}

// EbitenImage uploads the composited pixels to a new ebiten image.
func (b *Board) EbitenImage() *ebiten.Image {
	return ebiten.NewImageFromImage(b.img)
}
