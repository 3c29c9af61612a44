package reel

import (
	"errors"
	"log"
	"os"
)

// Vec2 is a 2D vector used for positions, offsets and input directions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Shape selects the collision model used by Clip.HitTest.
type Shape uint8

const (
	ShapeCircle Shape = iota // both clips treated as circles
	ShapeRect                // both clips treated as axis-aligned boxes
)

// String returns the shape name used in logs and manifests.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	default:
		return "unknown"
	}
}

// ParseShape converts "circle" or "rect" to a Shape.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "circle":
		return ShapeCircle, true
	case "rect":
		return ShapeRect, true
	}
	return ShapeCircle, false
}

// LoopMode controls what a track does when its cursor reaches the boundary.
type LoopMode uint8

const (
	ModeLoop      LoopMode = iota // wrap back to the start
	ModeStopAtEnd                 // clamp on the last frame
)

// Direction is the traversal order of a track's frames.
type Direction uint8

const (
	Forward  Direction = iota // first stored frame to last
	Backward                  // last stored frame to first
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Errors reported by display list, clip and loader operations. They are
// logged at the point of detection and also returned so callers can check
// them with errors.Is; none of them stop the loop.
var (
	ErrLayerOutOfRange = errors.New("layer out of range")
	ErrClipNotFound    = errors.New("clip not in display list")
	ErrUnknownTrack    = errors.New("unknown track")
	ErrNoFrames        = errors.New("no frames")
)

// defaultLogger is the diagnostic channel used when none is injected.
var defaultLogger = log.New(os.Stderr, "", log.LstdFlags)

// DefaultLogger returns the logger components fall back to.
func DefaultLogger() *log.Logger {
	return defaultLogger
}

func loggerOr(l *log.Logger) *log.Logger {
	if l == nil {
		return defaultLogger
	}
	return l
}
