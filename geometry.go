package reel

import "math"

// CircleCollision reports whether two circles overlap. Circles that only
// touch are considered colliding.
func CircleCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	return math.Hypot(x2-x1, y2-y1) <= r1+r2
}

// RectCollision reports whether two axis-aligned rectangles given by their
// top-left corner and size overlap. Shared edges count as overlap.
func RectCollision(p1 Vec2, w1, h1 float64, p2 Vec2, w2, h2 float64) bool {
	return !(p1.X > p2.X+w2 || p1.X+w1 < p2.X || p1.Y > p2.Y+h2 || p1.Y+h1 < p2.Y)
}

// AddPoints returns the component-wise sum of p and q.
func AddPoints(p, q Vec2) Vec2 {
	return Vec2{p.X + q.X, p.Y + q.Y}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return RectCollision(Vec2{r.X, r.Y}, r.Width, r.Height,
		Vec2{other.X, other.Y}, other.Width, other.Height)
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}
