package reel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity affine matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translation returns a matrix translating by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// RotationAbout returns a matrix rotating by theta radians around (px, py).
func RotationAbout(theta, px, py float64) Matrix {
	sin, cos := math.Sincos(theta)
	return Matrix{
		cos, sin, -sin, cos,
		px - cos*px + sin*py,
		py - sin*px - cos*py,
	}
}

// Mul returns m * n, i.e. n applied first.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse of m, or Identity if m is singular.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// GeoM converts m to an ebiten.GeoM.
func (m Matrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// ResolveTransform computes the draw matrix for c, offset by the global
// level shift (sx, sy).
//
// Composition order, applied right to left to frame pixel coordinates:
//
//	Translate(pos + shift) -> Rotate(Rotation about -shift) -> Scale
//
// where shift = -origin * scale. The net effect is that the frame is scaled
// and rotated about its origin, and the origin lands on (X, Y). Scale is
// applied before rotation, so a non-uniform scale stretches along the frame's
// own axes.
func ResolveTransform(c *Clip, sx, sy float64) Matrix {
	posX := c.X + sx
	posY := c.Y + sy
	shiftX := -c.OriginX * c.ScaleX
	shiftY := -c.OriginY * c.ScaleY

	m := Translation(posX+shiftX, posY+shiftY)
	if c.Rotation != 0 {
		m = m.Mul(RotationAbout(c.Rotation, -shiftX, -shiftY))
	}
	return m.Mul(Scaling(c.ScaleX, c.ScaleY))
}
