// Package core provides the terminal-side leaf types shared by the
// simulation renderer and the platform layer: a colored cell buffer, cell
// rectangles and the camera that maps world units onto cells. It has no
// Bubble Tea dependency so rendering stays testable.
package core

import "math"

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Camera maps world units onto screen cells. The world point Center lands in
// the middle of the screen; world y grows downward like cell y.
type Camera struct {
	CenterX, CenterY float64
	UnitsPerColumn   float64
	UnitsPerRow      float64
	W, H             int
}

// ToCell returns the cell containing world point (x, y).
func (c Camera) ToCell(x, y float64) (int, int) {
	cx := (x-c.CenterX)/c.UnitsPerColumn + float64(c.W)/2
	cy := (y-c.CenterY)/c.UnitsPerRow + float64(c.H)/2
	return int(math.Floor(cx)), int(math.Floor(cy))
}

// CellCenter returns the world point at the middle of cell (x, y).
func (c Camera) CellCenter(x, y int) (float64, float64) {
	wx := (float64(x)+0.5-float64(c.W)/2)*c.UnitsPerColumn + c.CenterX
	wy := (float64(y)+0.5-float64(c.H)/2)*c.UnitsPerRow + c.CenterY
	return wx, wy
}

// Span returns the cell rectangle covering the world box [l, r] x [t, b].
// A box smaller than a cell still covers one cell.
func (c Camera) Span(l, t, r, b float64) Rect {
	x0, y0 := c.ToCell(l, t)
	x1, y1 := c.ToCell(r, b)
	return Rect{X: x0, Y: y0, W: Max(x1-x0, 0) + 1, H: Max(y1-y0, 0) + 1}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
