// Package core provides fundamental types and utilities for the terminal host.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned area of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps continuous world coordinates onto a rectangle of cells.
// World (0, 0) is the top-left of Area; (WorldW, WorldH) is its bottom-right.
type Viewport struct {
	WorldW, WorldH float64
	Area           Rect
}

// NewViewport creates a viewport for a world of the given size.
func NewViewport(worldW, worldH float64, area Rect) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Area: area}
}

// CellX converts a world x coordinate to a screen column.
func (v Viewport) CellX(x float64) int {
	if v.WorldW <= 0 {
		return v.Area.X
	}
	return v.Area.X + int(math.Floor(x/v.WorldW*float64(v.Area.W)))
}

// CellY converts a world y coordinate to a screen row.
func (v Viewport) CellY(y float64) int {
	if v.WorldH <= 0 {
		return v.Area.Y
	}
	return v.Area.Y + int(math.Floor(y/v.WorldH*float64(v.Area.H)))
}

// SpanX converts a horizontal world segment [x, x+w) to a first column and
// a width in cells. Non-empty segments are always at least one cell wide.
func (v Viewport) SpanX(x, w float64) (int, int) {
	start := v.CellX(x)
	end := v.CellX(x + w)
	return start, max(1, end-start)
}

// Visible reports whether a cell lies inside the viewport area.
func (v Viewport) Visible(cx, cy int) bool {
	return v.Area.Contains(cx, cy)
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
