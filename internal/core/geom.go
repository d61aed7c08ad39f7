// Package core provides fundamental types and utilities shared by the game
// and the terminal host. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an integer cell rectangle used for screen drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// AABB is an axis-aligned box in world units. Y grows downward, so
// Top <= Bottom for any valid box.
type AABB struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent.
func (b AABB) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b AABB) Height() float64 {
	return b.Bottom - b.Top
}

// CenterX returns the horizontal centre.
func (b AABB) CenterX() float64 {
	return (b.Left + b.Right) / 2
}

// OverlapsX reports strict horizontal overlap (touching edges do not count).
func (b AABB) OverlapsX(other AABB) bool {
	return b.Left < other.Right && other.Left < b.Right
}

// OverlapY returns the length of the shared vertical span (0 if disjoint).
func (b AABB) OverlapY(other AABB) float64 {
	top := max(b.Top, other.Top)
	bottom := min(b.Bottom, other.Bottom)
	if bottom <= top {
		return 0
	}
	return bottom - top
}

// Intersects returns true if the boxes overlap on both axes.
func (b AABB) Intersects(other AABB) bool {
	return b.OverlapsX(other) && b.OverlapY(other) > 0
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

// Approach moves val toward target by at most step, never overshooting.
func Approach(val, target, step float64) float64 {
	if val < target {
		return min(val+step, target)
	}
	if val > target {
		return max(val-step, target)
	}
	return val
}

// SignF returns -1, 0, or 1.
func SignF(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
