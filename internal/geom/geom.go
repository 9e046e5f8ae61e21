// Package geom provides the integer rectangle math shared by the layout and
// navigation code. Coordinates are page-space: y grows downward from the top
// of the content, x grows rightward.
package geom

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the x coordinate one past the rightmost column.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Bottom returns the y coordinate one past the lowest row.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// HCenter returns the horizontal center, rounded toward the left edge.
func (r Rect) HCenter() int {
	return r.Left + r.Width/2
}

// VCenter returns the vertical center, rounded toward the top edge.
func (r Rect) VCenter() int {
	return r.Top + r.Height/2
}

// Empty reports whether the rectangle has no rendered area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether inner lies fully inside r.
func (r Rect) Contains(inner Rect) bool {
	if inner.Empty() {
		return false
	}
	return inner.Left >= r.Left &&
		inner.Top >= r.Top &&
		inner.Right() <= r.Right() &&
		inner.Bottom() <= r.Bottom()
}

// Intersects reports whether r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.Left < other.Right() && other.Left < r.Right() &&
		r.Top < other.Bottom() && other.Top < r.Bottom()
}

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
