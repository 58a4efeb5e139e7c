package graphics

// Point represents a pixel position.
type Point struct {
	X int
	Y int
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect represents a rectangle using left, top, right, bottom pixel
// coordinates. Right and Bottom are exclusive for area purposes
// (Width = Right - Left), but Overlaps and Contains use closed
// intervals on all four edges, matching touch hit-testing semantics.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height int) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right, other.Right)
	bottom := min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Union returns the smallest rect containing both r and other.
// An empty rect is the identity element.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// Overlaps reports whether the projections of r and other intersect on
// both axes, treating all edges as closed intervals. Two rects that
// merely touch on an edge therefore overlap.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.Left > other.Right ||
		r.Top > other.Bottom ||
		other.Left > r.Right ||
		other.Top > r.Bottom)
}

// Contains reports whether the point lies inside the rectangle, edges
// included: the degenerate-rectangle case of Overlaps, so hit testing
// runs on the same closed-interval predicate as region matching.
func (r Rect) Contains(p Point) bool {
	return r.Overlaps(Rect{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y})
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}
