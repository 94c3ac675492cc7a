// pattern: Functional Core

package geom

import "math"

// Interval is a segment along Axis spanning [From, To) at the fixed
// perpendicular coordinate Pos. It represents one edge of a rectangle.
type Interval struct {
	Axis Axis    `json:"axis"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Pos  float64 `json:"pos"`
}

// Intersects reports whether both intervals lie on the same line and their
// spans overlap. Spans that only touch at an endpoint do not intersect.
func (i Interval) Intersects(other Interval) bool {
	if i.Axis != other.Axis {
		return false
	}
	if math.Abs(i.Pos-other.Pos) >= Epsilon {
		return false
	}
	return i.From < other.To && i.To > other.From
}

// EdgeInterval extracts one boundary of r.
func EdgeInterval(r Rect, edge Edge) Interval {
	switch edge {
	case Top:
		return Interval{Axis: Horizontal, From: r.Min.X, To: r.Max.X, Pos: r.Min.Y}
	case Bottom:
		return Interval{Axis: Horizontal, From: r.Min.X, To: r.Max.X, Pos: r.Max.Y}
	case Left:
		return Interval{Axis: Vertical, From: r.Min.Y, To: r.Max.Y, Pos: r.Min.X}
	default:
		return Interval{Axis: Vertical, From: r.Min.Y, To: r.Max.Y, Pos: r.Max.X}
	}
}

// WhichEdgeIntersects returns the first edge of r, in Edges order, whose
// interval intersects iv.
func WhichEdgeIntersects(r Rect, iv Interval) (Edge, bool) {
	for _, edge := range Edges {
		if EdgeInterval(r, edge).Intersects(iv) {
			return edge, true
		}
	}
	return Top, false
}

// OnCanvasBorder reports whether the interval lies on the 0 or 1 border.
func (i Interval) OnCanvasBorder() bool {
	return i.Pos <= Epsilon || i.Pos >= 1-Epsilon
}

// HasNaN reports whether any coordinate of the interval is NaN.
func (i Interval) HasNaN() bool {
	return math.IsNaN(i.Pos) || math.IsNaN(i.From) || math.IsNaN(i.To)
}
