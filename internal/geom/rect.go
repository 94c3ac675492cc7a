// pattern: Functional Core

// Package geom holds the axis-aligned geometry the layout engine is built on:
// rectangles in normalized canvas space, the edge/direction vocabulary, and
// intervals used to find frames that share a boundary.
package geom

import "math"

// Epsilon is the tolerance used when comparing boundary positions.
const Epsilon = 1e-3

// Pos is a point. In canvas space both coordinates lie in [0,1].
type Pos struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Rect is an axis-aligned rectangle with Min <= Max on both axes.
type Rect struct {
	Min Pos `yaml:"min" json:"min"`
	Max Pos `yaml:"max" json:"max"`
}

// FromRanges builds a rect from its x and y ranges.
func FromRanges(x0, x1, y0, y1 float64) Rect {
	return Rect{Min: Pos{X: x0, Y: y0}, Max: Pos{X: x1, Y: y1}}
}

// Width returns the extent along the x axis.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the extent along the y axis.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Contains reports whether p lies inside r, including the min edges and
// excluding the max edges.
func (r Rect) Contains(p Pos) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and other and whether it has positive area.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	out := Rect{
		Min: Pos{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Pos{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
	if out.Min.X >= out.Max.X || out.Min.Y >= out.Max.Y {
		return Rect{}, false
	}
	return out, true
}

// RangeAlongAxis returns the rect's extent along the given axis.
func RangeAlongAxis(r Rect, axis Axis) (from, to float64) {
	if axis == Horizontal {
		return r.Min.X, r.Max.X
	}
	return r.Min.Y, r.Max.Y
}
