// pattern: Functional Core

package geom

import "math"

// Lerp interpolates linearly between from and to.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// ToAbsolute maps a normalized rect onto viewport.
func ToAbsolute(normalized, viewport Rect) Rect {
	return Rect{
		Min: Pos{
			X: Lerp(viewport.Min.X, viewport.Max.X, normalized.Min.X),
			Y: Lerp(viewport.Min.Y, viewport.Max.Y, normalized.Min.Y),
		},
		Max: Pos{
			X: Lerp(viewport.Min.X, viewport.Max.X, normalized.Max.X),
			Y: Lerp(viewport.Min.Y, viewport.Max.Y, normalized.Max.Y),
		},
	}
}

// ToNormalized is the inverse of ToAbsolute for a point. A degenerate
// viewport axis maps to 0.
func ToNormalized(p Pos, viewport Rect) Pos {
	var out Pos
	if w := viewport.Width(); w != 0 {
		out.X = (p.X - viewport.Min.X) / w
	}
	if h := viewport.Height(); h != 0 {
		out.Y = (p.Y - viewport.Min.Y) / h
	}
	return out
}

// NormalizeDelta converts a screen-space drag delta for edge into canvas
// units by dividing by the viewport extent the edge moves across.
func NormalizeDelta(edge Edge, delta float64, viewport Rect) float64 {
	extent := viewport.Width()
	if edge == Top || edge == Bottom {
		extent = viewport.Height()
	}
	if extent == 0 {
		return 0
	}
	return delta / extent
}

// Cells is a rectangle of whole grid cells with exclusive max.
type Cells struct {
	X0, Y0, X1, Y1 int
}

// Width returns the number of columns.
func (c Cells) Width() int { return c.X1 - c.X0 }

// Height returns the number of rows.
func (c Cells) Height() int { return c.Y1 - c.Y0 }

// Contains reports whether cell (x, y) is inside c.
func (c Cells) Contains(x, y int) bool {
	return x >= c.X0 && x < c.X1 && y >= c.Y0 && y < c.Y1
}

// ToCells maps a normalized rect onto a grid. Every coordinate is rounded on
// its own, so two frames sharing a boundary land on the same column or row
// and the cells of a tiling tile the grid.
func ToCells(normalized Rect, grid Cells) Cells {
	abs := ToAbsolute(normalized, grid.Viewport())
	return Cells{
		X0: int(math.Round(abs.Min.X)),
		Y0: int(math.Round(abs.Min.Y)),
		X1: int(math.Round(abs.Max.X)),
		Y1: int(math.Round(abs.Max.Y)),
	}
}

// Viewport returns the cells as a float rect for ToAbsolute and
// NormalizeDelta.
func (c Cells) Viewport() Rect {
	return FromRanges(float64(c.X0), float64(c.X1), float64(c.Y0), float64(c.Y1))
}
