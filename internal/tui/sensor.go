// pattern: Functional Core

package tui

import "framedock/internal/geom"

// HitEdge reports which border of c the cell (x, y) lies on. The border
// band is the outermost row or column of the region; corners belong to no
// edge. When a region is only one cell thick the edges are tried in
// geom.Edges order.
func HitEdge(c geom.Cells, x, y int) (geom.Edge, bool) {
	if !c.Contains(x, y) {
		return geom.Top, false
	}
	onTop, onBottom := y == c.Y0, y == c.Y1-1
	onLeft, onRight := x == c.X0, x == c.X1-1
	if (onTop || onBottom) && (onLeft || onRight) {
		return geom.Top, false
	}

	switch {
	case onTop:
		return geom.Top, true
	case onBottom:
		return geom.Bottom, true
	case onLeft:
		return geom.Left, true
	case onRight:
		return geom.Right, true
	}
	return geom.Top, false
}

// dragState tracks a pointer drag after a press grabbed a frame edge.
type dragState struct {
	frameID string
	edge    geom.Edge
	lastX   int
	lastY   int
}

// motion returns the cell delta across the grabbed edge since the last
// event and records the new pointer position.
func (d *dragState) motion(x, y int) int {
	var delta int
	if d.edge.Axis() == geom.Vertical {
		delta = x - d.lastX
	} else {
		delta = y - d.lastY
	}
	d.lastX, d.lastY = x, y
	return delta
}
