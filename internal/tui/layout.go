// pattern: Functional Core

package tui

import (
	"framedock/internal/geom"
	"framedock/internal/layout"
)

// Screen holds computed regions for the editor chrome and the canvas.
type Screen struct {
	Header    geom.Cells // Layout name and position (1 line)
	Canvas    geom.Cells // Frames (dynamic)
	StatusBar geom.Cells // Status and help (1 line)
}

// Fixed heights for chrome elements
const (
	headerHeight    = 1
	statusBarHeight = 1
	minCanvasHeight = 2
)

// ComputeScreen calculates regions based on terminal dimensions.
func ComputeScreen(width, height int) Screen {
	width = max(width, 0)
	canvasHeight := max(height-headerHeight-statusBarHeight, minCanvasHeight)

	y := 0
	header := geom.Cells{X0: 0, Y0: y, X1: width, Y1: y + headerHeight}
	y += headerHeight

	canvas := geom.Cells{X0: 0, Y0: y, X1: width, Y1: y + canvasHeight}
	y += canvasHeight

	status := geom.Cells{X0: 0, Y0: y, X1: width, Y1: y + statusBarHeight}

	return Screen{Header: header, Canvas: canvas, StatusBar: status}
}

// FrameRegion is one frame mapped onto the terminal grid.
type FrameRegion struct {
	Frame layout.Frame
	Cells geom.Cells
}

// FrameRegions maps every frame of l onto canvas. Regions of a valid
// tiling tile the canvas.
func FrameRegions(l layout.Layout, canvas geom.Cells) []FrameRegion {
	out := make([]FrameRegion, len(l.Content))
	for i, f := range l.Content {
		out[i] = FrameRegion{Frame: f, Cells: geom.ToCells(f.Rect, canvas)}
	}
	return out
}

// RegionAt returns the index of the region containing cell (x, y).
func RegionAt(regions []FrameRegion, x, y int) (int, bool) {
	for i, r := range regions {
		if r.Cells.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
