// pattern: Functional Core

package export

import (
	"fmt"
	"strings"

	"framedock/internal/content"
	"framedock/internal/geom"
	"framedock/internal/layout"
)

// Sketch draws l as ASCII boxes on a cols x rows grid. Neighbouring frames
// share their border line.
func Sketch(l layout.Layout, cols, rows int, reg *content.Registry) string {
	if cols < 2 || rows < 2 {
		return ""
	}
	if reg == nil {
		reg = content.Default()
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	put := func(x, y int, r rune) {
		if y < 0 || y >= rows || x < 0 || x >= cols {
			return
		}
		switch cur := grid[y][x]; {
		case cur == '+' || r == '+':
			grid[y][x] = '+'
		case cur != ' ' && cur != r:
			grid[y][x] = '+'
		default:
			grid[y][x] = r
		}
	}

	bounds := geom.Cells{X1: cols - 1, Y1: rows - 1}
	for _, f := range l.Content {
		c := geom.ToCells(f.Rect, bounds)
		for x := c.X0 + 1; x < c.X1; x++ {
			put(x, c.Y0, '-')
			put(x, c.Y1, '-')
		}
		for y := c.Y0 + 1; y < c.Y1; y++ {
			put(c.X0, y, '|')
			put(c.X1, y, '|')
		}
		for _, p := range [][2]int{{c.X0, c.Y0}, {c.X1, c.Y0}, {c.X0, c.Y1}, {c.X1, c.Y1}} {
			put(p[0], p[1], '+')
		}

		label := []rune(frameLabel(f, reg))
		room := c.X1 - c.X0 - 2
		if room <= 0 || c.Y1-c.Y0 < 2 {
			continue
		}
		if len(label) > room {
			label = label[:room]
		}
		copy(grid[c.Y0+1][c.X0+1:], label)
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// Table lists the frames of l, one per line.
func Table(l layout.Layout, reg *content.Registry) string {
	if reg == nil {
		reg = content.Default()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-8s  %-10s  %-13s  %-13s\n", "ID", "KIND", "X", "Y")
	for _, f := range l.Content {
		id := f.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(&sb, "%-8s  %-10s  %.3f..%.3f  %.3f..%.3f\n",
			id, frameLabel(f, reg), f.Rect.Min.X, f.Rect.Max.X, f.Rect.Min.Y, f.Rect.Max.Y)
	}
	return sb.String()
}

func frameLabel(f layout.Frame, reg *content.Registry) string {
	if kind, ok := reg.Info(f.FrameType); ok {
		return kind.Name
	}
	if !f.Assigned() {
		return "(select)"
	}
	return fmt.Sprintf("type %d", f.FrameType)
}
