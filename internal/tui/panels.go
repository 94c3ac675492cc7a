package tui

import (
	"fmt"
	"strconv"
	"strings"

	"framedock/internal/content"
	"framedock/internal/geom"
	"framedock/internal/layout"
	"framedock/internal/logging"
)

// panelEnv is what a panel may read while rendering one frame.
type panelEnv struct {
	layout   layout.Layout
	focused  int
	registry *content.Registry
	logs     logging.EntrySource
	styles   *Styles
}

// Panel renders the content of frames of one kind. Render returns at most
// height lines; the caller truncates them to width.
type Panel interface {
	TopBar(env panelEnv, frame int) string
	Render(env panelEnv, frame, width, height int) []string
}

// defaultPanels maps the kind indices of content.Default to their panels.
func defaultPanels() map[int]Panel {
	return map[int]Panel{
		0: graphPanel{},
		1: tablePanel{},
		2: inspectorPanel{},
		3: logsPanel{},
	}
}

// frameName labels frames A, B, C... in layout order.
func frameName(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return "F" + strconv.Itoa(i+1)
}

func indexByID(l layout.Layout) map[string]int {
	out := make(map[string]int, len(l.Content))
	for i, f := range l.Content {
		out[f.ID] = i
	}
	return out
}

func names(ids []string, index map[string]int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = frameName(index[id])
	}
	return strings.Join(parts, " ")
}

func clip(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:max(height, 0)]
	}
	return lines
}

// graphPanel shows which frames share a boundary.
type graphPanel struct{}

func (graphPanel) TopBar(env panelEnv, _ int) string {
	links := 0
	for _, f := range env.layout.Content {
		n := env.layout.Neighbors(f.ID)
		links += len(n[geom.Right]) + len(n[geom.Bottom])
	}
	return fmt.Sprintf("%d links", links)
}

func (graphPanel) Render(env panelEnv, _, _, height int) []string {
	index := indexByID(env.layout)
	var lines []string
	for i, f := range env.layout.Content {
		n := env.layout.Neighbors(f.ID)
		line := frameName(i)
		if right := n[geom.Right]; len(right) > 0 {
			line += " → " + names(right, index)
		}
		if below := n[geom.Bottom]; len(below) > 0 {
			line += " ↓ " + names(below, index)
		}
		if i == env.focused {
			line = env.styles.AccentStyle().Render(line)
		}
		lines = append(lines, line)
	}
	return clip(lines, height)
}

// tablePanel lists every frame with its kind and rectangle.
type tablePanel struct{}

func (tablePanel) TopBar(env panelEnv, _ int) string {
	return fmt.Sprintf("%d frames", len(env.layout.Content))
}

func (tablePanel) Render(env panelEnv, _, _, height int) []string {
	lines := []string{env.styles.SubtitleStyle().Render(fmt.Sprintf("%-3s %-10s %-11s %s", "", "kind", "x", "y"))}
	for i, f := range env.layout.Content {
		kind := "-"
		if k, ok := env.registry.Info(f.FrameType); ok {
			kind = k.Name
		}
		lines = append(lines, fmt.Sprintf("%-3s %-10s %.2f-%.2f   %.2f-%.2f",
			frameName(i), kind, f.Rect.Min.X, f.Rect.Max.X, f.Rect.Min.Y, f.Rect.Max.Y))
	}
	return clip(lines, height)
}

// inspectorPanel describes the focused frame and how far each of its edges
// can move.
type inspectorPanel struct{}

func (inspectorPanel) TopBar(env panelEnv, _ int) string {
	if env.focused < 0 || env.focused >= len(env.layout.Content) {
		return "no focus"
	}
	return "frame " + frameName(env.focused)
}

func (inspectorPanel) Render(env panelEnv, _, _, height int) []string {
	if env.focused < 0 || env.focused >= len(env.layout.Content) {
		return nil
	}
	l := env.layout.Clone()
	f := l.Content[env.focused]
	index := indexByID(l)
	neighbors := l.Neighbors(f.ID)

	kind := "unassigned"
	if k, ok := env.registry.Info(f.FrameType); ok {
		kind = k.Icon + " " + k.Name
	}
	lines := []string{
		env.styles.HeaderStyle().Render(frameName(env.focused)) + " " + kind,
		fmt.Sprintf("id     %.8s", f.ID),
		fmt.Sprintf("x      %.3f … %.3f  %4.1f%%", f.Rect.Min.X, f.Rect.Max.X, f.Rect.Width()*100),
		fmt.Sprintf("y      %.3f … %.3f  %4.1f%%", f.Rect.Min.Y, f.Rect.Max.Y, f.Rect.Height()*100),
	}
	for _, edge := range geom.Edges {
		iv := f.Interval(edge)
		var desc string
		switch res := l.Drag(iv, 0); {
		case iv.OnCanvasBorder():
			desc = "border"
		case res.Low > res.High:
			desc = "pinned"
		default:
			desc = fmt.Sprintf("%.3f … %.3f", res.Low, res.High)
		}
		if ids := neighbors[edge]; len(ids) > 0 {
			desc += "  " + names(ids, index)
		}
		lines = append(lines, fmt.Sprintf("%-6s %s", edge, desc))
	}
	return clip(lines, height)
}

// logsPanel tails the in-memory log ring.
type logsPanel struct{}

func (logsPanel) TopBar(env panelEnv, _ int) string {
	if env.logs == nil {
		return "off"
	}
	return "recent"
}

func (logsPanel) Render(env panelEnv, _, _, height int) []string {
	if env.logs == nil {
		return []string{env.styles.HelpStyle().Render("No log entries")}
	}
	entries := env.logs.Recent(height)
	if len(entries) == 0 {
		return []string{env.styles.HelpStyle().Render("No log entries")}
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = renderLogEntry(env.styles, e)
	}
	return lines
}

// renderLogEntry formats a single log entry for display.
func renderLogEntry(s *Styles, entry logging.LogEntry) string {
	ts := s.LogTimestampStyle().Render(entry.Timestamp.Format("15:04:05"))
	level := s.LogLevelStyle(entry.Level).Render(entry.Level)
	scope := s.LogScopeStyle().Render("[" + entry.Scope + "]")
	return fmt.Sprintf("%s %s %s %s", ts, level, scope, entry.Message)
}

// renderSelectorMenu lists the registry for an unassigned frame, numbered
// for the digit shortcuts.
func renderSelectorMenu(env panelEnv, height int) []string {
	lines := []string{env.styles.HelpStyle().Render("enter or 1-9 to choose")}
	n := 1
	for _, c := range env.registry.Categories() {
		lines = append(lines, env.styles.CategoryStyle(c).Bold(true).Render(c.Name))
		for _, k := range c.Kinds {
			lines = append(lines, fmt.Sprintf("  %d %s %s", n, k.Icon, k.Name))
			n++
		}
	}
	return clip(lines, height)
}
