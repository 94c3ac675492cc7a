// pattern: Imperative Shell

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"framedock/internal/content"
	"framedock/internal/geom"
	"framedock/internal/layout"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	screen := ComputeScreen(m.width, m.height)
	set := m.session.Snapshot()

	header := m.renderHeader(set, screen.Header.Width())

	var canvas string
	switch active := set.Active(); {
	case active == nil:
		canvas = lipgloss.Place(screen.Canvas.Width(), screen.Canvas.Height(), lipgloss.Center, lipgloss.Center,
			m.styles.HelpStyle().Render("No layouts"))
	case m.selectorOpen:
		canvas = lipgloss.Place(screen.Canvas.Width(), screen.Canvas.Height(), lipgloss.Center, lipgloss.Center,
			m.styles.BoxStyle().Render(m.selector.View()))
	default:
		canvas = m.renderCanvas(*active, screen.Canvas)
	}

	status := m.renderStatusBar(screen.StatusBar.Width())

	return lipgloss.JoinVertical(lipgloss.Left, header, canvas, status)
}

func (m Model) renderHeader(set layout.Set, width int) string {
	title := m.styles.HeaderStyle().Render("framedock")
	if active := set.Active(); active != nil {
		title += " " + m.styles.SubtitleStyle().Render(
			fmt.Sprintf("%s  %d/%d", active.Name, set.ActiveIndex()+1, len(set.Layouts)))
	}
	return fitLine(title, width)
}

// renderCanvas draws every frame in its cell region. Rows are assembled
// left to right from the regions crossing them, which works because the
// regions of a tiling never overlap.
func (m Model) renderCanvas(l layout.Layout, canvas geom.Cells) string {
	regions := FrameRegions(l, canvas)
	env := m.panelEnv(l)

	boxes := make([][]string, len(regions))
	order := make([]int, len(regions))
	for i, r := range regions {
		boxes[i] = m.renderFrame(env, i, r.Cells.Width(), r.Cells.Height())
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return regions[order[a]].Cells.X0 < regions[order[b]].Cells.X0
	})

	rows := make([]string, 0, canvas.Height())
	for y := canvas.Y0; y < canvas.Y1; y++ {
		var b strings.Builder
		x := canvas.X0
		for _, i := range order {
			c := regions[i].Cells
			if y < c.Y0 || y >= c.Y1 || c.Width() <= 0 || c.X0 < x {
				continue
			}
			b.WriteString(strings.Repeat(" ", c.X0-x))
			b.WriteString(boxes[i][y-c.Y0])
			x = c.X1
		}
		if x < canvas.X1 {
			b.WriteString(strings.Repeat(" ", canvas.X1-x))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

func (m Model) panelEnv(l layout.Layout) panelEnv {
	return panelEnv{
		layout:   l,
		focused:  m.focus,
		registry: m.registry,
		logs:     m.logs,
		styles:   m.styles,
	}
}

// renderFrame draws frame i as a rounded box exactly width x height cells,
// with the kind in the top border. Regions too small for a border are left
// blank.
func (m Model) renderFrame(env panelEnv, i, width, height int) []string {
	lines := make([]string, 0, max(height, 0))
	if width < 2 || height < 2 {
		for range max(height, 0) {
			lines = append(lines, strings.Repeat(" ", max(width, 0)))
		}
		return lines
	}

	f := env.layout.Content[i]
	var cat *content.Category
	if c, ok := m.registry.Category(f.FrameType); ok {
		cat = &c
	}
	border := m.styles.BorderStyle(cat, i == m.focus)
	rb := lipgloss.RoundedBorder()
	inner := width - 2

	title := ansi.Truncate(m.frameTitle(env, i), inner, "…")
	rest := inner - ansi.StringWidth(title)
	lines = append(lines, border.Render(rb.TopLeft+title+strings.Repeat(rb.Top, rest)+rb.TopRight))

	body := m.frameBody(env, i, inner, height-2)
	for j := 0; j < height-2; j++ {
		var line string
		if j < len(body) {
			line = body[j]
		}
		lines = append(lines, border.Render(rb.Left)+fitLine(line, inner)+border.Render(rb.Right))
	}

	lines = append(lines, border.Render(rb.BottomLeft+strings.Repeat(rb.Bottom, inner)+rb.BottomRight))
	return lines
}

// frameTitle is the top bar text: the kind icon and name plus what the
// panel reports, or "select" for an unassigned frame.
func (m Model) frameTitle(env panelEnv, i int) string {
	f := env.layout.Content[i]
	if !f.Assigned() {
		return " " + frameName(i) + " select "
	}
	k, ok := m.registry.Info(f.FrameType)
	if !ok {
		return fmt.Sprintf(" %s type %d ", frameName(i), f.FrameType)
	}
	title := fmt.Sprintf(" %s %s %s", frameName(i), k.Icon, k.Name)
	if p, ok := m.panels[k.Index]; ok {
		if extra := p.TopBar(env, i); extra != "" {
			title += " · " + extra
		}
	}
	return title + " "
}

func (m Model) frameBody(env panelEnv, i, width, height int) []string {
	f := env.layout.Content[i]
	if !f.Assigned() {
		return renderSelectorMenu(env, height)
	}
	if p, ok := m.panels[f.FrameType]; ok {
		return p.Render(env, i, width, height)
	}
	return []string{m.styles.HelpStyle().Render("no panel for this kind")}
}

// fitLine truncates s to width cells and pads it with spaces to exactly
// width.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// renderStatusBar renders the status bar with operation feedback and help.
func (m Model) renderStatusBar(width int) string {
	var statusText string
	switch m.statusLevel {
	case StatusSuccess:
		statusText = m.styles.SuccessStyle().Render("✓ " + m.statusMessage)
	case StatusError:
		statusText = m.styles.ErrorStyle().Render("✗ " + m.statusMessage)
	default:
		statusText = m.styles.InfoStyle().Render(m.statusMessage)
	}
	if m.statusMessage == "" {
		statusText = ""
	}

	var help string
	if m.selectorOpen {
		help = m.styles.HelpStyle().Render("↑/↓: choose • enter: assign • esc: cancel")
	} else {
		help = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	spacer := width - lipgloss.Width(statusText) - lipgloss.Width(help)
	if spacer < 1 {
		return fitLine(statusText+" "+help, width)
	}
	return statusText + strings.Repeat(" ", spacer) + help
}
