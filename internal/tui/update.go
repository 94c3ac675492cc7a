// pattern: Imperative Shell

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"framedock/internal/content"
	"framedock/internal/events"
	"framedock/internal/geom"
	"framedock/internal/layout"
	"framedock/internal/store"
)

// statusTimeout is how long info and success messages stay in the status bar.
var statusTimeout = 3 * time.Second

// logsUpdatedMsg is sent whenever the log ring gains entries.
type logsUpdatedMsg struct{}

// savedMsg reports the result of an autosave.
type savedMsg struct {
	wrote bool
	err   error
}

// reloadedMsg carries layouts read back from the store.
type reloadedMsg struct {
	set layout.Set
	err error
}

// clearStatusMsg is sent after a timed delay to clear the status bar.
// Only the message with the matching seq is cleared.
type clearStatusMsg struct {
	seq int
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		canvas := ComputeScreen(m.width, m.height).Canvas
		m.selector.SetSize(max(min(selectorWidth, canvas.Width()-4), 1), max(min(selectorHeight, canvas.Height()-2), 1))
		return m, nil

	case tea.KeyMsg:
		m.logger.Debug("key pressed", "key", msg.String(), "selectorOpen", m.selectorOpen)
		if m.selectorOpen {
			return m.handleSelectorKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case logsUpdatedMsg:
		return m, waitForLogs(m.logs)

	case savedMsg:
		if msg.err != nil {
			m.logger.Error("autosave failed", "error", msg.err)
			cmd := m.setStatus(StatusError, "save failed: "+msg.err.Error())
			return m, cmd
		}
		if msg.wrote {
			m.logger.Debug("layouts saved")
		}
		return m, nil

	case reloadedMsg:
		cmd := m.applyReload(msg.set, msg.err)
		return m, cmd

	case events.LayoutChangedMsg:
		m.clampFocus()
		save := m.save()
		status := m.setStatus(StatusInfo, "layout changed via "+msg.Source)
		return m, tea.Batch(save, status)

	case events.WebListenURLMsg:
		cmd := m.setStatus(StatusInfo, "web api on "+msg.URL)
		return m, cmd

	case events.StoreReloadedMsg:
		m.clampFocus()
		if msg.Err != nil {
			cmd := m.setStatus(StatusError, "reloaded with repairs: "+msg.Err.Error())
			return m, cmd
		}
		cmd := m.setStatus(StatusInfo, "layouts reloaded from disk")
		return m, cmd

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusLevel = StatusInfo
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		return m.resizeFocused(geom.Vertical, -1)

	case key.Matches(msg, m.keys.Right):
		return m.resizeFocused(geom.Vertical, 1)

	case key.Matches(msg, m.keys.Up):
		return m.resizeFocused(geom.Horizontal, -1)

	case key.Matches(msg, m.keys.Down):
		return m.resizeFocused(geom.Horizontal, 1)

	case key.Matches(msg, m.keys.PrevLayout):
		return m.cycleLayout(-1)

	case key.Matches(msg, m.keys.NextLayout):
		return m.cycleLayout(1)

	case key.Matches(msg, m.keys.Select):
		return m.openSelector()

	case key.Matches(msg, m.keys.Assign):
		kinds := m.registry.Kinds()
		n := int(msg.Runes[0] - '0')
		if n > len(kinds) {
			cmd := m.setStatus(StatusError, fmt.Sprintf("no content kind %d", n))
			return m, cmd
		}
		return m.assign(kinds[n-1].Index)

	case key.Matches(msg, m.keys.Unassign):
		return m.assign(content.Unassigned)

	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyActive()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}
	return m, nil
}

func (m Model) handleSelectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.selectorOpen = false
		return m, nil
	case "enter":
		m.selectorOpen = false
		item, ok := m.selector.SelectedItem().(kindItem)
		if !ok {
			return m, nil
		}
		return m.assign(item.kind.Index)
	}

	var cmd tea.Cmd
	m.selector, cmd = m.selector.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	canvas := ComputeScreen(m.width, m.height).Canvas

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.selectorOpen {
			return m, nil
		}
		regions := FrameRegions(m.session.Active(), canvas)
		i, ok := RegionAt(regions, msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.focus = i
		if edge, ok := HitEdge(regions[i].Cells, msg.X, msg.Y); ok {
			m.drag = dragState{frameID: regions[i].Frame.ID, edge: edge, lastX: msg.X, lastY: msg.Y}
			m.dragging = true
			m.logger.Debug("edge grabbed", "frame", frameName(i), "edge", edge.String())
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		cells := m.drag.motion(msg.X, msg.Y)
		if cells == 0 {
			return m, nil
		}
		delta := geom.NormalizeDelta(m.drag.edge, float64(cells), canvas.Viewport())
		m.session.DragFrame(m.drag.frameID, m.drag.edge, delta)
		return m, nil

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		return m, m.save()
	}
	return m, nil
}

// resizeFocused moves the focused frame's right (or bottom) edge by one
// keyboard step. A frame already at the canvas border moves the opposite
// edge instead.
func (m Model) resizeFocused(axis geom.Axis, sign float64) (tea.Model, tea.Cmd) {
	f, ok := m.focusedFrame()
	if !ok {
		return m, nil
	}

	edge := geom.Right
	if axis == geom.Horizontal {
		edge = geom.Bottom
	}
	if f.Interval(edge).OnCanvasBorder() {
		edge = oppositeEdge(edge)
	}

	res, _ := m.session.DragFrame(f.ID, edge, sign*m.step)
	if !res.Changed() {
		cmd := m.setStatus(StatusInfo, edge.String()+" edge cannot move further")
		return m, cmd
	}
	return m, m.save()
}

func oppositeEdge(e geom.Edge) geom.Edge {
	switch e {
	case geom.Top:
		return geom.Bottom
	case geom.Bottom:
		return geom.Top
	case geom.Left:
		return geom.Right
	default:
		return geom.Left
	}
}

func (m Model) cycleLayout(step int) (tea.Model, tea.Cmd) {
	i := m.session.Cycle(step)
	if i < 0 {
		return m, nil
	}
	m.focus = 0
	m.dragging = false
	active := m.session.Active()
	m.logger.Info("layout selected", "index", i, "name", active.Name)
	cmd := tea.Batch(m.save(), m.setStatus(StatusInfo, "layout "+active.Name))
	return m, cmd
}

func (m Model) openSelector() (tea.Model, tea.Cmd) {
	f, ok := m.focusedFrame()
	if !ok {
		return m, nil
	}
	for i, item := range m.selector.Items() {
		if item.(kindItem).kind.Index == f.FrameType {
			m.selector.Select(i)
			break
		}
	}
	m.selectorOpen = true
	return m, nil
}

func (m Model) assign(frameType int) (tea.Model, tea.Cmd) {
	f, ok := m.focusedFrame()
	if !ok {
		return m, nil
	}
	if !m.session.SetFrameType(f.ID, frameType) {
		return m, nil
	}
	label := "cleared"
	if k, ok := m.registry.Info(frameType); ok {
		label = k.Name
	}
	m.logger.Info("frame assigned", "frame", frameName(m.focus), "type", frameType)
	cmd := tea.Batch(m.save(), m.setStatus(StatusSuccess, "frame "+frameName(m.focus)+": "+label))
	return m, cmd
}

func (m *Model) copyActive() tea.Cmd {
	data, err := yaml.Marshal(m.session.Active())
	if err != nil {
		return m.setStatus(StatusError, "copy failed: "+err.Error())
	}
	if err := m.copyText(string(data)); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return m.setStatus(StatusError, "copy failed: "+err.Error())
	}
	return m.setStatus(StatusSuccess, "layout copied to clipboard")
}

// save writes a snapshot of the session in the background.
func (m Model) save() tea.Cmd {
	if m.store == nil {
		return nil
	}
	set := m.session.Snapshot()
	st := m.store
	return func() tea.Msg {
		wrote, err := st.Save(set)
		return savedMsg{wrote: wrote, err: err}
	}
}

func (m Model) reload() tea.Cmd {
	if m.store == nil {
		return nil
	}
	st := m.store
	return func() tea.Msg {
		set, err := st.Load()
		return reloadedMsg{set: set, err: err}
	}
}

// applyReload restores a loaded set. Sets whose only problems were
// repaired are applied with a warning; anything else leaves the session
// untouched.
func (m *Model) applyReload(set layout.Set, err error) tea.Cmd {
	if err != nil && !store.Recoverable(err) {
		m.logger.Error("reload failed", "error", err)
		return m.setStatus(StatusError, "reload failed: "+err.Error())
	}
	m.session.Restore(set)
	m.clampFocus()
	if err != nil {
		m.logger.Warn("reloaded with repairs", "error", err)
		return m.setStatus(StatusError, "reloaded with repairs: "+err.Error())
	}
	return m.setStatus(StatusSuccess, "layouts reloaded")
}

func (m Model) focusedFrame() (layout.Frame, bool) {
	active := m.session.Active()
	if m.focus < 0 || m.focus >= len(active.Content) {
		return layout.Frame{}, false
	}
	return active.Content[m.focus], true
}

func (m *Model) moveFocus(step int) {
	n := len(m.session.Active().Content)
	if n == 0 {
		m.focus = 0
		return
	}
	m.focus = ((m.focus+step)%n + n) % n
}

func (m *Model) clampFocus() {
	n := len(m.session.Active().Content)
	m.focus = max(min(m.focus, n-1), 0)
}

// setStatus shows a message. Info and success messages clear themselves
// after statusTimeout; errors stay until replaced.
func (m *Model) setStatus(level StatusLevel, message string) tea.Cmd {
	m.statusSeq++
	m.statusMessage = message
	m.statusLevel = level
	if level == StatusError {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
