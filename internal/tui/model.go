// pattern: Imperative Shell

// Package tui is the terminal editor: it draws the active layout's frames,
// turns pointer drags on frame borders into edge drags, and offers keyboard
// resizing, layout switching and content selection.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"framedock/internal/content"
	"framedock/internal/layout"
	"framedock/internal/logging"
	"framedock/internal/session"
)

// Store is the persistence the editor saves to and reloads from.
// *store.Store implements it.
type Store interface {
	Load() (layout.Set, error)
	Save(set layout.Set) (bool, error)
}

// Options configures NewModel.
type Options struct {
	Session  *session.Session
	Store    Store
	Registry *content.Registry
	// Logs feeds the Logs panel. Optional.
	Logs   logging.EntrySource
	Logger *logging.ScopedLogger
	Theme  string
	// KeyboardStep is the normalized distance H/J/K/L move an edge.
	KeyboardStep float64
}

const defaultKeyboardStep = 0.025

// StatusLevel represents the type of status message being displayed.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

// String returns the string representation of a StatusLevel.
func (s StatusLevel) String() string {
	switch s {
	case StatusInfo:
		return "info"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Model represents the TUI application state.
type Model struct {
	width  int
	height int
	styles *Styles
	keys   keyMap
	help   help.Model

	session  *session.Session
	store    Store
	registry *content.Registry
	panels   map[int]Panel
	logs     logging.EntrySource
	logger   *logging.ScopedLogger
	step     float64

	// focus indexes the active layout's frames.
	focus    int
	drag     dragState
	dragging bool

	selectorOpen bool
	selector     list.Model

	statusMessage string
	statusLevel   StatusLevel
	statusSeq     int

	copyText func(string) error
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	registry := opts.Registry
	if registry == nil {
		registry = content.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	step := opts.KeyboardStep
	if step <= 0 {
		step = defaultKeyboardStep
	}
	styles := NewStyles(opts.Theme)

	h := help.New()
	h.Styles.ShortKey = styles.SubtitleStyle()
	h.Styles.ShortDesc = styles.HelpStyle()
	h.Styles.ShortSeparator = styles.HelpStyle()

	logger.Debug("tui model created", "theme", opts.Theme, "step", step)

	return Model{
		styles:   styles,
		keys:     newKeyMap(),
		help:     h,
		session:  opts.Session,
		store:    opts.Store,
		registry: registry,
		panels:   defaultPanels(),
		logs:     opts.Logs,
		logger:   logger,
		step:     step,
		selector: newSelector(registry, styles),
		copyText: clipboard.WriteAll,
	}
}

// Init returns the initial command to run.
func (m Model) Init() tea.Cmd {
	return waitForLogs(m.logs)
}

// Focused returns the index of the focused frame in the active layout.
func (m Model) Focused() int {
	return m.focus
}

// SelectorOpen reports whether the content selector is showing.
func (m Model) SelectorOpen() bool {
	return m.selectorOpen
}

// Status returns the status bar message and its level.
func (m Model) Status() (string, StatusLevel) {
	return m.statusMessage, m.statusLevel
}

// waitForLogs blocks until the log ring changes. It returns nil once the
// source is closed so the loop stops.
func waitForLogs(src logging.EntrySource) tea.Cmd {
	if src == nil {
		return nil
	}
	updates := src.Updates()
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return logsUpdatedMsg{}
	}
}
