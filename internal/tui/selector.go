// pattern: Imperative Shell

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"framedock/internal/content"
)

// kindItem wraps a content kind for display in the selector list.
type kindItem struct {
	kind     content.Kind
	category content.Category
}

// Title returns the kind name for display.
func (i kindItem) Title() string {
	return i.kind.Icon + " " + i.kind.Name
}

// Description returns the category the kind belongs to.
func (i kindItem) Description() string {
	return i.category.Name
}

// FilterValue returns the value to filter on.
func (i kindItem) FilterValue() string {
	return i.kind.Name
}

// kindDelegate renders selector rows in their category color.
type kindDelegate struct {
	styles *Styles
}

func (d kindDelegate) Height() int  { return 1 }
func (d kindDelegate) Spacing() int { return 0 }

func (d kindDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single kind row.
func (d kindDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ki, ok := item.(kindItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	titleStyle := d.styles.InfoStyle()
	indicator := "  "
	if isSelected {
		titleStyle = titleStyle.Bold(true).Foreground(lipgloss.Color(d.styles.flavor.Mauve().Hex))
		indicator = titleStyle.Render("▸ ")
	}
	category := d.styles.CategoryStyle(ki.category).Render(ki.category.Name)

	_, _ = fmt.Fprintf(w, "%s%d %s  %s", indicator, index+1, titleStyle.Render(ki.Title()), category)
}

// kindItems lists the registry in display order.
func kindItems(reg *content.Registry) []list.Item {
	var items []list.Item
	for _, c := range reg.Categories() {
		for _, k := range c.Kinds {
			items = append(items, kindItem{kind: k, category: c})
		}
	}
	return items
}

func newSelector(reg *content.Registry, styles *Styles) list.Model {
	l := list.New(kindItems(reg), kindDelegate{styles: styles}, 0, 0)
	l.Title = "Content"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = styles.HeaderStyle()
	return l
}

// selectorWidth and selectorHeight bound the selector overlay.
const (
	selectorWidth  = 36
	selectorHeight = 12
)
