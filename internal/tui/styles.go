package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"framedock/internal/content"
)

type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	return &Styles{flavor: content.Flavor(themeName)}
}

func (s *Styles) color(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

func (s *Styles) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.color(s.flavor.Mauve()))
}

func (s *Styles) SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Subtext0()))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Overlay0()))
}

func (s *Styles) BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.color(s.flavor.Surface1())).
		Padding(0, 1)
}

func (s *Styles) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Text()))
}

func (s *Styles) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Teal()))
}

func (s *Styles) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Green()))
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Red())).
		Bold(true)
}

// BorderStyle colors a frame border: the accent for the focused frame, the
// category color for assigned frames, and a muted surface otherwise.
func (s *Styles) BorderStyle(cat *content.Category, focused bool) lipgloss.Style {
	switch {
	case focused:
		return lipgloss.NewStyle().Foreground(s.color(s.flavor.Mauve())).Bold(true)
	case cat != nil:
		return lipgloss.NewStyle().Foreground(s.color(cat.Color(s.flavor)))
	default:
		return lipgloss.NewStyle().Foreground(s.color(s.flavor.Surface1()))
	}
}

// CategoryStyle renders text in a category's color.
func (s *Styles) CategoryStyle(cat content.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.color(cat.Color(s.flavor)))
}

func (s *Styles) LogTimestampStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.color(s.flavor.Overlay0()))
}

func (s *Styles) LogScopeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.color(s.flavor.Lavender()))
}

// LogLevelStyle colors a level badge.
func (s *Styles) LogLevelStyle(level string) lipgloss.Style {
	c := s.flavor.Blue()
	switch level {
	case "DEBUG":
		c = s.flavor.Overlay1()
	case "WARN":
		c = s.flavor.Yellow()
	case "ERROR":
		c = s.flavor.Red()
	}
	return lipgloss.NewStyle().Foreground(s.color(c))
}
