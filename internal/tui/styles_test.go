package tui

import (
	"testing"

	"framedock/internal/content"
)

func TestStyles_AllFlavors(t *testing.T) {
	flavors := []string{"latte", "frappe", "macchiato", "mocha", "unknown"}

	for _, flavor := range flavors {
		t.Run(flavor, func(t *testing.T) {
			styles := NewStyles(flavor)

			if styles.HeaderStyle().Render("x") == "" {
				t.Error("HeaderStyle should render content")
			}
			_ = styles.ErrorStyle()
			_ = styles.BoxStyle()
			_ = styles.LogLevelStyle("WARN")
		})
	}
}

func TestStyles_UnknownThemeFallsBackToFrappe(t *testing.T) {
	if got, want := NewStyles("nope").flavor.Base().Hex, NewStyles("frappe").flavor.Base().Hex; got != want {
		t.Errorf("base = %s, want %s", got, want)
	}
}

func TestStyles_BorderStyle(t *testing.T) {
	styles := NewStyles("mocha")
	editing, _ := content.Default().Category(0)

	focused := styles.BorderStyle(&editing, true)
	if !focused.GetBold() {
		t.Error("focused border should be bold")
	}
	if styles.BorderStyle(&editing, false).GetBold() {
		t.Error("unfocused border should not be bold")
	}

	want := editing.Color(styles.flavor).Hex
	if got := styles.BorderStyle(&editing, false).GetForeground(); got != styles.color(editing.Color(styles.flavor)) {
		t.Errorf("category border color = %v, want %s", got, want)
	}
	if got := styles.BorderStyle(nil, false).GetForeground(); got != styles.color(styles.flavor.Surface1()) {
		t.Errorf("unassigned border color = %v", got)
	}
}
