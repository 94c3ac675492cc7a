package content

import catppuccin "github.com/catppuccin/go"

// Flavor maps a theme name to its catppuccin palette. Unknown names get
// Frappe.
func Flavor(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Frappe
	}
}

// Themes lists the accepted theme names.
var Themes = []string{"latte", "frappe", "macchiato", "mocha"}
