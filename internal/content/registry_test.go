package content

import (
	"testing"

	catppuccin "github.com/catppuccin/go"
)

func TestDefault_Info(t *testing.T) {
	r := Default()

	tests := []struct {
		index    int
		name     string
		category string
		ok       bool
	}{
		{index: 0, name: "Graph", category: "Editing", ok: true},
		{index: 1, name: "Table", category: "Editing", ok: true},
		{index: 2, name: "Inspector", category: "Editing", ok: true},
		{index: 3, name: "Logs", category: "Diagnostics", ok: true},
		{index: 4, ok: false},
		{index: Unassigned, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := r.Info(tt.index)
			if ok != tt.ok {
				t.Fatalf("Info(%d) ok = %v, want %v", tt.index, ok, tt.ok)
			}
			if !ok {
				return
			}
			if k.Name != tt.name || k.Category != tt.category || k.Index != tt.index {
				t.Errorf("Info(%d) = %+v", tt.index, k)
			}
		})
	}
}

func TestRegistry_OrderAndLen(t *testing.T) {
	r := Default()
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	kinds := r.Kinds()
	for i, k := range kinds {
		if k.Index != i {
			t.Errorf("Kinds()[%d].Index = %d", i, k.Index)
		}
	}
	cats := r.Categories()
	if len(cats) != 2 || cats[0].Name != "Editing" || cats[1].Name != "Diagnostics" {
		t.Errorf("Categories() = %v", cats)
	}
}

func TestRegistry_CategoryColor(t *testing.T) {
	r := Default()
	c, ok := r.Category(1)
	if !ok {
		t.Fatal("Category(1) not found")
	}
	if got := c.Color(catppuccin.Frappe).Hex; got != catppuccin.Frappe.Red().Hex {
		t.Errorf("Editing color = %s, want frappe red", got)
	}
	if _, ok := r.Category(42); ok {
		t.Error("Category(42) should not exist")
	}
}

func TestRegistry_Known(t *testing.T) {
	r := Default()
	for _, tt := range []struct {
		frameType int
		want      bool
	}{{0, true}, {3, true}, {Unassigned, true}, {7, false}, {-1, false}} {
		if got := r.Known(tt.frameType); got != tt.want {
			t.Errorf("Known(%d) = %v, want %v", tt.frameType, got, tt.want)
		}
	}
}

func TestFlavor(t *testing.T) {
	tests := []struct {
		name string
		want catppuccin.Flavor
	}{
		{"latte", catppuccin.Latte},
		{"frappe", catppuccin.Frappe},
		{"macchiato", catppuccin.Macchiato},
		{"mocha", catppuccin.Mocha},
		{"", catppuccin.Frappe},
		{"solarized", catppuccin.Frappe},
	}
	for _, tt := range tests {
		if got := Flavor(tt.name); got.Name() != tt.want.Name() {
			t.Errorf("Flavor(%q) = %s, want %s", tt.name, got.Name(), tt.want.Name())
		}
	}
}
