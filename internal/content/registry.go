// pattern: Functional Core

// Package content lists the kinds of content a frame can host, grouped into
// the categories the selector shows.
package content

import (
	catppuccin "github.com/catppuccin/go"

	"framedock/internal/layout"
)

// Unassigned is the frame type of a frame with no content kind yet.
const Unassigned = layout.UnassignedFrameType

// Kind describes one content kind.
type Kind struct {
	Index    int
	Name     string
	Icon     string
	Category string
}

// Category groups kinds under a shared accent color.
type Category struct {
	Name  string
	Color func(catppuccin.Flavor) catppuccin.Color
	Kinds []Kind
}

// Registry is an ordered list of categories.
type Registry struct {
	categories []Category
}

// New builds a registry. Each kind's Category field is filled in from the
// category it is listed under.
func New(categories ...Category) *Registry {
	r := &Registry{categories: make([]Category, len(categories))}
	for i, c := range categories {
		kinds := make([]Kind, len(c.Kinds))
		for j, k := range c.Kinds {
			k.Category = c.Name
			kinds[j] = k
		}
		c.Kinds = kinds
		r.categories[i] = c
	}
	return r
}

// Default returns the built-in content kinds.
func Default() *Registry {
	return New(
		Category{
			Name:  "Editing",
			Color: catppuccin.Flavor.Red,
			Kinds: []Kind{
				{Index: 0, Name: "Graph", Icon: "◈"},
				{Index: 1, Name: "Table", Icon: "▦"},
				{Index: 2, Name: "Inspector", Icon: "☰"},
			},
		},
		Category{
			Name:  "Diagnostics",
			Color: catppuccin.Flavor.Teal,
			Kinds: []Kind{
				{Index: 3, Name: "Logs", Icon: "≡"},
			},
		},
	)
}

// Info returns the kind with the given index.
func (r *Registry) Info(index int) (Kind, bool) {
	for _, c := range r.categories {
		for _, k := range c.Kinds {
			if k.Index == index {
				return k, true
			}
		}
	}
	return Kind{}, false
}

// Category returns the category a kind index belongs to.
func (r *Registry) Category(index int) (Category, bool) {
	for _, c := range r.categories {
		for _, k := range c.Kinds {
			if k.Index == index {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Categories returns the categories in display order.
func (r *Registry) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

// Kinds returns every kind in display order.
func (r *Registry) Kinds() []Kind {
	var out []Kind
	for _, c := range r.categories {
		out = append(out, c.Kinds...)
	}
	return out
}

// Len returns the number of kinds.
func (r *Registry) Len() int {
	n := 0
	for _, c := range r.categories {
		n += len(c.Kinds)
	}
	return n
}

// Known reports whether frameType is a registered kind or Unassigned.
func (r *Registry) Known(frameType int) bool {
	if frameType == Unassigned {
		return true
	}
	_, ok := r.Info(frameType)
	return ok
}
