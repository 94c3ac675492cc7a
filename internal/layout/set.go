// pattern: Functional Core

package layout

import "framedock/internal/geom"

// Set is the collection of layouts a session can switch between, with the
// index of the active one.
type Set struct {
	Layouts  []Layout `yaml:"layouts" json:"layouts"`
	Selected int      `yaml:"selected" json:"selected"`
}

// ActiveIndex returns Selected clamped into range, or -1 for an empty set.
func (s Set) ActiveIndex() int {
	if len(s.Layouts) == 0 {
		return -1
	}
	return min(max(s.Selected, 0), len(s.Layouts)-1)
}

// Active returns a pointer to the active layout, or nil for an empty set.
func (s *Set) Active() *Layout {
	i := s.ActiveIndex()
	if i < 0 {
		return nil
	}
	return &s.Layouts[i]
}

// Select makes layout i active. Out-of-range indices are ignored.
func (s *Set) Select(i int) bool {
	if i < 0 || i >= len(s.Layouts) || i == s.Selected {
		return false
	}
	s.Selected = i
	return true
}

// Find returns the index of the layout with the given name.
func (s Set) Find(name string) (int, bool) {
	for i, l := range s.Layouts {
		if l.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	out := Set{Selected: s.Selected, Layouts: make([]Layout, len(s.Layouts))}
	for i, l := range s.Layouts {
		out.Layouts[i] = l.Clone()
	}
	return out
}

// DefaultLayout is the layout the editor starts with: a wide graph frame on
// the left and a table above an inspector on the right.
func DefaultLayout() Layout {
	return New("Default",
		NewFrame(0, geom.FromRanges(0, 0.75, 0, 1)),
		NewFrame(1, geom.FromRanges(0.75, 1, 0, 0.66)),
		NewFrame(2, geom.FromRanges(0.75, 1, 0.66, 1)),
	)
}

// QuadLayout splits the canvas into four unassigned quadrants.
func QuadLayout() Layout {
	return New("Quad",
		NewFrame(UnassignedFrameType, geom.FromRanges(0, 0.5, 0, 0.5)),
		NewFrame(UnassignedFrameType, geom.FromRanges(0.5, 1, 0, 0.5)),
		NewFrame(UnassignedFrameType, geom.FromRanges(0, 0.5, 0.5, 1)),
		NewFrame(UnassignedFrameType, geom.FromRanges(0.5, 1, 0.5, 1)),
	)
}

// DefaultSet returns the built-in layouts with the first one active.
func DefaultSet() Set {
	return Set{Layouts: []Layout{DefaultLayout(), QuadLayout()}}
}
