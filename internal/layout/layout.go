// pattern: Functional Core

// Package layout models a set of frames tiling the normalized canvas and
// implements boundary dragging between them.
package layout

import (
	"math"

	"github.com/google/uuid"

	"framedock/internal/geom"
)

// MinSize is the smallest width or height a frame may be dragged to. It is
// also the margin a boundary keeps from the canvas border.
const MinSize = 0.05

// Layout is an ordered collection of frames that tile [0,1]x[0,1].
//
// Frames are identified by ID, not by their position in Content. Tiling is a
// precondition established by whoever builds the layout; Drag preserves it
// but never re-checks it (see Validate).
type Layout struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Content []Frame `yaml:"content" json:"content"`
}

// New creates a layout with a fresh identity.
func New(name string, frames ...Frame) Layout {
	return Layout{
		ID:      uuid.NewString(),
		Name:    name,
		Content: frames,
	}
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	out := l
	out.Content = append([]Frame(nil), l.Content...)
	return out
}

// Frame returns a pointer to the frame with the given id.
func (l *Layout) Frame(id string) (*Frame, bool) {
	for i := range l.Content {
		if l.Content[i].ID == id {
			return &l.Content[i], true
		}
	}
	return nil, false
}

// FrameAt returns the frame containing p.
func (l Layout) FrameAt(p geom.Pos) (Frame, bool) {
	for _, f := range l.Content {
		if f.Rect.Contains(p) {
			return f, true
		}
	}
	return Frame{}, false
}

// SetFrameType changes the content kind of a frame. Returns false if the
// frame does not exist or already has that kind.
func (l *Layout) SetFrameType(id string, frameType int) bool {
	f, ok := l.Frame(id)
	if !ok || f.FrameType == frameType {
		return false
	}
	f.FrameType = frameType
	return true
}

// DragResult describes what a Drag call did.
type DragResult struct {
	// Interval is the dragged boundary after transitive expansion.
	Interval geom.Interval `json:"interval"`
	// Low and High bound where the boundary may move.
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	// Delta is the displacement actually applied after clamping.
	Delta float64 `json:"delta"`
	// Moved counts the frame edges that were set.
	Moved int `json:"moved"`
}

// Changed reports whether any frame geometry changed.
func (r DragResult) Changed() bool {
	return r.Moved > 0
}

// Drag moves the boundary described by iv by delta along its perpendicular
// axis. Every frame edge lying on the boundary moves with it, including
// frames reached transitively through flush neighbours, and the move is
// clamped so no frame gets thinner than MinSize. Canvas borders do not move.
//
// Drag never fails: an immovable or unknown boundary is a no-op, and so is
// a NaN delta or interval coordinate.
func (l *Layout) Drag(iv geom.Interval, delta float64) DragResult {
	if math.IsNaN(delta) || iv.HasNaN() || iv.OnCanvasBorder() {
		return DragResult{Interval: iv}
	}

	iv = l.expand(iv)
	result := DragResult{Interval: iv}
	result.Low, result.High = l.clampRange(iv)
	if result.Low > result.High {
		return result
	}

	target := math.Min(math.Max(iv.Pos+delta, result.Low), result.High)
	if target == iv.Pos {
		return result
	}
	result.Delta = target - iv.Pos

	for i := range l.Content {
		if edge, ok := geom.WhichEdgeIntersects(l.Content[i].Rect, iv); ok {
			l.Content[i].SetEdge(edge, target)
			result.Moved++
		}
	}
	return result
}

// DragFrame drags one edge of the frame with the given id. It returns false
// when no such frame exists.
func (l *Layout) DragFrame(id string, edge geom.Edge, delta float64) (DragResult, bool) {
	f, ok := l.Frame(id)
	if !ok {
		return DragResult{}, false
	}
	return l.Drag(f.Interval(edge), delta), true
}

// expand grows iv until it covers every frame edge that transitively
// overlaps it on the same line. Each pass either grows the span or ends the
// loop, so it runs at most len(Content)+1 times.
func (l *Layout) expand(iv geom.Interval) geom.Interval {
	for pass := 0; pass <= len(l.Content); pass++ {
		from, to := iv.From, iv.To
		for _, f := range l.Content {
			edge, ok := geom.WhichEdgeIntersects(f.Rect, iv)
			if !ok {
				continue
			}
			e := f.Interval(edge)
			from = math.Min(from, e.From)
			to = math.Max(to, e.To)
		}
		if from == iv.From && to == iv.To {
			break
		}
		iv.From, iv.To = from, to
	}
	return iv
}

// clampRange computes where the boundary iv may move without shrinking any
// frame alongside it below MinSize.
//
// Frames whose extent along iv overlaps its span are classified by their
// perpendicular extent: before the boundary when they end at or before it,
// after when they start at or after it, both within Epsilon. A frame that
// straddles the boundary pins it in place.
func (l *Layout) clampRange(iv geom.Interval) (low, high float64) {
	low, high = MinSize, 1-MinSize
	pos := iv.Pos

	for _, f := range l.Content {
		from, to := geom.RangeAlongAxis(f.Rect, iv.Axis)
		if iv.From > to-geom.Epsilon || iv.To < from+geom.Epsilon {
			continue
		}

		near, far := geom.RangeAlongAxis(f.Rect, iv.Axis.Other())
		switch {
		case far <= pos+geom.Epsilon:
			low = math.Max(low, near+MinSize)
			if far < pos-geom.Epsilon {
				low = math.Max(low, far)
			}
		case near >= pos-geom.Epsilon:
			high = math.Min(high, far-MinSize)
			if near > pos+geom.Epsilon {
				high = math.Min(high, near)
			}
		default:
			return pos, pos
		}
	}
	return low, high
}

// Neighbors returns, per edge of the frame with the given id, the ids of the
// frames whose boundary overlaps that edge.
func (l Layout) Neighbors(id string) map[geom.Edge][]string {
	self, ok := l.Frame(id)
	if !ok {
		return nil
	}
	out := make(map[geom.Edge][]string)
	for _, edge := range geom.Edges {
		iv := self.Interval(edge)
		if iv.OnCanvasBorder() {
			continue
		}
		for _, f := range l.Content {
			if f.ID == id {
				continue
			}
			if _, ok := geom.WhichEdgeIntersects(f.Rect, iv); ok {
				out[edge] = append(out[edge], f.ID)
			}
		}
	}
	return out
}
