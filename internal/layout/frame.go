// pattern: Functional Core

package layout

import (
	"github.com/google/uuid"

	"framedock/internal/geom"
)

// UnassignedFrameType marks a frame that has no content kind yet; such a
// frame shows the content selector.
const UnassignedFrameType = 9999

// Frame is one rectangular region of the canvas.
type Frame struct {
	// FrameType indexes the content registry, or is UnassignedFrameType.
	FrameType int `yaml:"frame_type" json:"frame_type"`
	// Rect is the frame's area in normalized canvas coordinates.
	Rect geom.Rect `yaml:"rect" json:"rect"`
	// ID identifies the frame for per-frame UI state. Stable for the
	// lifetime of the frame.
	ID string `yaml:"id" json:"id"`
}

// NewFrame creates a frame with a fresh identity.
func NewFrame(frameType int, rect geom.Rect) Frame {
	return Frame{
		FrameType: frameType,
		Rect:      rect,
		ID:        uuid.NewString(),
	}
}

// Assigned reports whether the frame has a content kind.
func (f Frame) Assigned() bool {
	return f.FrameType != UnassignedFrameType
}

// Interval returns the given boundary of the frame.
func (f Frame) Interval(edge geom.Edge) geom.Interval {
	return geom.EdgeInterval(f.Rect, edge)
}

// SetEdge moves one edge of the frame to value.
func (f *Frame) SetEdge(edge geom.Edge, value float64) {
	switch edge {
	case geom.Top:
		f.Rect.Min.Y = value
	case geom.Bottom:
		f.Rect.Max.Y = value
	case geom.Left:
		f.Rect.Min.X = value
	case geom.Right:
		f.Rect.Max.X = value
	}
}
