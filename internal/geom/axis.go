// pattern: Functional Core

package geom

import (
	"fmt"
	"strings"
)

// Axis is the direction a boundary runs along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "horizontal":
		*a = Horizontal
	case "vertical":
		*a = Vertical
	default:
		return fmt.Errorf("unknown axis %q", string(text))
	}
	return nil
}

// Edge is one side of a rectangle.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

// Edges lists all edges in intersection priority order.
var Edges = [4]Edge{Top, Bottom, Left, Right}

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("edge(%d)", int(e))
	}
}

// ParseEdge accepts the names produced by Edge.String, case-insensitively.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Top, fmt.Errorf("unknown edge %q (want top, bottom, left or right)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Edge) UnmarshalText(text []byte) error {
	parsed, err := ParseEdge(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Axis returns the axis the edge's interval runs along.
// Top and bottom edges are horizontal lines, left and right are vertical.
func (e Edge) Axis() Axis {
	if e == Top || e == Bottom {
		return Horizontal
	}
	return Vertical
}

// Direction maps the edge to the drag direction pointing out of the rect.
func (e Edge) Direction() Direction {
	switch e {
	case Top:
		return Up
	case Bottom:
		return Down
	case Left:
		return DirLeft
	default:
		return DirRight
	}
}

// Direction is the direction a sensed drag points to.
type Direction int

const (
	Up Direction = iota
	Down
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Edge maps the direction back to the rect edge it moves.
func (d Direction) Edge() Edge {
	switch d {
	case Up:
		return Top
	case Down:
		return Bottom
	case DirLeft:
		return Left
	default:
		return Right
	}
}

// AxisOf returns the axis of motion for a direction: up and down move
// vertically, left and right horizontally.
func AxisOf(d Direction) Axis {
	if d == Up || d == Down {
		return Vertical
	}
	return Horizontal
}
