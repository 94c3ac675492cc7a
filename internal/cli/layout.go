// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"framedock/internal/geom"
	"framedock/internal/instance"
)

// RegisterLayoutCommands adds the commands that act on a running instance
// to group. Each command validates its arguments before d discovers the
// instance.
func RegisterLayoutCommands(group *Group, d Delegate) {
	group.AddCommand(&Command{
		Name:             "list",
		Summary:          "Print every layout as JSON",
		Usage:            "Usage: framedock layout list",
		RequiresInstance: true,
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("list takes no arguments")
			}
			d.Run(func(c *instance.Client) ([]byte, error) {
				return c.Layouts()
			})
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:             "active",
		Summary:          "Print the active layout as JSON",
		Usage:            "Usage: framedock layout active",
		RequiresInstance: true,
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("active takes no arguments")
			}
			d.Run(func(c *instance.Client) ([]byte, error) {
				return c.Active()
			})
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:             "select",
		Summary:          "Make the layout at <index> active",
		Usage:            "Usage: framedock layout select <index>",
		RequiresInstance: true,
		Run: func(args []string) error {
			index, err := parseSelectArgs(args)
			if err != nil {
				return err
			}
			d.Run(func(c *instance.Client) ([]byte, error) {
				return c.Select(index)
			})
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:             "drag",
		Summary:          "Move one edge of a frame in the active layout",
		Usage:            "Usage: framedock layout drag --frame <id> --edge top|bottom|left|right --delta <d>",
		RequiresInstance: true,
		Run: func(args []string) error {
			da, err := parseDragArgs(args)
			if err != nil {
				return err
			}
			d.Run(func(c *instance.Client) ([]byte, error) {
				return c.Drag(da.frameID, da.edge, da.delta)
			})
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:             "assign",
		Summary:          "Set the content kind shown in a frame",
		Usage:            "Usage: framedock layout assign --frame <id> --type <n>",
		RequiresInstance: true,
		Run: func(args []string) error {
			aa, err := parseAssignArgs(args)
			if err != nil {
				return err
			}
			d.Run(func(c *instance.Client) ([]byte, error) {
				return c.Assign(aa.frameID, aa.frameType)
			})
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:             "preview",
		Summary:          "Save a PNG of the active layout",
		Usage:            "Usage: framedock layout preview --out file.png [--width px] [--height px]",
		RequiresInstance: true,
		Run: func(args []string) error {
			pa, err := parsePreviewArgs(args)
			if err != nil {
				return err
			}
			d.Run(func(c *instance.Client) ([]byte, error) {
				data, err := c.Preview(pa.width, pa.height)
				if err != nil {
					return nil, err
				}
				if err := os.WriteFile(pa.out, data, 0644); err != nil {
					return nil, fmt.Errorf("write %s: %w", pa.out, err)
				}
				return json.Marshal(map[string]any{"path": pa.out, "bytes": len(data)})
			})
			return nil
		},
	})
}

func parseSelectArgs(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("select takes exactly one layout index")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid layout index %q", args[0])
	}
	return index, nil
}

type dragArgs struct {
	frameID string
	edge    geom.Edge
	delta   float64
}

func parseDragArgs(args []string) (dragArgs, error) {
	fs := newFlagSet("drag")
	frameID := fs.String("frame", "", "frame id")
	edgeName := fs.String("edge", "", "edge to move: top, bottom, left or right")
	delta := fs.Float64("delta", 0, "normalized distance to move the edge")
	if err := fs.Parse(args); err != nil {
		return dragArgs{}, err
	}
	if *frameID == "" {
		return dragArgs{}, fmt.Errorf("--frame is required")
	}
	edge, err := geom.ParseEdge(*edgeName)
	if err != nil {
		return dragArgs{}, err
	}
	return dragArgs{frameID: *frameID, edge: edge, delta: *delta}, nil
}

type assignArgs struct {
	frameID   string
	frameType int
}

func parseAssignArgs(args []string) (assignArgs, error) {
	fs := newFlagSet("assign")
	frameID := fs.String("frame", "", "frame id")
	frameType := fs.Int("type", -1, "content kind index")
	if err := fs.Parse(args); err != nil {
		return assignArgs{}, err
	}
	if *frameID == "" {
		return assignArgs{}, fmt.Errorf("--frame is required")
	}
	if *frameType < 0 {
		return assignArgs{}, fmt.Errorf("--type is required")
	}
	return assignArgs{frameID: *frameID, frameType: *frameType}, nil
}

type previewArgs struct {
	out    string
	width  int
	height int
}

func parsePreviewArgs(args []string) (previewArgs, error) {
	fs := newFlagSet("preview")
	out := fs.StringP("out", "o", "", "PNG file to write")
	width := fs.Int("width", 0, "image width in pixels (default from the instance)")
	height := fs.Int("height", 0, "image height in pixels (default from the instance)")
	if err := fs.Parse(args); err != nil {
		return previewArgs{}, err
	}
	if *out == "" {
		return previewArgs{}, fmt.Errorf("--out is required")
	}
	return previewArgs{out: *out, width: *width, height: *height}, nil
}
