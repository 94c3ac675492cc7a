// pattern: Functional Core

package layout

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// areaTolerance is how far the summed frame area may deviate from 1.
const areaTolerance = 1e-6

// Validate checks that the frames tile the canvas: every frame inside
// [0,1]², no thinner than MinSize, no two frames overlapping and the total
// area equal to 1. All problems are reported together.
//
// Drag relies on a valid tiling but does not call Validate.
func Validate(l Layout) error {
	var err error
	if len(l.Content) == 0 {
		return fmt.Errorf("layout %q has no frames", l.Name)
	}

	seen := make(map[string]bool, len(l.Content))
	total := 0.0
	for i, f := range l.Content {
		label := frameLabel(i, f)
		if f.ID == "" {
			err = multierr.Append(err, fmt.Errorf("%s: missing id", label))
		} else if seen[f.ID] {
			err = multierr.Append(err, fmt.Errorf("%s: duplicate id", label))
		}
		seen[f.ID] = true

		r := f.Rect
		for _, v := range []float64{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				err = multierr.Append(err, fmt.Errorf("%s: coordinate %v outside the canvas", label, v))
				break
			}
		}
		if r.Width() < MinSize-areaTolerance || r.Height() < MinSize-areaTolerance {
			err = multierr.Append(err, fmt.Errorf("%s: %.3fx%.3f is smaller than the minimum %.2f", label, r.Width(), r.Height(), MinSize))
		}
		total += r.Area()

		for j := i + 1; j < len(l.Content); j++ {
			if overlap, ok := r.Intersect(l.Content[j].Rect); ok && overlap.Area() > areaTolerance {
				err = multierr.Append(err, fmt.Errorf("%s overlaps %s", label, frameLabel(j, l.Content[j])))
			}
		}
	}

	if math.Abs(total-1) > areaTolerance {
		err = multierr.Append(err, fmt.Errorf("frames cover %.6f of the canvas, want 1", total))
	}
	return err
}

func frameLabel(i int, f Frame) string {
	if len(f.ID) >= 8 {
		return fmt.Sprintf("frame %d (%s)", i, f.ID[:8])
	}
	return fmt.Sprintf("frame %d", i)
}
