// pattern: Imperative Shell

// Package export renders layouts outside the terminal: PNG previews for the
// web API and the export command, and plain-text sketches for show.
package export

import (
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	catppuccin "github.com/catppuccin/go"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"framedock/internal/content"
	"framedock/internal/geom"
	"framedock/internal/layout"
)

// Limits on the requested image size.
const (
	MinSize = 16
	MaxSize = 8192
)

// frameGap is the spacing in pixels left between neighbouring frames.
const frameGap = 3.0

// Options controls PNG rendering.
type Options struct {
	Width    int
	Height   int
	Flavor   catppuccin.Flavor
	Registry *content.Registry
}

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func parsedFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

// Image draws l onto a Width x Height image.
func Image(l layout.Layout, opts Options) (image.Image, error) {
	dc, err := render(l, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders l and encodes it as PNG.
func WritePNG(w io.Writer, l layout.Layout, opts Options) error {
	dc, err := render(l, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func render(l layout.Layout, opts Options) (*gg.Context, error) {
	if opts.Width < MinSize || opts.Height < MinSize || opts.Width > MaxSize || opts.Height > MaxSize {
		return nil, fmt.Errorf("image size %dx%d outside %d..%d", opts.Width, opts.Height, MinSize, MaxSize)
	}
	if opts.Flavor == nil {
		opts.Flavor = catppuccin.Frappe
	}
	if opts.Registry == nil {
		opts.Registry = content.Default()
	}

	ttf, err := parsedFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor(opts.Flavor.Crust().Hex)
	dc.Clear()

	viewport := geom.FromRanges(0, float64(opts.Width), 0, float64(opts.Height))
	for _, f := range l.Content {
		r := geom.ToAbsolute(f.Rect, viewport)
		drawFrame(dc, ttf, f, r, opts)
	}
	return dc, nil
}

func drawFrame(dc *gg.Context, ttf *truetype.Font, f layout.Frame, r geom.Rect, opts Options) {
	x, y := r.Min.X+frameGap/2, r.Min.Y+frameGap/2
	w, h := r.Width()-frameGap, r.Height()-frameGap
	if w <= 0 || h <= 0 {
		return
	}

	accent := opts.Flavor.Overlay0().Hex
	label := "Unassigned"
	if kind, ok := opts.Registry.Info(f.FrameType); ok {
		label = kind.Name
		if cat, ok := opts.Registry.Category(f.FrameType); ok && cat.Color != nil {
			accent = cat.Color(opts.Flavor).Hex
		}
	} else if f.Assigned() {
		label = fmt.Sprintf("Unknown %d", f.FrameType)
	}

	radius := math.Min(8, math.Min(w, h)/4)
	dc.DrawRoundedRectangle(x, y, w, h, radius)
	dc.SetHexColor(opts.Flavor.Base().Hex)
	dc.FillPreserve()
	dc.SetLineWidth(2)
	dc.SetHexColor(accent)
	dc.Stroke()

	size := math.Max(6, math.Min(18, math.Min(w/float64(len(label)+2)*1.6, h/4)))
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer func() { _ = face.Close() }()
	dc.SetFontFace(face)

	dc.SetHexColor(opts.Flavor.Text().Hex)
	dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)

	if h > size*3 {
		dc.SetHexColor(opts.Flavor.Subtext0().Hex)
		dims := fmt.Sprintf("%.0f%% x %.0f%%", f.Rect.Width()*100, f.Rect.Height()*100)
		dc.DrawStringAnchored(dims, x+w/2, y+h/2+size*1.4, 0.5, 0.5)
	}
}
