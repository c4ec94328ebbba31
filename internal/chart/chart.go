// Package chart draws a resolved roadmap layout as a Gantt chart image
// using gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bryan-cox/roadmap/internal/model"
)

// Format is an output image encoding.
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrUnsupportedFormat is returned for an output format the chart cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatPNG, FormatSVG}
}

// ParseFormat returns the format named by s, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Chart geometry, in the plot's own units and in points.
const (
	barHeight     = 0.6
	labelInset    = 0.1
	labelSize     = 10
	titleSize     = 16
	titlePadding  = 20
	gridAlpha     = 76 // 0.3 of 255
	legendColumns = 5
)

// Options controls the output surface.
type Options struct {
	Width  vg.Length
	Height vg.Length
	Format Format
}

// DefaultOptions is a 14 by 8 inch PNG.
func DefaultOptions() Options {
	return Options{Width: 14 * vg.Inch, Height: 8 * vg.Inch, Format: FormatPNG}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	return o
}

// Render draws the layout and writes the encoded image to w.
func Render(w io.Writer, l model.Layout, opts Options) error {
	opts = opts.withDefaults()
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return err
	}

	p, err := newPlot(l)
	if err != nil {
		return err
	}
	legend, err := newLegend(l.Legend)
	if err != nil {
		return err
	}

	cw, err := draw.NewFormattedCanvas(opts.Width, opts.Height, string(opts.Format))
	if err != nil {
		return fmt.Errorf("could not create %s canvas: %w", opts.Format, err)
	}
	dc := draw.New(cw)

	// The legend takes a strip along the bottom; the plot fills the rest.
	strip := legend.height()
	p.Draw(draw.Crop(dc, 0, 0, strip, 0))
	legend.draw(draw.Crop(dc, 0, 0, 0, -(dc.Max.Y-dc.Min.Y-strip)))

	if _, err := cw.WriteTo(w); err != nil {
		return fmt.Errorf("could not write %s chart: %w", opts.Format, err)
	}
	return nil
}

func newPlot(l model.Layout) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = l.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.Title.Padding = vg.Points(titlePadding)

	bars, err := newBars(l.Bars)
	if err != nil {
		return nil, err
	}

	p.Add(newGrid(), bars)

	ticks := make(plot.ConstantTicks, len(l.Ticks))
	for i, t := range l.Ticks {
		ticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	p.X.Tick.Marker = ticks
	if len(l.Ticks) > 0 {
		p.X.Min = l.Ticks[0].Value - 0.4
		p.X.Max = l.Ticks[len(l.Ticks)-1].Value + 0.4
	}
	p.Y.Min = -0.6
	p.Y.Max = float64(l.Rows()) - 0.4
	p.HideY()

	return p, nil
}

// newGrid draws a faint dashed line at every x tick and nothing along y.
func newGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Color = color.NRGBA{A: gridAlpha}
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Color = nil
	return grid
}

func parseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("could not parse color %q: %w", hex, err)
	}
	return c, nil
}

func textStyle(size float64) draw.TextStyle {
	return draw.TextStyle{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(size)),
		Handler: plot.DefaultTextHandler,
	}
}
