package chart

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bryan-cox/roadmap/internal/model"
)

// bar is a resolved model.Bar ready to be drawn.
type bar struct {
	row        float64
	start, end float64
	fill       color.Color
	label      string
	labelStyle draw.TextStyle
}

// bars implements plot.Plotter and plot.DataRanger for a set of horizontal
// Gantt bars with in-bar labels.
type bars struct {
	items []bar
	edge  draw.LineStyle
}

var (
	_ plot.Plotter    = (*bars)(nil)
	_ plot.DataRanger = (*bars)(nil)
)

func newBars(in []model.Bar) (*bars, error) {
	out := &bars{
		items: make([]bar, 0, len(in)),
		edge:  draw.LineStyle{Color: color.White, Width: vg.Points(1)},
	}
	for _, b := range in {
		fill, err := parseColor(b.Color)
		if err != nil {
			return nil, err
		}
		sty := textStyle(labelSize)
		sty.XAlign = draw.XLeft
		sty.YAlign = draw.YCenter
		if b.Bold {
			sty.Font.Weight = xfont.WeightBold
		}
		out.items = append(out.items, bar{
			row:        float64(b.Row),
			start:      b.Start,
			end:        b.End,
			fill:       fill,
			label:      b.Label,
			labelStyle: sty,
		})
	}
	return out, nil
}

// Plot draws every bar first and the labels on top, so a label running past
// its own bar is not hidden by a later one.
func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, it := range b.items {
		x0, x1 := trX(it.start), trX(it.end)
		y0, y1 := trY(it.row-barHeight/2), trY(it.row+barHeight/2)
		rect := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(it.fill, c.ClipPolygonXY(rect))
		outline := append(rect, rect[0])
		c.StrokeLines(b.edge, c.ClipLinesXY(outline)...)
	}

	for _, it := range b.items {
		pt := vg.Point{X: trX(it.start + labelInset), Y: trY(it.row)}
		if !c.Contains(pt) {
			continue
		}
		c.FillText(it.labelStyle, pt, it.label)
	}
}

// DataRange covers every bar extent and half a row above and below.
func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.items) == 0 {
		return 0, 0, 0, 0
	}
	xmin, xmax = b.items[0].start, b.items[0].end
	ymin, ymax = b.items[0].row, b.items[0].row
	for _, it := range b.items[1:] {
		xmin = min(xmin, it.start)
		xmax = max(xmax, it.end)
		ymin = min(ymin, it.row)
		ymax = max(ymax, it.row)
	}
	return xmin, xmax, ymin - 0.5, ymax + 0.5
}
