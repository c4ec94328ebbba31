package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bryan-cox/roadmap/internal/model"
)

type swatch struct {
	label string
	fill  color.Color
}

// legend is a single row of swatches centred under the plot area. Entries
// beyond legendColumns wrap onto further rows.
type legend struct {
	entries  []swatch
	style    draw.TextStyle
	frame    draw.LineStyle
	swatchW  vg.Length
	swatchH  vg.Length
	gap      vg.Length
	colGap   vg.Length
	rowH     vg.Length
	padding  vg.Length
	columns  int
	topInset vg.Length
}

func newLegend(entries []model.LegendEntry) (*legend, error) {
	l := &legend{
		style:    textStyle(labelSize),
		frame:    draw.LineStyle{Color: color.Gray{Y: 0xcc}, Width: vg.Points(0.8)},
		swatchW:  vg.Points(20),
		swatchH:  vg.Points(10),
		gap:      vg.Points(6),
		colGap:   vg.Points(16),
		rowH:     vg.Points(18),
		padding:  vg.Points(6),
		columns:  legendColumns,
		topInset: vg.Points(10),
	}
	l.style.XAlign = draw.XLeft
	l.style.YAlign = draw.YCenter
	for _, e := range entries {
		fill, err := parseColor(e.Color)
		if err != nil {
			return nil, err
		}
		l.entries = append(l.entries, swatch{label: e.Label, fill: fill})
	}
	return l, nil
}

func (l *legend) rows() int {
	if len(l.entries) == 0 {
		return 0
	}
	return (len(l.entries) + l.columns - 1) / l.columns
}

// height is the strip reserved below the plot.
func (l *legend) height() vg.Length {
	if l.rows() == 0 {
		return 0
	}
	return l.topInset + 2*l.padding + vg.Length(l.rows())*l.rowH + l.padding
}

func (l *legend) entryWidth(s swatch) vg.Length {
	return l.swatchW + l.gap + l.style.Width(s.label)
}

func (l *legend) rowWidth(row []swatch) vg.Length {
	var w vg.Length
	for i, s := range row {
		if i > 0 {
			w += l.colGap
		}
		w += l.entryWidth(s)
	}
	return w
}

func (l *legend) draw(c draw.Canvas) {
	if l.rows() == 0 {
		return
	}

	var widest vg.Length
	for r := 0; r < l.rows(); r++ {
		widest = max(widest, l.rowWidth(l.row(r)))
	}

	centre := (c.Min.X + c.Max.X) / 2
	top := c.Max.Y - l.topInset
	boxW := widest + 2*l.padding
	boxH := vg.Length(l.rows())*l.rowH + 2*l.padding
	x0, x1 := centre-boxW/2, centre+boxW/2
	y0, y1 := top-boxH, top
	c.FillPolygon(color.White, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	c.StrokeLines(l.frame, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}})

	for r := 0; r < l.rows(); r++ {
		row := l.row(r)
		x := centre - l.rowWidth(row)/2
		y := top - l.padding - vg.Length(r)*l.rowH - l.rowH/2
		for _, s := range row {
			sx0, sx1 := x, x+l.swatchW
			sy0, sy1 := y-l.swatchH/2, y+l.swatchH/2
			c.FillPolygon(s.fill, []vg.Point{{X: sx0, Y: sy0}, {X: sx1, Y: sy0}, {X: sx1, Y: sy1}, {X: sx0, Y: sy1}})
			c.FillText(l.style, vg.Point{X: sx1 + l.gap, Y: y}, s.label)
			x += l.entryWidth(s) + l.colGap
		}
	}
}

func (l *legend) row(r int) []swatch {
	lo := r * l.columns
	hi := min(lo+l.columns, len(l.entries))
	return l.entries[lo:hi]
}
