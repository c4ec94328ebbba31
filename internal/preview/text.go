// Package preview prints a roadmap layout as a Gantt chart in the terminal.
package preview

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/bryan-cox/roadmap/internal/layout"
	"github.com/bryan-cox/roadmap/internal/model"
)

// ColorMode selects whether the preview emits ANSI colors.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("unknown color mode %q, use auto, always or never", s)
}

// MinCellWidth is the narrowest quarter that still fits a tick label.
const MinCellWidth = 3

// Options controls the terminal rendering.
type Options struct {
	CellWidth int // columns per quarter
	Color     ColorMode
}

// Glyphs used when no color is available.
const (
	glyphWork  = '█'
	glyphSlack = '░'
	glyphGrid  = '┊'
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellGrid
	cellBar
	cellLabelOnBar
	cellLabel
)

type cell struct {
	ch   rune
	kind cellKind
}

// Render writes the layout to w, top row first, followed by the quarter
// ruler and the legend.
func Render(w io.Writer, l model.Layout, opts Options) error {
	if opts.CellWidth == 0 {
		opts.CellWidth = 4
	}
	if opts.CellWidth < MinCellWidth {
		return fmt.Errorf("cell width %d is below the minimum of %d", opts.CellWidth, MinCellWidth)
	}
	if opts.Color == "" {
		opts.Color = ColorAuto
	}

	useColor := opts.Color == ColorAlways || (opts.Color == ColorAuto && IsTerminal(w))
	r := lipgloss.NewRenderer(w)
	if useColor {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	p := painter{r: r, color: useColor, cw: opts.CellWidth, span: span(l)}

	var b strings.Builder
	b.WriteString(r.NewStyle().Bold(true).Render(l.Title))
	b.WriteString("\n\n")
	for row := l.Rows() - 1; row >= 0; row-- {
		b.WriteString(p.bar(l.Bars[row], l.Ticks))
		b.WriteString("\n")
	}
	for _, line := range p.ruler(l.Ticks) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.legend(l.Legend))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("could not write preview: %w", err)
	}
	return nil
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// span is the last tick position, or the furthest bar end without ticks.
func span(l model.Layout) float64 {
	var s float64
	for _, t := range l.Ticks {
		s = math.Max(s, t.Value)
	}
	for _, b := range l.Bars {
		s = math.Max(s, b.End)
	}
	return s
}

type painter struct {
	r     *lipgloss.Renderer
	color bool
	cw    int
	span  float64
}

func (p painter) col(v float64) int {
	return int(math.Round(v * float64(p.cw)))
}

func (p painter) bar(b model.Bar, ticks []model.Tick) string {
	cells := make([]cell, p.col(p.span)+1)
	for i := range cells {
		cells[i] = cell{ch: ' ', kind: cellEmpty}
	}
	for _, t := range ticks {
		if c := p.col(t.Value); c >= 0 && c < len(cells) {
			cells[c] = cell{ch: glyphGrid, kind: cellGrid}
		}
	}

	c0, c1 := p.col(b.Start), p.col(b.End)
	if c1 <= c0 {
		c1 = c0 + 1
	}
	fill := glyphWork
	if b.Slack {
		fill = glyphSlack
	}
	if p.color {
		fill = ' '
	}
	for c := c0; c < c1 && c < len(cells); c++ {
		cells[c] = cell{ch: fill, kind: cellBar}
	}

	for i, ch := range []rune(b.Label) {
		c := c0 + i
		for c >= len(cells) {
			cells = append(cells, cell{ch: ' ', kind: cellEmpty})
		}
		kind := cellLabel
		if c < c1 {
			kind = cellLabelOnBar
		}
		cells[c] = cell{ch: ch, kind: kind}
	}

	barStyle := p.r.NewStyle().Background(lipgloss.Color(b.Color))
	styles := map[cellKind]lipgloss.Style{
		cellEmpty:      p.r.NewStyle(),
		cellGrid:       p.r.NewStyle().Faint(true),
		cellBar:        barStyle,
		cellLabelOnBar: barStyle.Foreground(lipgloss.Color("#000000")).Bold(b.Bold),
		cellLabel:      p.r.NewStyle().Bold(b.Bold),
	}
	return strings.TrimRight(p.paint(cells, styles), " ")
}

// paint renders runs of same-kind cells with one style call each.
func (p painter) paint(cells []cell, styles map[cellKind]lipgloss.Style) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run []rune
		for j < len(cells) && cells[j].kind == cells[i].kind {
			run = append(run, cells[j].ch)
			j++
		}
		b.WriteString(styles[cells[i].kind].Render(string(run)))
		i = j
	}
	return b.String()
}

// ruler lays out the tick labels, one output line per label line.
func (p painter) ruler(ticks []model.Tick) []string {
	var lines [][]rune
	for _, t := range ticks {
		c := p.col(t.Value)
		for n, part := range strings.Split(t.Label, "\n") {
			for len(lines) <= n {
				lines = append(lines, nil)
			}
			for len(lines[n]) < c {
				lines[n] = append(lines[n], ' ')
			}
			lines[n] = append(lines[n][:c], []rune(part)...)
		}
	}

	dim := p.r.NewStyle().Faint(true)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = dim.Render(strings.TrimRight(string(line), " "))
	}
	return out
}

func (p painter) legend(entries []model.LegendEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		glyph := string([]rune{glyphWork, glyphWork})
		if e.Label == layout.SlackLegendLabel {
			glyph = string([]rune{glyphSlack, glyphSlack})
		}
		swatch := p.r.NewStyle().Foreground(lipgloss.Color(e.Color)).Render(glyph)
		parts = append(parts, swatch+" "+e.Label)
	}
	return strings.Join(parts, "   ")
}
