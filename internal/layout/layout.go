// Package layout turns the task table into a resolved chart layout: rows,
// colors, label weights, axis ticks and legend entries.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bryan-cox/roadmap/internal/model"
)

// ErrInvalidTask is returned when the task table contains an entry that
// cannot be drawn.
var ErrInvalidTask = errors.New("invalid task")

// SlackLegendLabel is the legend text for the slack swatch.
const SlackLegendLabel = "Slack / Buffer"

// MaxEnd is the furthest a bar may extend: the last tick plus label margin.
const MaxEnd = 17

// Validate checks a single task against the drawable range.
func Validate(t model.Task) error {
	switch {
	case strings.TrimSpace(t.Label) == "":
		return fmt.Errorf("%w: empty label", ErrInvalidTask)
	case t.ColorKey != model.SlackKey && (t.ColorKey < 0 || t.ColorKey >= model.YearCount):
		return fmt.Errorf("%w: %q has color key %d, want -1..%d", ErrInvalidTask, t.Label, t.ColorKey, model.YearCount-1)
	case t.YearIndex < 0 || t.YearIndex >= model.YearCount:
		return fmt.Errorf("%w: %q has year index %d", ErrInvalidTask, t.Label, t.YearIndex)
	case t.Duration <= 0:
		return fmt.Errorf("%w: %q has non-positive duration %g", ErrInvalidTask, t.Label, t.Duration)
	case t.Start < 0:
		return fmt.Errorf("%w: %q starts before the timeline at %g", ErrInvalidTask, t.Label, t.Start)
	case t.End() > MaxEnd:
		return fmt.Errorf("%w: %q ends at %g past %d", ErrInvalidTask, t.Label, t.End(), MaxEnd)
	}
	return nil
}

// Build resolves the task table into a chart layout. Tasks are placed in
// reverse authored order, so the last task lands on row 0 at the bottom of
// the chart and the first task on the top row.
func Build(tasks []model.Task, palette model.Palette, title string) (model.Layout, error) {
	bars := make([]model.Bar, 0, len(tasks))
	for i := range tasks {
		task := tasks[len(tasks)-1-i]
		if err := Validate(task); err != nil {
			return model.Layout{}, err
		}
		color, err := palette.Resolve(task.ColorKey)
		if err != nil {
			return model.Layout{}, fmt.Errorf("%w: %v", ErrInvalidTask, err)
		}
		bars = append(bars, model.Bar{
			Row:   i,
			Start: task.Start,
			End:   task.End(),
			Color: color,
			Label: task.Label,
			Bold:  !task.IsSlack(),
			Slack: task.IsSlack(),
		})
	}

	return model.Layout{
		Title:  title,
		Bars:   bars,
		Ticks:  Ticks(),
		Legend: Legend(palette),
	}, nil
}

// Ticks returns the 17 quarter ticks from 0 to 16. The first quarter of each
// year carries the year on a second line and the final tick reads "End".
func Ticks() []model.Tick {
	ticks := make([]model.Tick, 0, model.YearCount*4+1)
	for year := 0; year < model.YearCount; year++ {
		for q := 0; q < 4; q++ {
			label := fmt.Sprintf("Q%d", q+1)
			if q == 0 {
				label = fmt.Sprintf("Q1\nY%d", year+1)
			}
			ticks = append(ticks, model.Tick{Value: float64(year*4 + q), Label: label})
		}
	}
	return append(ticks, model.Tick{Value: float64(model.YearCount * 4), Label: "End"})
}

// Legend returns one entry per year followed by the slack entry.
func Legend(palette model.Palette) []model.LegendEntry {
	entries := make([]model.LegendEntry, 0, len(palette.Years)+1)
	for i, c := range palette.Years {
		entries = append(entries, model.LegendEntry{Label: fmt.Sprintf("Year %d", i+1), Color: c})
	}
	return append(entries, model.LegendEntry{Label: SlackLegendLabel, Color: palette.Slack})
}

// Overlaps returns the rows whose horizontal extent intersects the bar on
// the given row. Touching endpoints do not count.
func Overlaps(l model.Layout, row int) []int {
	if row < 0 || row >= len(l.Bars) {
		return nil
	}
	target := l.Bars[row]
	var rows []int
	for _, b := range l.Bars {
		if b.Row == row {
			continue
		}
		if b.Start < target.End && target.Start < b.End {
			rows = append(rows, b.Row)
		}
	}
	return rows
}
