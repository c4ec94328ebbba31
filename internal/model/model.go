// Package model defines the core data structures for the roadmap chart.
package model

import "fmt"

// SlackKey is the color key marking a slack/buffer entry.
const SlackKey = -1

// YearCount is the number of years covered by the timeline.
const YearCount = 4

// Task represents a single timeline entry.
type Task struct {
	YearIndex int     `yaml:"year"`
	Start     float64 `yaml:"start"`
	Duration  float64 `yaml:"duration"`
	Label     string  `yaml:"label"`
	ColorKey  int     `yaml:"color_key"`
}

// End returns the position where the task's bar stops.
func (t Task) End() float64 {
	return t.Start + t.Duration
}

// IsSlack reports whether the task is contingency time rather than work.
func (t Task) IsSlack() bool {
	return t.ColorKey == SlackKey
}

// Palette holds one color per year plus the neutral slack shade.
// Colors are hex strings such as "#D5C7BC".
type Palette struct {
	Years [YearCount]string `yaml:"years"`
	Slack string            `yaml:"slack"`
}

// Resolve returns the effective color for a color key.
func (p Palette) Resolve(colorKey int) (string, error) {
	if colorKey == SlackKey {
		return p.Slack, nil
	}
	if colorKey < 0 || colorKey >= len(p.Years) {
		return "", fmt.Errorf("color key %d outside palette of %d colors", colorKey, len(p.Years))
	}
	return p.Years[colorKey], nil
}

// Bar is a task placed on a chart row.
type Bar struct {
	Row   int
	Start float64
	End   float64
	Color string
	Label string
	Bold  bool
	Slack bool
}

// Tick is a labelled position on the horizontal axis. Multi-line labels
// separate their lines with "\n".
type Tick struct {
	Value float64
	Label string
}

// LegendEntry is one swatch of the chart legend.
type LegendEntry struct {
	Label string
	Color string
}

// Layout is a fully resolved chart, independent of any output surface.
type Layout struct {
	Title  string
	Bars   []Bar // Bars[i].Row == i
	Ticks  []Tick
	Legend []LegendEntry
}

// Rows returns the number of chart rows.
func (l Layout) Rows() int {
	return len(l.Bars)
}
