// Package roadmap holds the embedded research timeline: the task table,
// the year palette and the chart title.
package roadmap

import "github.com/bryan-cox/roadmap/internal/model"

// Title is the chart heading.
const Title = "FL-IDS Research Timeline: 4-Year Roadmap"

// Quarters is the number of quarter-units spanned by the timeline.
const Quarters = 16

// Palette returns the neutral year colors: taupe, sage, slate, stone, and a
// light grey for slack.
func Palette() model.Palette {
	return model.Palette{
		Years: [model.YearCount]string{"#D5C7BC", "#A9B388", "#8E9AAF", "#7D8570"},
		Slack: "#E5E5E5",
	}
}

// tasks is authored in chronological order. The chart draws the first entry
// on the top row and the last entry at the bottom.
var tasks = []model.Task{
	// Year 1
	{YearIndex: 0, Start: 0, Duration: 2, Label: "Literature Review", ColorKey: 0},
	{YearIndex: 0, Start: 1.5, Duration: 2, Label: "Baseline FL-IDS Implementation", ColorKey: 0},
	{YearIndex: 0, Start: 3, Duration: 1, Label: "Slack / Buffer", ColorKey: model.SlackKey},

	// Year 2
	{YearIndex: 1, Start: 4, Duration: 2, Label: "Robustness Algorithm Design", ColorKey: 1},
	{YearIndex: 1, Start: 5.5, Duration: 2.5, Label: "Adversarial Attack Simulations", ColorKey: 1},
	{YearIndex: 1, Start: 7.5, Duration: 0.5, Label: "Slack / Buffer", ColorKey: model.SlackKey},

	// Year 3
	{YearIndex: 2, Start: 8, Duration: 2, Label: "Privacy-Preserving Integration", ColorKey: 2},
	{YearIndex: 2, Start: 9, Duration: 2, Label: "Lightweight Model Compression", ColorKey: 2},
	{YearIndex: 2, Start: 10, Duration: 2, Label: "Heterogeneous Env. Testing", ColorKey: 2},
	{YearIndex: 2, Start: 11, Duration: 1, Label: "Potential Drop-off / Slack", ColorKey: model.SlackKey},

	// Year 4. Writing runs alongside evaluation and analysis.
	{YearIndex: 3, Start: 12, Duration: 1.5, Label: "Comprehensive Evaluation", ColorKey: 3},
	{YearIndex: 3, Start: 13, Duration: 2, Label: "Trade-off Analysis", ColorKey: 3},
	{YearIndex: 3, Start: 12, Duration: 4, Label: "Thesis Writing & Dissemination", ColorKey: 3},
}

// Tasks returns a copy of the task table in authored order.
func Tasks() []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}
