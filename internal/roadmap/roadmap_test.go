package roadmap

import (
	"testing"

	"github.com/bryan-cox/roadmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks_Table(t *testing.T) {
	tasks := Tasks()
	require.Len(t, tasks, 13)

	want := []struct {
		year      int
		starts    []float64
		durations []float64
	}{
		{0, []float64{0, 1.5, 3}, []float64{2, 2, 1}},
		{1, []float64{4, 5.5, 7.5}, []float64{2, 2.5, 0.5}},
		{2, []float64{8, 9, 10, 11}, []float64{2, 2, 2, 1}},
		{3, []float64{12, 13, 12}, []float64{1.5, 2, 4}},
	}

	i := 0
	for _, year := range want {
		for j := range year.starts {
			task := tasks[i]
			assert.Equal(t, year.year, task.YearIndex, task.Label)
			assert.Equal(t, year.starts[j], task.Start, task.Label)
			assert.Equal(t, year.durations[j], task.Duration, task.Label)
			if !task.IsSlack() {
				assert.Equal(t, task.YearIndex, task.ColorKey, "work is colored by its year: %s", task.Label)
			}
			i++
		}
	}
}

func TestTasks_BoundsAndKeys(t *testing.T) {
	for _, task := range Tasks() {
		assert.GreaterOrEqual(t, task.Start, 0.0, task.Label)
		assert.LessOrEqual(t, task.End(), 17.0, task.Label)
		assert.True(t, task.ColorKey == model.SlackKey || (task.ColorKey >= 0 && task.ColorKey < model.YearCount), task.Label)
	}
}

func TestTasks_ReturnsCopy(t *testing.T) {
	first := Tasks()
	first[0].Label = "mutated"
	assert.Equal(t, "Literature Review", Tasks()[0].Label)
}

func TestPalette(t *testing.T) {
	p := Palette()
	assert.Equal(t, [model.YearCount]string{"#D5C7BC", "#A9B388", "#8E9AAF", "#7D8570"}, p.Years)
	assert.Equal(t, "#E5E5E5", p.Slack)
}
