package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette_Resolve(t *testing.T) {
	p := Palette{Years: [YearCount]string{"#000001", "#000002", "#000003", "#000004"}, Slack: "#eeeeee"}

	for i := 0; i < YearCount; i++ {
		got, err := p.Resolve(i)
		require.NoError(t, err)
		assert.Equal(t, p.Years[i], got)
	}

	got, err := p.Resolve(SlackKey)
	require.NoError(t, err)
	assert.Equal(t, "#eeeeee", got)

	_, err = p.Resolve(YearCount)
	assert.Error(t, err)
	_, err = p.Resolve(-2)
	assert.Error(t, err)
}

func TestTask_EndAndSlack(t *testing.T) {
	task := Task{Start: 5.5, Duration: 2.5, ColorKey: 1}
	assert.Equal(t, 8.0, task.End())
	assert.False(t, task.IsSlack())

	task.ColorKey = SlackKey
	assert.True(t, task.IsSlack())
}
