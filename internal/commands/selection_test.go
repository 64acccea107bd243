package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/commands"
	"todo/internal/task"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		positions []int
		ranges    []commands.Range
		keys      []task.Key
	}{
		{"single", []string{"3"}, []int{3}, nil, nil},
		{"several args", []string{"1", "4"}, []int{1, 4}, nil, nil},
		{"comma separated", []string{"1,2, 5"}, []int{1, 2, 5}, nil, nil},
		{"range", []string{"2-4"}, nil, []commands.Range{{From: 2, To: 4}}, nil},
		{"huge range", []string{"1-2000000000"}, nil, []commands.Range{{From: 1, To: 2000000000}}, nil},
		{"key", []string{"#1700000000000"}, nil, nil, []task.Key{1700000000000}},
		{"mixed", []string{"1,#7", "3-3"}, []int{1}, []commands.Range{{From: 3, To: 3}}, []task.Key{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := commands.ParseSelection(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.positions, sel.Positions)
			assert.Equal(t, tt.ranges, sel.Ranges)
			assert.Equal(t, tt.keys, sel.Keys)
		})
	}
}

func TestParseSelection_Errors(t *testing.T) {
	_, err := commands.ParseSelection(nil)
	assert.True(t, errors.Is(err, commands.ErrSelectionRequired))

	_, err = commands.ParseSelection([]string{" , "})
	assert.True(t, errors.Is(err, commands.ErrSelectionRequired))

	for _, ref := range []string{"x", "-1", "1-", "3-2", "#", "#0", "#-5", "#12a", "1.5"} {
		_, err := commands.ParseSelection([]string{ref})
		assert.EqualError(t, err, "invalid task reference: "+ref, ref)
	}
}

func TestSelectionResolve(t *testing.T) {
	tasks := []task.Task{
		{Title: "a", Key: 10},
		{Title: "b", Key: 20},
		{Title: "c", Key: 30},
	}

	sel, err := commands.ParseSelection([]string{"1,3", "#99"})
	require.NoError(t, err)
	keys, err := sel.Resolve(tasks)
	require.NoError(t, err)
	assert.Equal(t, task.NewKeySet(10, 30, 99), keys)

	sel, err = commands.ParseSelection([]string{"2-3"})
	require.NoError(t, err)
	keys, err = sel.Resolve(tasks)
	require.NoError(t, err)
	assert.Equal(t, task.NewKeySet(20, 30), keys)

	sel, err = commands.ParseSelection([]string{"2-4"})
	require.NoError(t, err)
	_, err = sel.Resolve(tasks)
	assert.EqualError(t, err, "task number out of range: 4")

	// Bounds are checked before the range is expanded.
	sel, err = commands.ParseSelection([]string{"1-2000000000"})
	require.NoError(t, err)
	keys, err = sel.Resolve(tasks)
	assert.EqualError(t, err, "task number out of range: 2000000000")
	assert.Nil(t, keys)
}
