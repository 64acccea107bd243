package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"todo/internal/task"
)

func TestKeySource_UsesClock(t *testing.T) {
	ks := task.NewKeySourceWithClock(fixedClock(1700000000000))
	assert.Equal(t, task.Key(1700000000000), ks.Next(task.State{}))
}

func TestKeySource_UniqueWhenClockStalls(t *testing.T) {
	ks := task.NewKeySourceWithClock(fixedClock(100))
	seen := map[task.Key]bool{}
	for i := 0; i < 50; i++ {
		k := ks.Next(task.State{})
		assert.False(t, seen[k], "key %d issued twice", k)
		seen[k] = true
	}
}

func TestKeySource_UniqueWhenClockGoesBackwards(t *testing.T) {
	now := time.UnixMilli(5000)
	ks := task.NewKeySourceWithClock(func() time.Time { return now })

	first := ks.Next(task.State{})
	now = time.UnixMilli(10)
	second := ks.Next(task.State{})

	assert.Greater(t, second, first)
}

func TestKeySource_SkipsPastExistingKeys(t *testing.T) {
	ks := task.NewKeySourceWithClock(fixedClock(1))
	s := task.State{Completed: []task.Task{{Title: "old", Key: 900}}}
	assert.Equal(t, task.Key(901), ks.Next(s))
}

func TestKeySource_NeverReusesDeletedKey(t *testing.T) {
	ks := task.NewKeySourceWithClock(fixedClock(42))
	s, _, _ := task.Add(task.State{}, ks.Next(task.State{}), "x", "")
	deleted := s.Pending[0].Key
	s = task.DeletePending(s, task.NewKeySet(deleted))

	assert.NotEqual(t, deleted, ks.Next(s))
}
