package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/task"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func sample() task.State {
	return task.State{
		Pending: []task.Task{
			{Title: "a", Key: 1},
			{Title: "b", Key: 2},
			{Title: "c", Key: 3},
		},
		Completed: []task.Task{
			{Title: "d", Key: 4},
		},
	}
}

func assertDisjoint(t *testing.T, s task.State) {
	t.Helper()
	require.NoError(t, task.Validate(s))
}

func TestAdd_BuyMilkScenario(t *testing.T) {
	var s task.State
	ks := task.NewKeySourceWithClock(fixedClock(1000))

	k1 := ks.Next(s)
	s, added, err := task.Add(s, k1, "Buy milk", "")
	require.NoError(t, err)
	assert.Equal(t, task.Task{Title: "Buy milk", Key: k1}, added)
	assert.Equal(t, []task.Task{{Title: "Buy milk", Key: k1}}, s.Pending)
	assert.Empty(t, s.Completed)

	s = task.Complete(s, task.NewKeySet(k1))
	assert.Empty(t, s.Pending)
	assert.Equal(t, []task.Task{{Title: "Buy milk", Key: k1}}, s.Completed)

	s = task.Revoke(s, task.NewKeySet(k1))
	assert.Equal(t, []task.Task{{Title: "Buy milk", Key: k1}}, s.Pending)
	assert.Empty(t, s.Completed)
}

func TestAdd_EmptyTitleRejected(t *testing.T) {
	s := sample()
	for _, title := range []string{"", "   ", "\t\n"} {
		next, _, err := task.Add(s, 99, title, "remark")
		assert.ErrorIs(t, err, task.ErrTitleRequired)
		assert.Equal(t, s, next)
	}
}

func TestAdd_TrimsTitleKeepsRemark(t *testing.T) {
	s, added, err := task.Add(task.State{}, 7, "  Call mom  ", " evening ")
	require.NoError(t, err)
	assert.Equal(t, "Call mom", added.Title)
	assert.Equal(t, " evening ", added.Remark)
	assert.Len(t, s.Pending, 1)
}

func TestAdd_DuplicateKeyRejected(t *testing.T) {
	_, _, err := task.Add(sample(), 4, "dup", "")
	assert.ErrorIs(t, err, task.ErrDuplicateKey)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	s := sample()
	before := s.Clone()
	_, _, err := task.Add(s, 10, "new", "")
	require.NoError(t, err)
	assert.Equal(t, before, s)
}

func TestComplete_PreservesPendingOrder(t *testing.T) {
	s := task.Complete(sample(), task.NewKeySet(3, 1))
	assert.Equal(t, []task.Key{2}, task.Keys(s.Pending))
	assert.Equal(t, []task.Key{4, 1, 3}, task.Keys(s.Completed))
	assertDisjoint(t, s)
}

func TestComplete_IgnoresUnknownKeys(t *testing.T) {
	s := task.Complete(sample(), task.NewKeySet(4, 42))
	assert.Equal(t, sample(), s)
}

func TestRevoke_AppendsToPending(t *testing.T) {
	s := task.Revoke(sample(), task.NewKeySet(4, 1))
	assert.Equal(t, []task.Key{1, 2, 3, 4}, task.Keys(s.Pending))
	assert.Empty(t, s.Completed)
	assertDisjoint(t, s)
}

func TestCompleteThenRevoke_RestoresPartition(t *testing.T) {
	orig := sample()
	keys := task.NewKeySet(2)

	s := task.Revoke(task.Complete(orig, keys), keys)

	assert.ElementsMatch(t, task.Keys(orig.Pending), task.Keys(s.Pending))
	assert.Equal(t, task.Keys(orig.Completed), task.Keys(s.Completed))
}

func TestCompleteThenRevoke_TailRestoresOrder(t *testing.T) {
	orig := sample()
	keys := task.NewKeySet(3)

	s := task.Revoke(task.Complete(orig, keys), keys)
	assert.Equal(t, orig, s)
}

func TestDelete_IsPermanent(t *testing.T) {
	s := task.DeletePending(sample(), task.NewKeySet(2))
	assert.Equal(t, []task.Key{1, 3}, task.Keys(s.Pending))

	after := task.Complete(s, task.NewKeySet(2))
	assert.Equal(t, s, after)
	after = task.Revoke(s, task.NewKeySet(2))
	assert.Equal(t, s, after)
	after = task.DeleteCompleted(s, task.NewKeySet(2))
	assert.Equal(t, s, after)
	_, _, ok := task.Find(s, 2)
	assert.False(t, ok)
}

func TestDeleteCompleted(t *testing.T) {
	s := task.DeleteCompleted(sample(), task.NewKeySet(4, 1))
	assert.Equal(t, []task.Key{1, 2, 3}, task.Keys(s.Pending))
	assert.Empty(t, s.Completed)
}

func TestTransitions_KeepDisjointness(t *testing.T) {
	ks := task.NewKeySourceWithClock(fixedClock(500))
	s := task.State{}
	var err error
	for _, title := range []string{"one", "two", "three", "four"} {
		s, _, err = task.Add(s, ks.Next(s), title, "")
		require.NoError(t, err)
		assertDisjoint(t, s)
	}
	keys := task.Keys(s.Pending)

	steps := []func(task.State) task.State{
		func(s task.State) task.State { return task.Complete(s, task.NewKeySet(keys[0], keys[2])) },
		func(s task.State) task.State { return task.Revoke(s, task.NewKeySet(keys[2])) },
		func(s task.State) task.State { return task.Complete(s, task.NewKeySet(keys...)) },
		func(s task.State) task.State { return task.DeleteCompleted(s, task.NewKeySet(keys[1])) },
		func(s task.State) task.State { return task.Revoke(s, task.NewKeySet(keys...)) },
		func(s task.State) task.State { return task.DeletePending(s, task.NewKeySet(keys[3])) },
	}
	for _, step := range steps {
		s = step(s)
		assertDisjoint(t, s)
	}
	assert.Equal(t, 2, s.Len())
}

func TestValidate_DetectsDuplicates(t *testing.T) {
	s := sample()
	s.Completed = append(s.Completed, task.Task{Title: "dup", Key: 1})
	assert.ErrorIs(t, task.Validate(s), task.ErrDuplicateKey)
}

func TestFind(t *testing.T) {
	got, done, ok := task.Find(sample(), 4)
	require.True(t, ok)
	assert.True(t, done)
	assert.Equal(t, "d", got.Title)
}
