// Package task holds the two-list task state and its transitions.
//
// Every transition is a pure function: it never mutates the State it is given
// and always returns freshly allocated slices.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// Key uniquely identifies a task for its whole lifetime.
type Key int64

// Task is a single to-do item.
type Task struct {
	Title  string `json:"title" yaml:"title"`
	Key    Key    `json:"key" yaml:"key"`
	Remark string `json:"remark,omitempty" yaml:"remark,omitempty"`
}

// State is the aggregate of all tasks.
// Pending and Completed are disjoint by Key.
type State struct {
	Pending   []Task `json:"todo" yaml:"todo"`
	Completed []Task `json:"done" yaml:"done"`
}

// ErrTitleRequired is returned by Add when the trimmed title is empty.
var ErrTitleRequired = errors.New("title required")

// ErrDuplicateKey is returned when a key is already in use.
var ErrDuplicateKey = errors.New("duplicate task key")

// KeySet is a set of task keys, typically a consumed selection.
type KeySet map[Key]struct{}

// NewKeySet builds a KeySet from keys.
func NewKeySet(keys ...Key) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = struct{}{}
	}
	return ks
}

// Has reports whether k is in the set.
func (ks KeySet) Has(k Key) bool {
	_, ok := ks[k]
	return ok
}

// Add appends a new task to Pending. The title is trimmed; the remark is kept as given.
func Add(s State, key Key, title, remark string) (State, Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return s, Task{}, ErrTitleRequired
	}
	if _, _, ok := Find(s, key); ok {
		return s, Task{}, fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}

	t := Task{Title: title, Key: key, Remark: remark}
	next := State{
		Pending:   append(clone(s.Pending), t),
		Completed: clone(s.Completed),
	}
	return next, t, nil
}

// Complete moves the pending tasks whose keys are in keys to the end of Completed.
// Keys that are not pending are ignored.
func Complete(s State, keys KeySet) State {
	moved, kept := partition(s.Pending, keys)
	return State{
		Pending:   kept,
		Completed: append(clone(s.Completed), moved...),
	}
}

// Revoke moves the completed tasks whose keys are in keys to the end of Pending.
// Keys that are not completed are ignored.
func Revoke(s State, keys KeySet) State {
	moved, kept := partition(s.Completed, keys)
	return State{
		Pending:   append(clone(s.Pending), moved...),
		Completed: kept,
	}
}

// DeletePending permanently removes matching tasks from Pending.
func DeletePending(s State, keys KeySet) State {
	_, kept := partition(s.Pending, keys)
	return State{Pending: kept, Completed: clone(s.Completed)}
}

// DeleteCompleted permanently removes matching tasks from Completed.
func DeleteCompleted(s State, keys KeySet) State {
	_, kept := partition(s.Completed, keys)
	return State{Pending: clone(s.Pending), Completed: kept}
}

// Find looks a key up in both sequences.
// done is true when the task is in Completed.
func Find(s State, key Key) (t Task, done bool, ok bool) {
	for _, p := range s.Pending {
		if p.Key == key {
			return p, false, true
		}
	}
	for _, c := range s.Completed {
		if c.Key == key {
			return c, true, true
		}
	}
	return Task{}, false, false
}

// Keys returns the keys of tasks in order.
func Keys(tasks []Task) []Key {
	keys := make([]Key, len(tasks))
	for i, t := range tasks {
		keys[i] = t.Key
	}
	return keys
}

// Len returns the total number of tasks.
func (s State) Len() int {
	return len(s.Pending) + len(s.Completed)
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{Pending: clone(s.Pending), Completed: clone(s.Completed)}
}

// Validate checks that every key is unique across both sequences.
func Validate(s State) error {
	seen := make(map[Key]struct{}, s.Len())
	for _, list := range [][]Task{s.Pending, s.Completed} {
		for _, t := range list {
			if _, dup := seen[t.Key]; dup {
				return fmt.Errorf("%w: %d", ErrDuplicateKey, t.Key)
			}
			seen[t.Key] = struct{}{}
		}
	}
	return nil
}

// partition splits tasks into those whose key is in keys and the rest,
// preserving relative order in both.
func partition(tasks []Task, keys KeySet) (matched, rest []Task) {
	matched = []Task{}
	rest = []Task{}
	for _, t := range tasks {
		if keys.Has(t.Key) {
			matched = append(matched, t)
		} else {
			rest = append(rest, t)
		}
	}
	return matched, rest
}

func clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
