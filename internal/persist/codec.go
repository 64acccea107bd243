// Package persist bridges task state and a storage.Store.
package persist

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"todo/internal/task"
)

// ErrMalformed is returned by Decode when the text is not a JSON array.
var ErrMalformed = errors.New("malformed task list")

// Encode renders tasks as a JSON array of {title, key, remark?} records.
func Encode(tasks []task.Task) (string, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a JSON array of task records. Records without a positive
// integer key or a non-blank title are skipped; the rest keep their order.
func Decode(text string) ([]task.Task, error) {
	if !gjson.Valid(text) {
		return nil, ErrMalformed
	}
	root := gjson.Parse(text)
	if root.Type == gjson.Null {
		return []task.Task{}, nil
	}
	if !root.IsArray() {
		return nil, ErrMalformed
	}

	tasks := []task.Task{}
	root.ForEach(func(_, rec gjson.Result) bool {
		if t, ok := decodeRecord(rec); ok {
			tasks = append(tasks, t)
		}
		return true
	})
	return tasks, nil
}

func decodeRecord(rec gjson.Result) (task.Task, bool) {
	if !rec.IsObject() {
		return task.Task{}, false
	}
	key := rec.Get("key")
	title := rec.Get("title")
	if key.Type != gjson.Number || key.Int() <= 0 || float64(key.Int()) != key.Num {
		return task.Task{}, false
	}
	if title.Type != gjson.String || strings.TrimSpace(title.Str) == "" {
		return task.Task{}, false
	}

	t := task.Task{Title: title.Str, Key: task.Key(key.Int())}
	if remark := rec.Get("remark"); remark.Type == gjson.String {
		t.Remark = remark.Str
	}
	return t, true
}
