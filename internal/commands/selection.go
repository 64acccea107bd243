package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todo/internal/task"
)

// Selection is the set of tasks a bulk command acts on. It lives only for the
// duration of one command.
type Selection struct {
	Positions []int      // 1-based positions as shown by list
	Ranges    []Range    // inclusive position ranges (N-M)
	Keys      []task.Key // explicit keys (#<key>)
}

// Range is an inclusive span of 1-based positions. It is expanded only after
// its bounds are checked against the section.
type Range struct {
	From, To int
}

// ErrSelectionRequired indicates no task reference was provided.
var ErrSelectionRequired = errors.New("task reference required")

// ParseSelection parses task references from args.
//
// Accepted forms, separated by spaces or commas:
//   - N      a position in the relevant section (e.g. 3)
//   - N-M    an inclusive range of positions (e.g. 2-5)
//   - #K     a task key (e.g. #1700000000000)
func ParseSelection(args []string) (Selection, error) {
	var sel Selection
	for _, arg := range args {
		for _, ref := range strings.Split(arg, ",") {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				continue
			}
			if err := sel.parseRef(ref); err != nil {
				return Selection{}, err
			}
		}
	}
	if len(sel.Positions) == 0 && len(sel.Ranges) == 0 && len(sel.Keys) == 0 {
		return Selection{}, ErrSelectionRequired
	}
	return sel, nil
}

func (sel *Selection) parseRef(ref string) error {
	if rest, ok := strings.CutPrefix(ref, "#"); ok {
		k, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || k <= 0 || !isAllDigits(rest) {
			return fmt.Errorf("invalid task reference: %s", ref)
		}
		sel.Keys = append(sel.Keys, task.Key(k))
		return nil
	}

	if lo, hi, ok := strings.Cut(ref, "-"); ok {
		from, err1 := parsePosition(lo)
		to, err2 := parsePosition(hi)
		if err1 != nil || err2 != nil || from > to {
			return fmt.Errorf("invalid task reference: %s", ref)
		}
		sel.Ranges = append(sel.Ranges, Range{From: from, To: to})
		return nil
	}

	n, err := parsePosition(ref)
	if err != nil {
		return fmt.Errorf("invalid task reference: %s", ref)
	}
	sel.Positions = append(sel.Positions, n)
	return nil
}

// Resolve maps the selection onto tasks, the section it refers to.
// Positions must be in range; keys are passed through unchecked so that
// stale keys are ignored by the transition.
func (sel Selection) Resolve(tasks []task.Task) (task.KeySet, error) {
	keys := task.NewKeySet(sel.Keys...)
	for _, n := range sel.Positions {
		if n < 1 || n > len(tasks) {
			return nil, fmt.Errorf("task number out of range: %d", n)
		}
		keys[tasks[n-1].Key] = struct{}{}
	}
	for _, r := range sel.Ranges {
		if r.To > len(tasks) {
			return nil, fmt.Errorf("task number out of range: %d", r.To)
		}
		for _, t := range tasks[r.From-1 : r.To] {
			keys[t.Key] = struct{}{}
		}
	}
	return keys, nil
}

func parsePosition(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("task number out of range: %d", n)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
