package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todo/internal/storage"
	"todo/internal/task"
)

// Storage keys for the two sequences.
const (
	PendingKey   = "todo"
	CompletedKey = "done"
)

// ErrSaveFailed wraps every error returned by Save.
var ErrSaveFailed = errors.New("changes not saved")

// Adapter loads and saves task.State through a storage.Store.
type Adapter struct {
	store  storage.Store
	logger *slog.Logger
	last   task.State // as last loaded or saved
}

// NewAdapter returns an Adapter on store. A nil logger discards diagnostics.
func NewAdapter(store storage.Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{store: store, logger: logger}
}

// Load reads both sequences. Absent or malformed entries become empty
// sequences; errors reaching the store itself are returned.
func (a *Adapter) Load(ctx context.Context) (task.State, error) {
	pending, err := a.loadList(ctx, PendingKey)
	if err != nil {
		return task.State{}, err
	}
	completed, err := a.loadList(ctx, CompletedKey)
	if err != nil {
		return task.State{}, err
	}

	// Keep the pending copy of any key present in both lists.
	seen := make(map[task.Key]struct{}, len(pending))
	for _, t := range pending {
		seen[t.Key] = struct{}{}
	}
	pending = dedupe(pending, map[task.Key]struct{}{}, a.logger, PendingKey)
	completed = dedupe(completed, seen, a.logger, CompletedKey)

	st := task.State{Pending: pending, Completed: completed}
	a.last = st.Clone()
	return st, nil
}

// Save writes both sequences. Stores implementing storage.BatchSetter get
// both keys in one atomic write. Otherwise the sequence that gained tasks is
// written first, so a failure between the two writes leaves a moved task in
// both sequences (resolved by Load) rather than in neither. Save is not
// retried on failure.
func (a *Adapter) Save(ctx context.Context, s task.State) error {
	pendingText, err := Encode(s.Pending)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrSaveFailed, PendingKey, err)
	}
	completedText, err := Encode(s.Completed)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrSaveFailed, CompletedKey, err)
	}

	if batch, ok := a.store.(storage.BatchSetter); ok {
		err := batch.SetMany(ctx, map[string]string{
			PendingKey:   pendingText,
			CompletedKey: completedText,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
	} else {
		entries := [][2]string{{PendingKey, pendingText}, {CompletedKey, completedText}}
		if gained(a.last.Completed, s.Completed) {
			entries[0], entries[1] = entries[1], entries[0]
		}
		for i, e := range entries {
			if err := a.store.Set(ctx, e[0], e[1]); err != nil {
				if i > 0 {
					a.logger.Warn("partial save", "written", entries[0][0], "failed", e[0])
				}
				return fmt.Errorf("%w: %s: %w", ErrSaveFailed, e[0], err)
			}
		}
	}

	a.last = s.Clone()
	a.logger.Debug("saved tasks", "pending", len(s.Pending), "completed", len(s.Completed))
	return nil
}

// gained reports whether next holds a key that prev does not.
func gained(prev, next []task.Task) bool {
	have := task.NewKeySet(task.Keys(prev)...)
	for _, t := range next {
		if !have.Has(t.Key) {
			return true
		}
	}
	return false
}

func (a *Adapter) loadList(ctx context.Context, key string) ([]task.Task, error) {
	text, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		a.logger.Debug("no stored entry", "key", key)
		return []task.Task{}, nil
	}
	tasks, err := Decode(text)
	if err != nil {
		a.logger.Warn("ignoring malformed entry", "key", key, "err", err)
		return []task.Task{}, nil
	}
	return tasks, nil
}

// dedupe drops tasks whose key is already in seen, adding kept keys to seen.
func dedupe(tasks []task.Task, seen map[task.Key]struct{}, logger *slog.Logger, key string) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.Key]; dup {
			logger.Warn("dropping duplicate task key", "key", key, "task", int64(t.Key))
			continue
		}
		seen[t.Key] = struct{}{}
		out = append(out, t)
	}
	return out
}
