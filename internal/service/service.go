// Package service binds the task transitions to a persistence adapter.
// Commands never import storage backends directly.
package service

import (
	"context"
	"log/slog"
	"strings"

	"todo/internal/persist"
	"todo/internal/storage"
	"todo/internal/task"
)

// Service is the set of task operations available to commands.
type Service interface {
	// State returns a copy of the current state.
	State() task.State

	// Add creates a pending task. Returns task.ErrTitleRequired for a blank title.
	Add(ctx context.Context, title, remark string) (task.Task, error)

	// Complete moves pending tasks to completed.
	Complete(ctx context.Context, keys task.KeySet) error

	// Revoke moves completed tasks back to pending.
	Revoke(ctx context.Context, keys task.KeySet) error

	// DeletePending permanently removes pending tasks.
	DeletePending(ctx context.Context, keys task.KeySet) error

	// DeleteCompleted permanently removes completed tasks.
	DeleteCompleted(ctx context.Context, keys task.KeySet) error

	// Reload re-reads state from storage, discarding in-memory state.
	Reload(ctx context.Context) error

	// Close releases the underlying store.
	Close() error
}

// Session is the hydrated Service for a single CLI invocation.
//
// Mutations replace the in-memory state first and then save. A save error
// wraps persist.ErrSaveFailed; the in-memory state stays updated.
type Session struct {
	store   storage.Store
	adapter *persist.Adapter
	keys    *task.KeySource
	logger  *slog.Logger
	state   task.State
}

// Option configures a Session.
type Option func(*Session)

// WithKeySource overrides the key source (for testing).
func WithKeySource(ks *task.KeySource) Option {
	return func(s *Session) { s.keys = ks }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Open hydrates a Session from store.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Session, error) {
	s := &Session{
		store:  store,
		keys:   task.NewKeySource(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.adapter = persist.NewAdapter(store, s.logger)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// State implements Service.
func (s *Session) State() task.State {
	return s.state.Clone()
}

// Reload implements Service.
func (s *Session) Reload(ctx context.Context) error {
	st, err := s.adapter.Load(ctx)
	if err != nil {
		return err
	}
	s.state = st
	s.logger.Debug("hydrated", "pending", len(st.Pending), "completed", len(st.Completed))
	return nil
}

// Add implements Service.
func (s *Session) Add(ctx context.Context, title, remark string) (task.Task, error) {
	if strings.TrimSpace(title) == "" {
		return task.Task{}, task.ErrTitleRequired
	}
	next, t, err := task.Add(s.state, s.keys.Next(s.state), title, remark)
	if err != nil {
		return task.Task{}, err
	}
	return t, s.commit(ctx, next)
}

// Complete implements Service.
func (s *Session) Complete(ctx context.Context, keys task.KeySet) error {
	return s.commit(ctx, task.Complete(s.state, keys))
}

// Revoke implements Service.
func (s *Session) Revoke(ctx context.Context, keys task.KeySet) error {
	return s.commit(ctx, task.Revoke(s.state, keys))
}

// DeletePending implements Service.
func (s *Session) DeletePending(ctx context.Context, keys task.KeySet) error {
	return s.commit(ctx, task.DeletePending(s.state, keys))
}

// DeleteCompleted implements Service.
func (s *Session) DeleteCompleted(ctx context.Context, keys task.KeySet) error {
	return s.commit(ctx, task.DeleteCompleted(s.state, keys))
}

// Close implements Service.
func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) commit(ctx context.Context, next task.State) error {
	s.state = next
	return s.adapter.Save(ctx, next)
}

var _ Service = (*Session)(nil)
