// Package filestore implements storage.Store as a single JSON document on disk.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"todo/internal/storage"
)

// Store keeps every key in one JSON object file, rewritten atomically on Set.
type Store struct {
	mu       sync.Mutex
	path     string
	maxBytes int
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMaxBytes limits the encoded size of the whole file. Zero means no limit.
func WithMaxBytes(n int) Option {
	return func(s *Store) { s.maxBytes = n }
}

// WithLogger sets the logger used for recoverable read problems.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns a Store backed by path. The file is created on first Set.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set implements storage.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// SetMany implements storage.BatchSetter with a single file rewrite.
func (s *Store) SetMany(ctx context.Context, updates map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	for k, v := range updates {
		entries[k] = v
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", storage.ErrValueTooLarge, len(data), s.maxBytes)
	}
	return writeAtomic(s.path, data)
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return nil
}

// read loads the entries map. A missing file is an empty store; a malformed one
// is logged and also treated as empty so the next Set replaces it.
func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("ignoring malformed data file", "path", s.path, "err", err)
		return map[string]string{}, nil
	}
	return entries, nil
}

// writeAtomic writes data to a temp file in the same directory and renames it
// over path, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var (
	_ storage.Store       = (*Store)(nil)
	_ storage.BatchSetter = (*Store)(nil)
	_ storage.Watchable   = (*Store)(nil)
)
