// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todo/internal/storage"
)

// FakeStore is an in-memory implementation of storage.Store for testing.
type FakeStore struct {
	mu      sync.RWMutex
	entries map[string]string
	sets    int
	closed  bool

	// Error injection for testing
	GetErr    map[string]error // key -> error
	SetErr    error
	SetKeyErr map[string]error // key -> error, checked after SetErr
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		entries:   make(map[string]string),
		GetErr:    make(map[string]error),
		SetKeyErr: make(map[string]error),
	}
}

// Put seeds a raw value.
func (f *FakeStore) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
}

// Raw returns the raw value for key.
func (f *FakeStore) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return v, ok
}

// Sets returns the number of successful Set calls.
func (f *FakeStore) Sets() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sets
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Get implements storage.Store.
func (f *FakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err, ok := f.GetErr[key]; ok && err != nil {
		return "", false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return v, ok, nil
}

// Set implements storage.Store.
func (f *FakeStore) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	if err, ok := f.SetKeyErr[key]; ok && err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	f.sets++
	return nil
}

// Close implements storage.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

var _ storage.Store = (*FakeStore)(nil)
