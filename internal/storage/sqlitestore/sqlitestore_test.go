package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/storage/sqlitestore"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	s, err := sqlitestore.Open(ctx, path)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "todo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "todo", "[1]"))
	require.NoError(t, s.Set(ctx, "todo", "[2]"))
	require.NoError(t, s.Close())

	reopened, err := sqlitestore.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "todo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", v)
	assert.Equal(t, path, reopened.Path())
}

func TestStore_SetMany(t *testing.T) {
	ctx := context.Background()
	s, err := sqlitestore.Open(ctx, filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "todo", "[1]"))
	require.NoError(t, s.SetMany(ctx, map[string]string{"todo": "[]", "done": "[1]"}))

	for key, want := range map[string]string{"todo": "[]", "done": "[1]"} {
		v, ok, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, v, key)
	}
}

func TestStore_SetManyRollsBackOnCancel(t *testing.T) {
	s, err := sqlitestore.Open(context.Background(), filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.SetMany(ctx, map[string]string{"todo": "[]", "done": "[1]"}))

	_, ok, err := s.Get(context.Background(), "done")
	require.NoError(t, err)
	assert.False(t, ok)
}
