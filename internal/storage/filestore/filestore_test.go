package filestore_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/storage"
	"todo/internal/storage/filestore"
)

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := filestore.New(filepath.Join(t.TempDir(), "tasks.json"))

	v, ok, err := s.Get(context.Background(), "todo")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	s := filestore.New(path)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "todo", `[{"title":"a","key":1}]`))
	require.NoError(t, s.Set(ctx, "done", `[]`))

	v, ok, err := s.Get(ctx, "todo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"a","key":1}]`, v)

	// A second store on the same path sees the data.
	v, ok, err = filestore.New(path).Get(ctx, "done")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_MalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	var logs bytes.Buffer
	s := filestore.New(path, filestore.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, ok, err := s.Get(context.Background(), "todo")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "malformed")

	require.NoError(t, s.Set(context.Background(), "todo", "[]"))
	v, ok, err := s.Get(context.Background(), "todo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestStore_QuotaExceeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := filestore.New(path, filestore.WithMaxBytes(32))

	err := s.Set(context.Background(), "todo", `[{"title":"a very long title that does not fit","key":1}]`)
	assert.ErrorIs(t, err, storage.ErrValueTooLarge)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestStore_SetManyIsOneWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := filestore.New(path, filestore.WithMaxBytes(40))
	ctx := context.Background()

	// Too large together: neither key is written.
	err := s.SetMany(ctx, map[string]string{"todo": "[1,2,3,4,5]", "done": "[6,7,8,9,10]"})
	assert.ErrorIs(t, err, storage.ErrValueTooLarge)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, s.SetMany(ctx, map[string]string{"todo": "[]", "done": "[1]"}))
	v, ok, err := s.Get(ctx, "done")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", v)
}
