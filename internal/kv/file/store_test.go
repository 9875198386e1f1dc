package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, s.Dir())
}

func TestStoreGetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	v, ok, err := s.Get(context.Background(), "offerings")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStoreSetWritesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "courses", `[{"id":"a"}]`))

	data, err := os.ReadFile(filepath.Join(dir, "courses.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))

	require.NoError(t, s.Set(ctx, "courses", `[]`))
	v, ok, err := s.Get(ctx, "courses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set(ctx, "registrations", `[]`))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "registrations.json", entries[0].Name())
}

func TestStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape", `a\b`, "a/b"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, s.Set(ctx, key, "x"), types.ErrInvalidKey)
			_, _, err := s.Get(ctx, key)
			assert.ErrorIs(t, err, types.ErrInvalidKey)
		})
	}
}
