package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, ok, err := s.Get(ctx, "courseTypes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "courseTypes", `[]`))
	require.NoError(t, s.Set(ctx, "courseTypes", `[{"id":"x","name":"Group"}]`))

	v, ok, err := s.Get(ctx, "courseTypes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"x","name":"Group"}]`, v)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	require.NoError(t, s.Set(ctx, "courses", `[{"id":"c1"}]`))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close should be idempotent")

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "courses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"c1"}]`, v)
	assert.Equal(t, path, reopened.Path())
}

func TestStoreSetMany(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	require.NoError(t, s.Set(ctx, "offerings", `[{"id":"o1"}]`))
	require.NoError(t, s.SetMany(ctx, map[string]string{
		"offerings":     `[]`,
		"registrations": `[]`,
	}))

	for _, key := range []string{"offerings", "registrations"} {
		v, ok, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, v)
	}
}

func TestStoreSetManyRollsBackOnInvalidKey(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	require.NoError(t, s.Set(ctx, "courses", `[{"id":"keep"}]`))

	// Map iteration order is random; the empty key fails whichever comes first
	// and the transaction must leave "courses" untouched either way.
	err := s.SetMany(ctx, map[string]string{"courses": `[]`, "": `[]`})
	assert.ErrorIs(t, err, types.ErrInvalidKey)

	v, _, err := s.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"keep"}]`, v)
}
