package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "courses")
	require.NoError(t, err)
	assert.False(t, ok, "unset key should report ok=false")

	require.NoError(t, s.Set(ctx, "courses", `[]`))
	require.NoError(t, s.Set(ctx, "courses", `[{"id":"1"}]`))

	v, ok, err := s.Get(ctx, "courses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)
	assert.Equal(t, 2, s.Writes())
}

func TestStoreSetMany(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SetMany(ctx, map[string]string{"a": "1", "b": "2"}))
	v, _, _ := s.Get(ctx, "b")
	assert.Equal(t, "2", v)

	err := s.SetMany(ctx, map[string]string{"c": "3", "": "4"})
	assert.ErrorIs(t, err, types.ErrInvalidKey)
	_, ok, _ := s.Get(ctx, "c")
	assert.False(t, ok, "rejected batch must not write any entry")
}

func TestStoreEmptyKey(t *testing.T) {
	ctx := context.Background()
	s := New()
	assert.ErrorIs(t, s.Set(ctx, "", "x"), types.ErrInvalidKey)
	_, _, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, types.ErrInvalidKey)
	assert.NoError(t, s.Close())
}
