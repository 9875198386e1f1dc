// Package collection persists one entity kind as a single JSON array stored
// under one key of a types.Store. Every save replaces the whole array; the
// in-memory copy is a write-through cache of the stored value.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// emptyArray is what an empty or uninitialized collection serializes to.
const emptyArray = "[]"

// Collection is the persisted, ordered sequence of records of one kind.
// It is not safe for concurrent use; the owning repository serializes access.
type Collection[T any] struct {
	store  types.Store
	key    string
	items  []T
	loaded bool
}

// New returns a Collection bound to key in store. Nothing is read until the
// first Load or All.
func New[T any](store types.Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Load reads the stored sequence, replacing the cache. An absent key yields
// an empty sequence.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.key, err)
	}
	items := []T{}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", c.key, err)
		}
	}
	c.items = items
	c.loaded = true
	return slices.Clone(c.items), nil
}

// All returns a copy of the cached sequence, loading it on first use.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if !c.loaded {
		return c.Load(ctx)
	}
	return slices.Clone(c.items), nil
}

// Save serializes items and overwrites the stored sequence. The cache is
// replaced only after the store accepts the write.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	raw, err := Encode(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", c.key, err)
	}
	c.Replace(items)
	return nil
}

// Replace sets the cache without writing. Callers use it after persisting
// through another path, such as a batched write.
func (c *Collection[T]) Replace(items []T) {
	if items == nil {
		items = []T{}
	}
	c.items = slices.Clone(items)
	c.loaded = true
}

// Ensure writes an empty array when the key has never been stored.
func (c *Collection[T]) Ensure(ctx context.Context) error {
	_, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("checking %s: %w", c.key, err)
	}
	if ok {
		return nil
	}
	if err := c.store.Set(ctx, c.key, emptyArray); err != nil {
		return fmt.Errorf("initializing %s: %w", c.key, err)
	}
	return nil
}

// Encode serializes items as a JSON array; nil encodes as [].
func Encode[T any](items []T) (string, error) {
	if items == nil {
		return emptyArray, nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
