package types

import (
	"context"
	"errors"
)

// Store is the opaque key-value persistence mechanism. Values are whole
// serialized collections; a Set replaces the previous value entirely.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Close releases resources held by the store. Idempotent.
	Close() error
}

// BatchStore is implemented by stores that can write several keys as one
// unit. Stores without it are written key by key.
type BatchStore interface {
	Store

	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string]string) error
}

// ErrInvalidKey is returned by stores for keys they cannot address.
var ErrInvalidKey = errors.New("invalid store key")
