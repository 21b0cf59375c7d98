package service

import (
	"context"
)

// KeyValueStore is the durable persistence primitive the inventory store
// writes the serialized item collection to. The whole collection lives under
// one key; implementations only deal in opaque strings.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key has
	// never been written, which the store treats as an empty inventory.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
