// Package docstore provides a small per-key JSON document store with a
// Postgres backend for deployment and an in-memory backend for dev and tests.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no document exists for the key.
var ErrNotFound = errors.New("docstore: document not found")

// Store is a per-key document collection. Upsert merges top-level fields
// into any existing document rather than replacing it wholesale.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Upsert(ctx context.Context, key string, doc json.RawMessage) error
	UpdateField(ctx context.Context, key, field string, value any) error
	Delete(ctx context.Context, key string) error
}
