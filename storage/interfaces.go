package storage

import (
	"context"

	"github.com/poiesic/addrect/core"
)

// ReferenceStore persists reference records with their embeddings and
// answers top-K similarity queries. Implementations must be thread-safe and
// support concurrent access.
//
// The store treats embeddings as opaque fixed-length vectors: every stored
// embedding must have the dimensionality established by the first load, and
// a mismatch is a configuration error surfaced as ErrDimensionMismatch
// rather than something to recover from.
type ReferenceStore interface {
	// SearchSimilar finds the reference records closest to the query vector
	// by cosine similarity. Returns up to topK candidates ordered by
	// descending similarity; similarity is in [-1, 1]. An empty store
	// returns an empty slice, not an error.
	SearchSimilar(ctx context.Context, vector []float32, topK int) ([]*core.Candidate, error)

	// InsertReferences adds records with their embeddings.
	// Ids are assigned from the store sequence and populated on the given
	// records. Embedding lengths are checked against the store's configured
	// dimensionality at insert time.
	InsertReferences(ctx context.Context, records []*core.ReferenceRecord, embeddings [][]float32) ([]*core.ReferenceRecord, error)

	// ReplaceAll drops every stored record and loads the given ones,
	// establishing the store's dimensionality from the new embeddings.
	ReplaceAll(ctx context.Context, records []*core.ReferenceRecord, embeddings [][]float32) error

	// Dimensions returns the configured embedding dimensionality,
	// or 0 when the store has never been loaded.
	Dimensions(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
