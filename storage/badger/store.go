package badger

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/addrect/core"
	"github.com/poiesic/addrect/storage"
)

// ReferenceStore implements storage.ReferenceStore on BadgerDB.
//
// Similarity search is an exhaustive cosine scan over all stored records.
// That is exact rather than approximate and is adequate for reference sets
// up to the low hundreds of thousands of rows; the interface allows swapping
// in an ANN-backed implementation without touching the matcher.
type ReferenceStore struct {
	backend *Backend
	idSeq   *badger.Sequence
	logger  *slog.Logger

	mu   sync.RWMutex
	dims int // embedding dimensionality, 0 until the first load
}

var _ storage.ReferenceStore = (*ReferenceStore)(nil)

// NewReferenceStore creates a ReferenceStore on the given backend, reading
// the persisted embedding dimensionality if the store was loaded before.
func NewReferenceStore(backend *Backend) (storage.ReferenceStore, error) {
	idSeq, err := backend.GetSequence(refRecordIDSeq)
	if err != nil {
		return nil, err
	}

	s := &ReferenceStore{
		backend: backend,
		idSeq:   idSeq,
		logger:  slog.Default(),
	}

	err = backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(refDimsKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 4 {
				return storage.ErrTruncatedData
			}
			s.dims = int(binary.BigEndian.Uint32(val))
			return nil
		})
	}, false)
	if err != nil {
		idSeq.Release()
		return nil, err
	}

	return s, nil
}

// Close releases the ID sequence.
func (s *ReferenceStore) Close() error {
	return s.idSeq.Release()
}

// Dimensions returns the configured embedding dimensionality, 0 when the
// store has never been loaded.
func (s *ReferenceStore) Dimensions(ctx context.Context) (int, error) {
	if s.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dims, nil
}

// InsertReferences adds records with their embeddings, assigning ids from
// the store sequence. The first load establishes the store's dimensionality;
// afterwards every embedding must match it exactly.
func (s *ReferenceStore) InsertReferences(ctx context.Context, records []*core.ReferenceRecord, embeddings [][]float32) ([]*core.ReferenceRecord, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if len(records) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d records, %d embeddings", storage.ErrCountMismatch, len(records), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevDims := s.dims
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := s.checkAndSetDims(tx, embeddings); err != nil {
			return err
		}
		if err := s.insertLocked(tx, records, embeddings); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		s.dims = prevDims
		return nil, err
	}

	return records, nil
}

// ReplaceAll drops every stored record and loads the given ones.
// The new embeddings establish the store's dimensionality, so a rebuild may
// change the embedding size; partially built indexes never become visible
// because the swap happens in one transaction.
func (s *ReferenceStore) ReplaceAll(ctx context.Context, records []*core.ReferenceRecord, embeddings [][]float32) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if len(records) != len(embeddings) {
		return fmt.Errorf("%w: %d records, %d embeddings", storage.ErrCountMismatch, len(records), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevDims := s.dims
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		// Drop existing records.
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(refRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		var stale [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if bytes.Equal(key, []byte(refRecordIDSeq)) {
				continue
			}
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		iter.Close()
		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		s.dims = 0
		if err := s.checkAndSetDims(tx, embeddings); err != nil {
			return err
		}
		if err := s.insertLocked(tx, records, embeddings); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		s.dims = prevDims
	}
	return err
}

// SearchSimilar finds the topK stored records closest to the query vector by
// cosine similarity, ordered by descending similarity. Rank order is
// deterministic: ties keep the key iteration order.
func (s *ReferenceStore) SearchSimilar(ctx context.Context, vector []float32, topK int) ([]*core.Candidate, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive", storage.ErrInvalidQuery)
	}

	s.mu.RLock()
	dims := s.dims
	s.mu.RUnlock()

	if dims == 0 {
		return nil, nil
	}
	if len(vector) != dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, store has %d", storage.ErrDimensionMismatch, len(vector), dims)
	}

	var candidates []*core.Candidate
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(refRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			if bytes.Equal(item.Key(), []byte(refRecordIDSeq)) {
				continue
			}

			var record *core.ReferenceRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalReferenceRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}

			candidates = append(candidates, &core.Candidate{
				Record:     record,
				Similarity: core.Cosine(vector, record.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Stable sort keeps tie order deterministic.
	slices.SortStableFunc(candidates, func(a, b *core.Candidate) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates, nil
}

// checkAndSetDims validates embedding lengths against the configured
// dimensionality, establishing and persisting it when the store is empty.
// Caller must hold s.mu for writing.
func (s *ReferenceStore) checkAndSetDims(tx *badger.Txn, embeddings [][]float32) error {
	for _, emb := range embeddings {
		if s.dims == 0 {
			if len(emb) == 0 {
				return fmt.Errorf("%w: empty embedding", storage.ErrDimensionMismatch)
			}
			s.dims = len(emb)
			buf := make([]byte, 4)
			binary.BigEndian.PutUint32(buf, uint32(s.dims))
			if err := tx.Set([]byte(refDimsKey), buf); err != nil {
				return err
			}
			continue
		}
		if len(emb) != s.dims {
			return fmt.Errorf("%w: embedding has %d dimensions, store has %d", storage.ErrDimensionMismatch, len(emb), s.dims)
		}
	}
	return nil
}

// insertLocked stores the records inside tx. Caller must hold s.mu.
func (s *ReferenceStore) insertLocked(tx *badger.Txn, records []*core.ReferenceRecord, embeddings [][]float32) error {
	for i, record := range records {
		if err := core.ValidateReferenceRecord(record); err != nil {
			return err
		}

		nextID, err := s.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = s.idSeq.Next()
			if err != nil {
				return err
			}
		}
		record.Id = core.ID(nextID)
		record.Vector = embeddings[i]

		if err := tx.Set(makeReferenceKey(record.Id), storage.MarshalReferenceRecord(record)); err != nil {
			return err
		}
	}
	return nil
}
