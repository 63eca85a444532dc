package index

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/addrect/core"
	"github.com/poiesic/addrect/storage"
)

// Vectorizer is the fitting and embedding surface the builder needs.
// *vectorizer.TextVectorizer satisfies this interface.
type Vectorizer interface {
	Fit(vendorNames, addresses []string) error
	TransformPair(vendorName, address string) ([]float32, error)
}

// Builder orchestrates full index rebuilds.
// It fits the vectorizer on the corpus, embeds every record concurrently,
// and swaps the store contents in one transaction.
type Builder struct {
	store      storage.ReferenceStore
	vectorizer Vectorizer
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder.
func NewBuilder(store storage.ReferenceStore, vectorizer Vectorizer, opts ...Option) (*Builder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if vectorizer == nil {
		return nil, ErrVectorizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		store:      store,
		vectorizer: vectorizer,
		pool:       pool,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Build rebuilds the index from the given records. The vectorizer is fitted
// on the complete corpus, every record is embedded, and the store contents
// are replaced atomically. Embedding a record's dimensionality is decided by
// the fit; mixing records from different fits is impossible by construction.
func (b *Builder) Build(ctx context.Context, records []*core.ReferenceRecord) error {
	if len(records) == 0 {
		return ErrEmptyCorpus
	}

	for _, record := range records {
		if err := core.ValidateReferenceRecord(record); err != nil {
			return err
		}
	}

	vendorNames := make([]string, len(records))
	addresses := make([]string, len(records))
	for i, record := range records {
		vendorNames[i] = record.VendorName
		addresses[i] = record.Address
	}

	b.logger.Info("fitting vectorizer", "records", len(records))
	if err := b.vectorizer.Fit(vendorNames, addresses); err != nil {
		b.logger.Error("error fitting vectorizer", "err", err)
		return err
	}

	b.logger.Debug("embedding records", "records", len(records))
	embeddings := make([][]float32, len(records))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range records {
		i := i
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			embedding, err := b.vectorizer.TransformPair(records[i].VendorName, records[i].Address)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			embeddings[i] = embedding
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		b.logger.Error("error embedding records", "err", firstErr)
		return firstErr
	}

	b.logger.Info("replacing store contents", "records", len(records))
	return b.store.ReplaceAll(ctx, records, embeddings)
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
