// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package addrect

import (
	"context"
	"log/slog"

	"github.com/poiesic/addrect/core"
	"github.com/poiesic/addrect/index"
	"github.com/poiesic/addrect/match"
	"github.com/poiesic/addrect/storage"
	"github.com/poiesic/addrect/storage/badger"
	"github.com/poiesic/addrect/vectorizer"
)

// Corrector bundles the store, the fitted vectorizer, and the matcher behind
// a single handle. It is the entry point for applications that only want to
// correct queries against an already-built index.
type Corrector struct {
	backend    *badger.Backend
	store      storage.ReferenceStore
	vectorizer *vectorizer.TextVectorizer
	matcher    *match.Matcher
	logger     *slog.Logger
}

// CorrectorOption configures a Corrector.
type CorrectorOption func(*correctorOptions)

type correctorOptions struct {
	matcherConfig match.Config
	inMemory      bool
}

// WithMatcherConfig overrides the default matcher configuration.
func WithMatcherConfig(cfg match.Config) CorrectorOption {
	return func(o *correctorOptions) {
		o.matcherConfig = cfg
	}
}

// WithInMemoryStore opens the backing store in memory, discarding all data
// on Close. Intended for demos and tests.
func WithInMemoryStore() CorrectorOption {
	return func(o *correctorOptions) {
		o.inMemory = true
	}
}

// NewCorrector opens the index database at dbPath and loads the fitted
// vectorizer from modelDir.
func NewCorrector(dbPath, modelDir string, opts ...CorrectorOption) (*Corrector, error) {
	// Apply options
	options := &correctorOptions{
		matcherConfig: match.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(dbPath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create reference store
	store, err := badger.NewReferenceStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Load the fitted model
	vec, err := vectorizer.Load(modelDir)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	matcher, err := match.NewMatcher(store, vec, options.matcherConfig)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	return &Corrector{
		backend:    backend,
		store:      store,
		vectorizer: vec,
		matcher:    matcher,
		logger:     slog.Default(),
	}, nil
}

// Correct resolves a possibly corrupted vendor/address pair against the
// reference index.
func (c *Corrector) Correct(ctx context.Context, vendorName, address string) (*core.CorrectionResult, error) {
	return c.matcher.Correct(ctx, vendorName, address)
}

// Store returns the underlying reference store.
func (c *Corrector) Store() storage.ReferenceStore {
	return c.store
}

// Vectorizer returns the loaded vectorizer.
func (c *Corrector) Vectorizer() *vectorizer.TextVectorizer {
	return c.vectorizer
}

// NewIndexBuilder creates an index builder over the corrector's store and
// vectorizer. Rebuilding refits the vectorizer, so the in-memory model
// diverges from modelDir until the caller saves it again.
func (c *Corrector) NewIndexBuilder(opts ...index.Option) (*index.Builder, error) {
	return index.NewBuilder(c.store, c.vectorizer, opts...)
}

func (c *Corrector) Close() error {
	// Close store first
	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing reference store", "err", err)
		return err
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
