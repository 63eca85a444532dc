package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/addrect/core"
	"github.com/poiesic/addrect/storage"
)

// Default matcher configuration.
const (
	DefaultTopK                = 20
	DefaultConfidenceThreshold = 0.45
	DefaultVendorWeight        = 0.5
	DefaultAddressWeight       = 0.3
	DefaultEmbeddingWeight     = 0.2
)

// Embedder turns a vendor-name/address pair into a query vector.
// *vectorizer.TextVectorizer satisfies this interface.
type Embedder interface {
	TransformPair(vendorName, address string) ([]float32, error)
}

// Config controls retrieval depth, rerank weights, and the acceptance gate.
// Zero values are replaced by the package defaults.
type Config struct {
	// TopK is the number of candidates retrieved from the store per query.
	TopK int

	// ConfidenceThreshold is the minimum fused score for an accepted match.
	ConfidenceThreshold float64

	// VendorWeight scales the vendor-name edit similarity in the fused score.
	VendorWeight float64

	// AddressWeight scales the address edit similarity in the fused score.
	AddressWeight float64

	// EmbeddingWeight scales the (floored) embedding cosine similarity.
	EmbeddingWeight float64
}

// DefaultConfig returns the standard matcher configuration.
func DefaultConfig() Config {
	return Config{
		TopK:                DefaultTopK,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		VendorWeight:        DefaultVendorWeight,
		AddressWeight:       DefaultAddressWeight,
		EmbeddingWeight:     DefaultEmbeddingWeight,
	}
}

func (c *Config) applyDefaults() {
	if c.TopK == 0 {
		c.TopK = DefaultTopK
	}
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if c.VendorWeight == 0 && c.AddressWeight == 0 && c.EmbeddingWeight == 0 {
		c.VendorWeight = DefaultVendorWeight
		c.AddressWeight = DefaultAddressWeight
		c.EmbeddingWeight = DefaultEmbeddingWeight
	}
}

func (c Config) validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("%w: TopK must not be negative", ErrInvalidConfig)
	}
	if c.VendorWeight < 0 || c.AddressWeight < 0 || c.EmbeddingWeight < 0 {
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Matcher corrects corrupted vendor/address pairs against a reference store.
type Matcher struct {
	store    storage.ReferenceStore
	embedder Embedder
	cfg      Config
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a new matcher. Zero-valued Config fields take the
// package defaults.
func NewMatcher(store storage.ReferenceStore, embedder Embedder, cfg Config, opts ...Option) (*Matcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Matcher{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Config returns the effective matcher configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Correct resolves a possibly corrupted vendor/address pair against the
// reference store. An unmatched query is not an error: the result carries
// matched=false and confidence 0.
func (m *Matcher) Correct(ctx context.Context, vendorName, address string) (*core.CorrectionResult, error) {
	return m.CorrectWithMonitor(ctx, vendorName, address, nil)
}

// CorrectWithMonitor resolves a vendor/address pair with monitoring.
// The monitor receives callbacks at each stage of the matching process.
func (m *Matcher) CorrectWithMonitor(ctx context.Context, vendorName, address string, monitor MatchMonitor) (*core.CorrectionResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(vendorName, address)

	// 1. Embed the query pair
	embedding, err := m.embedder.TransformPair(vendorName, address)
	if err != nil {
		m.logger.Error("error embedding query", "vendorName", vendorName, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(embedding)

	// 2. Retrieve the nearest reference records
	candidates, err := m.store.SearchSimilar(ctx, embedding, m.cfg.TopK)
	if err != nil {
		m.logger.Error("error querying for similar records", "err", err)
		return nil, err
	}
	monitor.AfterRetrieval(candidates)

	result := &core.CorrectionResult{
		OriginalVendor:  vendorName,
		OriginalAddress: address,
	}

	// 3. Rerank by fused lexical and embedding similarity. The strictly-greater
	// comparison keeps the earliest candidate on ties, so equal scores resolve
	// in store rank order.
	var best *core.ReferenceRecord
	bestScore := 0.0
	for _, candidate := range candidates {
		if candidate == nil || candidate.Record == nil {
			continue
		}

		vendorSim := lexicalSimilarity(vendorName, candidate.Record.VendorName)
		addressSim := lexicalSimilarity(address, candidate.Record.Address)
		embeddingSim := max(0.0, float64(candidate.Similarity))

		fused := m.cfg.VendorWeight*vendorSim +
			m.cfg.AddressWeight*addressSim +
			m.cfg.EmbeddingWeight*embeddingSim
		monitor.CandidateScored(candidate.Record, vendorSim, addressSim, embeddingSim, fused)

		if fused > bestScore {
			bestScore = fused
			best = candidate.Record
		}
	}

	// 4. Confidence gate
	if best == nil || bestScore < m.cfg.ConfidenceThreshold {
		m.logger.Debug("no acceptable match",
			"vendorName", vendorName,
			"bestScore", bestScore,
			"threshold", m.cfg.ConfidenceThreshold,
			"candidates", len(candidates))
		monitor.Finish(result)
		return result, nil
	}

	result.Matched = true
	result.Confidence = bestScore
	result.CorrectedAddress = best.Address
	result.CorrectedCity = best.City
	result.CorrectedPostcode = best.Postcode
	result.CorrectedCountry = best.Country
	monitor.Finish(result)

	return result, nil
}
