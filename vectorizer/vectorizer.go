package vectorizer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Defaults for Config. 50k character n-grams and 256 output dimensions match
// the reference index this package was built for.
const (
	DefaultComponents  = 256
	DefaultMaxFeatures = 50_000
	DefaultNGramMin    = 3
	DefaultNGramMax    = 5
)

// Config holds the fit-time parameters of a TextVectorizer.
// Zero values are replaced with the package defaults.
type Config struct {
	// Components is the requested output dimensionality D. The effective
	// dimensionality may be lower when the training matrix has lower rank.
	Components int

	// MaxFeatures caps the n-gram vocabulary size. The most frequent n-grams
	// across the training corpus are kept.
	MaxFeatures int

	// NGramMin and NGramMax bound the extracted character n-gram lengths,
	// inclusive.
	NGramMin int
	NGramMax int
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		Components:  DefaultComponents,
		MaxFeatures: DefaultMaxFeatures,
		NGramMin:    DefaultNGramMin,
		NGramMax:    DefaultNGramMax,
	}
}

func (c *Config) applyDefaults() {
	if c.Components == 0 {
		c.Components = DefaultComponents
	}
	if c.MaxFeatures == 0 {
		c.MaxFeatures = DefaultMaxFeatures
	}
	if c.NGramMin == 0 {
		c.NGramMin = DefaultNGramMin
	}
	if c.NGramMax == 0 {
		c.NGramMax = DefaultNGramMax
	}
}

// termWeight is one nonzero column of a sparse TF-IDF row.
type termWeight struct {
	col    int
	weight float64
}

// TextVectorizer converts (vendor name, address) pairs into dense vectors
// using character n-gram TF-IDF with truncated SVD.
//
// Fit learns the vocabulary, the idf weights, and the projection in one pass
// over the full training corpus. After Fit the vectorizer never mutates and
// may be shared freely between goroutines.
type TextVectorizer struct {
	cfg Config

	// Fitted state. terms is the vocabulary in column order; idf holds one
	// weight per column; projection is a len(terms) x components row-major
	// matrix.
	terms       []string
	vocab       map[string]int
	idf         []float64
	projection  []float64
	components  int
	fingerprint string
	fitted      bool
}

// New creates an unfitted TextVectorizer.
// Zero config fields fall back to the package defaults.
func New(cfg Config) (*TextVectorizer, error) {
	cfg.applyDefaults()
	if cfg.NGramMin < 1 || cfg.NGramMin > cfg.NGramMax {
		return nil, ErrInvalidNGramRange
	}
	return &TextVectorizer{cfg: cfg}, nil
}

// Config returns the configuration the vectorizer was created with.
func (v *TextVectorizer) Config() Config {
	return v.cfg
}

// Dimensions returns the effective output dimensionality.
// Returns ErrNotFitted before Fit.
func (v *TextVectorizer) Dimensions() (int, error) {
	if !v.fitted {
		return 0, ErrNotFitted
	}
	return v.components, nil
}

// Fingerprint identifies the fitted state. Two vectorizers with the same
// fingerprint produce comparable embeddings.
// Returns ErrNotFitted before Fit.
func (v *TextVectorizer) Fingerprint() (string, error) {
	if !v.fitted {
		return "", ErrNotFitted
	}
	return v.fingerprint, nil
}

// Fit learns the n-gram vocabulary, idf weights, and SVD projection from the
// training corpus. It must see the full reference corpus in one call: both
// the vocabulary cap and the projection depend on global statistics, so
// incremental fitting is not supported.
//
// The effective dimensionality is min(Components, min(docs, vocab)-1) with a
// floor of 1: SVD components cannot exceed the rank of the training matrix,
// and requesting more output dimensions than a tiny corpus supports clamps
// silently rather than failing.
func (v *TextVectorizer) Fit(vendorNames, addresses []string) error {
	if len(vendorNames) != len(addresses) {
		return ErrLengthMismatch
	}
	if len(vendorNames) == 0 {
		return ErrEmptyTrainingSet
	}

	// Extract n-grams and gather corpus statistics.
	docs := make([][]string, len(vendorNames))
	totalFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i := range vendorNames {
		grams := wordBoundedNGrams(prepareText(vendorNames[i], addresses[i]), v.cfg.NGramMin, v.cfg.NGramMax)
		docs[i] = grams
		seen := make(map[string]bool, len(grams))
		for _, g := range grams {
			totalFreq[g]++
			if !seen[g] {
				seen[g] = true
				docFreq[g]++
			}
		}
	}
	if len(totalFreq) == 0 {
		return ErrEmptyVocabulary
	}

	// Keep the MaxFeatures most frequent n-grams. Ties break on the term
	// itself so vocabularies are deterministic.
	terms := make([]string, 0, len(totalFreq))
	for term := range totalFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totalFreq[terms[i]] != totalFreq[terms[j]] {
			return totalFreq[terms[i]] > totalFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.cfg.MaxFeatures {
		terms = terms[:v.cfg.MaxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for col, term := range terms {
		vocab[term] = col
	}

	// Smoothed idf: ln((1+N)/(1+df)) + 1. The add-one keeps terms that
	// appear in every document from dividing by zero.
	nDocs := len(docs)
	idf := make([]float64, len(terms))
	for col, term := range terms {
		idf[col] = math.Log(float64(1+nDocs)/float64(1+docFreq[term])) + 1
	}

	// Dense TF-IDF matrix, one L2-normalized row per document.
	x := mat.NewDense(nDocs, len(terms), nil)
	for i, grams := range docs {
		for _, tw := range tfidfWeights(grams, vocab, idf) {
			x.Set(i, tw.col, tw.weight)
		}
	}

	// Clamp components to the training matrix rank bound.
	maxComponents := min(nDocs, len(terms)) - 1
	if maxComponents < 1 {
		maxComponents = 1
	}
	components := v.cfg.Components
	if components > maxComponents {
		components = maxComponents
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return ErrFactorizationFailed
	}
	var right mat.Dense
	svd.VTo(&right)

	// The projection is the first `components` right-singular vectors.
	projection := make([]float64, len(terms)*components)
	for col := 0; col < len(terms); col++ {
		base := col * components
		for j := 0; j < components; j++ {
			projection[base+j] = right.At(col, j)
		}
	}

	v.terms = terms
	v.vocab = vocab
	v.idf = idf
	v.projection = projection
	v.components = components
	v.fingerprint = fitFingerprint(v.cfg, components, terms)
	v.fitted = true
	return nil
}

// Transform embeds each (vendor name, address) pair with the fitted
// vocabulary and projection. Out-of-vocabulary n-grams contribute nothing.
// Returns ErrNotFitted before Fit.
func (v *TextVectorizer) Transform(vendorNames, addresses []string) ([][]float32, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}
	if len(vendorNames) != len(addresses) {
		return nil, ErrLengthMismatch
	}
	vectors := make([][]float32, len(vendorNames))
	for i := range vendorNames {
		vectors[i] = v.transformPrepared(prepareText(vendorNames[i], addresses[i]))
	}
	return vectors, nil
}

// TransformPair embeds a single (vendor name, address) pair.
// Returns ErrNotFitted before Fit.
func (v *TextVectorizer) TransformPair(vendorName, address string) ([]float32, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}
	return v.transformPrepared(prepareText(vendorName, address)), nil
}

func (v *TextVectorizer) transformPrepared(text string) []float32 {
	grams := wordBoundedNGrams(text, v.cfg.NGramMin, v.cfg.NGramMax)
	out := make([]float64, v.components)
	for _, tw := range tfidfWeights(grams, v.vocab, v.idf) {
		base := tw.col * v.components
		for j := 0; j < v.components; j++ {
			out[j] += tw.weight * v.projection[base+j]
		}
	}
	vec := make([]float32, v.components)
	for j, val := range out {
		vec[j] = float32(val)
	}
	return vec
}

// tfidfWeights builds the sparse L2-normalized TF-IDF row for one document.
// Columns are returned in ascending order so downstream float accumulation
// is deterministic.
func tfidfWeights(grams []string, vocab map[string]int, idf []float64) []termWeight {
	counts := make(map[int]int)
	for _, g := range grams {
		if col, ok := vocab[g]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	weights := make([]termWeight, 0, len(counts))
	var norm float64
	for col, count := range counts {
		w := float64(count) * idf[col]
		weights = append(weights, termWeight{col: col, weight: w})
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range weights {
			weights[i].weight /= norm
		}
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].col < weights[j].col })
	return weights
}
