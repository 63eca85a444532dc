package vectorizer

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-crypt/x/blake2b"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Fitted state is persisted as a blob pair, mirroring its two halves: the
// weighted vocabulary and the learned projection. Both blobs carry the fit
// fingerprint so a mixed pair fails closed on load.
const (
	vocabularyFile = "vocabulary.bin"
	projectionFile = "projection.bin"
)

// fitFingerprint hashes the fit configuration and the learned vocabulary.
// Blobs from incompatible fits (different n-gram rule parameters, different
// caps, different corpora) get different fingerprints.
func fitFingerprint(cfg Config, components int, terms []string) string {
	h, _ := blake2b.New(16, nil)
	fmt.Fprintf(h, "ngram=%d-%d;max_features=%d;components=%d/%d;terms=%d;",
		cfg.NGramMin, cfg.NGramMax, cfg.MaxFeatures, components, cfg.Components, len(terms))
	for _, term := range terms {
		h.Write([]byte(term))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Save writes the fitted state to dir as a vocabulary blob and a projection
// blob. The directory is created if missing.
// Returns ErrNotFitted before Fit.
func (v *TextVectorizer) Save(dir string) error {
	if !v.fitted {
		return ErrNotFitted
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, vocabularyFile), v.marshalVocabulary(), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, projectionFile), v.marshalProjection(), 0644)
}

// Load reads a fitted TextVectorizer saved by Save. The loaded vectorizer
// transforms bit-identically to the one that was saved.
func Load(dir string) (*TextVectorizer, error) {
	vocabBlob, err := os.ReadFile(filepath.Join(dir, vocabularyFile))
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary blob: %w", err)
	}
	projBlob, err := os.ReadFile(filepath.Join(dir, projectionFile))
	if err != nil {
		return nil, fmt.Errorf("reading projection blob: %w", err)
	}

	v := &TextVectorizer{}
	if err := v.unmarshalVocabulary(vocabBlob); err != nil {
		return nil, fmt.Errorf("decoding vocabulary blob: %w", err)
	}
	projFingerprint, err := v.unmarshalProjection(projBlob)
	if err != nil {
		return nil, fmt.Errorf("decoding projection blob: %w", err)
	}
	if projFingerprint != v.fingerprint {
		return nil, ErrFingerprintMismatch
	}

	v.vocab = make(map[string]int, len(v.terms))
	for col, term := range v.terms {
		v.vocab[term] = col
	}
	v.fitted = true
	return v, nil
}

func (v *TextVectorizer) marshalVocabulary() []byte {
	size := ord.String.Size(v.fingerprint)
	size += varint.Int.Size(v.cfg.Components)
	size += varint.Int.Size(v.cfg.MaxFeatures)
	size += varint.Int.Size(v.cfg.NGramMin)
	size += varint.Int.Size(v.cfg.NGramMax)
	size += varint.Int.Size(len(v.terms))
	for col, term := range v.terms {
		size += ord.String.Size(term)
		size += raw.Float64.Size(v.idf[col])
	}

	bs := make([]byte, size)
	n := ord.String.Marshal(v.fingerprint, bs)
	n += varint.Int.Marshal(v.cfg.Components, bs[n:])
	n += varint.Int.Marshal(v.cfg.MaxFeatures, bs[n:])
	n += varint.Int.Marshal(v.cfg.NGramMin, bs[n:])
	n += varint.Int.Marshal(v.cfg.NGramMax, bs[n:])
	n += varint.Int.Marshal(len(v.terms), bs[n:])
	for col, term := range v.terms {
		n += ord.String.Marshal(term, bs[n:])
		n += raw.Float64.Marshal(v.idf[col], bs[n:])
	}
	return bs
}

func (v *TextVectorizer) unmarshalVocabulary(bs []byte) error {
	var (
		n, n1  int
		err    error
		nTerms int
	)
	v.fingerprint, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return err
	}
	v.cfg.Components, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return err
	}
	v.cfg.MaxFeatures, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return err
	}
	v.cfg.NGramMin, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return err
	}
	v.cfg.NGramMax, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return err
	}
	nTerms, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return err
	}
	if nTerms < 0 {
		return ErrEmptyVocabulary
	}
	v.terms = make([]string, nTerms)
	v.idf = make([]float64, nTerms)
	for i := 0; i < nTerms; i++ {
		v.terms[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return err
		}
		v.idf[i], n1, err = raw.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *TextVectorizer) marshalProjection() []byte {
	size := ord.String.Size(v.fingerprint)
	size += varint.Int.Size(v.components)
	size += varint.Int.Size(len(v.terms))
	for _, val := range v.projection {
		size += raw.Float64.Size(val)
	}

	bs := make([]byte, size)
	n := ord.String.Marshal(v.fingerprint, bs)
	n += varint.Int.Marshal(v.components, bs[n:])
	n += varint.Int.Marshal(len(v.terms), bs[n:])
	for _, val := range v.projection {
		n += raw.Float64.Marshal(val, bs[n:])
	}
	return bs
}

func (v *TextVectorizer) unmarshalProjection(bs []byte) (fingerprint string, err error) {
	var (
		n, n1  int
		nTerms int
	)
	fingerprint, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return "", err
	}
	v.components, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return "", err
	}
	nTerms, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return "", err
	}
	if v.components < 1 || nTerms != len(v.terms) {
		return "", ErrFingerprintMismatch
	}
	v.projection = make([]float64, nTerms*v.components)
	for i := range v.projection {
		v.projection[i], n1, err = raw.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return "", err
		}
	}
	return fingerprint, nil
}
