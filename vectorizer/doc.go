// Package vectorizer turns (vendor name, address) pairs into fixed-length
// dense vectors using character n-gram TF-IDF with truncated SVD
// dimensionality reduction.
//
// The combined vendor+address string is lowercased, stripped of diacritics,
// and decomposed into overlapping character n-grams (3 to 5 characters by
// default) that never span word boundaries. N-grams are weighted by TF-IDF
// and projected to a dense vector via a linear map learned from the
// reference corpus. Character n-grams make the vectors robust to the local
// substitutions OCR typically introduces.
//
// A fitted TextVectorizer is immutable and safe for concurrent use.
package vectorizer
