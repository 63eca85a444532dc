package index

import "errors"

var (
	// ErrStoreRequired is returned when a reference store is not provided.
	ErrStoreRequired = errors.New("reference store required")

	// ErrVectorizerRequired is returned when a vectorizer is not provided.
	ErrVectorizerRequired = errors.New("vectorizer required")

	// ErrEmptyCorpus is returned when Build is called with no records.
	ErrEmptyCorpus = errors.New("corpus is empty")
)
