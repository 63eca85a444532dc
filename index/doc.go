// Package index builds the reference index from a corpus of records.
//
// The Builder type manages the full rebuild workflow:
//   - Validating the corpus
//   - Fitting the vectorizer on every record in one pass
//   - Embedding records concurrently using a worker pool
//   - Atomically replacing the store contents
//
// A rebuild is all-or-nothing: embedding failures abort the build and leave
// the previous index untouched.
package index
