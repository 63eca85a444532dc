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


package vectorizer

import "errors"

var (
	// ErrNotFitted is returned when an operation requires a fitted vectorizer.
	ErrNotFitted = errors.New("vectorizer must be fitted first")

	// ErrEmptyTrainingSet is returned when Fit is called with zero documents.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrEmptyVocabulary is returned when no n-grams can be extracted from
	// the training set.
	ErrEmptyVocabulary = errors.New("no n-grams could be extracted from training set")

	// ErrLengthMismatch is returned when vendor name and address slices have
	// different lengths.
	ErrLengthMismatch = errors.New("vendor name and address counts differ")

	// ErrInvalidNGramRange is returned for a configured n-gram range with
	// min < 1 or min > max.
	ErrInvalidNGramRange = errors.New("invalid n-gram range")

	// ErrFactorizationFailed is returned when the SVD of the training matrix
	// does not converge.
	ErrFactorizationFailed = errors.New("svd factorization failed")

	// ErrFingerprintMismatch is returned when the vocabulary and projection
	// blobs were produced by different fits.
	ErrFingerprintMismatch = errors.New("vocabulary and projection blobs come from different fits")
)
