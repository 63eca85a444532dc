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


// Package storage provides the reference-store abstraction for addrect.
//
// The package defines the ReferenceStore interface that decouples the vector
// store from the matching logic. The contract is deliberately narrow: insert
// or replace reference records with their embeddings, and answer top-K
// cosine-similarity queries. How the nearest neighbors are found (exhaustive
// scan, HNSW, an external service) is the implementation's business.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.ReferenceStore interface to keep
// consumers decoupled from the backing implementation:
//
//	store, err := badger.NewReferenceStore(backend)  // returns storage.ReferenceStore
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
//
// # Context Support
//
// All methods accept context.Context. Pass context.Background() for
// operations without specific timeout requirements; retry and timeout
// policy belongs to the caller, not the store.
package storage
