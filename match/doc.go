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


// Package match corrects corrupted vendor and address strings against a
// reference store.
//
// The Matcher type implements a two-stage algorithm:
//   - Retrieval: embed the query pair and fetch the top-K nearest reference
//     records by cosine similarity.
//   - Rerank: score each candidate with a fusion of vendor-name edit
//     similarity, address edit similarity, and the embedding similarity.
//
// The best fused score doubles as the confidence of the correction; queries
// whose best candidate scores below the configured threshold are reported
// as unmatched rather than guessed at.
package match
