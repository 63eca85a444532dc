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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidReferenceRecord indicates a ReferenceRecord failed validation.
	ErrInvalidReferenceRecord = errors.New("invalid reference record")

	// ErrEmptyVendorName indicates the VendorName field is empty.
	ErrEmptyVendorName = errors.New("vendor name cannot be empty")

	// ErrEmptyAddress indicates the Address field is empty.
	ErrEmptyAddress = errors.New("address cannot be empty")
)
