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

import "fmt"

// ValidateReferenceRecord validates a ReferenceRecord according to domain rules.
//
// Validation rules:
//   - VendorName must not be empty
//   - Address must not be empty
//
// NOT validated:
//   - City, Postcode, Country (optional in the gazetteer)
//   - Vector (populated by the index builder)
//   - ID (0 is valid before insertion; the store assigns ids)
func ValidateReferenceRecord(record *ReferenceRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidReferenceRecord)
	}

	if record.VendorName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReferenceRecord, ErrEmptyVendorName)
	}

	if record.Address == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReferenceRecord, ErrEmptyAddress)
	}

	return nil
}
