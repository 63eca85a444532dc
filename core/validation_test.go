package core

import (
	"errors"
	"testing"
)

func TestValidateReferenceRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ReferenceRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &ReferenceRecord{
				VendorName: "Apple Store",
				Address:    "189 The Grove Dr",
				City:       "Los Angeles",
				Postcode:   "90036",
				Country:    "US",
			},
			wantErr: nil,
		},
		{
			name: "valid record without optional fields",
			record: &ReferenceRecord{
				VendorName: "Starbucks",
				Address:    "1912 Pike Pl",
			},
			wantErr: nil,
		},
		{
			name: "valid record with ID 0",
			record: &ReferenceRecord{
				Id:         0,
				VendorName: "Walmart",
				Address:    "5001 E Ray Rd",
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidReferenceRecord,
		},
		{
			name: "empty vendor name",
			record: &ReferenceRecord{
				VendorName: "",
				Address:    "189 The Grove Dr",
			},
			wantErr: ErrEmptyVendorName,
		},
		{
			name: "empty address",
			record: &ReferenceRecord{
				VendorName: "Apple Store",
				Address:    "",
			},
			wantErr: ErrEmptyAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReferenceRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateReferenceRecord() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateReferenceRecord() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateReferenceRecord() error = %v, want %v", err, tt.wantErr)
			}

			if !errors.Is(err, ErrInvalidReferenceRecord) {
				t.Errorf("ValidateReferenceRecord() error = %v, should wrap ErrInvalidReferenceRecord", err)
			}
		})
	}
}
