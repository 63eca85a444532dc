package core

// ID is a unique identifier for stored reference records.
// It is assigned by the store's sequence on insertion and is opaque to callers.
type ID uint64

// ReferenceRecord is a single gazetteer row: a known vendor at a known
// address. Records are immutable once stored; the only way to change the
// reference set is a full rebuild.
type ReferenceRecord struct {
	Id         ID
	VendorName string
	Address    string
	City       string // optional, empty when unknown
	Postcode   string // optional, empty when unknown
	Country    string // optional, empty when unknown
	Vector     []float32
}

// Candidate is a reference record retrieved for a query, paired with the
// cosine similarity reported by the store. Candidates are transient and
// never persisted.
type Candidate struct {
	Record     *ReferenceRecord
	Similarity float32
}

// CorrectionResult is the outcome of one correction request.
// When Matched is false the corrected fields are empty and Confidence is 0.
type CorrectionResult struct {
	OriginalVendor    string  `json:"original_vendor"`
	OriginalAddress   string  `json:"original_address"`
	CorrectedAddress  string  `json:"corrected_address,omitempty"`
	CorrectedCity     string  `json:"corrected_city,omitempty"`
	CorrectedPostcode string  `json:"corrected_postcode,omitempty"`
	CorrectedCountry  string  `json:"corrected_country,omitempty"`
	Confidence        float64 `json:"confidence"`
	Matched           bool    `json:"matched"`
}
