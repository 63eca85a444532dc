package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/addrect/core"
)

// referenceRow is the JSONL wire form of a reference record.
type referenceRow struct {
	VendorName string `json:"vendor_name"`
	Address    string `json:"address"`
	City       string `json:"city,omitempty"`
	Postcode   string `json:"postcode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// LoadJSONL reads reference records from a JSON-lines file, one object per
// line. Blank lines are skipped. Every record must carry a non-empty
// vendor_name and address; provenance beyond that is the producer's problem.
func LoadJSONL(path string) ([]*core.ReferenceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*core.ReferenceRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row referenceRow
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		record := &core.ReferenceRecord{
			VendorName: row.VendorName,
			Address:    row.Address,
			City:       row.City,
			Postcode:   row.Postcode,
			Country:    row.Country,
		}
		if err := core.ValidateReferenceRecord(record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
