package badger

import (
	"fmt"

	"github.com/poiesic/addrect/core"
)

// Key prefixes for different data types
const (
	refRecordPrefix = "refrec"
	refRecordIDSeq  = "refrecseq"
	refDimsKey      = "refmeta:dims"
)

// makeReferenceKey generates a key for a reference record by ID.
func makeReferenceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", refRecordPrefix, id))
}
