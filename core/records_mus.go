package core

import (
	"errors"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// ErrNegativeLength indicates a corrupted length prefix in serialized data.
var ErrNegativeLength = errors.New("negative length")

// MUS serializers for the persisted domain types. These are hand-written in
// the serializer-object style so that storage code can stay agnostic of the
// wire layout.

// IDMUS is the MUS serializer for ID.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

// ReferenceRecordMUS is the MUS serializer for ReferenceRecord.
var ReferenceRecordMUS = referenceRecordMUS{}

type referenceRecordMUS struct{}

func (referenceRecordMUS) Marshal(v ReferenceRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.VendorName, bs[n:])
	n += ord.String.Marshal(v.Address, bs[n:])
	n += ord.String.Marshal(v.City, bs[n:])
	n += ord.String.Marshal(v.Postcode, bs[n:])
	n += ord.String.Marshal(v.Country, bs[n:])
	n += MarshalVector(v.Vector, bs[n:])
	return n
}

func (referenceRecordMUS) Unmarshal(bs []byte) (v ReferenceRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.VendorName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Address, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.City, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Postcode, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Country, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = UnmarshalVector(bs[n:])
	n += n1
	return
}

func (referenceRecordMUS) Size(v ReferenceRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.VendorName)
	size += ord.String.Size(v.Address)
	size += ord.String.Size(v.City)
	size += ord.String.Size(v.Postcode)
	size += ord.String.Size(v.Country)
	size += SizeVector(v.Vector)
	return size
}

// MarshalVector serializes a float32 vector as a varint length followed by
// raw little-endian elements.
func MarshalVector(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

// UnmarshalVector deserializes a float32 vector written by MarshalVector.
func UnmarshalVector(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	var n1 int
	for i := 0; i < length; i++ {
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

// SizeVector returns the serialized size of a float32 vector.
func SizeVector(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}
