package store

import (
	"errors"
	"fmt"

	"github.com/kjk/cfgstore/recfile"
)

// Record is an immutable key/value pair. Identity is the key alone:
// two records with the same key are the same record.
type Record struct {
	key   string
	value string
}

func NewRecord(key, value string) Record {
	return Record{key: key, value: value}
}

func (r Record) Key() string {
	return r.key
}

func (r Record) Value() string {
	return r.value
}

// Equal compares keys, values are ignored
func (r Record) Equal(other Record) bool {
	return r.key == other.key
}

func (r Record) String() string {
	return fmt.Sprintf("Record{key='%s', value='%s'}", r.key, r.value)
}

var errMissingKey = errors.New("missing or empty 'key'")

// RecordCodec encodes a Record as a recfile record with "key" and
// "value" entries
type RecordCodec struct{}

func (RecordCodec) Name() string {
	return "record"
}

func (RecordCodec) Marshal(v Record, r *recfile.Record) error {
	return r.Write("key", v.key, "value", v.value)
}

func (RecordCodec) Unmarshal(r *recfile.Record) (Record, error) {
	key, ok := r.Get("key")
	if !ok || key == "" {
		return Record{}, errMissingKey
	}
	// missing value is the same as empty value
	value, _ := r.Get("value")
	return NewRecord(key, value), nil
}

// OpenRecords opens a store of Record values
func OpenRecords(path string, opts ...Option) (*Store[Record], error) {
	return Open[Record](path, RecordCodec{}, opts...)
}
