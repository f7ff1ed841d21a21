package database

import (
	"encoding/binary"
	"errors"
)

// ErrNotFound is returned from a storage implementation when no block
// exists at the requested number.
var ErrNotFound = errors.New("block not found")

// Storage interface represents the behavior required to be implemented by
// any package providing support for persisting encoded blocks inside an
// ordered key-value store. Keys are the fixed width big-endian encoding
// of the block number so lexicographic key order equals numeric order.
//
// The key space must stay dense: Put is only ever called with a number
// that overwrites an existing record or extends the ledger by exactly
// one, because the ledger length is derived from CountFrom. Engines may
// reject sparse writes but are not required to detect them.
type Storage interface {
	Get(num uint32) ([]byte, error)
	Put(num uint32, record []byte) error
	ScanFrom(num uint32, limit int) Iterator
	CountFrom(num uint32) (uint32, error)
	Close() error
}

// Iterator interface represents the behavior required to walk the store
// in ascending block number order. Callers must call Close when they stop
// before the iterator is done.
type Iterator interface {
	Next() (uint32, []byte, error)
	Done() bool
	Close()
}

// =============================================================================

// ToKey converts a block number into the 4 byte big-endian key used by
// the backing store.
func ToKey(num uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, num)
	return key
}

// ToNumber converts a store key back into a block number.
func ToNumber(key []byte) uint32 {
	return binary.BigEndian.Uint32(key)
}
