// Package memory implements the ability to read and write encoded blocks
// in memory using a slice. Intended for tests and ephemeral ledgers.
package memory

import (
	"fmt"
	"sync"

	"github.com/blocklog/blocklog/foundation/ledger/database"
)

// Memory represents the storage implementation for reading and storing
// encoded blocks in memory. This implements the database.Storage interface.
type Memory struct {
	mu      sync.RWMutex
	records [][]byte
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Get returns the encoded block stored at the specified number.
func (m *Memory) Get(num uint32) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint32(len(m.records)) {
		return nil, database.ErrNotFound
	}

	record := make([]byte, len(m.records[num]))
	copy(record, m.records[num])

	return record, nil
}

// Put stores the encoded block at the specified number. An existing
// record at that number is overwritten in place. Writing past the end of
// the ledger by more than one block is rejected so the key space stays
// dense.
func (m *Memory) Put(num uint32, record []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := uint32(len(m.records))
	if num > l {
		return fmt.Errorf("block %d is out of order, next is %d", num, l)
	}

	cp := make([]byte, len(record))
	copy(cp, record)

	if num == l {
		m.records = append(m.records, cp)
		return nil
	}

	m.records[num] = cp
	return nil
}

// ScanFrom returns an iterator that walks the records in ascending number
// order starting at the specified number. A limit <= 0 means no limit.
func (m *Memory) ScanFrom(num uint32, limit int) database.Iterator {
	return &memoryIterator{storage: m, current: num, limit: limit}
}

// CountFrom returns the number of records stored at or after the
// specified number.
func (m *Memory) CountFrom(num uint32) (uint32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := uint32(len(m.records))
	if num >= l {
		return 0, nil
	}

	return l - num, nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the records in memory. This implements the database.Iterator
// interface.
type memoryIterator struct {
	storage *Memory // Access to the storage API.
	current uint32  // Current block number being iterated over.
	limit   int     // Maximum number of records to return, <= 0 is no limit.
	count   int     // Number of records returned so far.
	done    bool    // Represents the iterator is at the end of the scan.
}

// Next retrieves the next record from memory.
func (mi *memoryIterator) Next() (uint32, []byte, error) {
	if mi.done {
		return 0, nil, database.ErrNotFound
	}

	if mi.limit > 0 && mi.count == mi.limit {
		mi.done = true
		return 0, nil, database.ErrNotFound
	}

	record, err := mi.storage.Get(mi.current)
	if err != nil {
		mi.done = true
		return 0, nil, err
	}

	num := mi.current
	mi.current++
	mi.count++

	return num, record, nil
}

// Done returns the end of scan value.
func (mi *memoryIterator) Done() bool {
	return mi.done
}

// Close in this implementation has nothing to do.
func (mi *memoryIterator) Close() {}
