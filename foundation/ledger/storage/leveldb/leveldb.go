// Package leveldb implements the ability to read and write encoded blocks
// inside a goleveldb key-value store. LevelDB keeps keys in lexicographic
// order, which matches block number order because keys are fixed width
// big-endian numbers.
package leveldb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/blocklog/blocklog/foundation/ledger/database"
)

// LevelDB represents the storage implementation for reading and storing
// encoded blocks in a leveldb database. This implements the
// database.Storage interface.
type LevelDB struct {
	db   *leveldb.DB
	once sync.Once
}

// New constructs a LevelDB value for use, creating the database under the
// specified path when it doesn't exist yet.
func New(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb database at %q: %w", path, err)
	}

	return &LevelDB{db: db}, nil
}

// Close releases the underlying database resources. Close is idempotent.
func (l *LevelDB) Close() error {
	var err error
	l.once.Do(func() {
		err = l.db.Close()
	})
	return err
}

// Get returns the encoded block stored at the specified number.
func (l *LevelDB) Get(num uint32) ([]byte, error) {
	record, err := l.db.Get(database.ToKey(num), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("reading block %d: %w", num, err)
	}

	return record, nil
}

// Put stores the encoded block at the specified number, overwriting any
// existing record at that number.
func (l *LevelDB) Put(num uint32, record []byte) error {
	if err := l.db.Put(database.ToKey(num), record, nil); err != nil {
		return fmt.Errorf("writing block %d: %w", num, err)
	}

	return nil
}

// ScanFrom returns an iterator that walks the store in ascending block
// number order starting at the specified number. A limit <= 0 means no
// limit.
func (l *LevelDB) ScanFrom(num uint32, limit int) database.Iterator {
	it := l.db.NewIterator(&util.Range{Start: database.ToKey(num)}, nil)
	return &levelIterator{it: it, limit: limit}
}

// CountFrom returns the number of records stored at or after the
// specified number.
func (l *LevelDB) CountFrom(num uint32) (uint32, error) {
	it := l.db.NewIterator(&util.Range{Start: database.ToKey(num)}, nil)
	defer it.Release()

	var count uint32
	for it.Next() {
		count++
	}

	if err := it.Error(); err != nil {
		return 0, fmt.Errorf("counting blocks from %d: %w", num, err)
	}

	return count, nil
}

// =============================================================================

// levelIterator represents the iteration implementation for walking
// through the records in a leveldb database. This implements the
// database.Iterator interface.
type levelIterator struct {
	it    iterator.Iterator
	limit int
	count int
	done  bool
}

// Next retrieves the next record from the database.
func (li *levelIterator) Next() (uint32, []byte, error) {
	if li.done {
		return 0, nil, database.ErrNotFound
	}

	if li.limit > 0 && li.count == li.limit {
		li.close()
		return 0, nil, database.ErrNotFound
	}

	if !li.it.Next() {
		if err := li.it.Error(); err != nil {
			return 0, nil, fmt.Errorf("scanning blocks: %w", err)
		}
		li.close()
		return 0, nil, database.ErrNotFound
	}

	num := database.ToNumber(li.it.Key())

	record := make([]byte, len(li.it.Value()))
	copy(record, li.it.Value())

	li.count++

	return num, record, nil
}

// Done returns the end of scan value.
func (li *levelIterator) Done() bool {
	return li.done
}

// Close releases the iterator. Safe to call more than once.
func (li *levelIterator) Close() {
	li.close()
}

func (li *levelIterator) close() {
	if li.done {
		return
	}
	li.done = true
	li.it.Release()
}
