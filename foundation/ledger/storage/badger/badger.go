// Package badger implements the ability to read and write encoded blocks
// inside a badger key-value store. Badger keeps keys in lexicographic
// order, which matches block number order because keys are fixed width
// big-endian numbers.
package badger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/blocklog/blocklog/foundation/ledger/database"
)

// Badger represents the storage implementation for reading and storing
// encoded blocks in a badger database. This implements the
// database.Storage interface.
type Badger struct {
	db   *badger.DB
	once sync.Once
}

// New constructs a Badger value for use, creating the database under the
// specified path when it doesn't exist yet.
func New(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database at %q: %w", path, err)
	}

	return &Badger{db: db}, nil
}

// Close releases the underlying database resources. Close is idempotent.
func (b *Badger) Close() error {
	var err error
	b.once.Do(func() {
		err = b.db.Close()
	})
	return err
}

// Get returns the encoded block stored at the specified number.
func (b *Badger) Get(num uint32) ([]byte, error) {
	var record []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(database.ToKey(num))
		if err != nil {
			return err
		}

		record, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("reading block %d: %w", num, err)
	}

	return record, nil
}

// Put stores the encoded block at the specified number, overwriting any
// existing record at that number.
func (b *Badger) Put(num uint32, record []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(database.ToKey(num), record)
	})
	if err != nil {
		return fmt.Errorf("writing block %d: %w", num, err)
	}

	return nil
}

// ScanFrom returns an iterator that walks the store in ascending block
// number order starting at the specified number. A limit <= 0 means no
// limit.
func (b *Badger) ScanFrom(num uint32, limit int) database.Iterator {
	txn := b.db.NewTransaction(false)

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	it.Seek(database.ToKey(num))

	return &badgerIterator{txn: txn, it: it, limit: limit}
}

// CountFrom returns the number of records stored at or after the
// specified number.
func (b *Badger) CountFrom(num uint32) (uint32, error) {
	var count uint32

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(database.ToKey(num)); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting blocks from %d: %w", num, err)
	}

	return count, nil
}

// =============================================================================

// badgerIterator represents the iteration implementation for walking
// through the records in a badger database. This implements the
// database.Iterator interface.
type badgerIterator struct {
	txn   *badger.Txn
	it    *badger.Iterator
	limit int
	count int
	done  bool
}

// Next retrieves the next record from the database.
func (bi *badgerIterator) Next() (uint32, []byte, error) {
	if bi.done {
		return 0, nil, database.ErrNotFound
	}

	if !bi.it.Valid() || (bi.limit > 0 && bi.count == bi.limit) {
		bi.close()
		return 0, nil, database.ErrNotFound
	}

	item := bi.it.Item()
	num := database.ToNumber(item.KeyCopy(nil))

	record, err := item.ValueCopy(nil)
	if err != nil {
		return 0, nil, fmt.Errorf("reading block %d: %w", num, err)
	}

	bi.it.Next()
	bi.count++

	return num, record, nil
}

// Done returns the end of scan value.
func (bi *badgerIterator) Done() bool {
	return bi.done
}

// Close releases the iterator and its read transaction. Safe to call
// more than once.
func (bi *badgerIterator) Close() {
	bi.close()
}

func (bi *badgerIterator) close() {
	if bi.done {
		return
	}
	bi.done = true
	bi.it.Close()
	bi.txn.Discard()
}
