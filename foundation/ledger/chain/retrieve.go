package chain

import (
	"errors"

	"github.com/blocklog/blocklog/foundation/ledger/database"
)

// Length returns the number of blocks persisted in the ledger. No lock is
// taken; a concurrent append may make the count stale, but never
// non-monotonic.
func (c *Chain) Length() (uint32, error) {
	return c.storage.CountFrom(0)
}

// LastBlock returns the block with the highest number, or the zero Block
// when the ledger is empty.
func (c *Chain) LastBlock() (database.Block, error) {
	blockData, exists, err := c.lastBlockData()
	if err != nil || !exists {
		return database.Block{}, err
	}

	return database.ToBlock(blockData), nil
}

// BlockAt returns the decoded block stored at the specified number. A
// number outside the ledger returns the zero Block and no error; only IO
// and decode failures surface as errors.
func (c *Chain) BlockAt(num uint32) (database.Block, error) {
	record, err := c.storage.Get(num)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return database.Block{}, nil
		}
		return database.Block{}, err
	}

	blockData, err := database.Decode(record)
	if err != nil {
		return database.Block{}, err
	}

	return database.ToBlock(blockData), nil
}

// GetRange returns the decoded blocks in ascending order starting at the
// specified number, bounded by limit when limit > 0.
func (c *Chain) GetRange(from uint32, limit int) ([]database.Block, error) {
	var blocks []database.Block

	iter := c.storage.ScanFrom(from, limit)
	defer iter.Close()

	for _, record, err := iter.Next(); !iter.Done(); _, record, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		blockData, err := database.Decode(record)
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, database.ToBlock(blockData))
	}

	return blocks, nil
}

// Range returns the persisted form of the blocks in ascending order
// starting at the specified number, bounded by limit when limit > 0. This
// is the representation exchanged with other ledgers for replacement.
func (c *Chain) Range(from uint32, limit int) ([]database.BlockData, error) {
	var blocks []database.BlockData

	iter := c.storage.ScanFrom(from, limit)
	defer iter.Close()

	for _, record, err := iter.Next(); !iter.Done(); _, record, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		blockData, err := database.Decode(record)
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, blockData)
	}

	return blocks, nil
}

// Find walks the ledger in ascending order, skipping the genesis block,
// and returns the first block satisfying the predicate. The walk stops at
// the first match. The zero Block is returned when nothing matches.
func (c *Chain) Find(pred func(block database.Block, num uint32) bool) (database.Block, error) {
	iter := c.storage.ScanFrom(1, 0)
	defer iter.Close()

	for num, record, err := iter.Next(); !iter.Done(); num, record, err = iter.Next() {
		if err != nil {
			return database.Block{}, err
		}

		blockData, err := database.Decode(record)
		if err != nil {
			return database.Block{}, err
		}

		block := database.ToBlock(blockData)
		if pred(block, num) {
			return block, nil
		}
	}

	return database.Block{}, nil
}

// ForEach walks the whole ledger in ascending order invoking the callback
// for every block. The count passed to the callback is the ledger length
// snapshotted when the walk started. Returning an error from the callback
// stops the walk.
func (c *Chain) ForEach(fn func(block database.Block, num uint32, count uint32) error) error {
	count, err := c.Length()
	if err != nil {
		return err
	}

	iter := c.storage.ScanFrom(0, 0)
	defer iter.Close()

	for num, record, err := iter.Next(); !iter.Done(); num, record, err = iter.Next() {
		if err != nil {
			return err
		}

		blockData, err := database.Decode(record)
		if err != nil {
			return err
		}

		if err := fn(database.ToBlock(blockData), num, count); err != nil {
			return err
		}
	}

	return nil
}
