package chain

import (
	"errors"

	"github.com/blocklog/blocklog/foundation/ledger/database"
)

// Validate walks the ledger from the specified number and verifies the
// hash chain invariants: every stored hash matches the recomputed hash,
// every non-genesis block links to its immediate predecessor's hash, and
// timestamps strictly increase. The walk stops at the first violation and
// reports false; because of that, the predecessor used for the linkage
// and timestamp checks is always a block that itself passed this pass.
//
// An invalid or corrupt ledger is an expected outcome and reported as
// false with no error. Only a failure to complete the walk, such as a
// store read error, is returned as an error.
//
// When supplied, onProgress is called with a 0-100 percentage after each
// block is checked.
func (c *Chain) Validate(from uint32, onProgress func(percent int)) (bool, error) {
	count, err := c.Length()
	if err != nil {
		return false, err
	}
	if count == 0 || from >= count {
		return true, nil
	}

	// The block in front of the starting point anchors the linkage check.
	var prev database.BlockData
	if from > 0 {
		record, err := c.storage.Get(from - 1)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.evHandler("chain: Validate: blk[%d]: predecessor is missing", from-1)
				return false, nil
			}
			return false, err
		}

		prev, err = database.Decode(record)
		if err != nil {
			c.evHandler("chain: Validate: blk[%d]: %s", from-1, err)
			return false, nil
		}
	}

	iter := c.storage.ScanFrom(from, 0)
	defer iter.Close()

	checked := 0
	total := int(count - from)

	for num, record, err := iter.Next(); !iter.Done(); num, record, err = iter.Next() {
		if err != nil {
			return false, err
		}

		blockData, err := database.Decode(record)
		if err != nil {
			c.evHandler("chain: Validate: blk[%d]: %s", num, err)
			return false, nil
		}

		if blockData.Header.Number != num {
			c.evHandler("chain: Validate: blk[%d]: record carries number %d", num, blockData.Header.Number)
			return false, nil
		}

		if expected := from + uint32(checked); num != expected {
			c.evHandler("chain: Validate: blk[%d]: expected number %d", num, expected)
			return false, nil
		}

		if err := blockData.ValidateBlock(prev, c.evHandler); err != nil {
			c.evHandler("chain: Validate: blk[%d]: %s", num, err)
			return false, nil
		}

		prev = blockData
		checked++

		if onProgress != nil {
			onProgress(checked * 100 / total)
		}
	}

	return true, nil
}
