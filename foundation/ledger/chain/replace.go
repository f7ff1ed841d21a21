package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/blocklog/blocklog/foundation/ledger/database"
)

// Set of errors returned from a chain replacement.
var (
	ErrChainTooShort = errors.New("candidate chain is shorter than the current chain")
	ErrInvalidChain  = errors.New("candidate chain failed validation")
)

// Replace adopts an externally supplied chain in place of the current
// one. The candidate must be at least as long as the current ledger and
// must independently satisfy the hash chain rules, plus the application
// validator when one is configured. Nothing is persisted until the whole
// candidate validates; on success every candidate block overwrites the
// store entry at its own number, which covers both overwriting the
// shared prefix and extending past the old tip.
func (c *Chain) Replace(ctx context.Context, blocks []database.BlockData) error {
	if err := c.lock.Acquire(ctx); err != nil {
		return err
	}
	defer c.lock.Release()

	count, err := c.storage.CountFrom(0)
	if err != nil {
		return err
	}
	if uint32(len(blocks)) < count {
		return fmt.Errorf("%w: candidate has %d blocks, current has %d", ErrChainTooShort, len(blocks), count)
	}

	c.replacing.Store(true)
	defer c.replacing.Store(false)

	c.evHandler("chain: Replace: validating %d candidate blocks", len(blocks))

	// Validate the entire candidate before touching the store so a failure
	// never leaves partial results behind.
	var prev database.BlockData
	for i, blockData := range blocks {
		if blockData.Header.Number != uint32(i) {
			return fmt.Errorf("%w: block at position %d carries number %d", ErrInvalidChain, i, blockData.Header.Number)
		}

		if err := blockData.ValidateBlock(prev, c.evHandler); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidChain, err)
		}

		if c.validator != nil {
			if err := c.validator(database.ToBlock(blockData)); err != nil {
				return fmt.Errorf("%w: blk[%d]: %s", ErrInvalidChain, i, err)
			}
		}

		prev = blockData
	}

	for _, blockData := range blocks {
		if err := c.write(blockData); err != nil {
			return err
		}
	}

	c.evHandler("chain: Replace: adopted %d blocks: tip[%s]", len(blocks), prev.Hash)

	if len(blocks) > 0 {
		c.sendEvent("chainReplaced", database.ToBlock(blocks[len(blocks)-1]))
	}

	return nil
}

// Replacing reports whether a chain replacement is in progress, so
// lock-free readers can detect the unstable window.
func (c *Chain) Replacing() bool {
	return c.replacing.Load()
}
