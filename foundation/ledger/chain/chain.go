// Package chain is the core API for the ledger and implements all the
// business rules for genesis creation, appending, lookup, validation and
// chain replacement. All mutating operations are serialized by a FIFO
// write lock so concurrent callers append in lock acquisition order.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blocklog/blocklog/foundation/events"
	"github.com/blocklog/blocklog/foundation/ledger/database"
	"github.com/blocklog/blocklog/foundation/waitlock"
)

// ErrMissingGenesis is returned from Append when the ledger has no
// genesis block yet.
var ErrMissingGenesis = errors.New("ledger has no genesis block")

// =============================================================================

// EvHandler defines a function that is called when events occur in the
// processing of persisting blocks.
type EvHandler func(v string, args ...any)

// Validator defines an optional application predicate that is applied to
// each candidate block during a chain replacement, on top of the hash
// chain rules.
type Validator func(block database.Block) error

// Config represents the configuration required to construct a chain.
type Config struct {
	Storage   database.Storage
	Validator Validator
	EvHandler EvHandler
}

// Chain manages the ledger inside the backing store.
type Chain struct {
	storage   database.Storage
	validator Validator
	evHandler EvHandler
	lock      *waitlock.Mutex
	evts      *events.Events
	replacing atomic.Bool
	closeOnce sync.Once
}

// New constructs a chain over the specified backing store.
func New(cfg Config) (*Chain, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	c := Chain{
		storage:   cfg.Storage,
		validator: cfg.Validator,
		evHandler: ev,
		lock:      waitlock.New(),
		evts:      events.New(),
	}

	return &c, nil
}

// Close drops all registered observers and releases the backing store.
// Close is idempotent; no operation is valid after the first call except
// another Close.
func (c *Chain) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.evts.Shutdown()
		err = c.storage.Close()
	})
	return err
}

// Events returns the observer registration for this chain instance.
// Registered channels receive JSON documents for the ready, blockAdded
// and chainReplaced events and are closed when the chain closes.
func (c *Chain) Events() *events.Events {
	return c.evts
}

// =============================================================================

// Genesis writes the block at number zero carrying the specified payload.
// If the ledger already has blocks the call is an idempotent no-op and the
// zero Block is returned.
func (c *Chain) Genesis(ctx context.Context, data []byte) (database.Block, error) {
	if err := c.lock.Acquire(ctx); err != nil {
		return database.Block{}, err
	}
	defer c.lock.Release()

	count, err := c.storage.CountFrom(0)
	if err != nil {
		return database.Block{}, err
	}
	if count > 0 {
		c.evHandler("chain: Genesis: ledger already initialized with %d blocks", count)
		return database.Block{}, nil
	}

	block := database.Block{
		Header: database.BlockHeader{
			Number:        0,
			PrevBlockHash: database.ZeroHash,
			TimeStamp:     nowMS(),
		},
		Data: data,
	}

	if err := c.write(database.NewBlockData(block)); err != nil {
		return database.Block{}, err
	}

	c.evHandler("chain: Genesis: created: blk[%s]", block.Hash())
	c.sendEvent("ready", block)
	c.sendEvent("blockAdded", block)

	return block, nil
}

// Append constructs the next block in the ledger carrying the specified
// payload and persists it. Concurrent callers append in write lock
// acquisition order, each observing the previous append's block as its
// predecessor.
func (c *Chain) Append(ctx context.Context, data []byte) (database.Block, error) {
	if err := c.lock.Acquire(ctx); err != nil {
		return database.Block{}, err
	}
	defer c.lock.Release()

	last, exists, err := c.lastBlockData()
	if err != nil {
		return database.Block{}, err
	}
	if !exists {
		return database.Block{}, ErrMissingGenesis
	}

	// The clock has millisecond resolution, so two appends inside the same
	// millisecond would break the strictly increasing timestamp invariant.
	timeStamp := nowMS()
	if timeStamp <= last.Header.TimeStamp {
		timeStamp = last.Header.TimeStamp + 1
	}

	block := database.Block{
		Header: database.BlockHeader{
			Number:        last.Header.Number + 1,
			PrevBlockHash: last.Hash,
			TimeStamp:     timeStamp,
		},
		Data: data,
	}

	if err := c.write(database.NewBlockData(block)); err != nil {
		return database.Block{}, err
	}

	c.evHandler("chain: Append: blk[%d]: prevBlk[%s]: newBlk[%s]", block.Header.Number, block.Header.PrevBlockHash, block.Hash())
	c.sendEvent("blockAdded", block)

	return block, nil
}

// =============================================================================

// write encodes the persisted form of a block and stores it under the
// block's own number.
func (c *Chain) write(blockData database.BlockData) error {
	record, err := database.Encode(blockData)
	if err != nil {
		return err
	}

	return c.storage.Put(blockData.Header.Number, record)
}

// lastBlockData reads the persisted form of the block with the highest
// number, reporting whether the ledger has any blocks at all.
func (c *Chain) lastBlockData() (database.BlockData, bool, error) {
	count, err := c.storage.CountFrom(0)
	if err != nil {
		return database.BlockData{}, false, err
	}
	if count == 0 {
		return database.BlockData{}, false, nil
	}

	record, err := c.storage.Get(count - 1)
	if err != nil {
		return database.BlockData{}, false, err
	}

	blockData, err := database.Decode(record)
	if err != nil {
		return database.BlockData{}, false, err
	}

	return blockData, true, nil
}

// sendEvent notifies all registered observers about activity on the
// chain. Delivery is best effort and never blocks the write path.
func (c *Chain) sendEvent(name string, block database.Block) {
	doc := struct {
		Event  string               `json:"event"`
		Hash   string               `json:"hash"`
		Header database.BlockHeader `json:"header"`
	}{
		Event:  name,
		Hash:   block.Hash(),
		Header: block.Header,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		data = []byte(fmt.Sprintf("%q", err.Error()))
	}

	c.evts.Send(string(data))
}

// nowMS returns the current wall clock in milliseconds since epoch.
func nowMS() uint64 {
	return uint64(time.Now().UTC().UnixMilli())
}
