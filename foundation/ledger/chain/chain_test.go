package chain_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/blocklog/blocklog/foundation/ledger/chain"
	"github.com/blocklog/blocklog/foundation/ledger/database"
	"github.com/blocklog/blocklog/foundation/ledger/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// newChain constructs a chain over an in-memory store for testing.
func newChain(t *testing.T) (*chain.Chain, *memory.Memory) {
	t.Helper()

	storage := memory.New()

	c, err := chain.New(chain.Config{
		Storage:   storage,
		EvHandler: func(v string, args ...any) { t.Logf("\t\tevent: %s", fmt.Sprintf(v, args...)) },
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the chain: %v", failed, err)
	}
	t.Cleanup(func() { c.Close() })

	return c, storage
}

// =============================================================================

func Test_Genesis(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to root a new ledger exactly once.")
	{
		t.Log("\tTest 0:\tWhen creating the genesis block on an empty ledger.")
		{
			c, _ := newChain(t)

			blk, err := c.Genesis(ctx, []byte("genesis data"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the genesis block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to create the genesis block.", success)

			if blk.Header.Number != 0 || blk.Header.PrevBlockHash != database.ZeroHash {
				t.Fatalf("\t%s\tTest 0:\tShould root the ledger at number zero with the zero parent hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould root the ledger at number zero with the zero parent hash.", success)

			length, err := c.Length()
			if err != nil || length != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould report a length of 1, got %d, %v.", failed, length, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report a length of 1.", success)
		}

		t.Log("\tTest 1:\tWhen creating the genesis block a second time.")
		{
			c, _ := newChain(t)

			if _, err := c.Genesis(ctx, []byte("first")); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create the genesis block: %v", failed, err)
			}

			blk, err := c.Genesis(ctx, []byte("second"))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould not error on a repeated genesis: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould not error on a repeated genesis.", success)

			if blk.Header.PrevBlockHash != "" {
				t.Fatalf("\t%s\tTest 1:\tShould get the zero Block back from a repeated genesis.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould get the zero Block back from a repeated genesis.", success)

			got, err := c.BlockAt(0)
			if err != nil || string(got.Data) != "first" {
				t.Fatalf("\t%s\tTest 1:\tShould keep the original genesis payload, got %q, %v.", failed, got.Data, err)
			}
			t.Logf("\t%s\tTest 1:\tShould keep the original genesis payload.", success)

			length, err := c.Length()
			if err != nil || length != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould still report a length of 1, got %d, %v.", failed, length, err)
			}
			t.Logf("\t%s\tTest 1:\tShould still report a length of 1.", success)
		}
	}
}

func Test_Append(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to grow the ledger one block at a time.")
	{
		t.Log("\tTest 0:\tWhen appending three blocks after the genesis block.")
		{
			c, _ := newChain(t)

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the genesis block: %v", failed, err)
			}

			for i := 1; i <= 3; i++ {
				if _, err := c.Append(ctx, []byte(fmt.Sprintf("Block %d", i))); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to append block %d: %v", failed, i, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to append three blocks.", success)

			length, err := c.Length()
			if err != nil || length != 4 {
				t.Fatalf("\t%s\tTest 0:\tShould report a length of 4, got %d, %v.", failed, length, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report a length of 4.", success)

			blk, err := c.BlockAt(2)
			if err != nil || string(blk.Data) != "Block 2" {
				t.Fatalf("\t%s\tTest 0:\tShould find the payload of block 2, got %q, %v.", failed, blk.Data, err)
			}
			t.Logf("\t%s\tTest 0:\tShould find the payload of block 2.", success)

			prev, err := c.BlockAt(1)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read block 1: %v", failed, err)
			}
			if blk.Header.PrevBlockHash != prev.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould link each block to its predecessor's hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould link each block to its predecessor's hash.", success)

			if blk.Header.TimeStamp <= prev.Header.TimeStamp {
				t.Fatalf("\t%s\tTest 0:\tShould carry strictly increasing timestamps.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry strictly increasing timestamps.", success)

			last, err := c.LastBlock()
			if err != nil || string(last.Data) != "Block 3" {
				t.Fatalf("\t%s\tTest 0:\tShould report block 3 as the last block, got %q, %v.", failed, last.Data, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report block 3 as the last block.", success)
		}

		t.Log("\tTest 1:\tWhen appending before the genesis block exists.")
		{
			c, _ := newChain(t)

			if _, err := c.Append(ctx, []byte("orphan")); !errors.Is(err, chain.ErrMissingGenesis) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrMissingGenesis: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrMissingGenesis.", success)

			length, err := c.Length()
			if err != nil || length != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the ledger empty, got %d, %v.", failed, length, err)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the ledger empty.", success)
		}
	}
}

func Test_Retrieve(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to look up and walk persisted blocks.")
	{
		c, _ := newChain(t)

		if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
			t.Fatalf("\t%s\tShould be able to create the genesis block: %v", failed, err)
		}
		for i := 1; i <= 5; i++ {
			if _, err := c.Append(ctx, []byte(fmt.Sprintf("Block %d", i))); err != nil {
				t.Fatalf("\t%s\tShould be able to append block %d: %v", failed, i, err)
			}
		}

		t.Log("\tTest 0:\tWhen asking for a block outside the ledger.")
		{
			blk, err := c.BlockAt(42)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould not error for an absent block: %v", failed, err)
			}
			if blk.Header.PrevBlockHash != "" || blk.Data != nil {
				t.Fatalf("\t%s\tTest 0:\tShould get the zero Block for an absent number.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the zero Block for an absent number.", success)
		}

		t.Log("\tTest 1:\tWhen retrieving a bounded range.")
		{
			blocks, err := c.GetRange(2, 3)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to retrieve the range: %v", failed, err)
			}
			if len(blocks) != 3 || blocks[0].Header.Number != 2 || blocks[2].Header.Number != 4 {
				t.Fatalf("\t%s\tTest 1:\tShould get blocks 2 through 4, got %d blocks.", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 1:\tShould get blocks 2 through 4.", success)
		}

		t.Log("\tTest 2:\tWhen searching with a predicate.")
		{
			blk, err := c.Find(func(block database.Block, num uint32) bool {
				return string(block.Data) == "Block 3"
			})
			if err != nil || blk.Header.Number != 3 {
				t.Fatalf("\t%s\tTest 2:\tShould find block 3, got %d, %v.", failed, blk.Header.Number, err)
			}
			t.Logf("\t%s\tTest 2:\tShould find block 3.", success)

			blk, err = c.Find(func(block database.Block, num uint32) bool {
				return string(block.Data) == "genesis"
			})
			if err != nil || blk.Header.PrevBlockHash != "" {
				t.Fatalf("\t%s\tTest 2:\tShould never match the genesis block.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould never match the genesis block.", success)
		}

		t.Log("\tTest 3:\tWhen walking the whole ledger.")
		{
			var visited []uint32
			var snapshot uint32

			err := c.ForEach(func(block database.Block, num uint32, count uint32) error {
				visited = append(visited, num)
				snapshot = count
				return nil
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to walk the ledger: %v", failed, err)
			}
			if len(visited) != 6 || snapshot != 6 {
				t.Fatalf("\t%s\tTest 3:\tShould visit all 6 blocks with the snapshotted count, got %d, %d.", failed, len(visited), snapshot)
			}
			for i, num := range visited {
				if num != uint32(i) {
					t.Fatalf("\t%s\tTest 3:\tShould visit blocks in ascending order, got %v.", failed, visited)
				}
			}
			t.Logf("\t%s\tTest 3:\tShould visit all blocks in ascending order.", success)

			stop := errors.New("stop")
			visited = visited[:0]
			err = c.ForEach(func(block database.Block, num uint32, count uint32) error {
				visited = append(visited, num)
				if num == 2 {
					return stop
				}
				return nil
			})
			if !errors.Is(err, stop) || len(visited) != 3 {
				t.Fatalf("\t%s\tTest 3:\tShould stop the walk when the callback errors, got %d visits, %v.", failed, len(visited), err)
			}
			t.Logf("\t%s\tTest 3:\tShould stop the walk when the callback errors.", success)
		}
	}
}

func Test_Validate(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to verify the hash chain invariants of the ledger.")
	{
		t.Log("\tTest 0:\tWhen validating an untouched ledger.")
		{
			c, _ := newChain(t)

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the genesis block: %v", failed, err)
			}
			for i := 1; i <= 4; i++ {
				if _, err := c.Append(ctx, []byte(fmt.Sprintf("Block %d", i))); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to append block %d: %v", failed, i, err)
				}
			}

			var last int
			ok, err := c.Validate(0, func(percent int) { last = percent })
			if err != nil || !ok {
				t.Fatalf("\t%s\tTest 0:\tShould report the ledger as valid, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report the ledger as valid.", success)

			if last != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould report 100 percent progress, got %d.", failed, last)
			}
			t.Logf("\t%s\tTest 0:\tShould report 100 percent progress.", success)

			ok, err = c.Validate(3, nil)
			if err != nil || !ok {
				t.Fatalf("\t%s\tTest 0:\tShould validate a suffix of the ledger, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate a suffix of the ledger.", success)
		}

		t.Log("\tTest 1:\tWhen a persisted payload is tampered with.")
		{
			c, storage := newChain(t)

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create the genesis block: %v", failed, err)
			}
			for i := 1; i <= 3; i++ {
				if _, err := c.Append(ctx, []byte(fmt.Sprintf("Block %d", i))); err != nil {
					t.Fatalf("\t%s\tTest 1:\tShould be able to append block %d: %v", failed, i, err)
				}
			}

			// Rewrite block 2's payload behind the chain's back without
			// recomputing the hash.
			record, err := storage.Get(2)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to read the raw record: %v", failed, err)
			}
			blockData, err := database.Decode(record)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to decode the raw record: %v", failed, err)
			}
			blockData.Data = []byte("tampered")
			record, err = database.Encode(blockData)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to re-encode the record: %v", failed, err)
			}
			if err := storage.Put(2, record); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the raw record: %v", failed, err)
			}

			ok, err := c.Validate(0, nil)
			if err != nil || ok {
				t.Fatalf("\t%s\tTest 1:\tShould report the tampered ledger as invalid, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 1:\tShould report the tampered ledger as invalid.", success)
		}

		t.Log("\tTest 2:\tWhen a persisted record is corrupted at the byte level.")
		{
			c, storage := newChain(t)

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to create the genesis block: %v", failed, err)
			}
			if _, err := c.Append(ctx, []byte("Block 1")); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to append block 1: %v", failed, err)
			}

			if err := storage.Put(1, []byte{0xde, 0xad}); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to write the corrupt record: %v", failed, err)
			}

			ok, err := c.Validate(0, nil)
			if err != nil || ok {
				t.Fatalf("\t%s\tTest 2:\tShould report the corrupt ledger as invalid, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 2:\tShould report the corrupt ledger as invalid.", success)
		}
	}
}

func Test_Replace(t *testing.T) {
	ctx := context.Background()

	// donor builds an independent valid ledger of the specified length and
	// returns its persisted form.
	donor := func(t *testing.T, blocks int) []database.BlockData {
		t.Helper()

		c, _ := newChain(t)
		if _, err := c.Genesis(ctx, []byte("donor genesis")); err != nil {
			t.Fatalf("\t%s\tShould be able to create the donor genesis: %v", failed, err)
		}
		for i := 1; i < blocks; i++ {
			if _, err := c.Append(ctx, []byte(fmt.Sprintf("donor %d", i))); err != nil {
				t.Fatalf("\t%s\tShould be able to append donor block %d: %v", failed, i, err)
			}
		}

		blockData, err := c.Range(0, 0)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to export the donor ledger: %v", failed, err)
		}
		return blockData
	}

	t.Log("Given the need to adopt a longer external chain.")
	{
		t.Log("\tTest 0:\tWhen the candidate is longer and valid.")
		{
			c, _ := newChain(t)
			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the genesis block: %v", failed, err)
			}
			if _, err := c.Append(ctx, []byte("Block 1")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to append block 1: %v", failed, err)
			}

			candidate := donor(t, 4)

			if err := c.Replace(ctx, candidate); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to replace the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to replace the chain.", success)

			length, err := c.Length()
			if err != nil || length != 4 {
				t.Fatalf("\t%s\tTest 0:\tShould report the candidate's length, got %d, %v.", failed, length, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report the candidate's length.", success)

			got, err := c.Range(0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to export the replaced ledger: %v", failed, err)
			}
			for i := range candidate {
				if got[i].Hash != candidate[i].Hash {
					t.Fatalf("\t%s\tTest 0:\tShould hold exactly the candidate's blocks.", failed)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould hold exactly the candidate's blocks.", success)

			ok, err := c.Validate(0, nil)
			if err != nil || !ok {
				t.Fatalf("\t%s\tTest 0:\tShould validate after the replacement, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate after the replacement.", success)

			if c.Replacing() {
				t.Fatalf("\t%s\tTest 0:\tShould clear the replacing flag when done.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould clear the replacing flag when done.", success)
		}

		t.Log("\tTest 1:\tWhen the candidate is shorter than the current ledger.")
		{
			c, _ := newChain(t)
			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create the genesis block: %v", failed, err)
			}
			for i := 1; i <= 3; i++ {
				if _, err := c.Append(ctx, []byte(fmt.Sprintf("Block %d", i))); err != nil {
					t.Fatalf("\t%s\tTest 1:\tShould be able to append block %d: %v", failed, i, err)
				}
			}

			before, err := c.Range(0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to export the ledger: %v", failed, err)
			}

			if err := c.Replace(ctx, donor(t, 2)); !errors.Is(err, chain.ErrChainTooShort) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrChainTooShort: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrChainTooShort.", success)

			after, err := c.Range(0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to export the ledger: %v", failed, err)
			}
			if len(after) != len(before) || after[len(after)-1].Hash != before[len(before)-1].Hash {
				t.Fatalf("\t%s\tTest 1:\tShould leave the current ledger untouched.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the current ledger untouched.", success)
		}

		t.Log("\tTest 2:\tWhen the candidate fails the hash chain rules.")
		{
			c, _ := newChain(t)
			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to create the genesis block: %v", failed, err)
			}

			candidate := donor(t, 3)
			candidate[1].Data = []byte("tampered")

			if err := c.Replace(ctx, candidate); !errors.Is(err, chain.ErrInvalidChain) {
				t.Fatalf("\t%s\tTest 2:\tShould get ErrInvalidChain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get ErrInvalidChain.", success)

			length, err := c.Length()
			if err != nil || length != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould leave the current ledger untouched, got %d, %v.", failed, length, err)
			}
			t.Logf("\t%s\tTest 2:\tShould leave the current ledger untouched.", success)

			ok, err := c.Validate(0, nil)
			if err != nil || !ok {
				t.Fatalf("\t%s\tTest 2:\tShould still validate the current ledger, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 2:\tShould still validate the current ledger.", success)
		}

		t.Log("\tTest 3:\tWhen the application validator rejects a candidate block.")
		{
			storage := memory.New()
			c, err := chain.New(chain.Config{
				Storage: storage,
				Validator: func(block database.Block) error {
					if string(block.Data) == "donor 2" {
						return errors.New("payload not allowed")
					}
					return nil
				},
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to construct the chain: %v", failed, err)
			}
			defer c.Close()

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to create the genesis block: %v", failed, err)
			}

			if err := c.Replace(ctx, donor(t, 4)); !errors.Is(err, chain.ErrInvalidChain) {
				t.Fatalf("\t%s\tTest 3:\tShould get ErrInvalidChain from the application validator: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould get ErrInvalidChain from the application validator.", success)
		}
	}
}

func Test_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to serialize concurrent appends through the write lock.")
	{
		t.Log("\tTest 0:\tWhen 20 goroutines append at the same time.")
		{
			c, _ := newChain(t)

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the genesis block: %v", failed, err)
			}

			const appends = 20
			var wg sync.WaitGroup
			wg.Add(appends)

			for i := 0; i < appends; i++ {
				go func(id int) {
					defer wg.Done()
					if _, err := c.Append(ctx, []byte(fmt.Sprintf("payload %d", id))); err != nil {
						t.Errorf("\t%s\tTest 0:\tShould be able to append: %v", failed, err)
					}
				}(i)
			}
			wg.Wait()

			length, err := c.Length()
			if err != nil || length != appends+1 {
				t.Fatalf("\t%s\tTest 0:\tShould report a length of %d, got %d, %v.", failed, appends+1, length, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report a length of %d.", success, appends+1)

			seen := make(map[uint32]bool)
			err = c.ForEach(func(block database.Block, num uint32, count uint32) error {
				if seen[block.Header.Number] {
					return fmt.Errorf("number %d assigned twice", block.Header.Number)
				}
				seen[block.Header.Number] = true
				return nil
			})
			if err != nil || len(seen) != appends+1 {
				t.Fatalf("\t%s\tTest 0:\tShould assign every number exactly once, got %d, %v.", failed, len(seen), err)
			}
			t.Logf("\t%s\tTest 0:\tShould assign every number exactly once.", success)

			ok, err := c.Validate(0, nil)
			if err != nil || !ok {
				t.Fatalf("\t%s\tTest 0:\tShould produce a valid ledger, got %v, %v.", failed, ok, err)
			}
			t.Logf("\t%s\tTest 0:\tShould produce a valid ledger.", success)
		}
	}
}

func Test_Observers(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to notify observers about ledger activity.")
	{
		t.Log("\tTest 0:\tWhen blocks are created with an observer registered.")
		{
			c, _ := newChain(t)

			ch := c.Events().Acquire("observer-1")

			if _, err := c.Genesis(ctx, []byte("genesis")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the genesis block: %v", failed, err)
			}
			if _, err := c.Append(ctx, []byte("Block 1")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to append block 1: %v", failed, err)
			}

			var names []string
			for i := 0; i < 3; i++ {
				var doc struct {
					Event  string               `json:"event"`
					Hash   string               `json:"hash"`
					Header database.BlockHeader `json:"header"`
				}
				if err := json.Unmarshal([]byte(<-ch), &doc); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould receive well formed JSON events: %v", failed, err)
				}
				names = append(names, doc.Event)
			}

			exp := []string{"ready", "blockAdded", "blockAdded"}
			for i := range exp {
				if names[i] != exp[i] {
					t.Fatalf("\t%s\tTest 0:\tShould receive the event sequence %v, got %v.", failed, exp, names)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould receive the ready and blockAdded events in order.", success)

			if err := c.Events().Release("observer-1"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to release the observer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to release the observer.", success)
		}
	}
}
