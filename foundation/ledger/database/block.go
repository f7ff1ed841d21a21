// Package database maintains the block model, the hash chain construction
// rules, the binary codec, and the storage contract for persisting the
// ledger inside an ordered key-value store.
package database

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is the previous block hash
// carried by the genesis block, which has no real predecessor.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// HashLength is the number of raw bytes in a block hash.
const HashLength = 32

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint32 `json:"number"`          // Position of the block in the ledger, starting at 0.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the ledger.
	TimeStamp     uint64 `json:"timestamp"`       // Milliseconds since epoch when the block was created.
}

// Block represents one immutable record in the ledger. The payload is
// opaque to the ledger and owned by the application.
type Block struct {
	Header BlockHeader
	Data   []byte
}

// Hash returns the unique hash for the block. The preimage is the canonical
// concatenation of the block number, the timestamp, the raw previous hash
// and the payload. The hash field itself is never part of its own preimage.
//
// A previous hash that is not valid 32 byte hex text cannot be part of any
// preimage, so Hash returns the ZeroHash sentinel for it. Such a block
// never passes ValidateBlock: its previous hash can't match any real
// predecessor's hash, and a genesis block must carry the zero sentinel.
func (b Block) Hash() string {
	prev, err := toRawHash(b.Header.PrevBlockHash)
	if err != nil {
		return ZeroHash
	}

	pre := make([]byte, 0, 4+8+HashLength+len(b.Data))
	pre = binary.BigEndian.AppendUint32(pre, b.Header.Number)
	pre = binary.BigEndian.AppendUint64(pre, b.Header.TimeStamp)
	pre = append(pre, prev[:]...)
	pre = append(pre, b.Data...)

	hash := sha256.Sum256(pre)
	return hexutil.Encode(hash[:])
}

// =============================================================================

// BlockData represents what is written to the store for each block. The
// hash travels with the block so tampering with any persisted field is
// detectable on validation.
type BlockData struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"block"`
	Data   []byte      `json:"data"`
}

// NewBlockData constructs the value to persist from the specified block.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Hash:   block.Hash(),
		Header: block.Header,
		Data:   block.Data,
	}
}

// ToBlock converts a BlockData back into a Block.
func ToBlock(blockData BlockData) Block {
	return Block{
		Header: blockData.Header,
		Data:   blockData.Data,
	}
}

// ValidateBlock takes a persisted block and validates it against the hash
// chain rules using the specified previous block. A genesis block is
// identified strictly by its number being zero, never by the shape of its
// payload. The previous block is ignored for the genesis block.
func (bd BlockData) ValidateBlock(prevBlock BlockData, evHandler func(v string, args ...any)) error {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: ValidateBlock: blk[%d]: check: stored hash matches recomputed hash", bd.Header.Number)

	if hash := ToBlock(bd).Hash(); bd.Hash != hash {
		return fmt.Errorf("block hash doesn't match block contents, got %s, exp %s", bd.Hash, hash)
	}

	if bd.Header.Number == 0 {
		ev("database: ValidateBlock: blk[0]: check: genesis previous hash is the zero sentinel")

		if bd.Header.PrevBlockHash != ZeroHash {
			return fmt.Errorf("genesis block carries a previous hash, got %s", bd.Header.PrevBlockHash)
		}
		return nil
	}

	ev("database: ValidateBlock: blk[%d]: check: block number is the next number", bd.Header.Number)

	if bd.Header.Number != prevBlock.Header.Number+1 {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", bd.Header.Number, prevBlock.Header.Number+1)
	}

	ev("database: ValidateBlock: blk[%d]: check: previous hash matches previous block", bd.Header.Number)

	if bd.Header.PrevBlockHash != prevBlock.Hash {
		return fmt.Errorf("previous block hash doesn't match our known previous, got %s, exp %s", bd.Header.PrevBlockHash, prevBlock.Hash)
	}

	ev("database: ValidateBlock: blk[%d]: check: timestamp is greater than previous block's timestamp", bd.Header.Number)

	if bd.Header.TimeStamp <= prevBlock.Header.TimeStamp {
		return fmt.Errorf("block timestamp is not after previous block, previous %d, block %d", prevBlock.Header.TimeStamp, bd.Header.TimeStamp)
	}

	return nil
}

// =============================================================================

// toRawHash converts the hex text representation of a hash into its raw
// 32 byte form.
func toRawHash(hash string) ([HashLength]byte, error) {
	var raw [HashLength]byte

	data, err := hexutil.Decode(hash)
	if err != nil {
		return raw, fmt.Errorf("decoding hash %q: %w", hash, err)
	}
	if len(data) != HashLength {
		return raw, fmt.Errorf("hash %q is %d bytes, exp %d", hash, len(data), HashLength)
	}

	copy(raw[:], data)
	return raw, nil
}

// toHexHash converts a raw hash into its hex text representation.
func toHexHash(raw []byte) string {
	return hexutil.Encode(raw)
}
