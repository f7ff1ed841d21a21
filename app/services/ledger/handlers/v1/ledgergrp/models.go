package ledgergrp

import "github.com/blocklog/blocklog/foundation/ledger/database"

// genesisRequest is what an application submits to root a new ledger.
type genesisRequest struct {
	Data string `json:"data" validate:"required"`
}

// appendRequest is what an application submits to append one block.
type appendRequest struct {
	Data string `json:"data" validate:"required"`
}

// replaceRequest carries a complete candidate chain in persisted form.
type replaceRequest struct {
	Blocks []database.BlockData `json:"blocks" validate:"required,min=1"`
}

// block represents a single ledger block in API responses.
type block struct {
	Number        uint32 `json:"number"`
	Hash          string `json:"hash"`
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     uint64 `json:"timestamp"`
	Data          string `json:"data"`
}

func toBlock(blk database.Block) block {
	return block{
		Number:        blk.Header.Number,
		Hash:          blk.Hash(),
		PrevBlockHash: blk.Header.PrevBlockHash,
		TimeStamp:     blk.Header.TimeStamp,
		Data:          string(blk.Data),
	}
}

func toBlocks(blks []database.Block) []block {
	out := make([]block, len(blks))
	for i, blk := range blks {
		out[i] = toBlock(blk)
	}
	return out
}
