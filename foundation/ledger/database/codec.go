package database

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCorruptRecord is returned from Decode when the stored bytes can't
// represent a block.
var ErrCorruptRecord = errors.New("corrupt block record")

// recordHeaderSize is the fixed number of bytes that precede the payload
// in an encoded block: number, timestamp, hash, previous hash, and the
// payload length.
const recordHeaderSize = 4 + 8 + HashLength + HashLength + 8

// Encode converts a persisted block into its fixed layout byte sequence:
//
//	[4 byte BE number][8 byte BE timestamp][32 byte hash]
//	[32 byte prev hash][8 byte BE data length][data]
//
// Hashes are written as raw bytes, not hex text.
func Encode(blockData BlockData) ([]byte, error) {
	hash, err := toRawHash(blockData.Hash)
	if err != nil {
		return nil, fmt.Errorf("encoding block %d: %w", blockData.Header.Number, err)
	}

	prevHash, err := toRawHash(blockData.Header.PrevBlockHash)
	if err != nil {
		return nil, fmt.Errorf("encoding block %d: %w", blockData.Header.Number, err)
	}

	record := make([]byte, 0, recordHeaderSize+len(blockData.Data))
	record = binary.BigEndian.AppendUint32(record, blockData.Header.Number)
	record = binary.BigEndian.AppendUint64(record, blockData.Header.TimeStamp)
	record = append(record, hash[:]...)
	record = append(record, prevHash[:]...)
	record = binary.BigEndian.AppendUint64(record, uint64(len(blockData.Data)))
	record = append(record, blockData.Data...)

	return record, nil
}

// Decode converts a fixed layout byte sequence back into a persisted
// block. Decode is the inverse of Encode for all valid blocks. A buffer
// shorter than the fixed header, or a declared payload length that
// exceeds the remaining bytes, fails with ErrCorruptRecord.
func Decode(record []byte) (BlockData, error) {
	if len(record) < recordHeaderSize {
		return BlockData{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrCorruptRecord, len(record), recordHeaderSize)
	}

	var blockData BlockData
	offset := 0

	blockData.Header.Number = binary.BigEndian.Uint32(record[offset:])
	offset += 4

	blockData.Header.TimeStamp = binary.BigEndian.Uint64(record[offset:])
	offset += 8

	blockData.Hash = toHexHash(record[offset : offset+HashLength])
	offset += HashLength

	blockData.Header.PrevBlockHash = toHexHash(record[offset : offset+HashLength])
	offset += HashLength

	dataLen := binary.BigEndian.Uint64(record[offset:])
	offset += 8

	if dataLen > uint64(len(record)-offset) {
		return BlockData{}, fmt.Errorf("%w: declared payload length %d exceeds %d remaining bytes", ErrCorruptRecord, dataLen, len(record)-offset)
	}

	if dataLen > 0 {
		blockData.Data = make([]byte, dataLen)
		copy(blockData.Data, record[offset:offset+int(dataLen)])
	}

	return blockData, nil
}
