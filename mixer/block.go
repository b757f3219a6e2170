// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mixer

import (
	"encoding/binary"

	"github.com/opentrng/core/internal/scrub"
)

// blockSlots is the number of 32-bit words absorbed into one mix block
// (1024 bits).
const blockSlots = 32

// Block is a 1024-bit buffer filled one 32-bit slot at a time by the
// round-robin reader. Slots must be filled in strictly ascending order; a
// block is full only once every slot has been written since the last
// Reset.
type Block struct {
	slots [blockSlots]uint32
	n     int
}

// Full reports whether every slot has been written since the last Reset.
func (b *Block) Full() bool {
	return b.n >= blockSlots
}

// Push writes the next word into the block's next slot in order. It
// returns false if the block is already full.
func (b *Block) Push(word uint32) bool {
	if b.Full() {
		return false
	}
	b.slots[b.n] = word
	b.n++
	return true
}

// Len reports how many slots have been filled since the last Reset.
func (b *Block) Len() int {
	return b.n
}

// Reset scrubs the block's contents and returns it to empty.
func (b *Block) Reset() {
	scrub.Words(b.slots[:])
	b.n = 0
}

// Bytes packs the block's 32 words into a 128-byte, little-endian buffer
// suitable for absorption into the hash chain.
func (b *Block) Bytes() []byte {
	out := make([]byte, blockSlots*4)
	for i, w := range b.slots {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
