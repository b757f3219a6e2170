// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package buffer implements the TRNG core's rate-decoupling output
// buffer (spec.md §4.5): a FIFO ring of fixed-depth 512-bit keystream
// slots, read out one 32-bit lane at a time, that lets the CSPRNG
// produce blocks at its own pace while consumers drain individual words
// at theirs.
package buffer

import (
	"encoding/binary"

	"github.com/opentrng/core/internal/scrub"
)

// SlotWords is the number of 32-bit lanes in one output slot (512 bits).
const SlotWords = 16

// SlotSize is the byte size of one output slot.
const SlotSize = SlotWords * 4

// Buffer is a ring of depth 512-bit slots. It is not safe for concurrent
// use: per spec.md §5, the CSPRNG writes it and the consumer drains it
// from the same tick-owning goroutine.
type Buffer struct {
	slots [][SlotWords]uint32
	depth int

	// r indexes the oldest slot still holding unread lanes; w indexes
	// where the next Push lands. lane is the next lane to read within
	// slots[r], 0 meaning bits[31:0] through SlotWords-1 meaning
	// bits[511:480] (spec.md §4.5's word_index ordering).
	r, w, lane int
	count      int // number of slots (fully or partially) occupied
}

// New returns an empty Buffer with room for depth slots. depth is
// clamped up to 1.
func New(depth int) *Buffer {
	if depth < 1 {
		depth = 1
	}
	return &Buffer{
		slots: make([][SlotWords]uint32, depth),
		depth: depth,
	}
}

// NeedsMore reports whether the buffer has room for at least one more
// 512-bit slot — the CSPRNG's need_more input (spec.md §4.4).
func (b *Buffer) NeedsMore() bool {
	return b.count < b.depth
}

// Full reports whether every slot is occupied.
func (b *Buffer) Full() bool {
	return b.count == b.depth
}

// Len reports the number of slots currently holding unread data (a
// partially drained slot still counts as one).
func (b *Buffer) Len() int {
	return b.count
}

// Push appends one 512-bit keystream block, little-endian per lane. It
// returns false if the buffer is full; the CSPRNG is expected to have
// already checked NeedsMore before generating the block, so this should
// only happen under a race between two goroutines driving the same core,
// which spec.md §5 disallows.
func (b *Buffer) Push(block [64]byte) bool {
	if b.Full() {
		return false
	}

	var slot [SlotWords]uint32
	for i := 0; i < SlotWords; i++ {
		slot[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	b.slots[b.w] = slot
	b.w = (b.w + 1) % b.depth
	b.count++
	return true
}

// ReadWord pops the next 32-bit lane in FIFO, lowest-bit-range-first
// order. It returns false if the buffer holds no unread data.
func (b *Buffer) ReadWord() (uint32, bool) {
	if b.count == 0 {
		return 0, false
	}

	word := b.slots[b.r][b.lane]
	b.lane++
	if b.lane == SlotWords {
		scrub.Words(b.slots[b.r][:])
		b.lane = 0
		b.r = (b.r + 1) % b.depth
		b.count--
	}
	return word, true
}

// Read implements io.Reader by draining whole 32-bit words into p. It
// never blocks: if fewer than 4 bytes of room remain in p or no word is
// currently available, it returns what it could fill (possibly zero)
// with a nil error. Callers wanting a guaranteed fill should loop on
// NeedsMore/ReadWord instead, since a core under load may have nothing
// buffered yet.
func (b *Buffer) Read(p []byte) (int, error) {
	n := 0
	for len(p)-n >= 4 {
		word, ok := b.ReadWord()
		if !ok {
			break
		}
		binary.LittleEndian.PutUint32(p[n:], word)
		n += 4
	}
	return n, nil
}

// Discard implements the `discard` command's effect on the output
// buffer (spec.md §6): every slot is zeroized and the ring is reset to
// empty.
func (b *Buffer) Discard() {
	for i := range b.slots {
		scrub.Words(b.slots[i][:])
	}
	b.r, b.w, b.lane, b.count = 0, 0, 0, 0
}
