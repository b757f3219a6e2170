// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package spsc provides a lock-free single-producer/single-consumer ring
// buffer of 32-bit words. It exists so that a physical entropy source
// driver running on its own goroutine can hand words to the core's
// round-robin reader without a mutex: the producer owns the write cursor,
// the consumer owns the read cursor, and the two sides only ever
// communicate through atomic loads/stores of those cursors.
package spsc

import "sync/atomic"

// Queue is a bounded ring buffer of uint32 words with exactly one producer
// and one consumer goroutine. Capacity is rounded to the next power of two
// so that index wrapping is a mask instead of a modulo.
type Queue struct {
	buf  []uint32
	mask uint64

	// w is the cumulative number of words written. Only the producer
	// goroutine may modify it.
	w uint64

	// r is the cumulative number of words read. Only the consumer
	// goroutine may modify it.
	r uint64
}

// New returns a Queue with capacity for at least size words.
func New(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	n := 1
	for n < size {
		n <<= 1
	}
	return &Queue{
		buf:  make([]uint32, n),
		mask: uint64(n - 1),
	}
}

// Push appends one word to the queue. It returns false if the queue is
// full; the caller (the source's pump goroutine) is expected to retry on
// its next poll rather than block.
func (q *Queue) Push(word uint32) bool {
	w := q.w
	r := atomic.LoadUint64(&q.r)
	if w-r >= uint64(len(q.buf)) {
		return false
	}
	q.buf[w&q.mask] = word
	atomic.StoreUint64(&q.w, w+1)
	return true
}

// Pop removes and returns one word from the queue. It returns false if the
// queue is empty; the caller (the round-robin reader) treats this exactly
// like a source presenting syn=false.
func (q *Queue) Pop() (uint32, bool) {
	r := q.r
	w := atomic.LoadUint64(&q.w)
	if r == w {
		return 0, false
	}
	word := q.buf[r&q.mask]
	atomic.StoreUint64(&q.r, r+1)
	return word, true
}

// Len reports the number of words currently queued. It is safe to call
// from either side but, like any concurrent size query, is only a
// snapshot.
func (q *Queue) Len() int {
	w := atomic.LoadUint64(&q.w)
	r := atomic.LoadUint64(&q.r)
	return int(w - r)
}
