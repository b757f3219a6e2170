// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package source

import (
	"runtime"
	"sync/atomic"

	"github.com/opentrng/core/internal/spsc"
)

// AsyncSource adapts a push-style producer running on its own goroutine
// into the synchronous Source contract, per spec.md §5's "each physical
// source may run on its own thread and deliver 32-bit words into a
// bounded lock-free queue." Real physical source drivers are out of
// scope (spec.md §1), but this is the shape one would take: produce runs
// on a dedicated pump goroutine and hands words to Syn/Data/Ack through
// an internal/spsc.Queue, so the reader's tick-synchronous polling never
// blocks on however slow or bursty produce actually is.
type AsyncSource struct {
	queue   *spsc.Queue
	produce func() uint32

	enabled atomic.Bool
	stop    chan struct{}

	pending uint32
	have    bool
}

// NewAsyncSource starts a pump goroutine calling produce in a loop and
// pushing its results into a queue of the given capacity (rounded up to
// a power of two). The source is enabled by default; Close stops the
// pump goroutine and must be called to release it.
func NewAsyncSource(capacity int, produce func() uint32) *AsyncSource {
	a := &AsyncSource{
		queue:   spsc.New(capacity),
		produce: produce,
		stop:    make(chan struct{}),
	}
	a.enabled.Store(true)
	go a.pump()
	return a
}

func (a *AsyncSource) pump() {
	for {
		select {
		case <-a.stop:
			return
		default:
		}
		if !a.queue.Push(a.produce()) {
			// Queue is full; the consumer is behind. Yield rather than
			// spin the producer goroutine hot against a full ring.
			runtime.Gosched()
		}
	}
}

// Close stops the pump goroutine. It does not drain or scrub the queue;
// callers that need that should read any remaining words via Syn/Data/Ack
// first.
func (a *AsyncSource) Close() {
	close(a.stop)
}

func (a *AsyncSource) Enabled() bool     { return a.enabled.Load() }
func (a *AsyncSource) SetEnabled(v bool) { a.enabled.Store(v) }

// Syn reports whether a word is available, pulling one off the queue if
// the previously presented word has already been acknowledged.
func (a *AsyncSource) Syn() bool {
	if a.have {
		return true
	}
	word, ok := a.queue.Pop()
	if !ok {
		return false
	}
	a.pending = word
	a.have = true
	return true
}

func (a *AsyncSource) Data() uint32 { return a.pending }
func (a *AsyncSource) Ack()         { a.have = false }

// QueueLen reports the number of words currently buffered ahead of the
// pending one, for diagnostics and tests.
func (a *AsyncSource) QueueLen() int { return a.queue.Len() }
