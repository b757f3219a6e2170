// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package source

// Reader implements the round-robin fair reader from spec.md §4.2. It
// fills one mix-block slot at a time: starting from a persistent rotating
// cursor, it scans the source list for the first enabled source currently
// presenting a word, acks it, and advances the cursor by exactly one
// (modulo the source count) regardless of which source actually supplied
// the word — this is what prevents a high-rate source from dominating
// the cursor's progress (spec.md §4.2's ordering guarantee).
type Reader struct {
	handles []*Handle
	cursor  int
}

// NewReader returns a Reader over the given ordered list of source
// handles. The list is not copied; callers must not mutate its length
// concurrently with reader use (handles may still be individually
// enabled/disabled at any time).
func NewReader(handles []*Handle) *Reader {
	return &Reader{handles: handles}
}

// FillSlot attempts to fill one mix-block slot. It returns the word and
// true on success. If no enabled source is currently presenting a word,
// it returns (0, false) and does not advance the cursor — the caller
// (the mixer, via its COLLECT state) simply retries on its next tick,
// per spec.md §4.2's stall semantics. The reader itself never fails.
func (r *Reader) FillSlot() (uint32, bool) {
	n := len(r.handles)
	if n == 0 {
		return 0, false
	}

	for i := 0; i < n; i++ {
		idx := (r.cursor + i) % n
		h := r.handles[idx]
		if !h.Enabled() || !h.Source.Syn() {
			continue
		}

		word := h.Source.Data()
		h.Source.Ack()
		r.cursor = (r.cursor + 1) % n
		return word, true
	}

	return 0, false
}

// Handles returns the reader's source list, for status reporting.
func (r *Reader) Handles() []*Handle {
	return r.handles
}
