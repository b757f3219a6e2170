// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fillBlock drives m through exactly one full COLLECT cycle with a fixed
// word, returning once the block is full (m is left in StateAbsorb-ready
// COLLECT, i.e. NeedsWord() is false).
func fillBlock(m *Mixer, word uint32) {
	for m.NeedsWord() {
		m.FillSlot(word)
	}
}

// Test_Mixer_IdleUntilRequested verifies the mixer never leaves IDLE
// without an explicit RequestSeed, and never asks for words while idle.
func Test_Mixer_IdleUntilRequested(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := New()
	is.Equal(StateIdle, m.State())
	is.False(m.NeedsWord())

	for i := 0; i < 5; i++ {
		m.Step()
	}
	is.Equal(StateIdle, m.State(), "mixer must stay IDLE without a seed request")
}

// Test_Mixer_FullReseedCycle drives a mixer through both fragments of a
// reseed transaction and checks state transitions at every step.
func Test_Mixer_FullReseedCycle(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := New()
	m.RequestSeed()

	m.Step() // IDLE -> COLLECT
	is.Equal(StateCollect, m.State())
	is.True(m.NeedsWord())

	fillBlock(m, 0xAAAAAAAA)
	is.False(m.NeedsWord())

	m.Step() // COLLECT -> ABSORB
	is.Equal(StateAbsorb, m.State())

	m.Step() // ABSORB -> EMIT
	is.Equal(StateEmit, m.State())
	frag1, ready := m.Fragment()
	is.True(ready)

	// EMIT stalls until acknowledged.
	m.Step()
	is.Equal(StateEmit, m.State())

	m.AckFragment() // EMIT -> COLLECT (first fragment of the pair consumed)
	is.Equal(StateCollect, m.State())

	fillBlock(m, 0xBBBBBBBB)
	m.Step() // COLLECT -> ABSORB
	m.Step() // ABSORB -> EMIT
	is.Equal(StateEmit, m.State())
	frag2, ready := m.Fragment()
	is.True(ready)

	is.NotEqual(frag1, frag2, "two fragments of the same reseed pair must differ")

	m.AckFragment() // second ack completes the transaction
	is.Equal(StateIdle, m.State(), "mixer should return to IDLE after both fragments are acked")
}

// Test_Mixer_ChainPersistsAcrossReseeds confirms the hash chain is never
// reinitialized between reseed transactions: running a second reseed
// cycle with identical input bytes must NOT reproduce the first cycle's
// fragments, because the chain's state has already advanced.
func Test_Mixer_ChainPersistsAcrossReseeds(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := New()

	drawPair := func() ([64]byte, [64]byte) {
		m.RequestSeed()
		var frags [2][64]byte
		for i := 0; i < 2; i++ {
			for m.State() != StateEmit {
				if m.NeedsWord() {
					m.FillSlot(0x11111111)
				}
				m.Step()
			}
			f, _ := m.Fragment()
			frags[i] = f
			m.AckFragment()
		}
		return frags[0], frags[1]
	}

	first0, first1 := drawPair()
	second0, second1 := drawPair()

	is.NotEqual(first0, second0, "identical input must diverge after chain has advanced")
	is.NotEqual(first1, second1)
}

// Test_Mixer_DiscardIdempotent checks that issuing Discard twice in
// succession yields the same externally observable state as issuing it
// once.
func Test_Mixer_DiscardIdempotent(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := New()
	m.RequestSeed()
	m.Step() // IDLE -> COLLECT
	fillBlock(m, 0xCCCCCCCC)

	m.Discard()
	m.Discard()
	m.Step()

	is.Equal(StateIdle, m.State())
	is.Equal(0, m.block.Len())
	is.False(m.NeedsWord())
}

// Test_Mixer_DiscardPreservesChain confirms that Discard clears the
// in-flight mix block but leaves the hash chain itself untouched — a
// subsequent reseed must still diverge from a prior one, proving the
// chain kept running.
func Test_Mixer_DiscardPreservesChain(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := New()
	m.RequestSeed()
	m.Step() // IDLE -> COLLECT
	fillBlock(m, 0xDDDDDDDD)
	m.Step() // COLLECT -> ABSORB
	m.Step() // ABSORB -> EMIT
	frag1, _ := m.Fragment()
	m.AckFragment()

	m.Discard()
	m.Step() // CANCEL -> IDLE

	m.RequestSeed()
	m.Step() // IDLE -> COLLECT
	fillBlock(m, 0xDDDDDDDD)
	m.Step()
	m.Step()
	frag2, _ := m.Fragment()

	is.NotEqual(frag1, frag2, "chain state must have advanced despite the discard")
}

// Test_Mixer_Restart verifies that Restart (unlike Discard) reinitializes
// the hash chain: two identical absorb sequences after independent
// Restarts must produce identical fragments.
func Test_Mixer_Restart(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	run := func() [64]byte {
		m := New()
		m.Restart()
		m.RequestSeed()
		m.Step() // IDLE -> COLLECT
		fillBlock(m, 0xEEEEEEEE)
		m.Step()
		m.Step()
		f, _ := m.Fragment()
		return f
	}

	is.Equal(run(), run(), "restarted chains given identical input must match")
}
