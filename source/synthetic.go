// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package source

// ConstantSource is a synthetic entropy source that always presents the
// same fixed 32-bit word. It is intended for deterministic tests and
// simulation harnesses (spec.md §8, scenario 1's "cold start, synthetic
// constant source").
type ConstantSource struct {
	word    uint32
	enabled bool
}

// NewConstantSource returns a ConstantSource presenting word forever.
func NewConstantSource(word uint32) *ConstantSource {
	return &ConstantSource{word: word, enabled: true}
}

func (s *ConstantSource) Enabled() bool     { return s.enabled }
func (s *ConstantSource) SetEnabled(v bool) { s.enabled = v }
func (s *ConstantSource) Syn() bool         { return true }
func (s *ConstantSource) Data() uint32      { return s.word }
func (s *ConstantSource) Ack()              {}

// PatternSource is a synthetic entropy source that presents its fixed
// word only once every period ticks of an externally driven clock,
// simulating a slower producer (spec.md §8, scenario 2's round-robin
// fairness test). Tick must be called once per core tick by the test
// driver; Syn/Data/Ack are driven by the reader as usual.
type PatternSource struct {
	word    uint32
	period  int
	clock   int
	acked   bool
	enabled bool
}

// NewPatternSource returns a PatternSource presenting word once every
// period calls to Tick. A period of 1 behaves like ConstantSource.
func NewPatternSource(word uint32, period int) *PatternSource {
	if period < 1 {
		period = 1
	}
	return &PatternSource{word: word, period: period, enabled: true}
}

// Tick advances the source's internal clock by one step. Call this once
// per core tick, regardless of whether the source's word is consumed.
func (s *PatternSource) Tick() {
	s.clock++
	s.acked = false
}

func (s *PatternSource) Enabled() bool     { return s.enabled }
func (s *PatternSource) SetEnabled(v bool) { s.enabled = v }

func (s *PatternSource) Syn() bool {
	return !s.acked && s.clock%s.period == 0
}

func (s *PatternSource) Data() uint32 { return s.word }
func (s *PatternSource) Ack()         { s.acked = true }
