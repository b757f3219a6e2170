// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package control implements the TRNG core's command mailbox and
// read-only status surface (spec.md §4.6, §6): the three level-sensitive
// commands (enable, reseed, discard) the operator writes, and the
// identification tuple and aggregated health the operator reads back.
package control

import "sync/atomic"

// Identity is the fixed name/version tuple exposed at well-known offsets
// (spec.md §6, "Identification"). Fields are fixed-width, space-padded
// strings rather than arbitrary ones, matching the reference's opaque
// register-mapped layout.
type Identity struct {
	Name    string
	Reserved string
	Version string
}

// DefaultIdentity is the identity tuple this implementation reports.
var DefaultIdentity = Identity{Name: "trng", Reserved: "    ", Version: "0.01"}

// Mailbox holds the command inputs from spec.md §6 plus the operator
// restart noted in spec.md §9's design notes. enable is level-triggered:
// its current value is read on every tick. reseed, discard, and restart
// are pulses: a write latches true until the core observes and clears it
// on its next tick, per spec.md §5's "not retroactive" command visibility
// rule.
type Mailbox struct {
	enable  atomic.Bool
	reseed  atomic.Bool
	discard atomic.Bool
	restart atomic.Bool
}

// NewMailbox returns a Mailbox with enable asserted, matching the core's
// default run state.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.enable.Store(true)
	return m
}

// SetEnable writes the level-triggered enable input.
func (m *Mailbox) SetEnable(v bool) {
	m.enable.Store(v)
}

// Enabled reads the current enable level.
func (m *Mailbox) Enabled() bool {
	return m.enable.Load()
}

// Reseed raises the reseed pulse.
func (m *Mailbox) Reseed() {
	m.reseed.Store(true)
}

// Discard raises the discard pulse.
func (m *Mailbox) Discard() {
	m.discard.Store(true)
}

// Restart raises the restart pulse: an explicit, operator-issued request
// to reinitialize the mixer's hash chain itself, distinct from the
// in-flight-mix-block-only Discard.
func (m *Mailbox) Restart() {
	m.restart.Store(true)
}

// TakeReseed reports whether the reseed pulse is pending and clears it.
// It is meant to be called exactly once per core tick.
func (m *Mailbox) TakeReseed() bool {
	return m.reseed.CompareAndSwap(true, false)
}

// TakeDiscard reports whether the discard pulse is pending and clears
// it. It is meant to be called exactly once per core tick.
func (m *Mailbox) TakeDiscard() bool {
	return m.discard.CompareAndSwap(true, false)
}

// TakeRestart reports whether the restart pulse is pending and clears
// it. It is meant to be called exactly once per core tick.
func (m *Mailbox) TakeRestart() bool {
	return m.restart.CompareAndSwap(true, false)
}

// SourceHealth is one entropy source's forwarded health flags, keyed by
// its handle identity (spec.md §6, "per-source health").
type SourceHealth struct {
	ID      string
	Enabled bool
	Healthy bool
}

// Status is a read-only snapshot of the core's external status surface
// (spec.md §6). It is rebuilt by the core once per tick, not mutated in
// place, so callers may safely retain a copy.
type Status struct {
	Identity      Identity
	CSPRNGReady   bool
	RndValid      bool
	SecurityError bool
	BlockBudget   uint64
	Sources       []SourceHealth
}

// SecurityErrorOf aggregates per-source health into the TRNG-wide
// security_error status: the OR of every source's unhealthy flag
// (spec.md §7, "Source health failure").
func SecurityErrorOf(sources []SourceHealth) bool {
	for _, s := range sources {
		if !s.Healthy {
			return true
		}
	}
	return false
}
