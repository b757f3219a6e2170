// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package source defines the TRNG core's uniform producer interface over
// one physical entropy source, the round-robin reader that fairly
// interleaves words from many such sources into the mixer's blocks, and a
// handful of synthetic sources used for deterministic testing.
//
// Physical source drivers (noise digitization, whitening, health checks)
// are explicitly out of scope per spec.md §1; this package only defines
// the contract the core consumes and the fairness guarantee the reader
// provides over it.
package source

// Source is the uniform producer interface every entropy source, physical
// or synthetic, must implement. It mirrors spec.md §4.1's register-level
// contract: when Syn reports true, Data is valid and stable until Ack is
// called; after Ack, the source may present its next word asynchronously.
// Implementations must never block: Syn()/Data() must return immediately,
// and a false Syn must be treated by callers as "no word available now."
type Source interface {
	// Enabled reports the source's own self-reported readiness. It is
	// combined (ANDed) with the operator-set enable flag on the Handle
	// that wraps this Source.
	Enabled() bool

	// Syn reports whether a word is currently available.
	Syn() bool

	// Data returns the currently pending word. Only valid while Syn is
	// true; the value is stable until Ack is called.
	Data() uint32

	// Ack tells the source the reader has consumed the pending word.
	Ack()
}

// PseudoSourceMarker is implemented by source.NewPseudoSource's synthetic
// expander so that callers (namely Core construction) can recognize it
// without an unconditional import of a trngpseudo-build-tagged type.
// IsPseudoSource always reports true for a real implementer; absence of
// this interface is what lets a plain Source through unchallenged.
type PseudoSourceMarker interface {
	IsPseudoSource() bool
}
