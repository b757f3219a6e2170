// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.
//
// Package trng assembles the round-robin reader, hash-chain mixer,
// ChaCha-derived CSPRNG, and rate-decoupling output buffer into a single
// tick-driven core, exposed as an io.Reader alongside a command mailbox
// and read-only status surface.

package trng

import "github.com/opentrng/core/cipher"

// Config defines the tunable parameters for a Core.
//
// Fields:
//   - NumRounds: number of cipher rounds per keystream block.
//   - NumBlocks: reseed threshold, in 512-bit blocks, per CSPRNG epoch.
//   - BufferDepth: number of 512-bit slots in the output buffer ring.
//   - EnablePseudoSource: runtime gate on the synthetic pseudo source.
type Config struct {
	// NumRounds is the number of rounds the cipher permutation runs per
	// keystream block. Clamped up to cipher.MinRounds if lower.
	// If set to zero, a default of 24 is used.
	NumRounds int

	// NumBlocks is the number of 512-bit blocks the CSPRNG generates
	// before it forces a fresh two-fragment reseed. Clamped down to the
	// hard cap of 1<<60 if zero or larger.
	NumBlocks uint64

	// BufferDepth is the number of 512-bit slots in the output buffer's
	// ring. New returns ErrInvalidBufferDepth if it is zero or negative.
	BufferDepth int

	// EnablePseudoSource must be true for New to accept a source built
	// by source.NewPseudoSource in the source list. It is false by
	// default: the pseudo source is a deterministic expander, not a
	// physical noise source, and New refuses it otherwise. New applies
	// this check to any source implementing source.PseudoSourceMarker;
	// source.PseudoSource itself exists only in builds with the
	// trngpseudo build tag.
	EnablePseudoSource bool
}

// Default configuration constants for the TRNG core.
const (
	defaultNumRounds   = cipher.DefaultRounds
	defaultBufferDepth = 4
)

// DefaultConfig returns a Config struct populated with production-safe,
// recommended defaults.
//
// Defaults:
//   - NumRounds: 24
//   - NumBlocks: 0, which the CSPRNG resolves to the hard cap of 1 << 60
//   - BufferDepth: 4
//
// Example usage:
//
//	cfg := trng.DefaultConfig()
func DefaultConfig() Config {
	return Config{
		NumRounds:   defaultNumRounds,
		NumBlocks:   0, // resolved to the hard cap by the csprng package
		BufferDepth: defaultBufferDepth,
	}
}

// Option defines a functional option for customizing a Config.
//
// Use Option values with New.
//
// Example:
//
//	core, err := trng.New(trng.DefaultConfig(), sources,
//	    trng.WithNumRounds(20),
//	    trng.WithBufferDepth(8),
//	)
type Option func(*Config)

// WithNumRounds returns an Option that sets the cipher permutation's
// round count.
//
// Lower only if you understand the security margin you are giving up;
// the minimum enforced at construction is cipher.MinRounds.
func WithNumRounds(n int) Option {
	return func(cfg *Config) { cfg.NumRounds = n }
}

// WithNumBlocks returns an Option that sets the CSPRNG's reseed
// threshold, in 512-bit blocks.
//
// Lower this to reseed more often at the cost of mixer throughput.
func WithNumBlocks(n uint64) Option {
	return func(cfg *Config) { cfg.NumBlocks = n }
}

// WithBufferDepth returns an Option that sets the output buffer's slot
// count.
//
// Increase this to absorb bursty consumers without stalling the CSPRNG.
func WithBufferDepth(n int) Option {
	return func(cfg *Config) { cfg.BufferDepth = n }
}

// WithEnablePseudoSource returns an Option that gates whether New will
// accept a source.NewPseudoSource-built source in the source list. Only
// enable this in tests and simulation harnesses.
func WithEnablePseudoSource(v bool) Option {
	return func(cfg *Config) { cfg.EnablePseudoSource = v }
}
