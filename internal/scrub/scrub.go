// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package scrub provides explicit zeroization primitives for key material,
// working state, and buffered output that must not survive a discard or
// reseed. Go's compiler is free to elide writes to values it can prove are
// dead, so callers must not rely on ordinary assignment or value-drop
// semantics to clear sensitive memory; these helpers force every byte to be
// written and kept alive until the write completes.
package scrub

import "runtime"

// Bytes overwrites b with zeroes in place.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Words overwrites a slice of 32-bit words with zeroes in place.
func Words(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}

// Uint64 returns zero; callers assign the result to the field being
// scrubbed. Provided for symmetry with Bytes/Words so call sites read
// uniformly (x = scrub.Uint64()) instead of mixing raw literals in.
func Uint64() uint64 {
	return 0
}
