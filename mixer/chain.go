// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mixer

import (
	"crypto/sha512"
	"encoding"
	"fmt"
	"hash"
)

// chain is the mixer's hash-chain state. A SHA-512 hash.Hash is absorbed
// into across the mixer's entire lifetime, or until an explicit Restart;
// every full mix block extends the same running message. SHA-512's
// 64-byte (512-bit) digest is exactly the spec's seed fragment size.
//
// No digest library in this codebase's dependency set exposes a
// squeeze-without-finalize primitive, so chain builds one itself on top
// of crypto/sha512's encoding.BinaryMarshaler support: SnapshotDigest
// clones the live hash by marshaling and unmarshaling its state, then
// finalizes only the clone. The live hash is never touched by a
// SnapshotDigest call, preserving the chaining invariant in spec.md §3/§9.
type chain struct {
	h hash.Hash
}

func newChain() *chain {
	return &chain{h: sha512.New()}
}

// Absorb extends the hash-chain's running message with one full mix
// block's worth of bytes.
func (c *chain) Absorb(block []byte) {
	// hash.Hash.Write never returns an error for any of the standard
	// library's hash implementations, including sha512.
	_, _ = c.h.Write(block)
}

// SnapshotDigest returns the digest over everything absorbed so far,
// without finalizing (and thus without disturbing) the chain's live
// state. Callers may continue to Absorb after calling SnapshotDigest.
func (c *chain) SnapshotDigest() [64]byte {
	marshaler, ok := c.h.(encoding.BinaryMarshaler)
	if !ok {
		panic("mixer: hash chain implementation is not clonable")
	}
	state, err := marshaler.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("mixer: failed to snapshot hash chain state: %v", err))
	}

	clone := sha512.New()
	unmarshaler, ok := clone.(encoding.BinaryUnmarshaler)
	if !ok {
		panic("mixer: hash chain clone is not restorable")
	}
	if err := unmarshaler.UnmarshalBinary(state); err != nil {
		panic(fmt.Sprintf("mixer: failed to clone hash chain state: %v", err))
	}

	var digest [64]byte
	copy(digest[:], clone.Sum(nil))
	return digest
}
