// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package cipher implements the ChaCha quarter-round permutation at the
// heart of the CSPRNG's stream-cipher expander. Unlike
// golang.org/x/crypto/chacha20, the round count here is a runtime
// parameter rather than a compile-time constant of 20, because the TRNG
// core's reseed policy needs a configurable num_rounds (minimum 8, default
// 24). The add-rotate-xor quarter round itself, the little-endian word
// layout, and the 64-byte/16-word block size are unchanged from the
// reference ChaCha construction.
package cipher

// BlockWords is the number of 32-bit words in one ChaCha working block.
const BlockWords = 16

// BlockSize is the size, in bytes, of one ChaCha working block (512 bits).
const BlockSize = BlockWords * 4

// MinRounds is the minimum round count this package will run. Anything
// lower is cryptographically unsound for a keystream expander.
const MinRounds = 8

// DefaultRounds is the recommended, and default, round count.
const DefaultRounds = 24

// MaxRounds is the largest round count representable in the 5-bit
// num_rounds configuration field.
const MaxRounds = 31

// Block is the 16-word (512-bit) ChaCha working state: four constant
// words, eight key words, two counter words, and two IV words, in that
// fixed order. Callers outside this package (csprng) are responsible for
// populating those word ranges; Permute only runs the permutation and the
// feed-forward addition.
type Block [BlockWords]uint32

// Permute runs rounds ChaCha rounds over in, as rounds/2 double-rounds
// (an odd count is rounded up to the next even number), then adds the original input words back into the
// result (the standard ChaCha "feed-forward" step that makes the
// permutation one-way), writing the sum to out. in and out may be the
// same pointer.
func Permute(out *Block, in *Block, rounds int) {
	if rounds < MinRounds {
		rounds = MinRounds
	}

	var x Block
	x = *in

	for i := rounds; i > 0; i -= 2 {
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)

		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}

	for i := 0; i < BlockWords; i++ {
		out[i] = x[i] + in[i]
	}
}

// quarterRound applies one ChaCha quarter round to the four words at the
// given indices, in place.
func quarterRound(x *Block, a, b, c, d int) {
	x[a] += x[b]
	x[d] = rotl(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = rotl(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = rotl(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = rotl(x[b]^x[c], 7)
}

func rotl(v uint32, n uint) uint32 {
	return (v << n) | (v >> (32 - n))
}
