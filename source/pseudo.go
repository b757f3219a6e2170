// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build trngpseudo

package source

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// PseudoSource is the synthetic, test-only fourth entropy source noted in
// spec.md §9 as commented out in the reference. It is gated behind the
// trngpseudo build tag and must never be wired into a production source
// list: it is a deterministic expander, not a physical noise source.
//
// It reuses golang.org/x/crypto/chacha20's fixed 20-round cipher directly
// (the teacher's own original CSPRNG dependency) rather than this
// module's configurable-round cipher package: a synthetic test source has
// no need for a tunable round count, and reusing the library the teacher
// already depended on for exactly this kind of fixed-function keystream
// keeps it wired into the module instead of dropped.
type PseudoSource struct {
	stream  *chacha20.Cipher
	enabled bool
	word    uint32
	have    bool
}

// NewPseudoSource seeds a PseudoSource. If seed is non-empty it is copied
// (truncated or zero-padded) into the ChaCha20 key; otherwise a fresh key
// is drawn from crypto/rand.
func NewPseudoSource(seed []byte) (*PseudoSource, error) {
	key := make([]byte, chacha20.KeySize)
	if len(seed) == 0 {
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, fmt.Errorf("source: failed to seed pseudo source: %w", err)
		}
	} else {
		copy(key, seed)
	}

	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("source: failed to construct pseudo source cipher: %w", err)
	}

	return &PseudoSource{stream: stream, enabled: true}, nil
}

func (p *PseudoSource) Enabled() bool     { return p.enabled }
func (p *PseudoSource) SetEnabled(v bool) { p.enabled = v }

// IsPseudoSource marks PseudoSource as requiring Config.EnablePseudoSource
// at Core construction time. See the PseudoSource doc comment.
func (p *PseudoSource) IsPseudoSource() bool { return true }

func (p *PseudoSource) Syn() bool {
	if !p.have {
		p.fill()
	}
	return p.have
}

func (p *PseudoSource) Data() uint32 { return p.word }
func (p *PseudoSource) Ack()         { p.have = false }

func (p *PseudoSource) fill() {
	var b [4]byte
	p.stream.XORKeyStream(b[:], b[:])
	p.word = binary.LittleEndian.Uint32(b[:])
	p.have = true
}
