// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package trng

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opentrng/core/source"
)

// Fuzz_Core_Read fuzzes Read across a range of buffer sizes against a
// core backed by a single always-ready synthetic source, checking that
// Read always fills the requested length without error.
func Fuzz_Core_Read(f *testing.F) {
	f.Add(0)
	f.Add(1)
	f.Add(16)
	f.Add(64)
	f.Add(1000)
	f.Add(4096)

	f.Fuzz(func(t *testing.T, size int) {
		if size < 0 || size > 1<<16 {
			t.Skip()
		}

		is := assert.New(t)
		src := source.NewConstantSource(0x01234567)
		core, err := New(DefaultConfig(), []source.Source{src})
		is.NoError(err, "New should not error")

		buf := make([]byte, size)
		n, err := core.Read(buf)
		is.NoError(err, "Read should not return an error for a live source")
		is.Equal(size, n, "expected %d bytes from Read", size)
	})
}

// Fuzz_New_BufferDepth fuzzes Core construction across buffer depths,
// checking that only non-positive depths are rejected.
func Fuzz_New_BufferDepth(f *testing.F) {
	f.Add(0)
	f.Add(-1)
	f.Add(1)
	f.Add(4)
	f.Add(256)

	f.Fuzz(func(t *testing.T, depth int) {
		is := assert.New(t)

		_, err := New(DefaultConfig(), nil, WithBufferDepth(depth))
		if depth <= 0 {
			is.ErrorIs(err, ErrInvalidBufferDepth)
			return
		}
		is.NoError(err)
	})
}
