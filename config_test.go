// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package trng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_DefaultConfig(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	is.Equal(24, cfg.NumRounds, "DefaultConfig.NumRounds should be 24")
	is.Equal(uint64(0), cfg.NumBlocks, "DefaultConfig.NumBlocks should defer to the hard cap")
	is.Equal(4, cfg.BufferDepth, "DefaultConfig.BufferDepth should be 4")
}

func Test_Config_WithNumRounds(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	base := DefaultConfig()
	WithNumRounds(12)(&base)

	is.Equal(12, base.NumRounds, "WithNumRounds should override NumRounds")
	is.Equal(4, base.BufferDepth, "WithNumRounds should not affect BufferDepth")
}

func Test_Config_WithNumBlocks(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	base := DefaultConfig()
	WithNumBlocks(1024)(&base)

	is.Equal(uint64(1024), base.NumBlocks, "WithNumBlocks should override NumBlocks")
	is.Equal(24, base.NumRounds, "WithNumBlocks should not affect NumRounds")
}

func Test_Config_WithBufferDepth(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	WithBufferDepth(16)(&cfg)
	is.Equal(16, cfg.BufferDepth, "WithBufferDepth should override BufferDepth")
	is.Equal(24, cfg.NumRounds)
	is.Equal(uint64(0), cfg.NumBlocks)
}

func Test_Config_WithEnablePseudoSource(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	is.False(cfg.EnablePseudoSource, "DefaultConfig.EnablePseudoSource should default to false")

	WithEnablePseudoSource(true)(&cfg)
	is.True(cfg.EnablePseudoSource, "WithEnablePseudoSource should override EnablePseudoSource")
}

func Test_Config_CombinedOptions(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	opts := []Option{
		WithNumRounds(20),
		WithNumBlocks(4096),
		WithBufferDepth(8),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	is.Equal(20, cfg.NumRounds)
	is.Equal(uint64(4096), cfg.NumBlocks)
	is.Equal(8, cfg.BufferDepth)
}
