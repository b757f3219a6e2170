// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Mailbox_EnableIsLevelTriggered(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := NewMailbox()
	is.True(m.Enabled())

	m.SetEnable(false)
	is.False(m.Enabled())
	is.False(m.Enabled(), "reading enable must not consume it, unlike a pulse")
}

func Test_Mailbox_ReseedAndDiscardAreOneShotPulses(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := NewMailbox()
	is.False(m.TakeReseed())
	is.False(m.TakeDiscard())

	m.Reseed()
	is.True(m.TakeReseed())
	is.False(m.TakeReseed(), "a pulse must not be observed twice")

	m.Discard()
	is.True(m.TakeDiscard())
	is.False(m.TakeDiscard())
}

func Test_Mailbox_RestartIsAOneShotPulse(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	m := NewMailbox()
	is.False(m.TakeRestart())

	m.Restart()
	is.True(m.TakeRestart())
	is.False(m.TakeRestart(), "a pulse must not be observed twice")
}

func Test_SecurityErrorOf(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	is.False(SecurityErrorOf(nil))
	is.False(SecurityErrorOf([]SourceHealth{{Healthy: true}, {Healthy: true}}))
	is.True(SecurityErrorOf([]SourceHealth{{Healthy: true}, {Healthy: false}}))
}

func Test_DefaultIdentity(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	is.Equal("trng", DefaultIdentity.Name)
	is.Equal("    ", DefaultIdentity.Reserved)
	is.Equal("0.01", DefaultIdentity.Version)
}
