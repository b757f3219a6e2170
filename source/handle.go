// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package source

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Handle represents one entropy source's lifecycle within the core, per
// spec.md §3's Entropy Source Handle. It is created once at system init
// and never destroyed while the pipeline runs; it may be dynamically
// enabled or disabled by the operator at any time. ID gives every source
// a stable, comparable identity for status reporting and test fixtures.
type Handle struct {
	// ID uniquely identifies this source for the lifetime of the core.
	ID uuid.UUID

	// Source is the underlying producer this handle wraps.
	Source Source

	operatorEnabled atomic.Bool
	healthy         atomic.Bool
}

// NewHandle wraps src in a Handle, assigning it a fresh ID and defaulting
// it to operator-enabled and healthy.
func NewHandle(src Source) *Handle {
	h := &Handle{ID: uuid.New(), Source: src}
	h.operatorEnabled.Store(true)
	h.healthy.Store(true)
	return h
}

// SetEnabled sets the operator-side enable flag. It does not affect the
// source's own self-reported Enabled(); the reader treats a source as
// usable only when both are true.
func (h *Handle) SetEnabled(v bool) {
	h.operatorEnabled.Store(v)
}

// Enabled reports whether this source is both operator-enabled and
// self-reports readiness.
func (h *Handle) Enabled() bool {
	return h.operatorEnabled.Load() && h.Source.Enabled()
}

// Healthy reports the source's aggregated health status, as forwarded to
// the control surface's status output (spec.md §6).
func (h *Handle) Healthy() bool {
	return h.healthy.Load()
}

// SetHealthy records a health update for this source, typically driven by
// an external liveness/online-test collaborator (spec.md §1's "health
// status" attribute).
func (h *Handle) SetHealthy(v bool) {
	h.healthy.Store(v)
}
