// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package trng

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/opentrng/core/buffer"
	"github.com/opentrng/core/control"
	"github.com/opentrng/core/csprng"
	"github.com/opentrng/core/mixer"
	"github.com/opentrng/core/source"
)

// ErrInvalidBufferDepth is returned by New when Config.BufferDepth is not
// a positive number of slots.
var ErrInvalidBufferDepth = errors.New("trng: buffer depth must be at least 1")

// ErrPseudoSourceNotEnabled is returned by New when the source list
// contains a synthetic pseudo source (see source.NewPseudoSource) but
// Config.EnablePseudoSource was not set.
var ErrPseudoSourceNotEnabled = errors.New("trng: pseudo source present without Config.EnablePseudoSource")

// maxStallTicks bounds how many consecutive ticks Read will drive the
// core looking for output before giving up. It exists only to keep a
// misuse (e.g. Read called with every source disabled) from spinning
// forever; a correctly configured core with at least one live source
// produces output well within this bound.
const maxStallTicks = 1 << 16

// Interface defines the contract for a complete TRNG core: a
// cryptographically secure source of random bytes built from physical
// entropy sources rather than a single seeded cipher.
//
// Implementations of Interface provide an io.Reader, backed
// by the round-robin reader, hash-chain mixer, CSPRNG, and output buffer
// described in this module's design. The Config method allows callers to
// retrieve a copy of the immutable, non-secret configuration in effect,
// without exposing any key material or mutable internal state.
type Interface interface {
	io.Reader

	// Config returns a copy of the configuration in effect for this
	// core. The returned Config contains only non-secret, immutable
	// parameters and omits any runtime state or cipher key material.
	Config() Config
}

// Core wires the round-robin reader, hash-chain mixer, CSPRNG, output
// buffer, and command mailbox into a single tick-driven pipeline. It
// implements Interface, making it usable anywhere an io.Reader of
// cryptographically strong random bytes is expected.
//
// A Core is driven by repeated, non-blocking calls to Tick — directly,
// via Run's internal ticker, or implicitly through Read. It is not safe
// for concurrent Tick/Read calls from multiple goroutines: the pipeline
// is cooperative single-threaded state stepping, per this module's
// concurrency model. Status, by contrast, is safe to call concurrently
// with Tick from any number of goroutines.
type Core struct {
	config Config

	reader  *source.Reader
	mixer   *mixer.Mixer
	csprng  *csprng.CSPRNG
	buffer  *buffer.Buffer
	mailbox *control.Mailbox

	// status holds the most recently published control.Status, rebuilt
	// once per tick. Readers load it without blocking the tick-owning
	// goroutine.
	status atomic.Value
}

// New constructs a Core from a base Config, a list of entropy sources,
// and any functional options, which are applied over the base Config
// before validation.
//
// Each source is wrapped in its own source.Handle, defaulting to
// operator-enabled and healthy. The list may be empty; a core with no
// sources simply never finds a word to fill a mix-block slot, so its Read
// returns io.ErrNoProgress. New returns an
// error if the resulting configuration is invalid, rather than panicking
// — unlike a degenerate cryptographic seed, a bad buffer depth is a
// caller mistake, not a security event.
//
// Example:
//
//	core, err := trng.New(trng.DefaultConfig(), sources,
//	    trng.WithNumRounds(20),
//	)
//	if err != nil {
//	    // handle error
//	}
//	buf := make([]byte, 32)
//	n, err := core.Read(buf)
func New(cfg Config, sources []source.Source, opts ...Option) (*Core, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.NumRounds == 0 {
		cfg.NumRounds = defaultNumRounds
	}

	if cfg.BufferDepth <= 0 {
		return nil, ErrInvalidBufferDepth
	}

	if !cfg.EnablePseudoSource {
		for _, s := range sources {
			if p, ok := s.(source.PseudoSourceMarker); ok && p.IsPseudoSource() {
				return nil, ErrPseudoSourceNotEnabled
			}
		}
	}

	handles := make([]*source.Handle, len(sources))
	for i, s := range sources {
		handles[i] = source.NewHandle(s)
	}

	rdr := source.NewReader(handles)
	mx := mixer.New()
	buf := buffer.New(cfg.BufferDepth)
	gen := csprng.New(mx, buf, cfg.NumRounds, cfg.NumBlocks)
	mb := control.NewMailbox()

	c := &Core{
		config:  cfg,
		reader:  rdr,
		mixer:   mx,
		csprng:  gen,
		buffer:  buf,
		mailbox: mb,
	}
	c.refreshStatus()
	return c, nil
}

// Config returns a copy of the core's configuration.
func (c *Core) Config() Config {
	return c.config
}

// Sources returns the core's entropy source handles, in the order
// passed to New, so an operator can toggle per-source enable bits at
// runtime (the Configuration surface's "per-source enable bits").
func (c *Core) Sources() []*source.Handle {
	return c.reader.Handles()
}

// SetEnabled writes the level-triggered enable command. When false, the
// CSPRNG and mixer halt at their next tick; sources continue presenting
// words at operator discretion.
func (c *Core) SetEnabled(v bool) {
	c.mailbox.SetEnable(v)
}

// Reseed raises the reseed pulse: the CSPRNG discards its current epoch
// and runs a fresh two-fragment seeding cycle. The mixer's hash chain is
// left intact.
func (c *Core) Reseed() {
	c.mailbox.Reseed()
}

// Discard raises the discard pulse: the output buffer is flushed and
// both the CSPRNG and mixer transition to their cancel state. The hash
// chain is preserved; use Restart for that.
func (c *Core) Discard() {
	c.mailbox.Discard()
}

// Restart raises the restart pulse: the mixer's hash chain itself is
// reinitialized from scratch, and the output buffer is flushed alongside
// the CSPRNG's cipher state, exactly as Discard does. Unlike Discard, any
// entropy already absorbed into the hash chain is lost; use this only for
// an explicit, operator-issued full restart (spec.md §9).
func (c *Core) Restart() {
	c.mailbox.Restart()
}

// Status returns the most recently published read-only status snapshot.
// It is safe to call from any goroutine, including concurrently with
// Tick or Read.
func (c *Core) Status() control.Status {
	if v := c.status.Load(); v != nil {
		return v.(control.Status)
	}
	return control.Status{Identity: control.DefaultIdentity}
}

// Tick advances every pipeline stage by exactly one non-blocking step:
// it observes pending commands, feeds the mixer from the round-robin
// reader, steps the mixer and CSPRNG state machines, and republishes
// Status. Tick never blocks; a stage that cannot make progress this tick
// (no word available, no room in the buffer) simply sits still until a
// later call.
func (c *Core) Tick() {
	// Step 1: pulses are consumed exactly once, at the start of the tick
	// they were observed on, per this module's "not retroactive" command
	// visibility rule.
	if c.mailbox.TakeRestart() {
		c.mixer.Restart()
		c.csprng.Discard()
	} else if c.mailbox.TakeDiscard() {
		c.mixer.Discard()
		c.csprng.Discard()
	}
	if c.mailbox.TakeReseed() {
		c.csprng.Reseed()
	}

	// Step 2: the level-triggered enable command halts both state
	// machines for as long as it reads false.
	enabled := c.mailbox.Enabled()
	c.csprng.SetEnabled(enabled)
	if !enabled {
		c.mixer.Discard()
	}

	// Step 3: feed at most one word into the mixer's in-progress mix
	// block, if it wants one and the round-robin reader has one ready.
	if c.mixer.NeedsWord() {
		if word, ok := c.reader.FillSlot(); ok {
			c.mixer.FillSlot(word)
		}
	}

	// Step 4: advance the mixer and CSPRNG state machines by one step
	// each, in pipeline order.
	c.mixer.Step()
	c.csprng.Step()

	c.refreshStatus()
}

// Run drives Tick on a fixed interval until ctx is cancelled, returning
// ctx.Err(). It is a convenience for hosting a Core outside of a Read
// loop — for example, to keep the output buffer topped up in the
// background while a separate goroutine drains it via Read.
func (c *Core) Run(ctx context.Context, tickInterval time.Duration) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Read fills p with cryptographically secure random bytes, implementing
// io.Reader. It first drains whatever the output buffer already holds,
// then drives the pipeline one tick at a time until either p is full or
// no tick makes progress for maxStallTicks consecutive attempts (for
// example, because every entropy source is disabled), in which case Read
// returns what it filled so far alongside io.ErrNoProgress.
func (c *Core) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(p) {
		got, _ := c.buffer.Read(p[n:])
		if got == 0 && len(p)-n < 4 {
			// The tail is shorter than one word: consume one whole word
			// and copy only the bytes that fit.
			if word, ok := c.buffer.ReadWord(); ok {
				var tail [4]byte
				binary.LittleEndian.PutUint32(tail[:], word)
				got = copy(p[n:], tail[:])
			}
		}
		n += got
		if n == len(p) {
			return n, nil
		}
		if got > 0 {
			continue
		}

		progressed := false
		for i := 0; i < maxStallTicks; i++ {
			c.Tick()
			if c.buffer.Len() > 0 {
				progressed = true
				break
			}
		}
		if !progressed {
			return n, io.ErrNoProgress
		}
	}
	return n, nil
}

func (c *Core) refreshStatus() {
	handles := c.reader.Handles()
	healths := make([]control.SourceHealth, len(handles))
	for i, h := range handles {
		healths[i] = control.SourceHealth{
			ID:      h.ID.String(),
			Enabled: h.Enabled(),
			Healthy: h.Healthy(),
		}
	}

	c.status.Store(control.Status{
		Identity:      control.DefaultIdentity,
		CSPRNGReady:   c.csprng.Ready(),
		RndValid:      c.buffer.Len() > 0,
		SecurityError: control.SecurityErrorOf(healths),
		BlockBudget:   c.csprng.Budget(),
		Sources:       healths,
	})
}
