// Package chans implements the public façade of the CSP-style channel
// primitive: Channel, the arm-able Case views used by Select, and Select
// itself.
//
// The rendezvous engine underneath (internal/rw) is callback-based and
// scheduler-agnostic; this package is the one adapter layer the spec
// describes as external to the core (§1) — here, the host scheduler is
// simply goroutines, so Read/Write block the calling goroutine instead of
// returning a future, and context.Context plays the role of the spec's
// AbortSignalLike. See SPEC_FULL.md's Open Questions for the rationale.
package chans

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rwchan/rwchan/internal/pool"
	"github.com/rwchan/rwchan/internal/rw"
)

// Channel is a typed, bounded communication endpoint coupling one or more
// producers with one or more consumers, per §3.
type Channel[T any] struct {
	id            uint64
	rw            *rw.RW[T]
	log           *zerolog.Logger
	defaultSilent bool
}

// NewChannel returns a new, open Channel. A negative Options.Capacity is
// treated as 0 (unbuffered), per §6.
func NewChannel[T any](opts Options) *Channel[T] {
	capacity := opts.Capacity
	if capacity < 0 {
		capacity = 0
	}
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	c := &Channel[T]{
		id:            channelIDs.Add(1),
		rw:            rw.New[T](capacity, log),
		log:           log,
		defaultSilent: opts.DefaultSilent,
	}
	registerChannel(c.id, c)
	c.log.Trace().Uint64("id", c.id).Int("cap", capacity).Msg("chans: new channel")
	return c
}

func (c *Channel[T]) debugInfo() ChannelInfo {
	return ChannelInfo{
		ID:       c.id,
		Capacity: c.rw.Cap(),
		Len:      c.rw.Len(),
		Closed:   c.rw.IsClosed(),
	}
}

// Len returns the current buffer occupancy (0 for an unbuffered channel).
func (c *Channel[T]) Len() int { return c.rw.Len() }

// Cap returns the fixed buffer capacity (0 for an unbuffered channel).
func (c *Channel[T]) Cap() int { return c.rw.Cap() }

// IsClosed reports whether Close has run.
func (c *Channel[T]) IsClosed() bool { return c.rw.IsClosed() }

// String renders the channel the way a crash dump renders a native Go
// channel's debug form, scaled up with the fields that matter for this
// implementation (ported from the idiomatic surface of runtime/chan.go's
// own debug printing, not its internals — see SPEC_FULL.md).
func (c *Channel[T]) String() string {
	return fmt.Sprintf("Channel(id=%d, cap=%d, len=%d, closed=%t)", c.id, c.rw.Cap(), c.rw.Len(), c.rw.IsClosed())
}

// TryRead implements the synchronous try_read of §4.D, exposed directly.
func (c *Channel[T]) TryRead() ReadValue[T] {
	v, res := c.rw.TryRead()
	return tryReadValue(v, res)
}

// Read blocks the calling goroutine until a value is available, the
// channel is closed, or ctx is done. On NotReady, it parks a reader and
// waits — the blocking call itself is this implementation's suspension
// point, per the Open Question decision in SPEC_FULL.md.
func (c *Channel[T]) Read(ctx context.Context, opts ReadOptions) (ReadValue[T], error) {
	silent := opts.Silent || c.defaultSilent

	if v, res := c.rw.TryRead(); res != rw.ReadNotReady {
		return tryReadValue(v, res), nil
	}

	if err := ctx.Err(); err != nil {
		return cancelledRead[T](err, silent)
	}

	type result struct {
		v   T
		res rw.TryReadResult
	}
	done := make(chan result, 1)
	handle := c.rw.ParkRead(func(o pool.ReadOutcome[T]) {
		if o.Done {
			done <- result{res: rw.ReadEndOfStream}
		} else {
			done <- result{v: o.Value, res: rw.ReadValueReady}
		}
	})

	select {
	case r := <-done:
		return tryReadValue(r.v, r.res), nil
	case <-ctx.Done():
		handle.Cancel()
		return cancelledRead[T](ctx.Err(), silent)
	}
}

func tryReadValue[T any](v T, res rw.TryReadResult) ReadValue[T] {
	switch res {
	case rw.ReadEndOfStream:
		return ReadValue[T]{Status: ReadClosed}
	case rw.ReadNotReady:
		return ReadValue[T]{Status: ReadNotReady}
	default:
		return ReadValue[T]{Status: ReadOK, Value: v}
	}
}

func cancelledRead[T any](reason error, silent bool) (ReadValue[T], error) {
	if silent {
		return ReadValue[T]{Status: ReadCancelled, Reason: reason}, nil
	}
	return ReadValue[T]{}, &CancelledError{Reason: reason}
}

// TryWrite implements the synchronous try_write of §4.D, exposed
// directly.
func (c *Channel[T]) TryWrite(v T) WriteValue {
	switch c.rw.TryWrite(v) {
	case rw.WriteBuffered, rw.WriteHandedOff:
		return WriteValue{Status: WriteOK}
	case rw.WriteClosed:
		return WriteValue{Status: WriteErrClosed, Reason: ErrChannelClosed}
	default:
		return WriteValue{Status: WriteFullNoRoom}
	}
}

// Write blocks the calling goroutine until v is accepted, the channel is
// closed, or ctx is done.
func (c *Channel[T]) Write(ctx context.Context, v T, opts WriteOptions) (WriteValue, error) {
	silent := opts.Silent || c.defaultSilent

	switch c.rw.TryWrite(v) {
	case rw.WriteBuffered, rw.WriteHandedOff:
		return WriteValue{Status: WriteOK}, nil
	case rw.WriteClosed:
		return closedOrCancelledWrite(ErrChannelClosed, silent)
	}

	if err := ctx.Err(); err != nil {
		return closedOrCancelledWrite(err, silent)
	}

	type result struct {
		ok     bool
		reason error
	}
	done := make(chan result, 1)
	handle := c.rw.ParkWrite(v, func(ok bool, reason error) {
		done <- result{ok: ok, reason: reason}
	})

	select {
	case r := <-done:
		if r.ok {
			return WriteValue{Status: WriteOK}, nil
		}
		return closedOrCancelledWrite(r.reason, silent)
	case <-ctx.Done():
		handle.Cancel()
		return closedOrCancelledWrite(ctx.Err(), silent)
	}
}

func closedOrCancelledWrite(reason error, silent bool) (WriteValue, error) {
	status := WriteCancelled
	if reason == ErrChannelClosed {
		status = WriteErrClosed
	}
	if silent {
		return WriteValue{Status: status, Reason: reason}, nil
	}
	if status == WriteErrClosed {
		return WriteValue{}, ErrChannelClosed
	}
	return WriteValue{}, &CancelledError{Reason: reason}
}

// Close implements §4.D's close: idempotent, drains both pools, wakes any
// WaitForClose waiter, and removes the channel from DebugRegistry.
// Returns true the first time, false on every subsequent call.
func (c *Channel[T]) Close() bool {
	closed := c.rw.Close()
	if closed {
		unregisterChannel(c.id)
		c.log.Trace().Uint64("id", c.id).Msg("chans: channel closed")
	}
	return closed
}

// WaitForClose returns nil if already closed, or a channel that is closed
// when Close runs.
func (c *Channel[T]) WaitForClose() <-chan struct{} {
	return c.rw.WaitForClose()
}

// ReadCase returns a fresh, arm-able view of a read on c. Every call
// returns a distinct instance — read_case() === read_case() is false,
// per §9's note on Case identity, until the caller binds one instance and
// reuses it via Reset.
func (c *Channel[T]) ReadCase() *ReadCase[T] {
	return &ReadCase[T]{ch: c}
}

// WriteCase returns a fresh, arm-able view of a write of v on c.
func (c *Channel[T]) WriteCase(v T) *WriteCase[T] {
	return &WriteCase[T]{ch: c, value: v}
}

var (
	neverMu    sync.Mutex
	neverChans = map[reflect.Type]any{}

	closedMu    sync.Mutex
	closedChans = map[reflect.Type]any{}
)

// Never returns the shared "never" channel for T: constructed once, never
// closed, never written. Reading it always blocks (or parks) forever;
// selecting on it alongside other cases is a no-op filler case. Lazily
// initialized per T, the generic analogue of the spec's single global
// singleton (§6, §9).
func Never[T any]() *Channel[T] {
	neverMu.Lock()
	defer neverMu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := neverChans[t]; ok {
		return v.(*Channel[T])
	}
	c := NewChannel[T](Options{})
	neverChans[t] = c
	return c
}

// Closed returns the shared "closed" channel for T: constructed once and
// closed immediately. Reading it always reports end-of-stream.
func Closed[T any]() *Channel[T] {
	closedMu.Lock()
	defer closedMu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := closedChans[t]; ok {
		return v.(*Channel[T])
	}
	c := NewChannel[T](Options{})
	c.Close()
	closedChans[t] = c
	return c
}
