// Package rw implements the rendezvous engine: the state machine that
// mediates between a bounded FIFO buffer, a pool of parked readers and a
// pool of parked writers, and decides synchronously whether an operation
// completes immediately, is buffered, hands off to a waiting peer, or must
// park.
//
// RW is scheduler-agnostic: its Try* methods are synchronous, and its
// Park* methods register a callback invoked exactly once — before the
// Park* call returns if the engine can already resolve the operation,
// otherwise later, by a future operation on the same engine or by Close.
// Nothing in this package blocks a goroutine waiting for a peer (the only
// Go channel it owns is the WaitForClose notifier); chans.Channel is the
// layer that bridges RW's callback protocol to blocking Go calls.
package rw

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/rwchan/rwchan/internal/pool"
	"github.com/rwchan/rwchan/internal/ring"
)

//go:generate go run github.com/dmarkham/enumer -type=TryReadResult -trimprefix Read
//go:generate go run github.com/dmarkham/enumer -type=TryWriteResult -trimprefix Write

// TryReadResult is the outcome of RW.TryRead.
type TryReadResult int

const (
	ReadValueReady TryReadResult = iota // a value was available; see the returned value
	ReadEndOfStream                     // closed and drained: no more values will ever arrive
	ReadNotReady                        // nothing available synchronously; park instead
)

// TryWriteResult is the outcome of RW.TryWrite.
type TryWriteResult int

const (
	WriteBuffered   TryWriteResult = iota // stored in the ring buffer
	WriteHandedOff                        // delivered directly to a parked reader
	WriteFull                             // no room and no parked reader; park instead
	WriteClosed                           // the channel is closed; the value was not accepted
)

// RW composes a RingBuffer, a ReaderPool, and a WriterPool into the
// rendezvous engine described by the spec's §4.D. The zero value is not
// usable; construct with New.
type RW[T any] struct {
	mu sync.Mutex

	capacity int
	ring     *ring.Buffer[T] // nil iff capacity == 0 (unbuffered)
	readers  *pool.ReaderPool[T]
	writers  *pool.WriterPool[T]

	closed  bool
	closeCh chan struct{} // lazily created by WaitForClose; closed by Close

	log *zerolog.Logger
}

// New returns a new, open engine with the given capacity (0 means
// unbuffered) and an optional logger (nil defaults to a no-op logger).
func New[T any](capacity int, log *zerolog.Logger) *RW[T] {
	if capacity < 0 {
		capacity = 0
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	e := &RW[T]{
		capacity: capacity,
		readers:  pool.NewReaderPool[T](),
		writers:  pool.NewWriterPool[T](),
		log:      log,
	}
	if capacity > 0 {
		e.ring = ring.New[T](capacity)
	}
	return e
}

// Cap returns the fixed buffer capacity (0 for unbuffered channels).
func (e *RW[T]) Cap() int {
	return e.capacity
}

// Len returns the current buffer occupancy (always 0 for unbuffered
// channels).
func (e *RW[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ring == nil {
		return 0
	}
	return e.ring.Len()
}

// IsClosed reports whether Close has run.
func (e *RW[T]) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// tryReadLocked implements §4.D's try_read algorithm. Must be called with
// e.mu held; it never blocks and never fires a callback itself. toFire, if
// non-nil, is a parked writer the caller must Fire(true, nil) once it has
// released the lock — either because its value was moved into the ring's
// just-vacated slot, or because it was handed off directly to the reader.
func (e *RW[T]) tryReadLocked() (v T, res TryReadResult, toFire *pool.WriteWaiter[T]) {
	if e.ring != nil && e.ring.Len() > 0 {
		val, _ := e.ring.Pop()
		if w, ok := e.writers.Take(); ok {
			// vacated slot is immediately refilled from the parked writer,
			// preserving FIFO order and the invariant that a parked writer
			// only exists while the buffer is full.
			e.ring.Push(w.Value)
			toFire = w
		}
		return val, ReadValueReady, toFire
	}

	if e.closed {
		var zero T
		return zero, ReadEndOfStream, nil
	}

	if w, ok := e.writers.Take(); ok {
		return w.Value, ReadValueReady, w
	}

	var zero T
	return zero, ReadNotReady, nil
}

// TryRead implements §4.D's try_read algorithm.
func (e *RW[T]) TryRead() (T, TryReadResult) {
	e.mu.Lock()
	v, res, toFire := e.tryReadLocked()
	e.mu.Unlock()

	if toFire != nil {
		e.log.Trace().Bool("unparked_writer", true).Msg("rw: read from buffer")
		toFire.Fire(true, nil)
	}
	return v, res
}

// tryWriteLocked implements §4.D's try_write algorithm. Must be called
// with e.mu held; it never blocks and never fires a callback itself.
// toFire, if non-nil, is a parked reader the caller must
// Fire(pool.ReadOutcome[T]{Value: v}) once it has released the lock.
func (e *RW[T]) tryWriteLocked(v T) (res TryWriteResult, toFire *pool.ReadWaiter[T]) {
	if e.closed {
		return WriteClosed, nil
	}

	if r, ok := e.readers.Take(); ok {
		return WriteHandedOff, r
	}

	if e.ring != nil && e.ring.Len() < e.ring.Cap() {
		e.ring.Push(v)
		return WriteBuffered, nil
	}

	return WriteFull, nil
}

// TryWrite implements §4.D's try_write algorithm.
func (e *RW[T]) TryWrite(v T) TryWriteResult {
	e.mu.Lock()
	res, toFire := e.tryWriteLocked(v)
	e.mu.Unlock()

	if toFire != nil {
		e.log.Trace().Msg("rw: direct handoff to reader")
		toFire.Fire(pool.ReadOutcome[T]{Value: v})
	}
	return res
}

// ReadHandle is returned by ParkRead; Cancel disconnects the parked read in
// O(1) without firing its callback.
type ReadHandle[T any] struct {
	e *RW[T]
	w *pool.ReadWaiter[T]
}

// Cancel disconnects the parked read. A no-op if it has already fired, or
// if ParkRead never actually parked it (it resolved synchronously instead
// — see ParkRead).
func (h *ReadHandle[T]) Cancel() {
	if h.w == nil {
		return
	}
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	h.e.readers.Disconnect(h.w)
}

// ParkRead is the atomic "try, and park only if still not ready"
// operation: the whole decision runs under one critical section, so a
// caller that saw TryRead return ReadNotReady and then calls ParkRead
// can never lose a race to a concurrent writer or Close in between the
// two calls — either data, an end-of-stream, or a parked reader is the
// outcome here too, re-derived fresh rather than assumed. If the engine
// resolves synchronously (data was available, or the engine closed, or a
// writer had since parked), cb is invoked before ParkRead returns and the
// returned handle's Cancel is a no-op; otherwise cb fires later, when a
// write or Close reaches this waiter.
func (e *RW[T]) ParkRead(cb func(pool.ReadOutcome[T])) *ReadHandle[T] {
	e.mu.Lock()
	v, res, toFire := e.tryReadLocked()
	if res == ReadNotReady {
		w := e.readers.Connect(cb)
		e.mu.Unlock()
		return &ReadHandle[T]{e: e, w: w}
	}
	e.mu.Unlock()

	if toFire != nil {
		toFire.Fire(true, nil)
	}
	if res == ReadEndOfStream {
		cb(pool.ReadOutcome[T]{Done: true})
	} else {
		cb(pool.ReadOutcome[T]{Value: v})
	}
	return &ReadHandle[T]{e: e}
}

// WriteHandle is returned by ParkWrite; Cancel disconnects the parked
// write in O(1) without firing its callback.
type WriteHandle[T any] struct {
	e *RW[T]
	w *pool.WriteWaiter[T]
}

// Cancel disconnects the parked write. A no-op if it has already fired,
// or if ParkWrite never actually parked it (see ParkWrite).
func (h *WriteHandle[T]) Cancel() {
	if h.w == nil {
		return
	}
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	h.e.writers.Disconnect(h.w)
}

// ParkWrite is the atomic "try, and park only if still full" operation,
// the write-side counterpart of ParkRead: the whole decision runs under
// one critical section, so a caller that saw TryWrite return WriteFull
// and then calls ParkWrite can never lose a race to a concurrent reader
// or Close in between the two calls. If the engine resolves v
// synchronously (room freed up, a reader had since parked, or the engine
// closed), cb is invoked before ParkWrite returns and the returned
// handle's Cancel is a no-op; otherwise cb fires later.
func (e *RW[T]) ParkWrite(v T, cb func(ok bool, reason error)) *WriteHandle[T] {
	e.mu.Lock()
	res, toFire := e.tryWriteLocked(v)
	if res == WriteFull {
		w := e.writers.Connect(v, cb)
		e.mu.Unlock()
		return &WriteHandle[T]{e: e, w: w}
	}
	e.mu.Unlock()

	if toFire != nil {
		toFire.Fire(pool.ReadOutcome[T]{Value: v})
	}
	if res == WriteClosed {
		cb(false, ErrClosed)
	} else {
		cb(true, nil)
	}
	return &WriteHandle[T]{e: e}
}

// Close implements §4.D's close algorithm: idempotent, drains both pools
// and wakes any WaitForClose waiter. Returns true the first time, false on
// every subsequent call.
func (e *RW[T]) Close() bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	e.closed = true

	writersToFire := e.writers.Close()
	readersToFire := e.readers.Close()
	notify := e.closeCh
	e.mu.Unlock()

	for _, w := range writersToFire {
		w.Fire(false, ErrClosed)
	}
	for _, r := range readersToFire {
		r.Fire(pool.ReadOutcome[T]{Done: true})
	}
	if notify != nil {
		close(notify)
	}

	e.log.Debug().Int("parked_writers", len(writersToFire)).Int("parked_readers", len(readersToFire)).Msg("rw: closed")
	return true
}

// WaitForClose returns nil if the engine is already closed, or a channel
// that is closed (empty-struct broadcast, never sent to) when Close runs.
func (e *RW[T]) WaitForClose() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	if e.closeCh == nil {
		e.closeCh = make(chan struct{})
	}
	return e.closeCh
}
