// Package pool implements the reader and writer pools that the rendezvous
// engine dispatches to: unordered collections of parked operations, picked
// uniformly at random for fairness, and closeable (drained) as a unit.
//
// Neither pool ever invokes a waiter's completion callback itself — Take
// and Close hand the selected/drained waiters back to the caller, which is
// expected to fire them outside of whatever lock it took to call in here.
// That split exists so the engine (internal/rw) can satisfy the "release
// the lock before invoking user callbacks" rule without this package
// needing to know anything about locking.
package pool

import (
	"math/rand"

	"github.com/rwchan/rwchan/internal/waiter"
)

// ReadOutcome is delivered to a parked reader's callback when it fires.
// Done true means end-of-stream; otherwise Value is the delivered value.
type ReadOutcome[T any] struct {
	Done  bool
	Value T
}

// ReadWaiter is a parked read, returned by ReaderPool.Connect and handed
// back (for firing) by ReaderPool.Take/Close.
type ReadWaiter[T any] struct {
	cb func(ReadOutcome[T])
}

// Fire invokes the waiter's callback exactly once. Calling it more than
// once is a programmer error (a waiter is only ever reachable from one of
// Take/Close, which each return it exactly once).
func (w *ReadWaiter[T]) Fire(o ReadOutcome[T]) {
	w.cb(o)
}

// ReaderPool is an unordered collection of parked reads.
type ReaderPool[T any] struct {
	set    *waiter.Set[*ReadWaiter[T]]
	closed bool
}

// NewReaderPool returns an empty, open ReaderPool.
func NewReaderPool[T any]() *ReaderPool[T] {
	return &ReaderPool[T]{set: waiter.New[*ReadWaiter[T]]()}
}

// Len returns the number of currently parked reads.
func (p *ReaderPool[T]) Len() int {
	return p.set.Len()
}

// IsClosed reports whether Close has already run.
func (p *ReaderPool[T]) IsClosed() bool {
	return p.closed
}

// Connect parks a new read with the given completion callback and returns
// its handle. Calling Connect on a closed pool is a programmer error — the
// engine must check IsClosed itself before parking (a closed engine never
// parks new readers in the first place).
func (p *ReaderPool[T]) Connect(cb func(ReadOutcome[T])) *ReadWaiter[T] {
	if p.closed {
		panic("pool: connect on a closed ReaderPool")
	}
	w := &ReadWaiter[T]{cb: cb}
	p.set.Push(w)
	return w
}

// Disconnect removes w; a no-op if w is not currently parked (already
// fired or already disconnected).
func (p *ReaderPool[T]) Disconnect(w *ReadWaiter[T]) {
	p.set.Remove(w)
}

// Take removes and returns a uniformly random parked read. ok is false iff
// the pool is empty. The caller is responsible for firing the returned
// waiter.
func (p *ReaderPool[T]) Take() (*ReadWaiter[T], bool) {
	n := p.set.Len()
	if n == 0 {
		return nil, false
	}
	return p.set.RemoveByIndex(rand.Intn(n)), true
}

// Close marks the pool closed and drains every parked read, returning them
// for the caller to fire with an end-of-stream outcome. Idempotent: after
// the first call, Close returns nil every time.
func (p *ReaderPool[T]) Close() []*ReadWaiter[T] {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.set.Drain()
}

// WriteWaiter is a parked write, returned by WriterPool.Connect and handed
// back (for firing) by WriterPool.Take/Close.
type WriteWaiter[T any] struct {
	Value T
	cb    func(ok bool, reason error)
}

// Fire invokes the waiter's callback exactly once.
func (w *WriteWaiter[T]) Fire(ok bool, reason error) {
	w.cb(ok, reason)
}

// WriterPool is an unordered collection of parked writes.
type WriterPool[T any] struct {
	set    *waiter.Set[*WriteWaiter[T]]
	closed bool
}

// NewWriterPool returns an empty, open WriterPool.
func NewWriterPool[T any]() *WriterPool[T] {
	return &WriterPool[T]{set: waiter.New[*WriteWaiter[T]]()}
}

// Len returns the number of currently parked writes.
func (p *WriterPool[T]) Len() int {
	return p.set.Len()
}

// IsClosed reports whether Close has already run.
func (p *WriterPool[T]) IsClosed() bool {
	return p.closed
}

// Connect parks a new write carrying v with the given completion callback
// and returns its handle.
func (p *WriterPool[T]) Connect(v T, cb func(ok bool, reason error)) *WriteWaiter[T] {
	if p.closed {
		panic("pool: connect on a closed WriterPool")
	}
	w := &WriteWaiter[T]{Value: v, cb: cb}
	p.set.Push(w)
	return w
}

// Disconnect removes w; a no-op if w is not currently parked.
func (p *WriterPool[T]) Disconnect(w *WriteWaiter[T]) {
	p.set.Remove(w)
}

// Take removes and returns a uniformly random parked write. ok is false
// iff the pool is empty. The caller is responsible for firing the
// returned waiter with (true, nil) once its value has been consumed.
func (p *WriterPool[T]) Take() (*WriteWaiter[T], bool) {
	n := p.set.Len()
	if n == 0 {
		return nil, false
	}
	return p.set.RemoveByIndex(rand.Intn(n)), true
}

// Close marks the pool closed and drains every parked write, returning
// them for the caller to fire with (false, reason).
func (p *WriterPool[T]) Close() []*WriteWaiter[T] {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.set.Drain()
}
