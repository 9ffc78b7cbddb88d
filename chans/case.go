package chans

import (
	"github.com/rwchan/rwchan/dir"
	"github.com/rwchan/rwchan/internal/pool"
	"github.com/rwchan/rwchan/internal/rw"
)

// Connection is returned by a Case's invoke; Disconnect cancels the
// underlying park in O(1). Calling Disconnect after the case has already
// fired is a safe no-op.
type Connection struct {
	disconnect func()
}

// Disconnect cancels the parked operation this connection armed.
func (c *Connection) Disconnect() {
	if c != nil && c.disconnect != nil {
		c.disconnect()
	}
}

// caseOp is the internal contract Select needs from a Case — both
// ReadCase and WriteCase implement it. It is unexported: callers only
// ever construct cases via Channel.ReadCase/WriteCase and only ever pass
// them to Select; reading a fired outcome happens through the concrete
// type's own Outcome accessor.
type caseOp interface {
	reset()
	// tryInvoke attempts synchronous completion. ready reports whether the
	// case completed (outcome stored); abortErr is non-nil only for a
	// non-silent WriteCase hitting a closed channel, which per §4.F
	// aborts the whole select immediately rather than completing a case.
	tryInvoke(silent bool) (ready bool, abortErr error)
	// invoke parks the operation, arming onFire to run exactly once when
	// it completes (fires) later.
	invoke(onFire func()) *Connection
}

// ReadCase is a reusable, arm-able view over a read on one channel,
// returned by Channel.ReadCase. Distinct ReadCase instances compare by
// identity only (§3) — Select and callers discriminate "which case fired"
// by pointer, not by value.
type ReadCase[T any] struct {
	ch      *Channel[T]
	fired   bool
	outcome ReadValue[T]
}

// Reset clears the stored outcome so the case can be reused in a
// subsequent Select.
func (rc *ReadCase[T]) Reset() {
	rc.fired = false
	rc.outcome = ReadValue[T]{}
}

// Outcome returns the stored outcome and true if this case has fired
// since construction or the last Reset; otherwise ok is false.
func (rc *ReadCase[T]) Outcome() (ReadValue[T], bool) {
	return rc.outcome, rc.fired
}

// Dir reports the direction this case operates in: always dir.Read.
func (rc *ReadCase[T]) Dir() dir.Dir { return dir.Read }

func (rc *ReadCase[T]) reset() { rc.Reset() }

func (rc *ReadCase[T]) tryInvoke(bool) (bool, error) {
	v, res := rc.ch.rw.TryRead()
	outcome := tryReadValue(v, res)
	if outcome.Status == ReadNotReady {
		return false, nil
	}
	rc.outcome = outcome
	rc.fired = true
	return true, nil
}

func (rc *ReadCase[T]) invoke(onFire func()) *Connection {
	handle := rc.ch.rw.ParkRead(func(o pool.ReadOutcome[T]) {
		if o.Done {
			rc.outcome = ReadValue[T]{Status: ReadClosed}
		} else {
			rc.outcome = ReadValue[T]{Status: ReadOK, Value: o.Value}
		}
		rc.fired = true
		onFire()
	})
	return &Connection{disconnect: handle.Cancel}
}

// WriteCase is a reusable, arm-able view over a write of a fixed value on
// one channel, returned by Channel.WriteCase.
type WriteCase[T any] struct {
	ch      *Channel[T]
	value   T
	fired   bool
	outcome WriteValue
}

// Reset clears the stored outcome so the case can be reused.
func (wc *WriteCase[T]) Reset() {
	wc.fired = false
	wc.outcome = WriteValue{}
}

// Outcome returns the stored outcome and true if this case has fired
// since construction or the last Reset.
func (wc *WriteCase[T]) Outcome() (WriteValue, bool) {
	return wc.outcome, wc.fired
}

// Dir reports the direction this case operates in: always dir.Write.
func (wc *WriteCase[T]) Dir() dir.Dir { return dir.Write }

func (wc *WriteCase[T]) reset() { wc.Reset() }

func (wc *WriteCase[T]) tryInvoke(silent bool) (bool, error) {
	switch wc.ch.rw.TryWrite(wc.value) {
	case rw.WriteBuffered, rw.WriteHandedOff:
		wc.outcome = WriteValue{Status: WriteOK}
		wc.fired = true
		return true, nil
	case rw.WriteClosed:
		if silent {
			wc.outcome = WriteValue{Status: WriteErrClosed, Reason: ErrChannelClosed}
			wc.fired = true
			return true, nil
		}
		return false, ErrChannelClosed
	default: // rw.WriteFull
		return false, nil
	}
}

func (wc *WriteCase[T]) invoke(onFire func()) *Connection {
	handle := wc.ch.rw.ParkWrite(wc.value, func(ok bool, reason error) {
		if ok {
			wc.outcome = WriteValue{Status: WriteOK}
		} else {
			wc.outcome = WriteValue{Status: WriteErrClosed, Reason: reason}
		}
		wc.fired = true
		onFire()
	})
	return &Connection{disconnect: handle.Cancel}
}
