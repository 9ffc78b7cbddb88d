package chans

import (
	"fmt"

	"github.com/rwchan/rwchan/internal/rw"
)

// ErrChannelClosed is reported when an operation targets a channel that
// has already been closed (writes only — reads report end-of-stream,
// which is not an error). It is the exact sentinel the rendezvous engine
// fires with, so errors.Is(err, ErrChannelClosed) works whether err came
// straight from the engine or was wrapped by a Case/Select layer.
var ErrChannelClosed = rw.ErrClosed

// CancelledError wraps the opaque reason carried by a cancellation
// signal (ctx.Err(), in this implementation). It
// satisfies errors.Is against itself so callers can write
// errors.Is(err, new(CancelledError)) style checks, but most callers will
// just inspect the Reason field directly.
type CancelledError struct {
	Reason error
}

func (e *CancelledError) Error() string {
	if e.Reason == nil {
		return "rwchan: cancelled"
	}
	return fmt.Sprintf("rwchan: cancelled: %v", e.Reason)
}

func (e *CancelledError) Unwrap() error {
	return e.Reason
}

// Is reports whether target is also a *CancelledError, regardless of
// Reason — it lets callers use errors.Is(err, &CancelledError{}) as a
// plain type check.
func (e *CancelledError) Is(target error) bool {
	_, ok := target.(*CancelledError)
	return ok
}
