package chans

import (
	"github.com/rwchan/rwchan/internal/json"
)

// ReadStatus discriminates the four possible outcomes of a read, the Go
// rendering of the spec's ReadValue{closed, ok} tri-state (closed is
// bool|null in the source spec; an explicit enum reads better in Go than
// a *bool).
type ReadStatus int

const (
	ReadOK        ReadStatus = iota // a value was delivered; see Value
	ReadClosed                      // end-of-stream: the channel is closed and drained
	ReadNotReady                     // TryRead only: nothing available synchronously
	ReadCancelled                    // the read was cancelled before it completed; see Reason
)

// ReadValue is the stable result envelope of TryRead/Read, matching the
// spec's §4.E ReadValue<T> shape: at most one of Status==ReadOK and
// Status==ReadClosed holds, and Reason is only meaningful when
// Status==ReadCancelled.
type ReadValue[T any] struct {
	Status ReadStatus
	Value  T
	Reason error
}

// OK reports whether a value was delivered.
func (r ReadValue[T]) OK() bool { return r.Status == ReadOK }

// Closed reports end-of-stream.
func (r ReadValue[T]) Closed() bool { return r.Status == ReadClosed }

// Cancelled reports that the read was cancelled.
func (r ReadValue[T]) Cancelled() bool { return r.Status == ReadCancelled }

// AppendJSON appends a compact JSON object describing r to dst, for
// structured log fields — the same hand-rolled append-don't-reflect shape
// the teacher's pipe.Context.ToJSON uses instead of encoding/json.
func (r ReadValue[T]) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"status":"`...)
	switch r.Status {
	case ReadOK:
		dst = append(dst, `ok"}`...)
	case ReadClosed:
		dst = append(dst, `closed"}`...)
	case ReadNotReady:
		dst = append(dst, `not_ready"}`...)
	case ReadCancelled:
		dst = append(dst, `cancelled","reason":`...)
		dst = json.Quote(dst, errString(r.Reason))
		dst = append(dst, '}')
	default:
		dst = append(dst, `unknown"}`...)
	}
	return dst
}

// WriteStatus discriminates the outcomes of a write. WriteFullNoRoom is
// only ever returned by TryWrite (a blocking Write never sees it — it
// parks instead).
type WriteStatus int

const (
	WriteOK         WriteStatus = iota // the value was accepted (buffered or handed off)
	WriteFullNoRoom                    // TryWrite only: no room and no parked reader
	WriteErrClosed                     // the channel is closed; see Reason (ErrChannelClosed)
	WriteCancelled                     // the write was cancelled before it completed; see Reason
)

// WriteValue is the stable result envelope of TryWrite/Write, matching
// §4.E's WriteValue shape.
type WriteValue struct {
	Status WriteStatus
	Reason error
}

// OK reports whether the value was accepted.
func (w WriteValue) OK() bool { return w.Status == WriteOK }

// Error reports whether the write failed (closed or cancelled); see Reason.
func (w WriteValue) Error() bool { return w.Status == WriteErrClosed || w.Status == WriteCancelled }

// AppendJSON appends a compact JSON object describing w to dst.
func (w WriteValue) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"status":"`...)
	switch w.Status {
	case WriteOK:
		dst = append(dst, `ok"}`...)
	case WriteFullNoRoom:
		dst = append(dst, `full"}`...)
	case WriteErrClosed:
		dst = append(dst, `closed"}`...)
	case WriteCancelled:
		dst = append(dst, `cancelled","reason":`...)
		dst = json.Quote(dst, errString(w.Reason))
		dst = append(dst, '}')
	default:
		dst = append(dst, `unknown"}`...)
	}
	return dst
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
