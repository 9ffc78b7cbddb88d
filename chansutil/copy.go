// Package chansutil collects small plumbing helpers built on top of
// chans.Channel — the generic analogue of the teacher's util package,
// which wired together io.ReadWriteCloser pairs through a pipe.Pipe.
package chansutil

import (
	"context"
	"errors"
	"sync"

	"github.com/rwchan/rwchan/chans"
)

// Pipe copies every value read from src into dst until src reports
// end-of-stream or ctx is done, then closes dst. It returns the number of
// values copied and any error that stopped the copy early (nil on a clean
// end-of-stream). Adapted from the teacher's util.CopyThrough read/write
// goroutine shape, scaled down to one direction since a single chans.Channel
// already plays both src-reader and dst-writer roles that CopyThrough split
// across an io.Reader and io.Writer pair.
func Pipe[T any](ctx context.Context, src, dst *chans.Channel[T]) (n int64, err error) {
	defer dst.Close()
	for {
		rv, rerr := src.Read(ctx, chans.ReadOptions{Silent: true})
		if rerr != nil {
			return n, rerr
		}
		if rv.Closed() {
			return n, nil
		}
		if rv.Cancelled() {
			return n, rv.Reason
		}

		wv, werr := dst.Write(ctx, rv.Value, chans.WriteOptions{Silent: true})
		if werr != nil {
			return n, werr
		}
		if !wv.OK() {
			return n, wv.Reason
		}
		n++
	}
}

// drain reads src to end-of-stream (or ctx done) without a destination to
// write into, the counterpart of the teacher's lhs_rx goroutine which keeps
// consuming lhs into the pipe's R.Input even when there is no rhs on the
// other side to eventually deliver to.
func drain[T any](ctx context.Context, src *chans.Channel[T]) (n int64, err error) {
	for {
		rv, rerr := src.Read(ctx, chans.ReadOptions{Silent: true})
		if rerr != nil {
			return n, rerr
		}
		if rv.Closed() {
			return n, nil
		}
		if rv.Cancelled() {
			return n, rv.Reason
		}
		n++
	}
}

// copyDirection runs one direction of CopyThrough, treating either side
// being nil as a degraded but well-defined mode rather than a precondition
// violation: a nil src means there is nothing to deliver, so dst (if any)
// is closed immediately — the analogue of the teacher closing R.Output
// right away when rhs is nil. A nil dst means the source keeps draining
// with nowhere to deliver to, the analogue of the teacher's lhs_rx goroutine
// continuing to run regardless of rhs.
func copyDirection[T any](ctx context.Context, src, dst *chans.Channel[T]) (int64, error) {
	if src == nil {
		if dst != nil {
			dst.Close()
		}
		return 0, nil
	}
	if dst == nil {
		return drain(ctx, src)
	}
	return Pipe(ctx, src, dst)
}

// CopyThrough runs two directions concurrently — lhsIn into rhsOut, and
// rhsIn into lhsOut — the channel-pair analogue of the teacher's
// util.CopyThrough, which spliced an LHS and RHS io.ReadWriteCloser
// together through a pipe.Pipe's R/L inputs and outputs. Any of the four
// channels may be nil; each direction degrades independently via
// copyDirection rather than the whole call requiring every channel to be
// present. CopyThrough blocks until both directions finish (or ctx is
// done) and returns the values-copied count for each direction plus any
// joined error.
func CopyThrough[T any](ctx context.Context, lhsIn, lhsOut, rhsIn, rhsOut *chans.Channel[T]) (lhsN, rhsN int64, err error) {
	var (
		wg             sync.WaitGroup
		lhsErr, rhsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		lhsN, lhsErr = copyDirection(ctx, lhsIn, rhsOut)
	}()
	go func() {
		defer wg.Done()
		rhsN, rhsErr = copyDirection(ctx, rhsIn, lhsOut)
	}()
	wg.Wait()

	return lhsN, rhsN, errors.Join(lhsErr, rhsErr)
}
