package chans

import (
	"context"
	"math/rand"
	"sync/atomic"
)

// SelectOptions configures a Select call.
type SelectOptions struct {
	// Default, if non-nil, is invoked and its result returned immediately
	// when no case is ready synchronously — Select never parks in this
	// mode, per §4.F's non-blocking select variant.
	Default func() int

	// Silent makes a write case that hits a closed channel fire with a
	// WriteErrClosed outcome recorded on that case instead of returning
	// ErrChannelClosed, and makes a cancelled Select return -1 with a nil
	// error instead of a *CancelledError; the cancellation reason is not
	// reported in that case.
	Silent bool
}

// Select arms every non-nil entry of cases and returns the index (into
// cases, unchanged by any nil entries) of exactly one that fires, per
// §4.G:
//
//  1. If ctx is already done, fail fast (silent or error, per opts.Silent).
//  2. Nil entries are dropped from consideration — the same role a nil
//     channel plays in a native Go select, disabling that case without
//     disabling the whole call.
//  3. If nothing is left after dropping nils: with a Default, return its
//     result immediately; otherwise block until ctx is done (which, for a
//     context that is never cancelled, means never returning).
//  4. Every remaining case's outcome slot is reset.
//  5. The remaining cases are tried synchronously in a Fisher-Yates-shuffled
//     order, so a tie between several ready cases resolves uniformly rather
//     than by position.
//  6. If none completed synchronously and a Default is set, return its
//     result.
//  7. Otherwise every remaining case is armed to fire asynchronously, and
//     Select blocks until the first one fires or ctx is done, then
//     disconnects every other armed case.
//
// The winning case's Outcome is available via its own Outcome() accessor
// after Select returns; Select itself only reports which case won.
func Select(ctx context.Context, cases []caseOp, opts SelectOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return cancelledSelect(err, opts.Silent)
	}

	live := make([]int, 0, len(cases))
	for i, c := range cases {
		if c != nil {
			live = append(live, i)
		}
	}

	if len(live) == 0 {
		if opts.Default != nil {
			return opts.Default(), nil
		}
		<-ctx.Done()
		return cancelledSelect(ctx.Err(), opts.Silent)
	}

	for _, i := range live {
		cases[i].reset()
	}

	order := shuffledCopy(live)

	for _, i := range order {
		ready, abortErr := cases[i].tryInvoke(opts.Silent)
		if abortErr != nil {
			return -1, abortErr
		}
		if ready {
			return i, nil
		}
	}

	if opts.Default != nil {
		return opts.Default(), nil
	}

	type winner struct {
		index int
	}
	done := make(chan winner, 1)
	conns := make([]*Connection, len(cases))

	var once boolFlag
	for _, i := range live {
		idx := i
		conns[idx] = cases[idx].invoke(func() {
			if once.setTrue() {
				done <- winner{index: idx}
			}
		})
	}

	disconnectAllExcept := func(winnerIdx int) {
		for _, i := range live {
			if i != winnerIdx {
				conns[i].Disconnect()
			}
		}
	}

	select {
	case w := <-done:
		disconnectAllExcept(w.index)
		return w.index, nil
	case <-ctx.Done():
		disconnectAllExcept(-1)
		return cancelledSelect(ctx.Err(), opts.Silent)
	}
}

// boolFlag is a tiny CAS-guarded latch so only the first case to fire
// wins the race against a concurrent ctx cancellation or a second
// near-simultaneous fire from another parked case.
type boolFlag struct {
	v int32
}

func (f *boolFlag) setTrue() bool {
	return atomic.CompareAndSwapInt32(&f.v, 0, 1)
}

func cancelledSelect(reason error, silent bool) (int, error) {
	if silent {
		return -1, nil
	}
	return -1, &CancelledError{Reason: reason}
}

// shuffledCopy returns a Fisher-Yates shuffle of a copy of idx, the
// standard algorithm for unbiased random ordering (see e.g. the peer-list
// shuffle in yarpc-go's peer/x/circus package), applied here to case
// order so a synchronous tie between ready cases resolves fairly.
func shuffledCopy(idx []int) []int {
	out := make([]int, len(idx))
	copy(out, idx)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
