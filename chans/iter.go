package chans

import (
	"context"
	"iter"
)

// All returns a range-over-func iterator that yields successive values
// read from c until end-of-stream or ctx is done, per the Open Question
// decision in SPEC_FULL.md to expose Go 1.23 iterators as a convenience
// wrapper over Read rather than a second engine path. A cancellation
// (including ctx expiring mid-read) simply stops the iteration; it does
// not surface the cancellation reason to the caller — callers that need
// the reason should use Read directly instead of ranging.
//
//	for v := range chans.All(ctx, c) {
//		...
//	}
func All[T any](ctx context.Context, c *Channel[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			rv, err := c.Read(ctx, ReadOptions{Silent: true})
			if err != nil || !rv.OK() {
				return
			}
			if !yield(rv.Value) {
				return
			}
		}
	}
}
