package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderPool_TakeFiresExactlyOne(t *testing.T) {
	p := NewReaderPool[int]()
	var fired []int
	for i := 0; i < 5; i++ {
		i := i
		p.Connect(func(o ReadOutcome[int]) { fired = append(fired, i) })
	}
	require.Equal(t, 5, p.Len())

	w, ok := p.Take()
	require.True(t, ok)
	w.Fire(ReadOutcome[int]{Value: 42})
	require.Len(t, fired, 1)
	require.Equal(t, 4, p.Len())
}

func TestReaderPool_TakeEmpty(t *testing.T) {
	p := NewReaderPool[int]()
	_, ok := p.Take()
	require.False(t, ok)
}

func TestReaderPool_Disconnect(t *testing.T) {
	p := NewReaderPool[int]()
	w := p.Connect(func(ReadOutcome[int]) { t.Fatal("must not fire") })
	p.Disconnect(w)
	require.Equal(t, 0, p.Len())
}

func TestReaderPool_CloseIsIdempotentAndDrains(t *testing.T) {
	p := NewReaderPool[int]()
	var doneCount int
	for i := 0; i < 3; i++ {
		p.Connect(func(o ReadOutcome[int]) {
			require.True(t, o.Done)
			doneCount++
		})
	}

	drained := p.Close()
	require.Len(t, drained, 3)
	for _, w := range drained {
		w.Fire(ReadOutcome[int]{Done: true})
	}
	require.Equal(t, 3, doneCount)
	require.True(t, p.IsClosed())

	// second call is a no-op
	require.Nil(t, p.Close())
}

func TestReaderPool_ConnectOnClosedPanics(t *testing.T) {
	p := NewReaderPool[int]()
	p.Close()
	require.Panics(t, func() { p.Connect(func(ReadOutcome[int]) {}) })
}

func TestWriterPool_TakeReturnsValue(t *testing.T) {
	p := NewWriterPool[string]()
	var okArg bool
	p.Connect("hello", func(ok bool, reason error) { okArg = ok })

	w, ok := p.Take()
	require.True(t, ok)
	require.Equal(t, "hello", w.Value)
	w.Fire(true, nil)
	require.True(t, okArg)
}

func TestWriterPool_CloseFiresWithReason(t *testing.T) {
	p := NewWriterPool[int]()
	reason := errors.New("closed")
	var gotReason error
	p.Connect(1, func(ok bool, r error) { gotReason = r })

	drained := p.Close()
	require.Len(t, drained, 1)
	drained[0].Fire(false, reason)
	require.Equal(t, reason, gotReason)
}
