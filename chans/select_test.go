package chans

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSelect_SynchronousReadWins(t *testing.T) {
	a := NewChannel[int](Options{Capacity: 1})
	b := NewChannel[int](Options{Capacity: 1})
	defer a.Close()
	defer b.Close()

	require.True(t, a.TryWrite(42).OK())

	ca := a.ReadCase()
	cb := b.ReadCase()

	idx, err := Select(context.Background(), []caseOp{ca, cb}, SelectOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	outcome, ok := ca.Outcome()
	require.True(t, ok)
	require.True(t, outcome.OK())
	require.Equal(t, 42, outcome.Value)
}

func TestSelect_DefaultFallbackWhenNoneReady(t *testing.T) {
	a := NewChannel[int](Options{})
	defer a.Close()

	ca := a.ReadCase()
	idx, err := Select(context.Background(), []caseOp{ca}, SelectOptions{
		Default: func() int { return -7 },
	})
	require.NoError(t, err)
	require.Equal(t, -7, idx)
}

func TestSelect_ParksAndWinsOnAsyncWrite(t *testing.T) {
	a := NewChannel[int](Options{})
	defer a.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond)
		wv, err := a.Write(ctx, 99, WriteOptions{})
		require.NoError(t, err)
		require.True(t, wv.OK())
	}()

	ca := a.ReadCase()
	idx, err := Select(ctx, []caseOp{ca}, SelectOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	outcome, ok := ca.Outcome()
	require.True(t, ok)
	require.Equal(t, 99, outcome.Value)
	wg.Wait()
}

func TestSelect_ContextCancellationAborts(t *testing.T) {
	a := NewChannel[int](Options{})
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ca := a.ReadCase()
	_, err := Select(ctx, []caseOp{ca}, SelectOptions{})
	require.Error(t, err)
}

func TestSelect_WriteToClosedAbortsNonSilent(t *testing.T) {
	a := NewChannel[int](Options{})
	a.Close()

	wc := a.WriteCase(1)
	_, err := Select(context.Background(), []caseOp{wc}, SelectOptions{})
	require.ErrorIs(t, err, ErrChannelClosed)
}

func TestSelect_WriteToClosedSilentFiresCase(t *testing.T) {
	a := NewChannel[int](Options{})
	a.Close()

	wc := a.WriteCase(1)
	idx, err := Select(context.Background(), []caseOp{wc}, SelectOptions{Silent: true})
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	outcome, ok := wc.Outcome()
	require.True(t, ok)
	require.False(t, outcome.OK())
	require.Equal(t, WriteErrClosed, outcome.Status)
}

func TestSelect_FairnessOverManyIterations(t *testing.T) {
	a := NewChannel[int](Options{Capacity: 1})
	b := NewChannel[int](Options{Capacity: 1})
	defer a.Close()
	defer b.Close()

	require.True(t, a.TryWrite(1).OK())
	require.True(t, b.TryWrite(1).OK())

	chs := [2]*Channel[int]{a, b}
	wins := [2]int{}
	for i := 0; i < 200; i++ {
		ca := a.ReadCase()
		cb := b.ReadCase()
		idx, err := Select(context.Background(), []caseOp{ca, cb}, SelectOptions{})
		require.NoError(t, err)
		wins[idx]++

		// refill only the chosen channel; the other one is still full
		require.True(t, chs[idx].TryWrite(1).OK())
	}

	require.Greater(t, wins[0], 40)
	require.Greater(t, wins[1], 40)
}

func TestSelect_NilEntryIsSkippedNotPanicked(t *testing.T) {
	a := NewChannel[int](Options{Capacity: 1})
	defer a.Close()
	require.True(t, a.TryWrite(5).OK())

	ca := a.ReadCase()
	idx, err := Select(context.Background(), []caseOp{nil, ca, nil}, SelectOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	outcome, ok := ca.Outcome()
	require.True(t, ok)
	require.Equal(t, 5, outcome.Value)
}

func TestSelect_AllNilWithDefaultReturnsDefaultImmediately(t *testing.T) {
	idx, err := Select(context.Background(), []caseOp{nil, nil}, SelectOptions{
		Default: func() int { return -3 },
	})
	require.NoError(t, err)
	require.Equal(t, -3, idx)
}

func TestSelect_EmptyCasesWithDefaultReturnsDefaultImmediately(t *testing.T) {
	idx, err := Select(context.Background(), nil, SelectOptions{
		Default: func() int { return -9 },
	})
	require.NoError(t, err)
	require.Equal(t, -9, idx)
}

func TestSelect_AllNilWithoutDefaultBlocksUntilContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Select(ctx, []caseOp{nil, nil}, SelectOptions{})
	require.Error(t, err)
	var cancelled *CancelledError
	require.ErrorAs(t, err, &cancelled)
}

func TestSelect_AllNilWithoutDefaultSilentNeverErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	idx, err := Select(ctx, []caseOp{nil}, SelectOptions{Silent: true})
	require.NoError(t, err)
	require.Equal(t, -1, idx)
}

func TestSelect_AlreadyCancelledContextFailsFastBeforeTrying(t *testing.T) {
	a := NewChannel[int](Options{Capacity: 1})
	defer a.Close()
	require.True(t, a.TryWrite(1).OK())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ca := a.ReadCase()
	_, err := Select(ctx, []caseOp{ca}, SelectOptions{})
	require.Error(t, err)
	var cancelled *CancelledError
	require.ErrorAs(t, err, &cancelled)

	// the case must not have been touched: it was still ready afterward.
	_, ok := ca.Outcome()
	require.False(t, ok)
}

func TestSelect_ReusedCaseAfterReset(t *testing.T) {
	a := NewChannel[int](Options{Capacity: 1})
	defer a.Close()

	ca := a.ReadCase()
	require.True(t, a.TryWrite(1).OK())
	idx, err := Select(context.Background(), []caseOp{ca}, SelectOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	ca.Reset()
	_, ok := ca.Outcome()
	require.False(t, ok)

	require.True(t, a.TryWrite(2).OK())
	idx, err = Select(context.Background(), []caseOp{ca}, SelectOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	outcome, ok := ca.Outcome()
	require.True(t, ok)
	require.Equal(t, 2, outcome.Value)
}
