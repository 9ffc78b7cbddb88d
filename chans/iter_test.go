package chans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAll_StopsAtEndOfStream(t *testing.T) {
	c := NewChannel[int](Options{Capacity: 3})
	require.True(t, c.TryWrite(1).OK())
	require.True(t, c.TryWrite(2).OK())
	require.True(t, c.TryWrite(3).OK())
	c.Close()

	var got []int
	for v := range All(context.Background(), c) {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestAll_StopsEarlyOnBreak(t *testing.T) {
	c := NewChannel[int](Options{Capacity: 3})
	require.True(t, c.TryWrite(1).OK())
	require.True(t, c.TryWrite(2).OK())
	require.True(t, c.TryWrite(3).OK())
	defer c.Close()

	var got []int
	for v := range All(context.Background(), c) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, got)
}
