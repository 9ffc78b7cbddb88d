package waiter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_PushPopLast(t *testing.T) {
	s := New[*int]()
	require.Equal(t, 0, s.Len())

	a, b, c := new(int), new(int), new(int)
	s.Push(a)
	s.Push(b)
	s.Push(c)
	require.Equal(t, 3, s.Len())

	w, ok := s.PopLast()
	require.True(t, ok)
	require.Same(t, c, w)
	require.Equal(t, 2, s.Len())
}

func TestSet_PopLastEmpty(t *testing.T) {
	s := New[*int]()
	_, ok := s.PopLast()
	require.False(t, ok)
}

func TestSet_RemoveByIndexSwapsLast(t *testing.T) {
	s := New[*int]()
	a, b, c := new(int), new(int), new(int)
	s.Push(a)
	s.Push(b)
	s.Push(c)

	removed := s.RemoveByIndex(0)
	require.Same(t, a, removed)
	require.Equal(t, 2, s.Len())
	// c was swapped into a's old slot
	require.Same(t, c, s.At(0))
	require.Same(t, b, s.At(1))
}

func TestSet_Remove(t *testing.T) {
	s := New[*int]()
	a, b := new(int), new(int)
	s.Push(a)
	s.Push(b)

	s.Remove(a)
	require.Equal(t, 1, s.Len())
	require.Same(t, b, s.At(0))

	// no-op on missing element
	s.Remove(a)
	require.Equal(t, 1, s.Len())
}

func TestSet_IndexStaysConsistent(t *testing.T) {
	s := New[*int]()
	items := make([]*int, 10)
	for i := range items {
		items[i] = new(int)
		s.Push(items[i])
	}

	// remove every other element and verify the rest are still
	// findable and removable in O(1) via Remove.
	for i := 0; i < len(items); i += 2 {
		s.Remove(items[i])
	}
	require.Equal(t, 5, s.Len())
	for i := 1; i < len(items); i += 2 {
		s.Remove(items[i])
	}
	require.Equal(t, 0, s.Len())
}

func TestSet_Drain(t *testing.T) {
	s := New[*int]()
	a, b := new(int), new(int)
	s.Push(a)
	s.Push(b)

	drained := s.Drain()
	require.ElementsMatch(t, []*int{a, b}, drained)
	require.Equal(t, 0, s.Len())
}
