package dir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlip(t *testing.T) {
	require.Equal(t, Write, Read.Flip())
	require.Equal(t, Read, Write.Flip())
	require.Equal(t, ReadWrite, ReadWrite.Flip())
}

func TestStringAndParse(t *testing.T) {
	for _, d := range []Dir{Read, Write, ReadWrite} {
		got, err := Parse(d.String())
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("sideways")
	require.ErrorIs(t, err, ErrValue)
}
