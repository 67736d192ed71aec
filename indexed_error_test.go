package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseTaggedError(t *testing.T) {
	boom := errors.New("boom")
	tagged := newBaseTaggedError(boom, 3)

	idx, ok := ExtractBaseIndex(tagged)
	require.True(t, ok)
	require.Equal(t, 3, idx)
	require.ErrorIs(t, tagged, boom)
	require.Equal(t, boom.Error(), tagged.Error())
}

func TestBaseTaggedError_NilPassthrough(t *testing.T) {
	require.Nil(t, newBaseTaggedError(nil, 0))
}

func TestExtractBaseIndex_Untagged(t *testing.T) {
	boom := errors.New("boom")
	_, ok := ExtractBaseIndex(boom)
	require.False(t, ok)
}
