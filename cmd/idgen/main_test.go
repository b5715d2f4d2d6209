package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/observe-l/rlnc/stack"
)

func TestSeedFromFlag(t *testing.T) {
	s, err := seedFromFlag(-1)
	require.NoError(t, err)
	require.Nil(t, s)

	for _, v := range []int64{0, 7, math.MaxUint32} {
		s, err := seedFromFlag(v)
		require.NoError(t, err)
		require.NotNil(t, s)
		require.Equal(t, uint32(v), *s)
	}

	// 1<<32 must not wrap to seed 0
	for _, v := range []int64{1 << 32, 1<<32 + 5, math.MaxInt64} {
		s, err := seedFromFlag(v)
		require.ErrorIs(t, err, stack.ErrConfiguration, "seed %d", v)
		require.Nil(t, s)
	}
}

func TestUint32Flag(t *testing.T) {
	n, err := uint32Flag("symbols", math.MaxUint32)
	require.NoError(t, err)
	require.Equal(t, uint32(math.MaxUint32), n)

	_, err = uint32Flag("symbols", math.MaxUint32+1)
	require.ErrorIs(t, err, stack.ErrConfiguration)
	require.Contains(t, err.Error(), "-symbols")
}
