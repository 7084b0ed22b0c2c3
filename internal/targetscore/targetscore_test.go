package targetscore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	require.Equal(t, Targets{AAAMinus: 1667, AAA: 1778, MAXMinus: 1889, MAX: 2000}, Compute(1000))
	require.Equal(t, Targets{}, Compute(0))
}

func TestComputeMatchesCeilingFormulas(t *testing.T) {
	ceil := func(a, b int) int {
		return int(math.Ceil(float64(a) / float64(b)))
	}

	for notes := 0; notes <= 4000; notes += 7 {
		perfect := notes * 2
		aaa := ceil(perfect*8, 9)
		aa := ceil(perfect*7, 9)

		got := Compute(notes)
		require.Equal(t, perfect, got.MAX, notes)
		require.Equal(t, aaa, got.AAA, notes)
		require.Equal(t, ceil(aaa+perfect, 2), got.MAXMinus, notes)
		require.Equal(t, ceil(aa+aaa, 2), got.AAAMinus, notes)
		require.LessOrEqual(t, got.AAAMinus, got.AAA)
		require.LessOrEqual(t, got.MAXMinus, got.MAX)
	}
}

func TestComputeRejectsUnknownNotes(t *testing.T) {
	require.Panics(t, func() { Compute(-1) })
}
