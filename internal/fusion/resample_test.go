package fusion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResampleAxisBounds(t *testing.T) {
	ref := []float64{0.5, 1.2, 3.4, 9.9}

	for _, n := range []int{1, 2, 3, 4, 7, 50} {
		axis := ResampleAxis(ref, n)
		require.Len(t, axis, n)
		require.Equal(t, 0.5, axis[0])
		if n > 1 {
			require.Equal(t, 9.9, axis[n-1])
		}
		for i := 1; i < n; i++ {
			require.GreaterOrEqual(t, axis[i], axis[i-1])
		}
	}
}

func TestResampleAxisEvenSpacing(t *testing.T) {
	axis := ResampleAxis([]float64{0, 10}, 5)

	require.Len(t, axis, 5)
	for i, want := range []float64{0, 2.5, 5, 7.5, 10} {
		require.InDelta(t, want, axis[i], 1e-9)
	}
}

func TestResampleAxisSinglePointTarget(t *testing.T) {
	// One audio estimate plotted against a two-point reference axis.
	axis := ResampleAxis([]float64{0.5, 2.0}, 1)
	require.Equal(t, []float64{0.5}, axis)
}

func TestResampleAxisSinglePointReference(t *testing.T) {
	axis := ResampleAxis([]float64{1.5}, 3)
	require.Equal(t, []float64{1.5, 1.5, 1.5}, axis)
}

func TestResampleAxisDegenerate(t *testing.T) {
	require.Empty(t, ResampleAxis(nil, 4))
	require.Empty(t, ResampleAxis([]float64{}, 4))
	require.Empty(t, ResampleAxis([]float64{1, 2}, 0))
	require.Empty(t, ResampleAxis([]float64{1, 2}, -1))
}

func TestResampleAxisIdempotent(t *testing.T) {
	ref := []float64{0.5, 2.0, 4.0}
	first := ResampleAxis(ref, 6)
	second := ResampleAxis(ref, 6)
	require.Equal(t, first, second)
	require.Equal(t, []float64{0.5, 2.0, 4.0}, ref)
}
