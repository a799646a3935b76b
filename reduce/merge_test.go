package reduce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func workerState(t *testing.T, total float64, labels ...float64) *types.State {
	t.Helper()

	s := types.MustNewState(types.ScalarField("total", 0), types.SeriesField("labels"))
	require.NoError(t, s.Add("total", total))
	require.NoError(t, s.Append("labels", labels...))

	return s
}

func TestMerge(t *testing.T) {
	t.Run("combines by declared rules", func(t *testing.T) {
		a := workerState(t, 3, 1, 0)
		b := workerState(t, 4, 1)
		c := workerState(t, 5)

		merged, err := Merge(a, b, c)
		require.NoError(t, err)

		total, err := merged.Scalar("total")
		require.NoError(t, err)
		require.InDelta(t, 12.0, total, 1e-12)

		labels, err := merged.Series("labels")
		require.NoError(t, err)
		require.Equal(t, []float64{1, 0, 1}, labels)
	})

	t.Run("single state clones", func(t *testing.T) {
		a := workerState(t, 3, 1)

		merged, err := Merge(a)
		require.NoError(t, err)
		require.NoError(t, merged.Add("total", 100))

		// Input untouched.
		total, err := a.Scalar("total")
		require.NoError(t, err)
		require.InDelta(t, 3.0, total, 1e-12)
	})

	t.Run("inputs are never modified", func(t *testing.T) {
		a := workerState(t, 3, 1)
		b := workerState(t, 4, 0)

		_, err := Merge(a, b)
		require.NoError(t, err)

		for i, s := range []*types.State{a, b} {
			labels, err := s.Series("labels")
			require.NoError(t, err)
			require.Len(t, labels, 1, "worker %d mutated", i)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Merge()
		require.ErrorIs(t, err, types.ErrNoWorkerStates)
	})

	t.Run("declaration mismatch", func(t *testing.T) {
		a := workerState(t, 3, 1)
		b := types.MustNewState(types.ScalarField("total", 0))

		_, err := Merge(a, b)
		require.ErrorIs(t, err, types.ErrReductionPolicy)
	})
}
