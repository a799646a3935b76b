package metric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func TestBinaryF1(t *testing.T) {
	t.Run("known confusion counts", func(t *testing.T) {
		m := NewBinaryF1()

		// Predictions (argmax): 1, 1, 0, 0. Labels: 1, 0, 1, 0.
		// tp=1 fp=1 fn=1, so F1 = 2/(2+1+1) = 0.5.
		logits := [][]float64{
			{0.1, 0.9},
			{0.2, 0.8},
			{0.7, 0.3},
			{0.6, 0.4},
		}
		require.NoError(t, m.Update(logits, []int{1, 0, 1, 0}))

		got, err := m.Compute()
		require.NoError(t, err)
		require.InDelta(t, 0.5, got, 1e-12)
	})

	t.Run("perfect predictions", func(t *testing.T) {
		m := NewBinaryF1()
		logits := [][]float64{{0.9, 0.1}, {0.1, 0.9}}
		require.NoError(t, m.Update(logits, []int{0, 1}))

		got, err := m.Compute()
		require.NoError(t, err)
		require.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("no positives anywhere scores zero", func(t *testing.T) {
		m := NewBinaryF1()
		require.NoError(t, m.Update([][]float64{{0.9, 0.1}}, []int{0}))

		got, err := m.Compute()
		require.NoError(t, err)
		require.Zero(t, got)
	})

	t.Run("span multiple batches", func(t *testing.T) {
		pooled := NewBinaryF1()
		split := NewBinaryF1()

		logits := [][]float64{{0.1, 0.9}, {0.2, 0.8}, {0.7, 0.3}, {0.6, 0.4}}
		labels := []int{1, 0, 1, 0}

		require.NoError(t, pooled.Update(logits, labels))
		require.NoError(t, split.Update(logits[:2], labels[:2]))
		require.NoError(t, split.Update(logits[2:], labels[2:]))

		want, err := pooled.Compute()
		require.NoError(t, err)
		got, err := split.Compute()
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("undefined before first update", func(t *testing.T) {
		_, err := NewBinaryF1().Compute()
		require.ErrorIs(t, err, types.ErrUndefinedMetric)
	})

	t.Run("non-binary row width", func(t *testing.T) {
		m := NewBinaryF1()
		err := m.Update([][]float64{{0.1, 0.2, 0.7}}, []int{1})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})

	t.Run("non-binary label", func(t *testing.T) {
		m := NewBinaryF1()
		err := m.Update([][]float64{{0.1, 0.9}}, []int{2})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})
}
