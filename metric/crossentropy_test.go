package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func TestCrossEntropyCompute(t *testing.T) {
	t.Run("matches hand-derived reference", func(t *testing.T) {
		m := NewCrossEntropy(2)

		// Row (0, ln 3): p(class 1) = 3/4. Row (0, 0): p = 1/2 each.
		logits := [][]float64{
			{0, math.Log(3)},
			{0, 0},
		}
		require.NoError(t, m.Update(logits, []int{1, 0}))

		want := (math.Log(4.0/3.0) + math.Log(2)) / 2
		got, err := m.Compute()
		require.NoError(t, err)
		require.InDelta(t, want, got, 1e-12)
	})

	t.Run("averages across updates by token count", func(t *testing.T) {
		m := NewCrossEntropy(4)

		uniform := []float64{0, 0, 0, 0}
		require.NoError(t, m.Update([][]float64{uniform, uniform, uniform}, []int{0, 1, 2}))
		require.NoError(t, m.Update([][]float64{uniform}, []int{3}))

		// Every token contributes ln(4) regardless of batch boundaries.
		got, err := m.Compute()
		require.NoError(t, err)
		require.InDelta(t, math.Log(4), got, 1e-12)
	})

	t.Run("compute is idempotent", func(t *testing.T) {
		m := NewCrossEntropy(2)
		require.NoError(t, m.Update([][]float64{{0, 1}}, []int{1}))

		first, err := m.Compute()
		require.NoError(t, err)
		second, err := m.Compute()
		require.NoError(t, err)
		require.Equal(t, first, second)

		// Update remains valid after a compute.
		require.NoError(t, m.Update([][]float64{{0, 1}}, []int{0}))
		third, err := m.Compute()
		require.NoError(t, err)
		require.NotEqual(t, first, third)
	})

	t.Run("undefined before first update", func(t *testing.T) {
		m := NewCrossEntropy(2)
		_, err := m.Compute()
		require.ErrorIs(t, err, types.ErrUndefinedMetric)
	})

	t.Run("undefined again after reset", func(t *testing.T) {
		m := NewCrossEntropy(2)
		require.NoError(t, m.Update([][]float64{{0, 1}}, []int{1}))
		m.Reset()

		_, err := m.Compute()
		require.ErrorIs(t, err, types.ErrUndefinedMetric)
	})
}

func TestCrossEntropyValidation(t *testing.T) {
	m := NewCrossEntropy(3)

	t.Run("row width mismatch", func(t *testing.T) {
		err := m.Update([][]float64{{0, 0}}, []int{0})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})

	t.Run("row count mismatch", func(t *testing.T) {
		err := m.Update([][]float64{{0, 0, 0}}, []int{0, 1})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})

	t.Run("target out of range", func(t *testing.T) {
		err := m.Update([][]float64{{0, 0, 0}}, []int{3})
		require.ErrorIs(t, err, types.ErrShapeMismatch)

		err = m.Update([][]float64{{0, 0, 0}}, []int{-1})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})

	t.Run("loss-only output unsupported", func(t *testing.T) {
		loss := 1.0
		err := m.Update(types.Output{Loss: &loss}, nil)
		require.ErrorIs(t, err, types.ErrUnsupportedOutput)
	})

	t.Run("unsupported output type", func(t *testing.T) {
		err := m.Update("logits", []int{0})
		require.ErrorIs(t, err, types.ErrUnsupportedOutput)
	})

	t.Run("failed update leaves state unchanged", func(t *testing.T) {
		fresh := NewCrossEntropy(2)
		require.NoError(t, fresh.Update([][]float64{{0, 0}}, []int{0}))
		before, err := fresh.Compute()
		require.NoError(t, err)

		require.Error(t, fresh.Update([][]float64{{0, 0}}, []int{5}))

		after, err := fresh.Compute()
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}

func TestCrossEntropyIgnoreIndex(t *testing.T) {
	m := NewCrossEntropy(2, WithIgnoreIndex(-100))

	logits := [][]float64{
		{0, math.Log(3)},
		{0, 0},
		{0, 0},
	}
	require.NoError(t, m.Update(logits, []int{1, -100, 0}))

	// The ignored position contributes to neither sum nor count.
	want := (math.Log(4.0/3.0) + math.Log(2)) / 2
	got, err := m.Compute()
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-12)
}
