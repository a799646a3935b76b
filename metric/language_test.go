package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func TestLanguageCrossEntropyWithLoss(t *testing.T) {
	m := NewLanguageCrossEntropy()

	// Precomputed batch losses are averaged per batch, not per token.
	for _, loss := range []float64{1.0, 2.0, 3.0} {
		l := loss
		require.NoError(t, m.Update(types.Output{Loss: &l}, nil))
	}

	got, err := m.Compute()
	require.NoError(t, err)
	require.InDelta(t, 2.0, got, 1e-12)
}

func TestLanguageCrossEntropyWithLogits(t *testing.T) {
	m := NewLanguageCrossEntropy()

	// Two uniform 4-class rows: mean NLL is ln(4).
	uniform := []float64{0, 0, 0, 0}
	require.NoError(t, m.Update([][]float64{uniform, uniform}, []int{0, 3}))

	got, err := m.Compute()
	require.NoError(t, err)
	require.InDelta(t, math.Log(4), got, 1e-12)
}

func TestLanguageCrossEntropyLossTakesPrecedence(t *testing.T) {
	m := NewLanguageCrossEntropy()

	loss := 7.0
	out := types.Output{Loss: &loss, Logits: [][]float64{{0, 0}}}
	require.NoError(t, m.Update(out, []int{0}))

	got, err := m.Compute()
	require.NoError(t, err)
	require.InDelta(t, 7.0, got, 1e-12)
}

func TestLanguageCrossEntropyMapOutput(t *testing.T) {
	m := NewLanguageCrossEntropy()
	require.NoError(t, m.Update(map[string]any{"loss": 0.25}, nil))

	got, err := m.Compute()
	require.NoError(t, err)
	require.InDelta(t, 0.25, got, 1e-12)
}

func TestLanguageCrossEntropyValidation(t *testing.T) {
	m := NewLanguageCrossEntropy()

	t.Run("empty output", func(t *testing.T) {
		err := m.Update(types.Output{}, nil)
		require.ErrorIs(t, err, types.ErrUnsupportedOutput)
	})

	t.Run("logits without matching targets", func(t *testing.T) {
		err := m.Update([][]float64{{0, 0}}, []int{0, 1})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})

	t.Run("ragged logits", func(t *testing.T) {
		err := m.Update([][]float64{{0, 0}, {0, 0, 0}}, []int{0, 0})
		require.ErrorIs(t, err, types.ErrShapeMismatch)
	})

	t.Run("undefined before first update", func(t *testing.T) {
		_, err := NewLanguageCrossEntropy().Compute()
		require.ErrorIs(t, err, types.ErrUndefinedMetric)
	})
}
