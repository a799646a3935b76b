package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeOutput(t *testing.T) {
	logits := [][]float64{{0.1, 0.9}, {0.8, 0.2}}

	t.Run("raw logits", func(t *testing.T) {
		out, err := NormalizeOutput(logits)
		require.NoError(t, err)
		require.Equal(t, logits, out.Logits)
		require.Nil(t, out.Loss)
	})

	t.Run("output value passes through", func(t *testing.T) {
		loss := 1.5
		out, err := NormalizeOutput(Output{Logits: logits, Loss: &loss})
		require.NoError(t, err)
		require.Equal(t, logits, out.Logits)
		require.NotNil(t, out.Loss)
		require.InDelta(t, 1.5, *out.Loss, 1e-12)
	})

	t.Run("output pointer passes through", func(t *testing.T) {
		out, err := NormalizeOutput(&Output{Logits: logits})
		require.NoError(t, err)
		require.Equal(t, logits, out.Logits)
	})

	t.Run("nil output pointer", func(t *testing.T) {
		_, err := NormalizeOutput((*Output)(nil))
		require.ErrorIs(t, err, ErrUnsupportedOutput)
	})

	t.Run("mapping with loss and logits", func(t *testing.T) {
		out, err := NormalizeOutput(map[string]any{"loss": 2.25, "logits": logits})
		require.NoError(t, err)
		require.Equal(t, logits, out.Logits)
		require.NotNil(t, out.Loss)
		require.InDelta(t, 2.25, *out.Loss, 1e-12)
	})

	t.Run("mapping with loss only", func(t *testing.T) {
		out, err := NormalizeOutput(map[string]any{"loss": 0.5})
		require.NoError(t, err)
		require.Nil(t, out.Logits)
		require.NotNil(t, out.Loss)
	})

	t.Run("mapping with wrong loss type", func(t *testing.T) {
		_, err := NormalizeOutput(map[string]any{"loss": "0.5"})
		require.ErrorIs(t, err, ErrUnsupportedOutput)
	})

	t.Run("mapping with neither key", func(t *testing.T) {
		_, err := NormalizeOutput(map[string]any{"predictions": logits})
		require.ErrorIs(t, err, ErrUnsupportedOutput)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := NormalizeOutput([]string{"nope"})
		require.ErrorIs(t, err, ErrUnsupportedOutput)
	})
}
