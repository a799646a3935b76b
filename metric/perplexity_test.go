package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func TestPerplexityIsExpOfCrossEntropy(t *testing.T) {
	ppl := NewPerplexity()
	ce := NewLanguageCrossEntropy()

	uniform := []float64{0, 0, 0, 0}
	batches := [][][]float64{
		{uniform, uniform},
		{{0, math.Log(3), 0, 0}, uniform},
	}
	targets := [][]int{{0, 1}, {1, 2}}

	for i, logits := range batches {
		require.NoError(t, ppl.Update(logits, targets[i]))
		require.NoError(t, ce.Update(logits, targets[i]))
	}

	ceVal, err := ce.Compute()
	require.NoError(t, err)
	pplVal, err := ppl.Compute()
	require.NoError(t, err)

	require.InDelta(t, math.Exp(ceVal), pplVal, 1e-9)
}

func TestPerplexityWithLoss(t *testing.T) {
	ppl := NewPerplexity()

	loss := 2.0
	require.NoError(t, ppl.Update(types.Output{Loss: &loss}, nil))

	got, err := ppl.Compute()
	require.NoError(t, err)
	require.InDelta(t, math.Exp(2.0), got, 1e-12)
}

func TestPerplexityUndefinedWhenEmpty(t *testing.T) {
	// Undefined inner cross entropy stays an error, never exp(NaN).
	_, err := NewPerplexity().Compute()
	require.ErrorIs(t, err, types.ErrUndefinedMetric)
}

func TestPerplexityReset(t *testing.T) {
	ppl := NewPerplexity()

	loss := 1.0
	require.NoError(t, ppl.Update(types.Output{Loss: &loss}, nil))
	ppl.Reset()

	_, err := ppl.Compute()
	require.ErrorIs(t, err, types.ErrUndefinedMetric)
}
