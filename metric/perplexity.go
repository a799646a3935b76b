package metric

import (
	"math"

	"github.com/murthyn/composer/types"
)

// Perplexity reports exp of the average language cross entropy loss.
//
// It delegates accumulation to an inner LanguageCrossEntropy rather than
// reimplementing it: Update, Reset, and State all operate on the inner
// metric, and Compute exponentiates its result. Note the wrapped computation
// has to recompute the loss from logits when the model does not provide one,
// which can be expensive.
type Perplexity struct {
	inner *LanguageCrossEntropy
}

// Compile-time assertion that Perplexity implements Metric.
var _ types.Metric = (*Perplexity)(nil)

// NewPerplexity creates a perplexity metric over a fresh language cross
// entropy accumulator.
func NewPerplexity() *Perplexity {
	return &Perplexity{inner: NewLanguageCrossEntropy()}
}

// Name returns "perplexity".
func (m *Perplexity) Name() string { return "perplexity" }

// Update delegates to the wrapped language cross entropy metric.
func (m *Perplexity) Update(output any, target []int) error {
	return m.inner.Update(output, target)
}

// Compute returns exp of the wrapped metric's average loss.
//
// Returns:
//   - error: ErrUndefinedMetric before the first Update
func (m *Perplexity) Compute() (float64, error) {
	avgLoss, err := m.inner.Compute()
	if err != nil {
		return 0, err
	}

	return math.Exp(avgLoss), nil
}

// Reset restores the wrapped accumulator to zero.
func (m *Perplexity) Reset() { m.inner.Reset() }

// State exposes the wrapped accumulator for distributed reduction.
func (m *Perplexity) State() *types.State { return m.inner.State() }
