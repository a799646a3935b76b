package metric

import (
	"fmt"

	"github.com/murthyn/composer/types"
)

const (
	fieldSumLoss      = "sum_loss"
	fieldTotal        = "total"
	fieldTotalBatches = "total_batches"
)

// CrossEntropy accumulates token-level cross entropy loss recomputed from
// logits.
//
// Update sums the negative log-likelihood of each non-ignored target token;
// Compute returns the average loss per token. Both accumulators declare
// ReduceSum, so merging per-worker states before Compute equals computing
// on the pooled tokens directly.
type CrossEntropy struct {
	vocabSize   int
	ignoreIndex int
	hasIgnore   bool
	state       *types.State
}

// Compile-time assertion that CrossEntropy implements Metric.
var _ types.Metric = (*CrossEntropy)(nil)

// CrossEntropyOption configures a CrossEntropy metric.
type CrossEntropyOption func(*CrossEntropy)

// WithIgnoreIndex excludes targets equal to index from both the summed loss
// and the token count.
func WithIgnoreIndex(index int) CrossEntropyOption {
	return func(m *CrossEntropy) {
		m.ignoreIndex = index
		m.hasIgnore = true
	}
}

// NewCrossEntropy creates a cross entropy metric over a vocabulary of the
// given size.
//
// Parameters:
//   - vocabSize: Expected width of every logits row
//   - opts: Optional configuration (ignore index)
//
// Returns:
//   - *CrossEntropy: The metric, ready for Update calls
func NewCrossEntropy(vocabSize int, opts ...CrossEntropyOption) *CrossEntropy {
	m := &CrossEntropy{
		vocabSize: vocabSize,
		state: types.MustNewState(
			types.ScalarField(fieldSumLoss, 0),
			types.ScalarField(fieldTotal, 0),
		),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Name returns "cross_entropy".
func (m *CrossEntropy) Name() string { return "cross_entropy" }

// Update accumulates one batch of logits against target token indices.
//
// The output must carry logits; a loss-only output cannot be validated
// against the vocabulary and is rejected as unsupported.
//
// Returns:
//   - error: ErrUnsupportedOutput without logits, ErrShapeMismatch when row
//     widths, row count, or target range disagree
func (m *CrossEntropy) Update(output any, target []int) error {
	out, err := types.NormalizeOutput(output)
	if err != nil {
		return err
	}
	if out.Logits == nil {
		return fmt.Errorf("%w: cross entropy requires logits", types.ErrUnsupportedOutput)
	}
	if len(out.Logits) != len(target) {
		return fmt.Errorf("%w: %d logits rows vs %d targets",
			types.ErrShapeMismatch, len(out.Logits), len(target))
	}

	var sumLoss float64
	var counted int
	for i, row := range out.Logits {
		if len(row) != m.vocabSize {
			return fmt.Errorf("%w: row %d has %d classes, want %d",
				types.ErrShapeMismatch, i, len(row), m.vocabSize)
		}
		if m.hasIgnore && target[i] == m.ignoreIndex {
			continue
		}
		if target[i] < 0 || target[i] >= m.vocabSize {
			return fmt.Errorf("%w: target %d out of range [0,%d)",
				types.ErrShapeMismatch, target[i], m.vocabSize)
		}
		sumLoss += nll(row, target[i])
		counted++
	}

	// Validation happened above; these cannot fail on declared fields.
	_ = m.state.Add(fieldSumLoss, sumLoss)
	_ = m.state.Add(fieldTotal, float64(counted))

	return nil
}

// Compute returns the accumulated loss averaged over all counted tokens.
//
// Returns:
//   - error: ErrUndefinedMetric before any tokens have been counted
func (m *CrossEntropy) Compute() (float64, error) {
	sumLoss, err := m.state.Scalar(fieldSumLoss)
	if err != nil {
		return 0, err
	}
	total, err := m.state.Scalar(fieldTotal)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, types.ErrUndefinedMetric
	}

	return sumLoss / total, nil
}

// Reset restores the accumulators to zero.
func (m *CrossEntropy) Reset() { m.state.Reset() }

// State exposes the accumulator for distributed reduction.
func (m *CrossEntropy) State() *types.State { return m.state }
