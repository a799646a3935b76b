package metric

import (
	"fmt"

	"github.com/murthyn/composer/types"
)

// LanguageCrossEntropy accumulates per-batch mean cross entropy loss.
//
// Unlike CrossEntropy it accepts a precomputed batch loss directly from the
// model output; when only logits are present the loss is recomputed as the
// mean negative log-likelihood over the batch. Compute averages the batch
// losses over the number of batches observed.
type LanguageCrossEntropy struct {
	state *types.State
}

// Compile-time assertion that LanguageCrossEntropy implements Metric.
var _ types.Metric = (*LanguageCrossEntropy)(nil)

// NewLanguageCrossEntropy creates a language cross entropy metric.
func NewLanguageCrossEntropy() *LanguageCrossEntropy {
	return &LanguageCrossEntropy{
		state: types.MustNewState(
			types.ScalarField(fieldSumLoss, 0),
			types.ScalarField(fieldTotalBatches, 0),
		),
	}
}

// Name returns "language_cross_entropy".
func (m *LanguageCrossEntropy) Name() string { return "language_cross_entropy" }

// Update accumulates one batch.
//
// When the output carries a loss it is used as-is and target may be empty.
// Otherwise the mean NLL over the logits rows is computed against target.
//
// Returns:
//   - error: ErrUnsupportedOutput, or ErrShapeMismatch when recomputing
//     from logits with mismatched targets
func (m *LanguageCrossEntropy) Update(output any, target []int) error {
	out, err := types.NormalizeOutput(output)
	if err != nil {
		return err
	}

	var loss float64
	switch {
	case out.Loss != nil:
		loss = *out.Loss
	case out.Logits != nil:
		loss, err = meanNLL(out.Logits, target)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: output carries neither loss nor logits", types.ErrUnsupportedOutput)
	}

	_ = m.state.Add(fieldSumLoss, loss)
	_ = m.state.Add(fieldTotalBatches, 1)

	return nil
}

// Compute returns the batch losses averaged over all observed batches.
//
// Returns:
//   - error: ErrUndefinedMetric before the first Update
func (m *LanguageCrossEntropy) Compute() (float64, error) {
	sumLoss, err := m.state.Scalar(fieldSumLoss)
	if err != nil {
		return 0, err
	}
	batches, err := m.state.Scalar(fieldTotalBatches)
	if err != nil {
		return 0, err
	}
	if batches == 0 {
		return 0, types.ErrUndefinedMetric
	}

	return sumLoss / batches, nil
}

// Reset restores the accumulators to zero.
func (m *LanguageCrossEntropy) Reset() { m.state.Reset() }

// State exposes the accumulator for distributed reduction.
func (m *LanguageCrossEntropy) State() *types.State { return m.state }

// meanNLL computes the mean negative log-likelihood of targets under the
// softmax of each logits row.
func meanNLL(logits [][]float64, target []int) (float64, error) {
	if len(logits) == 0 || len(logits) != len(target) {
		return 0, fmt.Errorf("%w: %d logits rows vs %d targets",
			types.ErrShapeMismatch, len(logits), len(target))
	}

	width := len(logits[0])
	var sum float64
	for i, row := range logits {
		if len(row) != width {
			return 0, fmt.Errorf("%w: ragged logits (row %d has %d classes, row 0 has %d)",
				types.ErrShapeMismatch, i, len(row), width)
		}
		if target[i] < 0 || target[i] >= width {
			return 0, fmt.Errorf("%w: target %d out of range [0,%d)",
				types.ErrShapeMismatch, target[i], width)
		}
		sum += nll(row, target[i])
	}

	return sum / float64(len(logits)), nil
}
