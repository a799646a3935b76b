package metric

import (
	"fmt"

	"github.com/murthyn/composer/types"
)

const (
	fieldCorrect = "correct"
)

// MaskedAccuracy accumulates argmax classification accuracy, skipping
// positions whose target equals the ignore index.
//
// Both accumulators declare ReduceSum; merged per-worker states compute the
// same accuracy as pooling the raw predictions would.
type MaskedAccuracy struct {
	ignoreIndex int
	state       *types.State
}

// Compile-time assertion that MaskedAccuracy implements Metric.
var _ types.Metric = (*MaskedAccuracy)(nil)

// NewMaskedAccuracy creates a masked accuracy metric.
//
// Parameters:
//   - ignoreIndex: Target value marking positions excluded from accuracy
func NewMaskedAccuracy(ignoreIndex int) *MaskedAccuracy {
	return &MaskedAccuracy{
		ignoreIndex: ignoreIndex,
		state: types.MustNewState(
			types.ScalarField(fieldCorrect, 0),
			types.ScalarField(fieldTotal, 0),
		),
	}
}

// Name returns "masked_accuracy".
func (m *MaskedAccuracy) Name() string { return "masked_accuracy" }

// Update accumulates one batch of predictions against targets.
//
// Predictions are the argmax of each logits row. Positions whose target
// equals the ignore index contribute to neither numerator nor denominator.
//
// Returns:
//   - error: ErrUnsupportedOutput without logits, ErrShapeMismatch when row
//     count and target length disagree
func (m *MaskedAccuracy) Update(output any, target []int) error {
	out, err := types.NormalizeOutput(output)
	if err != nil {
		return err
	}
	if out.Logits == nil {
		return fmt.Errorf("%w: masked accuracy requires logits", types.ErrUnsupportedOutput)
	}
	if len(out.Logits) != len(target) {
		return fmt.Errorf("%w: %d logits rows vs %d targets",
			types.ErrShapeMismatch, len(out.Logits), len(target))
	}

	var correct, counted int
	for i, row := range out.Logits {
		if len(row) == 0 {
			return fmt.Errorf("%w: row %d is empty", types.ErrShapeMismatch, i)
		}
		if target[i] == m.ignoreIndex {
			continue
		}
		if argmax(row) == target[i] {
			correct++
		}
		counted++
	}

	_ = m.state.Add(fieldCorrect, float64(correct))
	_ = m.state.Add(fieldTotal, float64(counted))

	return nil
}

// Compute returns correct/total over all unmasked positions.
//
// Returns:
//   - error: ErrUndefinedMetric before any unmasked position was observed
func (m *MaskedAccuracy) Compute() (float64, error) {
	correct, err := m.state.Scalar(fieldCorrect)
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

	return correct / total, nil
}

// Reset restores the accumulators to zero.
func (m *MaskedAccuracy) Reset() { m.state.Reset() }

// State exposes the accumulator for distributed reduction.
func (m *MaskedAccuracy) State() *types.State { return m.state }
