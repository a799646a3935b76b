package metric

import (
	"fmt"

	"github.com/murthyn/composer/types"
)

const (
	fieldPredictions = "predictions"
	fieldLabels      = "labels"
	binaryClasses    = 2
)

// BinaryF1 accumulates raw two-class predictions and labels and computes
// the F1 score of the positive class (label 1) at the end.
//
// Both accumulator fields declare ReduceConcat: every prediction row and
// label observed on every worker is retained until Compute. This makes
// BinaryF1 memory-expensive relative to the counter-based metrics; memory
// grows linearly with the number of observed samples.
type BinaryF1 struct {
	state *types.State
}

// Compile-time assertion that BinaryF1 implements Metric.
var _ types.Metric = (*BinaryF1)(nil)

// NewBinaryF1 creates a binary F1 metric.
func NewBinaryF1() *BinaryF1 {
	return &BinaryF1{
		state: types.MustNewState(
			types.SeriesField(fieldPredictions),
			types.SeriesField(fieldLabels),
		),
	}
}

// Name returns "binary_f1".
func (m *BinaryF1) Name() string { return "binary_f1" }

// Update appends one batch of raw two-class logits and labels.
//
// Returns:
//   - error: ErrUnsupportedOutput without logits, ErrShapeMismatch when a
//     row is not two-class, counts disagree, or a label is not 0/1
func (m *BinaryF1) Update(output any, target []int) error {
	out, err := types.NormalizeOutput(output)
	if err != nil {
		return err
	}
	if out.Logits == nil {
		return fmt.Errorf("%w: binary F1 requires logits", types.ErrUnsupportedOutput)
	}
	if len(out.Logits) != len(target) {
		return fmt.Errorf("%w: %d logits rows vs %d targets",
			types.ErrShapeMismatch, len(out.Logits), len(target))
	}

	flat := make([]float64, 0, len(out.Logits)*binaryClasses)
	labels := make([]float64, 0, len(target))
	for i, row := range out.Logits {
		if len(row) != binaryClasses {
			return fmt.Errorf("%w: row %d has %d classes, want %d",
				types.ErrShapeMismatch, i, len(row), binaryClasses)
		}
		if target[i] != 0 && target[i] != 1 {
			return fmt.Errorf("%w: label %d is not binary", types.ErrShapeMismatch, target[i])
		}
		flat = append(flat, row...)
		labels = append(labels, float64(target[i]))
	}

	_ = m.state.Append(fieldPredictions, flat...)
	_ = m.state.Append(fieldLabels, labels...)

	return nil
}

// Compute derives the F1 score of the positive class from the retained
// predictions and labels.
//
// When no positive predictions and no positive labels exist, precision and
// recall are both undefined and the score is reported as 0.
//
// Returns:
//   - error: ErrUndefinedMetric before any samples were retained
func (m *BinaryF1) Compute() (float64, error) {
	preds, err := m.state.Series(fieldPredictions)
	if err != nil {
		return 0, err
	}
	labels, err := m.state.Series(fieldLabels)
	if err != nil {
		return 0, err
	}
	if len(labels) == 0 {
		return 0, types.ErrUndefinedMetric
	}

	var tp, fp, fn float64
	for i, label := range labels {
		row := preds[i*binaryClasses : i*binaryClasses+binaryClasses]
		predicted := float64(argmax(row))

		switch {
		case predicted == 1 && label == 1:
			tp++
		case predicted == 1 && label == 0:
			fp++
		case predicted == 0 && label == 1:
			fn++
		}
	}

	denom := 2*tp + fp + fn
	if denom == 0 {
		return 0, nil
	}

	return 2 * tp / denom, nil
}

// Reset discards all retained predictions and labels.
func (m *BinaryF1) Reset() { m.state.Reset() }

// State exposes the accumulator for distributed reduction.
func (m *BinaryF1) State() *types.State { return m.state }
