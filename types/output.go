package types

import "fmt"

// Output is a normalized model output: logits, a precomputed loss, or both.
//
// Loss is a pointer so "no loss provided" is distinguishable from a loss of
// zero.
type Output struct {
	// Logits holds per-row class scores (rows x classes).
	Logits [][]float64

	// Loss is the precomputed batch loss, if the model provided one.
	Loss *float64
}

// NormalizeOutput converts the supported model output forms into an Output.
//
// Accepted forms:
//   - [][]float64: raw logits
//   - Output / *Output: passed through
//   - map[string]any with a "loss" (float64) and/or "logits" ([][]float64) key
//
// Parameters:
//   - output: The model output in any supported form
//
// Returns:
//   - Output: The normalized output
//   - error: ErrUnsupportedOutput for any other type or malformed mapping
func NormalizeOutput(output any) (Output, error) {
	switch v := output.(type) {
	case Output:
		return v, nil
	case *Output:
		if v == nil {
			return Output{}, fmt.Errorf("%w: nil *Output", ErrUnsupportedOutput)
		}

		return *v, nil
	case [][]float64:
		return Output{Logits: v}, nil
	case map[string]any:
		return outputFromMap(v)
	default:
		return Output{}, fmt.Errorf("%w: %T", ErrUnsupportedOutput, output)
	}
}

func outputFromMap(m map[string]any) (Output, error) {
	var out Output

	if raw, ok := m["loss"]; ok {
		loss, ok := raw.(float64)
		if !ok {
			return Output{}, fmt.Errorf("%w: loss entry is %T, want float64", ErrUnsupportedOutput, raw)
		}
		out.Loss = &loss
	}

	if raw, ok := m["logits"]; ok {
		logits, ok := raw.([][]float64)
		if !ok {
			return Output{}, fmt.Errorf("%w: logits entry is %T, want [][]float64", ErrUnsupportedOutput, raw)
		}
		out.Logits = logits
	}

	if out.Loss == nil && out.Logits == nil {
		return Output{}, fmt.Errorf("%w: mapping has neither loss nor logits", ErrUnsupportedOutput)
	}

	return out, nil
}
