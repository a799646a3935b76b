package types

// Metric is a stateful accumulator producing a scalar summary of observed
// batches.
//
// Lifecycle: a Metric instance is created once per training run (or one per
// worker, with cross-worker reduction at aggregation time), accumulates via
// repeated Update calls, and is read via Compute.
//
// Contracts:
//   - Update validates shapes eagerly and returns ErrShapeMismatch or
//     ErrUnsupportedOutput; validation is never deferred to Compute.
//   - Compute is idempotent: calling it repeatedly without an intervening
//     Update returns identical results and does not mutate state.
//   - Compute before any Update returns ErrUndefinedMetric. This is the
//     library-wide policy; no metric returns NaN for empty state.
//   - A Metric instance is owned by a single goroutine; concurrent mutation
//     requires external synchronization.
type Metric interface {
	// Name returns the metric's reporting key, used in LogData entries and
	// reduction snapshots.
	Name() string

	// Update accumulates one batch of model output against targets.
	//
	// Parameters:
	//   - output: Model output; either [][]float64 logits, an Output value,
	//     or a map[string]any with "loss"/"logits" keys
	//   - target: Ground-truth class indices, one per prediction row
	//
	// Returns:
	//   - error: ErrShapeMismatch, ErrUnsupportedOutput, or nil
	Update(output any, target []int) error

	// Compute derives the reported value from accumulated state.
	//
	// Returns:
	//   - float64: The metric value
	//   - error: ErrUndefinedMetric if no updates were observed
	Compute() (float64, error)

	// Reset restores the accumulator to its initial state.
	Reset()

	// State exposes the accumulator fields for distributed reduction.
	// Callers other than the reduce package must treat it as read-only.
	State() *State
}
