// Package metric provides the built-in training metric accumulators.
//
// Each metric implements types.Metric over an explicit types.State whose
// fields declare their cross-worker reduction rule at construction time.
// Counters and summed losses reduce with ReduceSum; the raw prediction and
// label series of BinaryF1 reduce with ReduceConcat.
//
// All metrics share one empty-state policy: Compute before any successful
// Update returns types.ErrUndefinedMetric.
package metric
