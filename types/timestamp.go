package types

import "fmt"

// Timestamp is a monotonically non-decreasing point-in-training marker.
//
// The trainer owns and advances the counters; the Logger and destinations
// never mutate a Timestamp they receive. Sample counts token/example
// progress and is independent of batch boundaries.
type Timestamp struct {
	// Epoch is the zero-based epoch counter.
	Epoch int64 `json:"epoch"`

	// Batch is the global zero-based batch counter across all epochs.
	Batch int64 `json:"batch"`

	// BatchInEpoch is the zero-based batch counter within the current epoch.
	BatchInEpoch int64 `json:"batchInEpoch"`

	// Sample is the number of samples observed so far.
	Sample int64 `json:"sample"`
}

// NextBatch returns the timestamp advanced by one batch of the given sample
// count. The receiver is unchanged.
func (t Timestamp) NextBatch(samples int64) Timestamp {
	return Timestamp{
		Epoch:        t.Epoch,
		Batch:        t.Batch + 1,
		BatchInEpoch: t.BatchInEpoch + 1,
		Sample:       t.Sample + samples,
	}
}

// NextEpoch returns the timestamp advanced to the start of the next epoch.
// The receiver is unchanged.
func (t Timestamp) NextEpoch() Timestamp {
	return Timestamp{
		Epoch:        t.Epoch + 1,
		Batch:        t.Batch,
		BatchInEpoch: 0,
		Sample:       t.Sample,
	}
}

// Before reports whether t is strictly earlier in training than other.
//
// Ordering is by epoch, then global batch, then sample.
func (t Timestamp) Before(other Timestamp) bool {
	if t.Epoch != other.Epoch {
		return t.Epoch < other.Epoch
	}
	if t.Batch != other.Batch {
		return t.Batch < other.Batch
	}

	return t.Sample < other.Sample
}

// After reports whether t is strictly later in training than other.
func (t Timestamp) After(other Timestamp) bool {
	return other.Before(t)
}

// String formats the timestamp as "ep3/ba120/sa15360".
func (t Timestamp) String() string {
	return fmt.Sprintf("ep%d/ba%d/sa%d", t.Epoch, t.Batch, t.Sample)
}
