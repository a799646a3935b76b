// Package telemetry provides types.Collector implementations for the
// library's own operational metrics.
package telemetry

import "github.com/murthyn/composer/types"

// NopCollector implements a no-op self-telemetry collector.
//
// All recordings are discarded. Used as the default when no collector is
// configured, eliminating nil checks throughout the codebase.
type NopCollector struct{}

// Compile-time assertion that NopCollector implements Collector.
var _ types.Collector = (*NopCollector)(nil)

// NewNop creates a new no-op collector.
//
// Example:
//
//	logger, err := composer.NewLogger(&cfg, composer.WithCollector(telemetry.NewNop()))
func NewNop() *NopCollector {
	return &NopCollector{}
}

// DispatchMetrics implementation

// RecordLogDispatch discards the dispatch recording.
func (n *NopCollector) RecordLogDispatch(_ /* level */ types.LogLevel, _ /* destinations */ int, _ /* duration */ float64) {
	// No-op
}

// RecordEventDispatch discards the event dispatch recording.
func (n *NopCollector) RecordEventDispatch(_ /* event */ types.Event, _ /* duration */ float64) {
	// No-op
}

// DestinationMetrics implementation

// RecordDestinationError discards the destination error recording.
func (n *NopCollector) RecordDestinationError(_ /* destination */ string) {
	// No-op
}

// RecordDroppedEntry discards the dropped entry recording.
func (n *NopCollector) RecordDroppedEntry(_ /* destination */ string) {
	// No-op
}

// SetQueueDepth discards the queue depth gauge.
func (n *NopCollector) SetQueueDepth(_ /* destination */ string, _ /* depth */ int) {
	// No-op
}

// ReductionMetrics implementation

// RecordSnapshotPublish discards the snapshot publish recording.
func (n *NopCollector) RecordSnapshotPublish(_ /* success */ bool) {
	// No-op
}

// RecordSnapshotSkipped discards the skipped snapshot recording.
func (n *NopCollector) RecordSnapshotSkipped() {
	// No-op
}

// RecordMergeDuration discards the merge duration recording.
func (n *NopCollector) RecordMergeDuration(_ /* duration */ float64) {
	// No-op
}

// SetWorkerStates discards the worker states gauge.
func (n *NopCollector) SetWorkerStates(_ /* count */ int) {
	// No-op
}
