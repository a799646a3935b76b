package types

// Collector defines methods for recording the library's own operational
// telemetry (dispatch latency, destination failures, reduction rounds).
//
// This is self-observability of the logging core, not the training metrics
// it transports. Implementations should be non-blocking and handle failures
// gracefully; methods may be called from destination worker goroutines and
// must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type Collector interface {
	DispatchMetrics
	DestinationMetrics
	ReductionMetrics
}

// DispatchMetrics defines metrics for the root Logger's fan-out path.
type DispatchMetrics interface {
	// RecordLogDispatch records one LogData fan-out.
	//
	// Parameters:
	//   - level: Granularity of the dispatched entry
	//   - destinations: Number of destinations that admitted the entry
	//   - duration: Total synchronous dispatch time in seconds
	RecordLogDispatch(level LogLevel, destinations int, duration float64)

	// RecordEventDispatch records one lifecycle event fan-out.
	RecordEventDispatch(event Event, duration float64)
}

// DestinationMetrics defines metrics recorded per destination.
type DestinationMetrics interface {
	// RecordDestinationError records a LogData or RunEvent failure.
	RecordDestinationError(destination string)

	// RecordDroppedEntry records an entry dropped by a full background queue.
	RecordDroppedEntry(destination string)

	// SetQueueDepth sets the current depth of a destination's background
	// queue (gauge metric).
	SetQueueDepth(destination string, depth int)
}

// ReductionMetrics defines metrics for the distributed reduction harness.
type ReductionMetrics interface {
	// RecordSnapshotPublish records a worker snapshot publish attempt.
	//
	// Parameters:
	//   - success: true if the snapshot reached the KV store
	RecordSnapshotPublish(success bool)

	// RecordSnapshotSkipped records a publish skipped because the state
	// hash was unchanged.
	RecordSnapshotSkipped()

	// RecordMergeDuration records the time taken to collect and merge
	// worker states, in seconds.
	RecordMergeDuration(duration float64)

	// SetWorkerStates sets the number of worker snapshots seen in the last
	// collection round (gauge metric).
	SetWorkerStates(count int)
}
