package types

import "context"

// LoggerDestination is a sink for metric data produced during training.
//
// LogData is invoked synchronously on the training goroutine by the owning
// Logger. Implementations must not assume ownership of data beyond the
// call; retaining data requires a LogData.Clone. Implementations intending
// to perform expensive I/O (file writes, network sends) should hand the
// cloned entry to an internally managed background worker rather than
// perform the I/O inline, to avoid stalling the training loop.
//
// A LogData error does not abort training: the Logger isolates destination
// failures, logs a warning, and continues with the remaining destinations.
type LoggerDestination interface {
	// Name returns a stable identifier used in diagnostics and telemetry.
	Name() string

	// LogData records one entry at the given point in training.
	//
	// Parameters:
	//   - timestamp: Monotonic training progress marker (never mutated)
	//   - level: Granularity of this entry
	//   - data: The values to record; valid only for the duration of the call
	//
	// Returns:
	//   - error: Non-nil on failure; surfaced as a warning, never fatal
	LogData(timestamp Timestamp, level LogLevel, data LogData) error

	// Close flushes any buffered entries and releases resources.
	//
	// Parameters:
	//   - ctx: Bounds the flush; pending entries may be dropped on expiry
	Close(ctx context.Context) error
}

// Callback receives training lifecycle events.
//
// Callback is a capability separate from LoggerDestination: a concrete type
// may implement either or both. The Logger dispatches events synchronously
// and isolates callback failures the same way as LogData failures.
type Callback interface {
	// RunEvent is invoked at the given lifecycle point.
	//
	// Parameters:
	//   - ctx: Cancelled when the owning Logger shuts down
	//   - event: The lifecycle point being dispatched
	//   - timestamp: Training progress at the time of the event
	RunEvent(ctx context.Context, event Event, timestamp Timestamp) error
}
