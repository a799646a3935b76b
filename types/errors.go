package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the composer library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Metric, Logger, Reduction, etc.)
//   - Use consistent messages across similar error types

// Metric errors - Raised by Metric implementations.
//
// Validation errors are raised at Update time, never deferred to Compute;
// silent corruption of training metrics is worse than a halted run.
var (
	// ErrShapeMismatch is returned when prediction and target ranks or sizes
	// disagree after any required reshape.
	ErrShapeMismatch = errors.New("prediction/target shape mismatch")

	// ErrUnsupportedOutput is returned when a model output is neither a
	// logits tensor nor a mapping carrying "loss"/"logits" keys.
	ErrUnsupportedOutput = errors.New("unsupported model output type")

	// ErrUndefinedMetric is returned by Compute before any Update has been
	// observed (zero denominator or empty series).
	//
	// This is the single library-wide policy: Compute on empty state always
	// returns this error, never NaN.
	ErrUndefinedMetric = errors.New("metric undefined: no updates observed")

	// ErrReductionPolicy is returned when a declared reduction rule is
	// inapplicable to the accumulated data, or when merged states disagree
	// on their field declarations.
	ErrReductionPolicy = errors.New("reduction policy violation")

	// ErrInvalidState is returned for malformed accumulator declarations
	// (empty or duplicate field names, unknown field access).
	ErrInvalidState = errors.New("invalid metric state")
)

// Logger errors - Public API errors returned by the root Logger.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDestinationRequired is returned when a nil destination is registered.
	ErrDestinationRequired = errors.New("logger destination is required")

	// ErrLoggerClosed is returned when operations are attempted after Close.
	ErrLoggerClosed = errors.New("logger already closed")
)

// Destination errors - Returned by destination implementations.
var (
	// ErrQueueFull indicates a buffered destination dropped an entry because
	// its background queue was at capacity. Destinations report the drop and
	// continue; the training loop is never blocked.
	ErrQueueFull = errors.New("destination queue full, entry dropped")

	// ErrDestinationClosed is returned when logging to a closed destination.
	ErrDestinationClosed = errors.New("destination already closed")
)

// Reduction harness errors - Returned by the reduce package.
var (
	// ErrNATSConnectionRequired is returned when the NATS connection is nil.
	ErrNATSConnectionRequired = errors.New("NATS connection is required")

	// ErrNoWorkerStates is returned when a collection round finds no worker
	// snapshots to merge.
	ErrNoWorkerStates = errors.New("no worker states available")

	// ErrPublishFailed is returned when publishing a state snapshot fails.
	ErrPublishFailed = errors.New("failed to publish state snapshot")
)

// IsNoKeysFoundError checks if an error indicates that no keys were found in NATS KV.
//
// This function handles NATS-specific "no keys found" errors which may come as:
//   - Direct error: "nats: no keys found"
//   - Wrapped error: "failed to list KV keys: nats: no keys found"
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates no keys were found, false otherwise
func IsNoKeysFoundError(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "no keys found")
}
