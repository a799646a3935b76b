package types

import "context"

// Hooks defines callbacks for Logger-internal events.
//
// All hooks are optional and invoked synchronously on the training
// goroutine after the triggering condition has already been handled
// (warning logged, telemetry recorded). Hook errors are logged but never
// abort the dispatch.
//
// Hooks are for side effects the embedding application cares about, such as
// alerting when a destination keeps failing. They are not the metric data
// path; use a LoggerDestination for that.
type Hooks struct {
	// OnDestinationError is called when a destination's LogData or RunEvent
	// returns an error or panics.
	OnDestinationError func(ctx context.Context, destination string, err error) error

	// OnEvent is called after a lifecycle event has been dispatched to all
	// destinations.
	OnEvent func(ctx context.Context, event Event, timestamp Timestamp) error
}
