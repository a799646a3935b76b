package types

import "fmt"

// Event identifies a training-loop lifecycle point.
//
// The trainer fires events through the Logger, which dispatches them to
// every destination implementing Callback. Events at matching granularity
// typically accompany a LogData call (for example EventBatchEnd with
// LevelBatch data).
type Event int8

const (
	// EventInit fires once when the training run is initialized.
	EventInit Event = iota

	// EventFitStart fires before the first batch of a training run.
	EventFitStart

	// EventEpochStart fires before the first batch of each epoch.
	EventEpochStart

	// EventBatchStart fires before each batch.
	EventBatchStart

	// EventBatchEnd fires after each batch.
	EventBatchEnd

	// EventEpochEnd fires after the last batch of each epoch.
	// Buffered destinations typically flush here.
	EventEpochEnd

	// EventFitEnd fires once after the final batch of a training run.
	EventFitEnd
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventInit:
		return "init"
	case EventFitStart:
		return "fit_start"
	case EventEpochStart:
		return "epoch_start"
	case EventBatchStart:
		return "batch_start"
	case EventBatchEnd:
		return "batch_end"
	case EventEpochEnd:
		return "epoch_end"
	case EventFitEnd:
		return "fit_end"
	default:
		return fmt.Sprintf("event(%d)", int8(e))
	}
}
