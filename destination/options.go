package destination

import (
	"github.com/murthyn/composer/internal/logging"
	"github.com/murthyn/composer/internal/telemetry"
	"github.com/murthyn/composer/types"
)

const defaultQueueSize = 1024

// Option configures a destination with optional dependencies.
type Option func(*options)

// options holds optional destination configuration shared by the buffered
// destinations.
type options struct {
	logger    types.Logger
	collector types.Collector
	queueSize int
}

func applyOptions(opts []Option) options {
	o := options{
		logger:    logging.NewNop(),
		collector: telemetry.NewNop(),
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the diagnostic logger used for worker-side warnings.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCollector sets the self-telemetry collector for drop counters and
// queue depth gauges.
func WithCollector(collector types.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.collector = collector
		}
	}
}

// WithQueueSize sets the background queue capacity of a buffered
// destination. Entries logged while the queue is full are dropped.
func WithQueueSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.queueSize = size
		}
	}
}

// entry is one queued log record. The data is always a deep copy taken on
// the training goroutine before handoff.
type entry struct {
	Timestamp types.Timestamp `json:"timestamp"`
	Level     string          `json:"level"`
	Data      types.LogData   `json:"data"`
}
