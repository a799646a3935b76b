package composer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/murthyn/composer/internal/hooks"
	"github.com/murthyn/composer/internal/logging"
	"github.com/murthyn/composer/internal/telemetry"
	"github.com/murthyn/composer/types"
)

// Logger fans metric data and lifecycle events out to registered
// destinations.
//
// Logger is the main entry point of the composer library. It handles:
//   - Granularity filtering (global MinLogLevel plus per-destination caps)
//   - Synchronous dispatch of LogData and lifecycle events
//   - Isolation of destination failures and panics
//   - Bounded shutdown of buffered destinations
//
// Thread Safety:
//   - Registration and Close are safe for concurrent use
//   - LogData/LogMetrics/FireEvent follow the single training goroutine
//     model; the Logger adds no synchronization around metric state
//
// Lifecycle:
//   - Create with NewLogger()
//   - Register destinations with AddDestination()
//   - Drive LogData/FireEvent from the training loop
//   - Call Close() for graceful shutdown
type Logger struct {
	cfg       Config
	diag      types.Logger
	collector types.Collector
	hooks     types.Hooks

	mu           sync.Mutex
	destinations []registration
	lastSeen     types.Timestamp
	closed       bool
}

// registration pairs a destination with its granularity cap.
type registration struct {
	dest     types.LoggerDestination
	maxLevel types.LogLevel
}

// NewLogger creates a new Logger instance with the provided configuration.
//
// Returns a concrete *Logger struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration; missing values are filled with defaults
//   - opts: Optional configuration (diagnostics, collector, hooks)
//
// Returns:
//   - *Logger: Initialized logger instance
//   - error: ErrInvalidConfig if the configuration fails validation
//
// Example:
//
//	cfg := composer.DefaultConfig()
//	logger, err := composer.NewLogger(&cfg, composer.WithDiagnostics(diag))
func NewLogger(cfg *Config, opts ...Option) (*Logger, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	o := loggerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.diag == nil {
		o.diag = logging.NewSlogDefault()
	}
	if o.collector == nil {
		o.collector = telemetry.NewNop()
	}
	if o.hooks == nil {
		h := hooks.NewNop()
		o.hooks = &h
	}

	cfg.ValidateWithWarnings(o.diag)

	return &Logger{
		cfg:       *cfg,
		diag:      o.diag,
		collector: o.collector,
		hooks:     *o.hooks,
	}, nil
}

// AddDestination registers a destination with a granularity cap.
//
// The destination receives entries whose level is at most maxLevel: a cap
// of LevelEpoch admits fit- and epoch-granularity data but never
// batch-granularity data. Destinations are dispatched in registration
// order and closed in the same order.
//
// Parameters:
//   - dest: The destination to register
//   - maxLevel: Finest granularity the destination should receive
//
// Returns:
//   - error: ErrDestinationRequired, ErrInvalidConfig on a bad level, or
//     ErrLoggerClosed
func (l *Logger) AddDestination(dest types.LoggerDestination, maxLevel types.LogLevel) error {
	if dest == nil {
		return ErrDestinationRequired
	}
	if !maxLevel.Valid() {
		return fmt.Errorf("%w: invalid max level %d", ErrInvalidConfig, maxLevel)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLoggerClosed
	}
	l.destinations = append(l.destinations, registration{dest: dest, maxLevel: maxLevel})

	return nil
}

// LogData dispatches one entry to every destination whose cap admits the
// level.
//
// Ownership of data transfers to each destination only for the duration of
// its LogData call. Destination errors and panics are contained: they are
// logged as warnings, recorded in telemetry, reported through
// Hooks.OnDestinationError, and do not affect other destinations or the
// return value. Only a closed Logger or an invalid level fails the call.
//
// Parameters:
//   - timestamp: Monotonic training progress marker; regressions are
//     warned about but the timestamp is never mutated
//   - level: Granularity of this entry
//   - data: The values to record
//
// Returns:
//   - error: ErrLoggerClosed or ErrInvalidConfig; never a destination error
func (l *Logger) LogData(timestamp types.Timestamp, level types.LogLevel, data types.LogData) error {
	if !level.Valid() {
		return fmt.Errorf("%w: invalid log level %d", ErrInvalidConfig, level)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoggerClosed
	}
	if timestamp.Before(l.lastSeen) {
		l.diag.Warn("timestamp regression", "timestamp", timestamp, "last_seen", l.lastSeen)
	} else {
		l.lastSeen = timestamp
	}
	dests := l.destinations
	l.mu.Unlock()

	// Coarser than the global minimum means the run does not log at this
	// granularity at all.
	if level > l.cfg.MinLogLevel {
		return nil
	}

	start := time.Now()
	admitted := 0
	for _, reg := range dests {
		if level > reg.maxLevel {
			continue
		}
		admitted++

		if err := safeLogData(reg.dest, timestamp, level, data); err != nil {
			l.reportDestinationError(reg.dest.Name(), err)
		}
	}
	l.collector.RecordLogDispatch(level, admitted, time.Since(start).Seconds())

	return nil
}

// LogMetrics computes each metric and logs the values as one entry keyed
// by metric name.
//
// Unlike destination failures, a metric Compute failure is surfaced to the
// caller: an undefined or corrupted metric must halt reporting, not log
// garbage.
//
// Parameters:
//   - timestamp: Monotonic training progress marker
//   - level: Granularity of the entry
//   - metrics: Metrics to compute and log
//
// Returns:
//   - error: The first Compute failure, or a LogData failure
func (l *Logger) LogMetrics(timestamp types.Timestamp, level types.LogLevel, metrics ...types.Metric) error {
	data := make(types.LogData, len(metrics))
	for _, m := range metrics {
		value, err := m.Compute()
		if err != nil {
			return fmt.Errorf("computing metric %s: %w", m.Name(), err)
		}
		data[m.Name()] = value
	}

	return l.LogData(timestamp, level, data)
}

// FireEvent dispatches a lifecycle event to every destination implementing
// Callback, then to Hooks.OnEvent.
//
// Failures are isolated exactly like LogData failures.
//
// Parameters:
//   - ctx: Context passed through to callbacks
//   - event: The lifecycle point
//   - timestamp: Training progress at the time of the event
//
// Returns:
//   - error: ErrLoggerClosed; never a callback error
func (l *Logger) FireEvent(ctx context.Context, event types.Event, timestamp types.Timestamp) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoggerClosed
	}
	dests := l.destinations
	l.mu.Unlock()

	start := time.Now()
	for _, reg := range dests {
		cb, ok := reg.dest.(types.Callback)
		if !ok {
			continue
		}

		if err := safeRunEvent(ctx, cb, event, timestamp); err != nil {
			l.reportDestinationError(reg.dest.Name(), err)
		}
	}
	l.collector.RecordEventDispatch(event, time.Since(start).Seconds())

	if l.hooks.OnEvent != nil {
		if err := l.hooks.OnEvent(ctx, event, timestamp); err != nil {
			l.diag.Warn("OnEvent hook failed", "event", event, "error", err)
		}
	}

	return nil
}

// Close shuts the Logger down and closes all destinations in registration
// order.
//
// Each destination gets the remaining shutdown budget to drain its queue.
// Close errors are collected; a failing destination does not prevent the
// others from closing.
//
// Parameters:
//   - ctx: Base context; the configured ShutdownTimeout is applied on top
//
// Returns:
//   - error: ErrLoggerClosed on double close, else joined close failures
func (l *Logger) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoggerClosed
	}
	l.closed = true
	dests := l.destinations
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	for _, reg := range dests {
		if err := reg.dest.Close(ctx); err != nil {
			l.diag.Warn("destination close failed", "destination", reg.dest.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", reg.dest.Name(), err))
		}
	}

	return errors.Join(errs...)
}

// reportDestinationError applies the containment policy for one failure.
func (l *Logger) reportDestinationError(name string, err error) {
	l.diag.Warn("destination failed", "destination", name, "error", err)
	l.collector.RecordDestinationError(name)

	if l.hooks.OnDestinationError != nil {
		if hookErr := l.hooks.OnDestinationError(context.Background(), name, err); hookErr != nil {
			l.diag.Warn("OnDestinationError hook failed", "destination", name, "error", hookErr)
		}
	}
}

// safeLogData invokes LogData converting panics into errors.
func safeLogData(dest types.LoggerDestination, ts types.Timestamp, level types.LogLevel, data types.LogData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destination panic: %v", r)
		}
	}()

	return dest.LogData(ts, level, data)
}

// safeRunEvent invokes RunEvent converting panics into errors.
func safeRunEvent(ctx context.Context, cb types.Callback, event types.Event, ts types.Timestamp) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callback panic: %v", r)
		}
	}()

	return cb.RunEvent(ctx, event, ts)
}
