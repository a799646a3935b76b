package reduce

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/murthyn/composer/internal/logging"
	"github.com/murthyn/composer/internal/telemetry"
	"github.com/murthyn/composer/types"
)

// Collector gathers worker state snapshots from a KV bucket and merges
// them.
//
// Collection is read-only: workers keep publishing while a round runs, so
// a round observes each worker's latest snapshot at the time its key is
// read. The merged state is what the trainer hands to Compute at a logging
// boundary.
type Collector struct {
	kv        jetstream.KeyValue
	prefix    string
	timeout   time.Duration
	logger    types.Logger
	collector types.Collector
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectorLogger sets the diagnostic logger.
func WithCollectorLogger(logger types.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCollectorCollector sets the self-telemetry collector.
func WithCollectorCollector(collector types.Collector) CollectorOption {
	return func(c *Collector) {
		if collector != nil {
			c.collector = collector
		}
	}
}

// WithCollectorTimeout bounds each collection round with the given timeout.
// Zero leaves the caller's context in charge.
func WithCollectorTimeout(timeout time.Duration) CollectorOption {
	return func(c *Collector) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewCollector creates a snapshot collector over the same bucket and
// prefix the workers publish to.
func NewCollector(kv jetstream.KeyValue, prefix string, opts ...CollectorOption) *Collector {
	c := &Collector{
		kv:        kv,
		prefix:    prefix,
		logger:    logging.NewNop(),
		collector: telemetry.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect lists live worker snapshots, decodes them, and merges them using
// the declared per-field reduction rules.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - *types.State: The merged state
//   - int: Number of worker snapshots merged
//   - error: ErrNoWorkerStates when the bucket holds no matching keys,
//     ErrReductionPolicy when snapshots disagree on declarations
func (c *Collector) Collect(ctx context.Context) (*types.State, int, error) {
	start := time.Now()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	keys, err := c.kv.Keys(ctx)
	if err != nil {
		if types.IsNoKeysFoundError(err) {
			return nil, 0, types.ErrNoWorkerStates
		}

		return nil, 0, fmt.Errorf("failed to list snapshot keys: %w", err)
	}

	states := make([]*types.State, 0, len(keys))
	for _, key := range keys {
		if !strings.HasPrefix(key, c.prefix+".") {
			continue
		}

		kvEntry, err := c.kv.Get(ctx, key)
		if err != nil {
			// Key expired between list and read; the worker is gone.
			c.logger.Debug("snapshot key disappeared", "key", key, "error", err)
			continue
		}

		var state types.State
		if err := json.Unmarshal(kvEntry.Value(), &state); err != nil {
			return nil, 0, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
		}
		states = append(states, &state)
	}

	if len(states) == 0 {
		return nil, 0, types.ErrNoWorkerStates
	}

	merged, err := Merge(states...)
	if err != nil {
		return nil, 0, err
	}

	c.collector.SetWorkerStates(len(states))
	c.collector.RecordMergeDuration(time.Since(start).Seconds())
	c.logger.Debug("merged worker states", "workers", len(states), "prefix", c.prefix)

	return merged, len(states), nil
}
