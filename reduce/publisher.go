package reduce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zeebo/xxh3"

	"github.com/murthyn/composer/internal/logging"
	"github.com/murthyn/composer/internal/natsutil"
	"github.com/murthyn/composer/internal/telemetry"
	"github.com/murthyn/composer/types"
)

// Publisher errors.
var (
	ErrNotStarted     = errors.New("publisher not started")
	ErrAlreadyStarted = errors.New("publisher already started")
)

// Snapshotter yields the accumulator state to publish. Every types.Metric
// satisfies it.
type Snapshotter interface {
	State() *types.State
}

// Publisher periodically publishes a worker's metric state snapshot to a
// NATS JetStream KV bucket.
//
// The bucket should be configured with a TTL of ~3x the publish interval so
// crashed workers age out before a collection round. Snapshots whose
// serialized content is unchanged since the last publish are skipped; the
// content hash makes steady-state idle workers nearly free.
//
// The snapshot reads the metric's state on the publisher goroutine; the
// caller must guarantee the metric is not being updated concurrently, or
// use Publish explicitly from the training goroutine at batch boundaries
// instead of Start.
type Publisher struct {
	kv        jetstream.KeyValue
	prefix    string
	workerID  string
	source    Snapshotter
	interval  time.Duration
	timeout   time.Duration
	logger    types.Logger
	collector types.Collector

	mu       sync.Mutex
	started  bool
	lastHash uint64
	stopCh   chan struct{}
	doneCh   chan struct{}
	ticker   *time.Ticker
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherLogger sets the diagnostic logger.
func WithPublisherLogger(logger types.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPublisherCollector sets the self-telemetry collector.
func WithPublisherCollector(collector types.Collector) PublisherOption {
	return func(p *Publisher) {
		if collector != nil {
			p.collector = collector
		}
	}
}

// WithPublisherTimeout bounds each KV write with the given timeout.
// Zero leaves the caller's context in charge.
func WithPublisherTimeout(timeout time.Duration) PublisherOption {
	return func(p *Publisher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// NewPublisher creates a snapshot publisher.
//
// Parameters:
//   - kv: JetStream KV bucket for snapshot storage
//   - prefix: Key prefix (snapshot keys are "<prefix>.<workerID>")
//   - workerID: This worker's stable identifier
//   - source: The metric (or state holder) to snapshot
//   - interval: Publish interval for background publishing via Start
//
// Returns:
//   - *Publisher: New publisher instance
func NewPublisher(
	kv jetstream.KeyValue,
	prefix string,
	workerID string,
	source Snapshotter,
	interval time.Duration,
	opts ...PublisherOption,
) *Publisher {
	p := &Publisher{
		kv:        kv,
		prefix:    prefix,
		workerID:  workerID,
		source:    source,
		interval:  interval,
		logger:    logging.NewNop(),
		collector: telemetry.NewNop(),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Publish snapshots the source state and writes it to the KV bucket.
//
// The publish is skipped (and recorded as skipped) when the serialized
// state is byte-identical to the previous publish.
//
// Returns:
//   - error: ErrPublishFailed wrapping the KV error on failure
func (p *Publisher) Publish(ctx context.Context) error {
	payload, err := json.Marshal(p.source.State())
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrPublishFailed, err)
	}

	hash := xxh3.Hash(payload)
	p.mu.Lock()
	unchanged := p.lastHash == hash && p.lastHash != 0
	p.mu.Unlock()
	if unchanged {
		p.collector.RecordSnapshotSkipped()
		return nil
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if _, err := p.kv.Put(ctx, p.key(), payload); err != nil {
		p.collector.RecordSnapshotPublish(false)
		return fmt.Errorf("%w: %w", types.ErrPublishFailed, err)
	}

	p.mu.Lock()
	p.lastHash = hash
	p.mu.Unlock()
	p.collector.RecordSnapshotPublish(true)

	return nil
}

// Start begins background publishing at the configured interval.
//
// Publishes one snapshot immediately, then ticks until Stop.
//
// Returns:
//   - error: ErrAlreadyStarted if already running, or the initial publish
//     failure
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.mu.Unlock()

	if err := p.Publish(ctx); err != nil {
		p.mu.Lock()
		p.started = false
		p.ticker.Stop()
		p.mu.Unlock()

		return fmt.Errorf("initial snapshot publish: %w", err)
	}

	go p.loop(ctx)

	return nil
}

// Stop halts background publishing and waits for the loop to exit.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return ErrNotStarted
	}
	p.started = false
	p.ticker.Stop()
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh

	return nil
}

func (p *Publisher) loop(ctx context.Context) {
	defer close(p.doneCh)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-p.ticker.C:
			if err := p.Publish(ctx); err != nil {
				if natsutil.IsConnectivityError(err) {
					p.logger.Warn("state snapshot publish failed, will retry next tick",
						"worker_id", p.workerID, "error", err)
				} else {
					p.logger.Error("state snapshot publish failed",
						"worker_id", p.workerID, "error", err)
				}
			}
		}
	}
}

func (p *Publisher) key() string {
	return p.prefix + "." + p.workerID
}
