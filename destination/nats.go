package destination

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/murthyn/composer/types"
)

// DefaultSubjectPrefix is the subject prefix used when none is configured.
const DefaultSubjectPrefix = "composer.log"

// NATS publishes log entries as JSON messages to a NATS subject.
//
// Entries are published to "<prefix>.<level>" (for example
// "composer.log.batch"), letting subscribers filter by granularity with a
// subject wildcard. Like File, the entry is cloned on the training
// goroutine and published from a background worker.
type NATS struct {
	conn      *nats.Conn
	prefix    string
	logger    types.Logger
	collector types.Collector

	entryCh chan entry
	doneCh  chan struct{}

	mu     sync.Mutex
	closed bool
}

// Compile-time assertion that NATS implements LoggerDestination.
var _ types.LoggerDestination = (*NATS)(nil)

// NewNATS creates a NATS destination and starts its background worker.
//
// Parameters:
//   - conn: NATS connection (not owned; the caller closes it)
//   - prefix: Subject prefix (DefaultSubjectPrefix if empty)
//   - opts: Optional logger, collector, and queue size
//
// Returns:
//   - *NATS: The running destination
//   - error: ErrNATSConnectionRequired if conn is nil
func NewNATS(conn *nats.Conn, prefix string, opts ...Option) (*NATS, error) {
	if conn == nil {
		return nil, types.ErrNATSConnectionRequired
	}
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	o := applyOptions(opts)
	d := &NATS{
		conn:      conn,
		prefix:    prefix,
		logger:    o.logger,
		collector: o.collector,
		entryCh:   make(chan entry, o.queueSize),
		doneCh:    make(chan struct{}),
	}

	go d.run()

	return d, nil
}

// Name returns "nats:<prefix>".
func (d *NATS) Name() string { return "nats:" + d.prefix }

// LogData clones the entry and enqueues it for publication.
//
// Returns:
//   - error: ErrQueueFull when the entry was dropped, ErrDestinationClosed
//     after Close
func (d *NATS) LogData(timestamp types.Timestamp, level types.LogLevel, data types.LogData) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return types.ErrDestinationClosed
	}

	e := entry{Timestamp: timestamp, Level: level.String(), Data: data.Clone()}
	select {
	case d.entryCh <- e:
		d.collector.SetQueueDepth(d.Name(), len(d.entryCh))
		d.mu.Unlock()

		return nil
	default:
		d.mu.Unlock()
		d.collector.RecordDroppedEntry(d.Name())

		return types.ErrQueueFull
	}
}

// Close drains the queue and flushes pending publishes.
//
// Parameters:
//   - ctx: Bounds the drain; on expiry remaining queued entries are lost
func (d *NATS) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return types.ErrDestinationClosed
	}
	d.closed = true
	close(d.entryCh)
	d.mu.Unlock()

	select {
	case <-d.doneCh:
		// Push buffered publishes out before reporting success.
		if err := d.conn.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("nats destination flush: %w", err)
		}

		return nil
	case <-ctx.Done():
		return fmt.Errorf("nats destination close: %w", ctx.Err())
	}
}

// run publishes queued entries until the queue is closed and drained.
func (d *NATS) run() {
	defer close(d.doneCh)

	for e := range d.entryCh {
		payload, err := json.Marshal(e)
		if err != nil {
			d.logger.Warn("failed to encode log entry", "subject_prefix", d.prefix, "error", err)
			d.collector.RecordDestinationError(d.Name())
			continue
		}

		subject := d.prefix + "." + e.Level
		if err := d.conn.Publish(subject, payload); err != nil {
			d.logger.Warn("failed to publish log entry", "subject", subject, "error", err)
			d.collector.RecordDestinationError(d.Name())
		}
		d.collector.SetQueueDepth(d.Name(), len(d.entryCh))
	}
}
