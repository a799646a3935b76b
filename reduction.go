package composer

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/murthyn/composer/reduce"
	"github.com/murthyn/composer/types"
)

// Reduction is the distributed snapshot harness of one worker, wired from
// the Logger's configuration.
//
// The Publisher pushes this worker's metric state into the shared KV
// bucket; the Collector merges every worker's latest snapshot. Any worker
// may collect (typically whichever one reports at a logging boundary);
// there is no leader.
type ReductionHarness struct {
	// Publisher publishes this worker's state snapshots.
	Publisher *reduce.Publisher

	// Collector merges the snapshots of all live workers.
	Collector *reduce.Collector
}

// NewReduction builds the snapshot harness from the Logger's Reduction
// configuration.
//
// The KV bucket named by Config.Reduction.Bucket is created (or opened)
// with Config.Reduction.SnapshotTTL, and the returned Publisher and
// Collector inherit the Logger's diagnostics and telemetry. Every KV
// operation is bounded by Config.OperationTimeout.
//
// Parameters:
//   - ctx: Context for the bucket create/open
//   - conn: NATS connection with JetStream enabled (not owned)
//   - workerID: This worker's stable identifier
//   - source: The metric (or state holder) to snapshot
//
// Returns:
//   - *ReductionHarness: Publisher and Collector over the shared bucket
//   - error: ErrLoggerClosed, ErrNATSConnectionRequired, or the bucket
//     failure
//
// Example:
//
//	red, err := logger.NewReduction(ctx, nc, "worker-0", ceMetric)
//	if err != nil {
//	    return err
//	}
//	if err := red.Publisher.Start(ctx); err != nil {
//	    return err
//	}
//	defer red.Publisher.Stop()
func (l *Logger) NewReduction(ctx context.Context, conn *nats.Conn, workerID string, source reduce.Snapshotter) (*ReductionHarness, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrLoggerClosed
	}
	l.mu.Unlock()

	bucketCtx, cancel := context.WithTimeout(ctx, l.cfg.OperationTimeout)
	defer cancel()

	kv, err := reduce.SnapshotBucket(bucketCtx, conn, l.cfg.Reduction.Bucket, l.cfg.Reduction.SnapshotTTL)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot bucket %s: %w", l.cfg.Reduction.Bucket, err)
	}

	publisher := reduce.NewPublisher(
		kv,
		l.cfg.Reduction.KeyPrefix,
		workerID,
		source,
		l.cfg.Reduction.PublishInterval,
		reduce.WithPublisherLogger(l.diag),
		reduce.WithPublisherCollector(l.collector),
		reduce.WithPublisherTimeout(l.cfg.OperationTimeout),
	)

	collector := reduce.NewCollector(
		kv,
		l.cfg.Reduction.KeyPrefix,
		reduce.WithCollectorLogger(l.diag),
		reduce.WithCollectorCollector(l.collector),
		reduce.WithCollectorTimeout(l.cfg.OperationTimeout),
	)

	return &ReductionHarness{Publisher: publisher, Collector: collector}, nil
}

// Compile-time assertion that every Metric satisfies the snapshot source
// contract NewReduction expects.
var _ reduce.Snapshotter = (types.Metric)(nil)
