package reduce

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/murthyn/composer/internal/kvutil"
	"github.com/murthyn/composer/types"
)

// SnapshotBucket creates or opens the KV bucket workers publish snapshots
// into.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - conn: NATS connection with JetStream enabled
//   - bucket: Bucket name shared by all workers of a run
//   - ttl: Snapshot expiry; ~3x the publish interval so dead workers age out
//
// Returns:
//   - jetstream.KeyValue: The bucket, created if needed
//   - error: ErrNATSConnectionRequired or the JetStream failure
func SnapshotBucket(ctx context.Context, conn *nats.Conn, bucket string, ttl time.Duration) (jetstream.KeyValue, error) {
	if conn == nil {
		return nil, types.ErrNATSConnectionRequired
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket: bucket,
		TTL:    ttl,
	}, 3)
}
