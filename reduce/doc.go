// Package reduce implements cross-worker metric state reduction.
//
// Merge folds per-worker accumulator states using each field's declared
// reduction rule. For multi-process training runs the package also provides
// a NATS JetStream KV harness: each worker runs a Publisher that snapshots
// its metric state into a shared bucket, and the process that reports
// metrics runs a Collector that gathers and merges all live snapshots
// before Compute.
//
// Snapshot keys carry a TTL so crashed workers age out of the bucket the
// same way stale heartbeats would.
package reduce
