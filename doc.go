// Package composer provides the metric accumulation and logging core of a
// deep-learning training loop.
//
// A trainer drives two data paths through this library. Metrics (package
// metric) accumulate per-batch model outputs and derive reported values with
// explicit cross-worker reduction rules. The Logger fans computed metric
// data out to destinations (package destination) at training lifecycle
// events, isolating destination failures so a broken sink never takes down
// a run.
//
// # Quick Start
//
//	ce := metric.NewCrossEntropy(vocabSize)
//	acc := metric.NewMaskedAccuracy(-100)
//
//	cfg := composer.DefaultConfig()
//	logger, err := composer.NewLogger(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Close(context.Background())
//
//	mem := destination.NewMemory()
//	logger.AddDestination(mem, composer.LevelBatch)
//
//	// per batch:
//	_ = ce.Update(logits, targets)
//	_ = acc.Update(logits, targets)
//	logger.LogMetrics(ts, composer.LevelBatch, ce, acc)
//
// # Distributed Training
//
// Each worker owns one instance of every metric. Package reduce publishes
// per-worker state snapshots to a NATS JetStream KV bucket and merges them
// with each field's declared reduction rule (sum for counters, concatenate
// for retained series) before Compute runs on the pooled state.
//
// # Error Policy
//
// Metric validation errors surface at Update time and Compute on an empty
// accumulator returns ErrUndefinedMetric; silent metric corruption is
// treated as worse than a halted run. Destination errors are the opposite:
// logged, counted, and contained.
package composer
