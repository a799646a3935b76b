// Package testing provides test utilities for composer consumers.
//
// It includes an embedded NATS server with JetStream for exercising the
// distributed reduction harness and the NATS destination without external
// infrastructure, plus a diagnostics logger that writes to testing.T.
//
// The package is intended for use in _test.go files:
//
//	func TestReduction(t *testing.T) {
//	    _, nc := composertest.StartEmbeddedNATS(t)
//	    kv := composertest.CreateJetStreamKV(t, nc, "metric-state")
//	    // ...
//	}
package testing
