// Package types provides core type definitions and interfaces for the composer library.
//
// This package contains shared types that are used across multiple packages in the
// composer library. By keeping these types in a separate package, we avoid import
// cycles between the main composer package and its internal implementations.
//
// Key types:
//   - Metric: Stateful accumulator producing a scalar summary of observed batches
//   - State: Typed accumulator registry with per-field distributed reduction rules
//   - LoggerDestination / Callback: Capability interfaces for training-event sinks
//   - Timestamp, LogLevel, Event: Training-loop progress and granularity model
//   - Logger: Structured logging interface
//   - Collector: Self-telemetry recording interface
package types
