package composer

import "github.com/murthyn/composer/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the
// `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `composer`
// package, while still providing convenient `composer.Timestamp`,
// `composer.Metric`, etc. for users.
//
// types.Logger (the ambient structured logging interface) is deliberately
// not aliased here; the root Logger is the metric fan-out object.
type (
	Timestamp  = types.Timestamp
	LogLevel   = types.LogLevel
	Event      = types.Event
	LogData    = types.LogData
	State      = types.State
	StateField = types.StateField
	Reduction  = types.Reduction
	Output     = types.Output
)

// Re-export interfaces from the internal types package for convenience.
type (
	Metric            = types.Metric
	LoggerDestination = types.LoggerDestination
	Callback          = types.Callback
	Collector         = types.Collector
	Hooks             = types.Hooks
)

// Re-export LogLevel constants from the internal types package.
const (
	LevelFit   = types.LevelFit
	LevelEpoch = types.LevelEpoch
	LevelBatch = types.LevelBatch
)

// Re-export Event constants from the internal types package.
const (
	EventInit       = types.EventInit
	EventFitStart   = types.EventFitStart
	EventEpochStart = types.EventEpochStart
	EventBatchStart = types.EventBatchStart
	EventBatchEnd   = types.EventBatchEnd
	EventEpochEnd   = types.EventEpochEnd
	EventFitEnd     = types.EventFitEnd
)

// Re-export Reduction constants from the internal types package.
const (
	ReduceSum    = types.ReduceSum
	ReduceConcat = types.ReduceConcat
)
