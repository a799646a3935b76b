package types

import "fmt"

// LogLevel describes the granularity of a log event.
//
// Levels are ordered by increasing granularity: LevelFit (once per run) <
// LevelEpoch < LevelBatch. A destination registered with a maximum level of
// LevelEpoch receives fit- and epoch-granularity data but never
// batch-granularity data; the Logger performs this filtering before
// LogData is invoked.
type LogLevel int8

const (
	// LevelFit is run-level data logged once per training run.
	LevelFit LogLevel = iota + 1

	// LevelEpoch is data logged at epoch boundaries.
	LevelEpoch

	// LevelBatch is data logged every batch.
	LevelBatch
)

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case LevelFit:
		return "fit"
	case LevelEpoch:
		return "epoch"
	case LevelBatch:
		return "batch"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

// Valid reports whether the level is one of the defined constants.
func (l LogLevel) Valid() bool {
	return l >= LevelFit && l <= LevelBatch
}
