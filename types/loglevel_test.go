package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevelOrdering(t *testing.T) {
	// Granularity filtering relies on this ordering.
	require.Less(t, LevelFit, LevelEpoch)
	require.Less(t, LevelEpoch, LevelBatch)
}

func TestLogLevelValid(t *testing.T) {
	require.True(t, LevelFit.Valid())
	require.True(t, LevelEpoch.Valid())
	require.True(t, LevelBatch.Valid())
	require.False(t, LogLevel(0).Valid())
	require.False(t, LogLevel(99).Valid())
}

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "fit", LevelFit.String())
	require.Equal(t, "epoch", LevelEpoch.String())
	require.Equal(t, "batch", LevelBatch.String())
	require.Equal(t, "level(99)", LogLevel(99).String())
}

func TestEventString(t *testing.T) {
	require.Equal(t, "fit_start", EventFitStart.String())
	require.Equal(t, "epoch_end", EventEpochEnd.String())
	require.Equal(t, "event(99)", Event(99).String())
}

func TestLogDataClone(t *testing.T) {
	t.Run("deep copies float slices", func(t *testing.T) {
		series := []float64{1, 2, 3}
		data := LogData{"loss": 0.5, "series": series, "name": "run-1"}

		clone := data.Clone()
		series[0] = 99

		require.Equal(t, []float64{1, 2, 3}, clone["series"])
		require.InDelta(t, 0.5, clone["loss"].(float64), 1e-12)
		require.Equal(t, "run-1", clone["name"])
	})

	t.Run("nil stays nil", func(t *testing.T) {
		require.Nil(t, LogData(nil).Clone())
	})
}
