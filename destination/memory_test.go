package destination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func TestMemoryLogData(t *testing.T) {
	d := NewMemory()

	ts := types.Timestamp{Epoch: 1, Batch: 10}
	require.NoError(t, d.LogData(ts, types.LevelBatch, types.LogData{"loss": 0.5}))

	entries := d.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, ts, entries[0].Timestamp)
	require.Equal(t, types.LevelBatch, entries[0].Level)
	require.InDelta(t, 0.5, entries[0].Data["loss"].(float64), 1e-12)
}

func TestMemoryRetainsClones(t *testing.T) {
	d := NewMemory()

	series := []float64{1, 2, 3}
	data := types.LogData{"series": series}
	require.NoError(t, d.LogData(types.Timestamp{}, types.LevelBatch, data))

	// Mutating the caller's slice after the call must not reach the
	// retained entry.
	series[0] = 99

	require.Equal(t, []float64{1, 2, 3}, d.Entries()[0].Data["series"])
}

func TestMemoryEvents(t *testing.T) {
	d := NewMemory()

	ts := types.Timestamp{Epoch: 2}
	require.NoError(t, d.RunEvent(context.Background(), types.EventEpochEnd, ts))

	events := d.Events()
	require.Len(t, events, 1)
	require.Equal(t, types.EventEpochEnd, events[0].Event)
	require.Equal(t, ts, events[0].Timestamp)
}

func TestMemoryClose(t *testing.T) {
	d := NewMemory()
	require.NoError(t, d.LogData(types.Timestamp{}, types.LevelBatch, types.LogData{"k": 1.0}))
	require.NoError(t, d.Close(context.Background()))

	// Closed destinations reject writes but keep entries readable.
	err := d.LogData(types.Timestamp{}, types.LevelBatch, types.LogData{"k": 2.0})
	require.ErrorIs(t, err, types.ErrDestinationClosed)

	err = d.RunEvent(context.Background(), types.EventFitEnd, types.Timestamp{})
	require.ErrorIs(t, err, types.ErrDestinationClosed)

	require.Len(t, d.Entries(), 1)
}
