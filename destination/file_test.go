package destination

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/murthyn/composer/types"
)

func TestFileWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	d, err := NewFile(path)
	require.NoError(t, err)

	ts := types.Timestamp{}
	for i := 0; i < 3; i++ {
		ts = ts.NextBatch(8)
		require.NoError(t, d.LogData(ts, types.LevelBatch, types.LogData{"batch": float64(ts.Batch)}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		lines = append(lines, e)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 3)
	require.Equal(t, int64(1), lines[0].Timestamp.Batch)
	require.Equal(t, "batch", lines[0].Level)
	require.InDelta(t, 3.0, lines[2].Data["batch"].(float64), 1e-12)
}

func TestFileEpochEndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	d, err := NewFile(path)
	require.NoError(t, err)
	defer d.Close(context.Background())

	require.NoError(t, d.LogData(types.Timestamp{}, types.LevelEpoch, types.LogData{"k": 1.0}))
	require.NoError(t, d.RunEvent(context.Background(), types.EventEpochEnd, types.Timestamp{}))

	// The flush request is handled asynchronously by the worker.
	require.Eventually(t, func() bool {
		info, err := os.Stat(path)
		return err == nil && info.Size() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileQueueFullDropsEntry(t *testing.T) {
	// Build the destination without its worker so the queue cannot drain;
	// the second write must be dropped, never block.
	o := applyOptions([]Option{WithQueueSize(1)})
	d := &File{
		path:      "stalled.jsonl",
		logger:    o.logger,
		collector: o.collector,
		entryCh:   make(chan entry, o.queueSize),
		flushCh:   make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
	}

	require.NoError(t, d.LogData(types.Timestamp{}, types.LevelBatch, types.LogData{"i": 1}))

	err := d.LogData(types.Timestamp{}, types.LevelBatch, types.LogData{"i": 2})
	require.ErrorIs(t, err, types.ErrQueueFull)
}

func TestFileClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	d, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, d.Close(context.Background()))

	err = d.LogData(types.Timestamp{}, types.LevelBatch, types.LogData{})
	require.ErrorIs(t, err, types.ErrDestinationClosed)

	require.ErrorIs(t, d.Close(context.Background()), types.ErrDestinationClosed)
}

func TestFileCreateFailure(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing", "log.jsonl"))
	require.Error(t, err)
}
