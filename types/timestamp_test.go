package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampAdvance(t *testing.T) {
	ts := Timestamp{}

	ts = ts.NextBatch(32)
	require.Equal(t, Timestamp{Epoch: 0, Batch: 1, BatchInEpoch: 1, Sample: 32}, ts)

	ts = ts.NextBatch(32)
	require.Equal(t, Timestamp{Epoch: 0, Batch: 2, BatchInEpoch: 2, Sample: 64}, ts)

	// Epoch rollover keeps the global batch counter, resets the in-epoch one.
	ts = ts.NextEpoch()
	require.Equal(t, Timestamp{Epoch: 1, Batch: 2, BatchInEpoch: 0, Sample: 64}, ts)

	ts = ts.NextBatch(16)
	require.Equal(t, Timestamp{Epoch: 1, Batch: 3, BatchInEpoch: 1, Sample: 80}, ts)
}

func TestTimestampOrdering(t *testing.T) {
	early := Timestamp{Epoch: 0, Batch: 5, Sample: 160}
	late := Timestamp{Epoch: 1, Batch: 5, Sample: 160}

	require.True(t, early.Before(late))
	require.True(t, late.After(early))
	require.False(t, early.Before(early))
	require.False(t, early.After(early))

	// Same epoch orders by global batch, then sample.
	require.True(t, Timestamp{Batch: 1}.Before(Timestamp{Batch: 2}))
	require.True(t, Timestamp{Batch: 1, Sample: 10}.Before(Timestamp{Batch: 1, Sample: 20}))
}

func TestTimestampString(t *testing.T) {
	ts := Timestamp{Epoch: 3, Batch: 120, BatchInEpoch: 40, Sample: 15360}
	require.Equal(t, "ep3/ba120/sa15360", ts.String())
}
