package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/event"
)

func TestDownsample_BucketCountAndWindowBounds(t *testing.T) {
	const n = 1000
	events := make([]event.Event, n)
	for i := 0; i < n; i++ {
		events[i] = event.Event{TimestampMs: uint64(i * 10), Series: "s", Value: event.NewDouble(float64(i))}
	}

	points := Downsample(events, 0, 9999, 10, 2)
	require.LessOrEqual(t, len(points), 10)
	for _, p := range points {
		require.GreaterOrEqual(t, p.Timestamp, int64(0))
		require.LessOrEqual(t, p.Timestamp, int64(9999))
		require.NotNil(t, p.Count)
		require.Equal(t, 100, *p.Count)
		require.LessOrEqual(t, *p.Min, *p.Avg)
		require.LessOrEqual(t, *p.Avg, *p.Max)
	}
}

func TestDownsample_RoundsToDecimalsHint(t *testing.T) {
	events := []event.Event{
		{TimestampMs: 0, Series: "s", Value: event.NewDouble(1.005)},
		{TimestampMs: 1, Series: "s", Value: event.NewDouble(1.015)},
		{TimestampMs: 2, Series: "s", Value: event.NewDouble(1.025)},
	}
	points := Downsample(events, 0, 2, 1, 1)
	require.Len(t, points, 1)
	require.InDelta(t, 1.0, *points[0].Min, 0.1)
}
