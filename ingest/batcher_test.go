package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/query"
)

func TestBatcher_FlushesOnIntervalAndGroupsByDay(t *testing.T) {
	dir := t.TempDir()
	b := NewBatcher(dir, 20*time.Millisecond, nil)

	day := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	b.Add(Sample{Series: "pv.power", TimestampMs: day.UnixMilli(), Value: 101.5, Decimals: 1})
	b.Add(Sample{Series: "pv.status", TimestampMs: day.UnixMilli() + 10, Value: "ok"})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() { b.Run(ctx); close(done) }()
	<-done

	require.NoError(t, b.Close())

	path := filepath.Join(dir, query.DailyFileName(day))
	rd, err := logfile.Read(path)
	require.NoError(t, err)
	require.Len(t, rd.Events(), 2)
}

func TestBatcher_CloseWithoutRunStillClosesNoAppenders(t *testing.T) {
	dir := t.TempDir()
	b := NewBatcher(dir, time.Second, nil)
	require.NoError(t, b.Close())
}
