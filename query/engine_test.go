package query

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/cache"
	"github.com/jovermann/pvview/logfile"
)

func writeDailyFile(t *testing.T, dataDir string, day time.Time, add func(w *logfile.Writer)) {
	t.Helper()
	path := filepath.Join(dataDir, dailyFileName(day))
	w, err := logfile.NewWriter(path)
	require.NoError(t, err)
	add(w)
	require.NoError(t, w.Close(true))
}

func TestEngine_ListSeriesAndQuery(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	dayMs := day.UnixMilli()

	writeDailyFile(t, dir, day, func(w *logfile.Writer) {
		require.NoError(t, w.Add("pv.power", 123.5, uint64(dayMs+1000)))
		require.NoError(t, w.Add("pv.power", 124.25, uint64(dayMs+1500)))
		require.NoError(t, w.AddString("pv.status", "ok", uint64(dayMs+1200)))
	})

	eng := NewEngine(dir, cache.New())

	files, series, err := eng.ListSeries(context.Background(), dayMs, dayMs+24*3600*1000-1)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.ElementsMatch(t, []string{"pv.power", "pv.status"}, series)

	result, err := eng.Query(context.Background(), "pv.power", dayMs, dayMs+24*3600*1000-1, 10)
	require.NoError(t, err)
	require.False(t, result.Downsampled)
	require.Equal(t, 2, result.ReturnedPoints)
	require.InDelta(t, 123.5, result.Points[0].Value.(float64), 1e-9)
	require.InDelta(t, 124.25, result.Points[1].Value.(float64), 1e-9)
}

func TestEngine_NoCandidateFilesReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	eng := NewEngine(dir, cache.New())
	files, series, err := eng.ListSeries(context.Background(), 0, 1000)
	require.NoError(t, err)
	require.Empty(t, files)
	require.Empty(t, series)
}
