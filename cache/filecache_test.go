package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/logfile"
)

func TestCache_FreshParseAndIncrementalRefresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := logfile.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))
	require.NoError(t, w.Close(false))

	c := New()
	entry, err := c.Load(path)
	require.NoError(t, err)
	require.Len(t, entry.BySeries["pv.power"], 1)

	// Same (mtime, size): Load must return the identical cached Entry.
	entry2, err := c.Load(path)
	require.NoError(t, err)
	require.Same(t, entry, entry2)

	// Append more data through an Appender; mtime/size now differ.
	time.Sleep(10 * time.Millisecond)
	a, err := logfile.Open(path)
	require.NoError(t, err)
	require.NoError(t, a.AppendEvents([]logfile.Sample{
		{Series: "pv.power", TimestampMs: 2000, Value: event.NewDouble(2.0)},
	}))
	require.NoError(t, a.Close(true))

	entry3, err := c.Load(path)
	require.NoError(t, err)
	require.Len(t, entry3.BySeries["pv.power"], 2)
	require.True(t, entry3.State.EndedWithEOF)
}

func TestCache_RebuildsOnTruncation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := logfile.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))
	require.NoError(t, w.Add("pv.power", 2.0, 2000))
	require.NoError(t, w.Close(true))

	c := New()
	entry, err := c.Load(path)
	require.NoError(t, err)
	require.Len(t, entry.BySeries["pv.power"], 2)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, fi.Size()/2))

	entry2, err := c.Load(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(entry2.BySeries["pv.power"]), 1)
}
