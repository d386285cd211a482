package compact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/tsdberr"
	"github.com/jovermann/pvview/wire"
)

func TestCompress_NarrowsIntegerSeries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tsdb")
	dst := filepath.Join(dir, "out.tsdb")

	w, err := logfile.NewWriter(src)
	require.NoError(t, err)
	for i, v := range []float64{10, 11, 12, 9, 255} {
		require.NoError(t, w.Add("room/temp", v, uint64(1000+i*1000)))
	}
	require.NoError(t, w.Close(true))

	stats, err := Compress(src, dst)
	require.NoError(t, err)
	require.Equal(t, 5, stats.OriginalEvents)
	require.Equal(t, 1, stats.SeriesCount)
	require.Less(t, stats.CompressedBytes, stats.OriginalBytes)

	before, err := logfile.Read(src)
	require.NoError(t, err)
	after, err := logfile.Read(dst)
	require.NoError(t, err)

	require.Equal(t, len(before.Events()), len(after.Events()))
	for i, ev := range before.Events() {
		got := after.Events()[i]
		require.Equal(t, ev.TimestampMs, got.TimestampMs)
		require.Equal(t, ev.Series, got.Series)
		wantV, _ := ev.Value.Double()
		gotV, _ := got.Value.Double()
		require.InDelta(t, wantV, gotV, 1e-6)
	}
	require.True(t, after.EndedWithEOF())
}

func TestCompress_PreservesStrings(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tsdb")
	dst := filepath.Join(dir, "out.tsdb")

	w, err := logfile.NewWriter(src)
	require.NoError(t, err)
	require.NoError(t, w.AddString("room/name", "kitchen", 1000))
	require.NoError(t, w.AddString("room/name", "kitchen-renamed", 2000))
	require.NoError(t, w.Close(true))

	_, err = Compress(src, dst)
	require.NoError(t, err)

	after, err := logfile.Read(dst)
	require.NoError(t, err)
	require.Len(t, after.Events(), 2)
	text0, ok := after.Events()[0].Value.Text()
	require.True(t, ok)
	require.Equal(t, "kitchen", text0)
	text1, ok := after.Events()[1].Value.Text()
	require.True(t, ok)
	require.Equal(t, "kitchen-renamed", text1)
}

func TestCompress_ReassignsChannelIdsInFirstWriteOrder(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tsdb")
	dst := filepath.Join(dir, "out.tsdb")

	w, err := logfile.NewWriter(src)
	require.NoError(t, err)
	require.NoError(t, w.Add("b", 1, 1000))
	require.NoError(t, w.Add("a", 2, 2000))
	require.NoError(t, w.Add("b", 3, 3000))
	require.NoError(t, w.Close(true))

	_, err = Compress(src, dst)
	require.NoError(t, err)

	after, err := logfile.Read(dst)
	require.NoError(t, err)
	_, ok := after.SeriesFormat("b")
	require.True(t, ok)
	_, ok = after.SeriesFormat("a")
	require.True(t, ok)
	require.Equal(t, []string{"b", "a", "b"}, []string{
		after.Events()[0].Series, after.Events()[1].Series, after.Events()[2].Series,
	})
}

// TestCompress_RejectsMixedSeries builds a raw file defining two channels
// under the same series name, one numeric and one textual, something no
// single Writer/Appender can produce (each pins a series to one format on
// first use) but which a corrupted or concatenated file can still contain.
func TestCompress_RejectsMixedSeries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tsdb")
	dst := filepath.Join(dir, "out.tsdb")

	out := logfile.WriteHeader(nil)
	out = logfile.AppendChannelDef(out, 0, format.Double64, "room/reading")
	var ts uint64
	var hasTS bool
	out, ts, hasTS = logfile.AppendTimestampCursor(out, hasTS, ts, 1000)
	out = logfile.AppendValueEntry(out, 0)
	out, _ = wire.EncodeValue(out, 21.5, format.Double64)

	out = logfile.AppendChannelDef(out, 1, format.StringLenPrefix64, "room/reading")
	out, ts, hasTS = logfile.AppendTimestampCursor(out, hasTS, ts, 2000)
	out = logfile.AppendValueEntry(out, 1)
	out, _ = wire.EncodeValue(out, "offline", format.StringLenPrefix64)

	require.NoError(t, os.WriteFile(src, out, 0o644))

	_, err := Compress(src, dst)
	require.ErrorIs(t, err, tsdberr.ErrMixedSeries)

	_, statErr := os.Stat(dst)
	require.True(t, os.IsNotExist(statErr))
}
