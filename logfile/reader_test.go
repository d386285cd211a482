package logfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/tsdberr"
)

func TestRead_RejectsShortHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.tsdb")
	require.NoError(t, os.WriteFile(path, format.Magic[:4], 0o644))

	_, err := Read(path)
	require.ErrorIs(t, err, tsdberr.ErrTruncation)
}

func TestRead_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tsdb")
	junk := make([]byte, format.HeaderSize)
	copy(junk, "NOTATSDB")
	require.NoError(t, os.WriteFile(path, junk, 0o644))

	_, err := Read(path)
	require.ErrorIs(t, err, tsdberr.ErrTsdbParse)
}

func TestRead_AcceptsTrailingTruncationAsInProgress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))
	require.NoError(t, w.Add("pv.power", 2.0, 2000))
	require.NoError(t, w.Close(false))

	full, err := os.ReadFile(path)
	require.NoError(t, err)
	// Chop off the last byte of the second value entry, as a crash mid
	// write would: Read must recover the first event and silently stop,
	// not error.
	require.NoError(t, os.WriteFile(path, full[:len(full)-1], 0o644))

	r, err := Read(path)
	require.NoError(t, err)
	require.Len(t, r.Events(), 1)
	require.False(t, r.EndedWithEOF())
}

func TestReadBytes_MatchesReadForSameImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))
	require.NoError(t, w.AddString("pv.status", "ok", 1000))
	require.NoError(t, w.Close(true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fromPath, err := Read(path)
	require.NoError(t, err)
	fromBytes, err := ReadBytes(data)
	require.NoError(t, err)

	require.Equal(t, fromPath.Events(), fromBytes.Events())
	require.ElementsMatch(t, fromPath.Series(), fromBytes.Series())
}

func TestReader_SeriesFormatAndSeriesReflectChannelDefs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))
	require.NoError(t, w.AddString("pv.status", "ok", 1000))
	require.NoError(t, w.Close(true))

	r, err := Read(path)
	require.NoError(t, err)

	id, ok := r.SeriesFormat("pv.power")
	require.True(t, ok)
	require.Equal(t, format.Double64, id)

	id, ok = r.SeriesFormat("pv.status")
	require.True(t, ok)
	require.Equal(t, format.StringLenPrefix64, id)

	_, ok = r.SeriesFormat("unknown")
	require.False(t, ok)

	require.ElementsMatch(t, []string{"pv.power", "pv.status"}, r.Series())
}

func TestReader_EndedWithEOFReflectsCloseMode(t *testing.T) {
	dir := t.TempDir()

	clean := filepath.Join(dir, "clean.tsdb")
	w, err := NewWriter(clean)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))
	require.NoError(t, w.Close(true))

	dirty := filepath.Join(dir, "dirty.tsdb")
	w2, err := NewWriter(dirty)
	require.NoError(t, err)
	require.NoError(t, w2.Add("pv.power", 1.0, 1000))
	require.NoError(t, w2.Close(false))

	rClean, err := Read(clean)
	require.NoError(t, err)
	require.True(t, rClean.EndedWithEOF())

	rDirty, err := Read(dirty)
	require.NoError(t, err)
	require.False(t, rDirty.EndedWithEOF())
}
