package logfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/tsdberr"
)

func TestWriter_PinsSeriesToFirstFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 1000))

	err = w.AddString("pv.power", "oops", 2000)
	require.ErrorIs(t, err, tsdberr.ErrFormatMismatch)
	require.NoError(t, w.Close(true))
}

func TestWriter_AbsoluteTimestampOnRegression(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 1.0, 5000))
	// A timestamp smaller than the current cursor must reset it with a
	// fresh absolute entry rather than underflow a relative delta.
	require.NoError(t, w.Add("pv.power", 2.0, 1000))
	require.NoError(t, w.Close(true))

	r, err := Read(path)
	require.NoError(t, err)
	events := r.Events()
	require.Len(t, events, 2)
	require.Equal(t, uint64(5000), events[0].TimestampMs)
	require.Equal(t, uint64(1000), events[1].TimestampMs)
}

func TestWriter_WritesReadableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("room/temp", 21.5, 1000))
	require.NoError(t, w.AddString("room/name", "kitchen", 1500))
	require.NoError(t, w.Close(true))

	r, err := Read(path)
	require.NoError(t, err)
	require.True(t, r.EndedWithEOF())
	require.ElementsMatch(t, []string{"room/temp", "room/name"}, r.Series())

	events := r.Events()
	require.Len(t, events, 2)
	v, ok := events[0].Value.Double()
	require.True(t, ok)
	require.InDelta(t, 21.5, v, 1e-9)
	s, ok := events[1].Value.Text()
	require.True(t, ok)
	require.Equal(t, "kitchen", s)
}

func TestWriter_FailsWhenFileAlreadyExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close(false))

	_, err = NewWriter(path)
	require.Error(t, err)
}
