package pvview

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_QueryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(dir, "data_2026-07-30.tsdb")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 100, uint64(day.UnixMilli())))
	require.NoError(t, w.Close(true))

	store := Open(dir)
	result, err := store.Query(context.Background(), "pv.power", day.UnixMilli(), day.AddDate(0, 0, 1).UnixMilli(), 100)
	require.NoError(t, err)
	require.Len(t, result.Points, 1)
}
