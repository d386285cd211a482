package configstore

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/tsdberr"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	payload := json.RawMessage(`{"widgets":[1,2,3]}`)
	require.NoError(t, s.Save("dashboards", payload))

	got, err := s.Load("dashboards")
	require.NoError(t, err)
	require.JSONEq(t, string(payload), string(got))
}

func TestStore_LoadMissingReportsNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load("settings")
	require.Error(t, err)
	require.True(t, errors.Is(err, tsdberr.ErrNotFound))
}

func TestStore_SaveRejectsInvalidJSON(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	err = s.Save("settings", json.RawMessage(`not json`))
	require.Error(t, err)
	require.True(t, errors.Is(err, tsdberr.ErrBadRequest))
}
