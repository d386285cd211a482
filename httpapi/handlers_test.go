package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jovermann/pvview/cache"
	"github.com/jovermann/pvview/configstore"
	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/query"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dataDir := t.TempDir()

	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	dayMs := day.UnixMilli()
	path := filepath.Join(dataDir, "data_2026-07-30.tsdb")
	w, err := logfile.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Add("pv.power", 101.9, uint64(dayMs+1000)))
	require.NoError(t, w.Add("pv.power", 102.0, uint64(dayMs+2000)))
	require.NoError(t, w.Close(true))

	store, err := configstore.New(dataDir)
	require.NoError(t, err)

	s := NewServer(query.NewEngine(dataDir, cache.New()), store, nil)
	return s, dataDir
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.srv.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestHandleEvents_RawAndBadRequest(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/events?series=pv.power&start=2026-07-30&end=2026-07-31", nil)
	rec := httptest.NewRecorder()
	s.srv.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp eventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.ReturnedPoints)

	req2 := httptest.NewRequest(http.MethodGet, "/events?start=2026-07-30&end=2026-07-31", nil)
	rec2 := httptest.NewRecorder()
	s.srv.Server.Handler.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestHandleDashboards_PutAndGet(t *testing.T) {
	s, _ := newTestServer(t)

	body := bytes.NewBufferString(`{"panels":["a","b"]}`)
	req := httptest.NewRequest(http.MethodPut, "/dashboards/mine", body)
	req.SetPathValue("name", "mine")
	rec := httptest.NewRecorder()
	s.srv.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/dashboards/mine", nil)
	getReq.SetPathValue("name", "mine")
	getRec := httptest.NewRecorder()
	s.srv.Server.Handler.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)
	require.JSONEq(t, `{"panels":["a","b"]}`, getRec.Body.String())
}

func TestHandleDashboards_RejectsDefaultOnPut(t *testing.T) {
	s, _ := newTestServer(t)

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPut, "/dashboards/Default", body)
	req.SetPathValue("name", "Default")
	rec := httptest.NewRecorder()
	s.srv.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
