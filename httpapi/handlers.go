package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jovermann/pvview/configstore"
	"github.com/jovermann/pvview/query"
	"github.com/jovermann/pvview/trend"
	"github.com/jovermann/pvview/tsdberr"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type seriesResponse struct {
	Start  int64    `json:"start"`
	End    int64    `json:"end"`
	Files  []string `json:"files"`
	Series []string `json:"series"`
}

func (s *Server) handleListSeries(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		writeError(w, s.Log, err)
		return
	}

	files, series, err := s.Engine.ListSeries(r.Context(), start, end)
	if err != nil {
		writeError(w, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, seriesResponse{Start: start, End: end, Files: files, Series: series})
}

type eventsResponse struct {
	query.Result
	Trend *trend.Fit `json:"trend,omitempty"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	seriesName := r.URL.Query().Get("series")
	if seriesName == "" {
		writeError(w, s.Log, fmt.Errorf("httpapi: series is required: %w", tsdberr.ErrBadRequest))
		return
	}

	start, end, err := parseWindow(r)
	if err != nil {
		writeError(w, s.Log, err)
		return
	}

	maxEvents := 500
	if raw := r.URL.Query().Get("maxEvents"); raw != "" {
		n, convErr := parsePositiveInt(raw)
		if convErr != nil {
			writeError(w, s.Log, fmt.Errorf("httpapi: invalid maxEvents %q: %w", raw, tsdberr.ErrBadRequest))
			return
		}
		maxEvents = n
	}

	result, err := s.Engine.Query(r.Context(), seriesName, start, end, maxEvents)
	if err != nil {
		writeError(w, s.Log, err)
		return
	}

	resp := eventsResponse{Result: result}
	if r.URL.Query().Get("trend") == "1" {
		if fit, fitErr := trend.FitResult(result); fitErr == nil {
			resp.Trend = &fit
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDashboards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		raw, err := s.Store.Load("dashboards")
		if err != nil {
			if isNotFound(err) {
				writeJSON(w, http.StatusOK, json.RawMessage(`{}`))
				return
			}
			writeError(w, s.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, raw)

	case http.MethodPut:
		body, err := readJSONBody(r)
		if err != nil {
			writeError(w, s.Log, err)
			return
		}
		if err := s.Store.Save("dashboards", body); err != nil {
			writeError(w, s.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (s *Server) handleDashboardByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	dashboards := map[string]json.RawMessage{}
	if raw, err := s.Store.Load("dashboards"); err == nil {
		if err := json.Unmarshal(raw, &dashboards); err != nil {
			writeError(w, s.Log, fmt.Errorf("httpapi: stored dashboards.json is corrupt: %w", tsdberr.ErrIO))
			return
		}
	} else if !isNotFound(err) {
		writeError(w, s.Log, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		blob, ok := dashboards[name]
		if !ok {
			writeError(w, s.Log, fmt.Errorf("httpapi: dashboard %q: %w", name, tsdberr.ErrNotFound))
			return
		}
		writeJSON(w, http.StatusOK, blob)

	case http.MethodPut:
		if name == configstore.DefaultDashboard {
			writeError(w, s.Log, fmt.Errorf("httpapi: dashboard %q is reserved: %w", configstore.DefaultDashboard, tsdberr.ErrBadRequest))
			return
		}
		body, err := readJSONBody(r)
		if err != nil {
			writeError(w, s.Log, err)
			return
		}
		dashboards[name] = body
		merged, err := json.Marshal(dashboards)
		if err != nil {
			writeError(w, s.Log, fmt.Errorf("httpapi: encoding dashboards: %w", tsdberr.ErrIO))
			return
		}
		if err := s.Store.Save("dashboards", merged); err != nil {
			writeError(w, s.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		raw, err := s.Store.Load("settings")
		if err != nil {
			if isNotFound(err) {
				writeJSON(w, http.StatusOK, json.RawMessage(`{}`))
				return
			}
			writeError(w, s.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, raw)

	case http.MethodPut:
		body, err := readJSONBody(r)
		if err != nil {
			writeError(w, s.Log, err)
			return
		}
		if err := s.Store.Save("settings", body); err != nil {
			writeError(w, s.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func parseWindow(r *http.Request) (start, end int64, err error) {
	start, err = query.ParseTimestamp(r.URL.Query().Get("start"))
	if err != nil {
		return 0, 0, err
	}
	end, err = query.ParseTimestamp(r.URL.Query().Get("end"))
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("httpapi: end %d before start %d: %w", end, start, tsdberr.ErrBadRequest)
	}
	return start, end, nil
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("httpapi: value must be positive, got %d", n)
	}
	return n, nil
}

func readJSONBody(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("httpapi: reading request body: %w", tsdberr.ErrIO)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("httpapi: request body is not valid JSON: %w", tsdberr.ErrBadRequest)
	}
	return body, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, tsdberr.ErrNotFound)
}
