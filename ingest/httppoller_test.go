package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPPoller_EmitsOneSamplePerFlattenedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"power":"101.50","status":"ok"}`))
	}))
	defer srv.Close()

	p := NewHTTPPoller(srv.URL, "pv", 10*time.Millisecond)
	out := make(chan Sample, 8)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	_ = p.Run(ctx, out)
	close(out)

	var samples []Sample
	for s := range out {
		samples = append(samples, s)
	}
	require.NotEmpty(t, samples)

	byName := map[string]Sample{}
	for _, s := range samples {
		byName[s.Series] = s
	}
	power, ok := byName["pv/power"]
	require.True(t, ok)
	require.Equal(t, 101.5, power.Value)
	require.Equal(t, 2, power.Decimals)

	status, ok := byName["pv/status"]
	require.True(t, ok)
	require.Equal(t, "ok", status.Value)
}

func TestValueFromText_ParsesStrictDecimals(t *testing.T) {
	v, d := valueFromText("3.140")
	require.Equal(t, 3.14, v)
	require.Equal(t, 3, d)

	v2, d2 := valueFromText("hello")
	require.Equal(t, "hello", v2)
	require.Equal(t, 0, d2)
}
