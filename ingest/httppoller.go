package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// HTTPPoller is a Source that polls a JSON endpoint on an interval and
// emits one Sample per flattened key, mirroring fetch_http_json_flattened /
// resolve_http_url in the Python reference collector. Nested objects and
// arrays are flattened into dotted key paths, and every key becomes
// Series = series prefix + "/" + key; a value strconv.ParseFloat accepts
// is emitted numeric (with Decimals taken from the characters after its
// decimal point), everything else is emitted as a string.
type HTTPPoller struct {
	URL          string
	SeriesPrefix string
	Interval     time.Duration
	Client       *http.Client
}

// NewHTTPPoller builds a poller with a 10-second request timeout client, the
// same timeout fetch_http_json_flattened uses by default.
func NewHTTPPoller(url, seriesPrefix string, interval time.Duration) *HTTPPoller {
	return &HTTPPoller{
		URL:          url,
		SeriesPrefix: seriesPrefix,
		Interval:     interval,
		Client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Run polls p.URL every p.Interval, emitting one Sample per flattened JSON
// key into out, until ctx is canceled.
func (p *HTTPPoller) Run(ctx context.Context, out chan<- Sample) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if err := p.pollOnce(ctx, out); err != nil && ctx.Err() == nil {
			// A single failed poll doesn't stop the loop; the next tick retries.
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *HTTPPoller) pollOnce(ctx context.Context, out chan<- Sample) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return fmt.Errorf("ingest: building request for %s: %w", p.URL, err)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("ingest: fetching %s: %w", p.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ingest: reading response from %s: %w", p.URL, err)
	}

	flat, err := flattenJSON(body)
	if err != nil {
		return fmt.Errorf("ingest: parsing response from %s: %w", p.URL, err)
	}

	now := clockNow().UnixMilli()
	for _, key := range sortedKeys(flat) {
		series := key
		if p.SeriesPrefix != "" {
			series = p.SeriesPrefix + "/" + key
		}
		value, decimals := valueFromText(flat[key])
		select {
		case out <- Sample{Series: series, TimestampMs: now, Value: value, Decimals: decimals}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// flattenJSON parses a JSON object and returns a flat map of dotted key
// paths to their stringified leaf values, mirroring the Python reference's
// flatten_json.
func flattenJSON(raw []byte) (map[string]string, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flattenInto(out, "", root)
	return out, nil
}

func flattenInto(out map[string]string, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenInto(out, path, nested)
		}
	case []any:
		for i, nested := range v {
			path := fmt.Sprintf("%s.%d", prefix, i)
			flattenInto(out, path, nested)
		}
	case string:
		out[prefix] = v
	case float64:
		out[prefix] = strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		out[prefix] = strconv.FormatBool(v)
	case nil:
		out[prefix] = ""
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// valueFromText parses text with strconv.ParseFloat, returning the parsed
// float64 and the number of characters after the decimal point. Any form
// ParseFloat accepts counts as numeric, exponent notation and "NaN"/"Inf"
// included; text it rejects is returned unchanged as a string.
func valueFromText(text string) (value any, decimals int) {
	trimmed := strings.TrimSpace(text)
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return text, 0
	}
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 {
		decimals = len(trimmed) - dot - 1
	}
	return f, decimals
}
