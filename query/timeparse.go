package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jovermann/pvview/tsdberr"
)

// ParseTimestamp parses an HTTP query parameter value as either epoch
// seconds (|n| < 10^10), epoch milliseconds, or an ISO-8601 timestamp
// ("Z" allowed; a naive timestamp with no zone is treated as UTC), per §6,
// and returns it as epoch milliseconds.
func ParseTimestamp(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("query: empty timestamp: %w", tsdberr.ErrBadRequest)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		abs := n
		if abs < 0 {
			abs = -abs
		}
		if abs < 1e10 {
			return n * 1000, nil
		}
		return n, nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			if t.Location() == time.UTC || layout == "2006-01-02T15:04:05" || layout == "2006-01-02" {
				t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
			}
			return t.UnixMilli(), nil
		}
	}

	return 0, fmt.Errorf("query: cannot parse timestamp %q: %w", raw, tsdberr.ErrBadRequest)
}
