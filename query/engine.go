package query

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jovermann/pvview/cache"
	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/tsdberr"
)

// Point is one returned sample, shaped to serialize as either the raw
// {timestamp, value} pair or the downsampled {timestamp, start, end,
// count, min, avg, max} bucket of §6, whichever the caller populated.
type Point struct {
	Timestamp int64 `json:"timestamp"`
	Value     any   `json:"value,omitempty"`

	Start *int64   `json:"start,omitempty"`
	End   *int64   `json:"end,omitempty"`
	Count *int     `json:"count,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Avg   *float64 `json:"avg,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Result is the response shape for a ranged series query (§6 GET /events).
type Result struct {
	Series             string   `json:"series"`
	Start              int64    `json:"start"`
	End                int64    `json:"end"`
	RequestedMaxEvents int      `json:"requestedMaxEvents"`
	ReturnedPoints     int      `json:"returnedPoints"`
	Downsampled        bool     `json:"downsampled"`
	Files              []string `json:"files"`
	Points             []Point  `json:"points"`
	Note               string   `json:"note,omitempty"`
}

// Engine answers list_series and query requests (§4.8) against the daily
// log files under DataDir, reading each candidate file through a shared
// File Cache.
type Engine struct {
	DataDir string
	Cache   *cache.Cache
}

// NewEngine returns an Engine backed by c, reading dated log files from
// dataDir.
func NewEngine(dataDir string, c *cache.Cache) *Engine {
	return &Engine{DataDir: dataDir, Cache: c}
}

// ListSeries returns the candidate files for [startMs, endMs] and the
// sorted union of series names observed across them.
func (e *Engine) ListSeries(ctx context.Context, startMs, endMs int64) (files []string, series []string, err error) {
	files = CandidateFiles(e.DataDir, startMs, endMs)
	entries, err := e.loadAll(ctx, files)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		for name := range entry.BySeries {
			seen[name] = true
		}
	}
	series = make([]string, 0, len(seen))
	for name := range seen {
		series = append(series, name)
	}
	sort.Strings(series)
	return files, series, nil
}

// Query gathers every event for series across the candidate files for
// [startMs, endMs], merges them by timestamp, and returns either the raw
// points or a downsampled view, per §4.8.
func (e *Engine) Query(ctx context.Context, seriesName string, startMs, endMs int64, maxPoints int) (Result, error) {
	if maxPoints <= 0 {
		return Result{}, fmt.Errorf("query: maxEvents must be positive, got %d: %w", maxPoints, tsdberr.ErrBadRequest)
	}
	if endMs < startMs {
		return Result{}, fmt.Errorf("query: end %d before start %d: %w", endMs, startMs, tsdberr.ErrBadRequest)
	}

	files := CandidateFiles(e.DataDir, startMs, endMs)
	entries, err := e.loadAll(ctx, files)
	if err != nil {
		return Result{}, err
	}

	var events []event.Event
	isString := false
	coarsestDecimals := -1
	for _, entry := range entries {
		for _, ev := range entry.BySeries[seriesName] {
			if ev.TimestampMs < uint64(startMs) || ev.TimestampMs > uint64(endMs) {
				continue
			}
			events = append(events, ev)
		}
		if id, ok := entry.SeriesFormat(seriesName); ok {
			if id.Kind() == format.KindString {
				isString = true
			} else if id.Kind() == format.KindFloat64 {
				d := id.Decimals()
				if coarsestDecimals == -1 || d < coarsestDecimals {
					coarsestDecimals = d
				}
			}
		}
	}
	if coarsestDecimals == -1 {
		coarsestDecimals = 0
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].TimestampMs < events[j].TimestampMs })

	result := Result{
		Series:             seriesName,
		Start:              startMs,
		End:                endMs,
		RequestedMaxEvents: maxPoints,
		Files:              files,
	}

	if isString || len(events) <= maxPoints {
		points := make([]Point, len(events))
		for i, ev := range events {
			var value any
			if v, ok := ev.Value.Double(); ok {
				value = v
			} else if s, ok := ev.Value.Text(); ok {
				value = s
			}
			points[i] = Point{Timestamp: int64(ev.TimestampMs), Value: value}
		}
		if isString && len(events) > maxPoints {
			points = points[:maxPoints]
			result.Note = "non-numeric series: showing first requested events, not downsampled"
		}
		result.Points = points
		result.ReturnedPoints = len(points)
		return result, nil
	}

	result.Points = Downsample(events, startMs, endMs, maxPoints, coarsestDecimals)
	result.Downsampled = true
	result.ReturnedPoints = len(result.Points)
	return result, nil
}

// loadAll fans files out through the cache concurrently via errgroup,
// mirroring the concurrent-fetch pattern the rest of the retrieval pack
// uses for its own per-file fan-out.
func (e *Engine) loadAll(ctx context.Context, files []string) ([]*cache.Entry, error) {
	entries := make([]*cache.Entry, len(files))
	eg, _ := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			entry, err := e.Cache.Load(path)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
