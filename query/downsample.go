package query

import (
	"math"
	"sort"

	"github.com/jovermann/pvview/event"
)

// bucket accumulates the running count/min/avg/max for one downsample
// bucket as events are folded into it.
type bucket struct {
	start, end int64
	count      int
	sum        float64
	min, max   float64
}

// Downsample implements the equal-width bucketing of §4.9 over events (a
// numeric series, already filtered to [startMs, endMs] and sorted by
// timestamp). decimals is the coarsest decimals hint observed for the
// series across every source file; min/avg/max are rounded to it.
//
// It assumes len(events) > maxPoints; callers pass raw events through
// unchanged otherwise.
func Downsample(events []event.Event, startMs, endMs int64, maxPoints int, decimals int) []Point {
	span := endMs - startMs + 1
	if span < 1 {
		span = 1
	}
	bucketWidth := int64(math.Ceil(float64(span) / float64(maxPoints)))
	if bucketWidth < 1 {
		bucketWidth = 1
	}

	buckets := make(map[int]*bucket)
	order := make([]int, 0, maxPoints)

	for _, ev := range events {
		v, ok := ev.Value.Double()
		if !ok {
			continue
		}
		idx := int((int64(ev.TimestampMs) - startMs) / bucketWidth)
		if idx < 0 {
			idx = 0
		}
		if idx > maxPoints-1 {
			idx = maxPoints - 1
		}

		b, ok := buckets[idx]
		if !ok {
			bStart := startMs + int64(idx)*bucketWidth
			bEnd := bStart + bucketWidth - 1
			if bEnd > endMs {
				bEnd = endMs
			}
			b = &bucket{start: bStart, end: bEnd, min: v, max: v}
			buckets[idx] = b
			order = append(order, idx)
		}
		b.count++
		b.sum += v
		if v < b.min {
			b.min = v
		}
		if v > b.max {
			b.max = v
		}
	}

	sort.Ints(order)

	points := make([]Point, 0, len(order))
	for _, idx := range order {
		b := buckets[idx]
		avg := b.sum / float64(b.count)
		ts := (b.start + b.end) / 2
		points = append(points, Point{
			Timestamp: ts,
			Start:     ptrInt64(b.start),
			End:       ptrInt64(b.end),
			Count:     ptrInt(b.count),
			Min:       ptrFloat64(roundTo(b.min, decimals)),
			Avg:       ptrFloat64(roundTo(avg, decimals)),
			Max:       ptrFloat64(roundTo(b.max, decimals)),
		})
	}
	return points
}

func roundTo(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

func ptrInt64(v int64) *int64     { return &v }
func ptrInt(v int) *int           { return &v }
func ptrFloat64(v float64) *float64 { return &v }
