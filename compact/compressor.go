package compact

import (
	"fmt"
	"os"

	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/tsdberr"
	"github.com/jovermann/pvview/wire"
)

// Stats summarizes a single Compress call, mirroring the shape
// archive.CompressionStats uses for byte-level compression.
type Stats struct {
	OriginalEvents  int
	SeriesCount     int
	OriginalBytes   int
	CompressedBytes int
}

// SpaceSavings returns the fraction of bytes saved, in [0, 1). A file that
// grew (pathological, all-distinct-series inputs near the channel-id limit)
// yields a negative value.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalBytes == 0 {
		return 0
	}
	return 1 - float64(s.CompressedBytes)/float64(s.OriginalBytes)
}

// Compress reads a complete log file at inputPath, rewrites it with every
// series narrowed to the tightest format that reproduces its values
// losslessly at six significant decimal digits, and writes the result to
// outputPath with channel ids reassigned in first-write order (§4.6).
//
// It is a two-pass rewrite: the first pass reads the whole file and picks a
// format per series; the second walks the same event list again in its
// original order, defining each channel the first time its series appears
// and re-emitting the timestamp-cursor and value entries exactly as Writer
// does, but against the narrowed format table.
func Compress(inputPath, outputPath string) (Stats, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("compact: reading %s: %w", inputPath, err)
	}

	r, err := logfile.ReadBytes(data)
	if err != nil {
		return Stats{}, err
	}
	events := r.Events()

	order := firstWriteOrder(events)
	chosen := make(map[string]format.ID, len(order))
	for _, series := range order {
		f, err := pickFormat(events, series)
		if err != nil {
			return Stats{}, err
		}
		chosen[series] = f
	}

	ids := make(map[string]uint16, len(order))
	for i, series := range order {
		ids[series] = uint16(i)
	}

	out := logfile.WriteHeader(nil)
	defined := make(map[string]bool, len(order))
	var currentTS uint64
	var hasTS bool

	for _, ev := range events {
		id := ids[ev.Series]
		f := chosen[ev.Series]

		if !defined[ev.Series] {
			out = logfile.AppendChannelDef(out, id, f, ev.Series)
			defined[ev.Series] = true
		}

		out, currentTS, hasTS = logfile.AppendTimestampCursor(out, hasTS, currentTS, ev.TimestampMs)
		out = logfile.AppendValueEntry(out, id)

		var payload any
		if f.Kind() == format.KindString {
			text, _ := ev.Value.Text()
			payload = text
		} else {
			num, _ := ev.Value.Double()
			payload = num
		}
		encoded, ok := wire.EncodeValue(out, payload, f)
		if !ok {
			return Stats{}, fmt.Errorf("compact: series %q value does not fit chosen format %s: %w", ev.Series, f.Describe(), tsdberr.ErrCannotEncode)
		}
		out = encoded
	}
	out = append(out, byte(format.TagEOF))

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return Stats{}, fmt.Errorf("compact: writing %s: %w", outputPath, tsdberr.ErrIO)
	}

	return Stats{
		OriginalEvents:  len(events),
		SeriesCount:     len(order),
		OriginalBytes:   len(data),
		CompressedBytes: len(out),
	}, nil
}

// firstWriteOrder returns the distinct series in events in the order each
// was first seen, the order channel ids are reassigned in (§4.6).
func firstWriteOrder(events []event.Event) []string {
	order := make([]string, 0)
	seen := make(map[string]bool)
	for _, ev := range events {
		if !seen[ev.Series] {
			seen[ev.Series] = true
			order = append(order, ev.Series)
		}
	}
	return order
}

// pickFormat scans every value written to series and returns the narrowest
// format that reproduces all of them losslessly. Text series always resolve
// to the narrowest length-prefixed string format that fits the longest
// observed value; numeric series walk format.NumericCandidates() in its
// fixed order and fall back to double64, which always fits since it is
// bit-identical to the originally decoded float64.
func pickFormat(events []event.Event, series string) (format.ID, error) {
	sawString := false
	sawNumeric := false
	maxLen := 0

	for _, ev := range events {
		if ev.Series != series {
			continue
		}
		switch ev.Value.Kind() {
		case event.KindText:
			sawString = true
			if text, ok := ev.Value.Text(); ok && len(text) > maxLen {
				maxLen = len(text)
			}
		case event.KindDouble:
			sawNumeric = true
		}
	}

	if sawString && sawNumeric {
		return 0, fmt.Errorf("compact: series %q mixes string and numeric values: %w", series, tsdberr.ErrMixedSeries)
	}

	if sawString {
		return format.StringFormatFor(maxLen), nil
	}
	for _, candidate := range format.NumericCandidates() {
		if seriesFitsFormat(events, series, candidate) {
			return candidate, nil
		}
	}
	return format.Double64, nil
}

// seriesFitsFormat reports whether every numeric value written to series
// round-trips losslessly through candidate.
func seriesFitsFormat(events []event.Event, series string, candidate format.ID) bool {
	for _, ev := range events {
		if ev.Series != series {
			continue
		}
		num, ok := ev.Value.Double()
		if !ok {
			return false
		}
		if _, ok := wire.EncodeValue(nil, num, candidate); !ok {
			return false
		}
	}
	return true
}
