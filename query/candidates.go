package query

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DailyFileName returns the candidate filename for the UTC calendar day day
// falls in, e.g. "data_2026-07-30.tsdb". Exported so package ingest can name
// the same daily files its Batcher appends to.
func DailyFileName(day time.Time) string {
	return fmt.Sprintf("data_%s.tsdb", day.UTC().Format("2006-01-02"))
}

func dailyFileName(day time.Time) string {
	return DailyFileName(day)
}

// CandidateFiles enumerates every data_YYYY-MM-DD.tsdb under dataDir whose
// UTC calendar day falls in [startMs, endMs] and exists on disk. If none of
// those dated files exist, it falls back to a single undated data.tsdb if
// that exists, and returns an empty list otherwise (§4.8).
func CandidateFiles(dataDir string, startMs, endMs int64) []string {
	startDay := time.UnixMilli(startMs).UTC().Truncate(24 * time.Hour)
	endDay := time.UnixMilli(endMs).UTC().Truncate(24 * time.Hour)

	var files []string
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		path := filepath.Join(dataDir, dailyFileName(day))
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	if len(files) > 0 {
		return files
	}

	fallback := filepath.Join(dataDir, "data.tsdb")
	if _, err := os.Stat(fallback); err == nil {
		return []string{fallback}
	}
	return nil
}
