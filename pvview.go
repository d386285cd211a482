// Package pvview provides convenient top-level wrappers around a daily-file
// binary time series store: the Reader/Writer/Appender codec roles
// (package logfile), the format-narrowing Compressor (package compact), the
// and the incremental per-file cache and Query Engine (packages cache and
// query). OLS trend enrichment (package trend) has no wrapper here.
//
// For advanced usage and fine-grained control, use those packages directly.
package pvview

import (
	"context"

	"github.com/jovermann/pvview/cache"
	"github.com/jovermann/pvview/compact"
	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/query"
)

// Store ties a data directory to a shared File Cache, the dependency a
// Query Engine needs to serve repeated queries without re-parsing daily
// files from scratch on every call.
type Store struct {
	DataDir string
	cache   *cache.Cache
	engine  *query.Engine
}

// Open returns a Store rooted at dataDir. It does not touch the filesystem;
// daily files are discovered lazily as queries reference them.
func Open(dataDir string) *Store {
	c := cache.New()
	return &Store{
		DataDir: dataDir,
		cache:   c,
		engine:  query.NewEngine(dataDir, c),
	}
}

// Engine returns the Query Engine backing this Store.
func (s *Store) Engine() *query.Engine {
	return s.engine
}

// ListSeries delegates to the Query Engine; see query.Engine.ListSeries.
func (s *Store) ListSeries(ctx context.Context, startMs, endMs int64) (files, series []string, err error) {
	return s.engine.ListSeries(ctx, startMs, endMs)
}

// Query delegates to the Query Engine; see query.Engine.Query.
func (s *Store) Query(ctx context.Context, seriesName string, startMs, endMs int64, maxPoints int) (query.Result, error) {
	return s.engine.Query(ctx, seriesName, startMs, endMs, maxPoints)
}

// Compress rewrites the log at inputPath to outputPath using each series'
// narrowest lossless format; see compact.Compress.
func Compress(inputPath, outputPath string) (compact.Stats, error) {
	return compact.Compress(inputPath, outputPath)
}

// OpenAppender resumes (or creates) a daily log file for writing; see
// logfile.Open.
func OpenAppender(path string, opts ...logfile.AppenderOption) (*logfile.Appender, error) {
	return logfile.Open(path, opts...)
}

// NewWriter creates a fresh daily log file for writing; see logfile.NewWriter.
func NewWriter(path string, opts ...logfile.WriterOption) (*logfile.Writer, error) {
	return logfile.NewWriter(path, opts...)
}

// Read parses a complete log file; see logfile.Read.
func Read(path string) (*logfile.Reader, error) {
	return logfile.Read(path)
}
