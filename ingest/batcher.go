package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/One-com/gone/log"

	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/query"
)

// Batcher accumulates Samples under a mutex and flushes them to per-day
// Appenders on a fixed interval or on Close, exactly as the Python reference
// collector's queue+flush_batch loop groups the pending batch by UTC day
// before handing each day's events to that day's TimeSeriesDbAppender.
type Batcher struct {
	dataDir       string
	flushInterval time.Duration
	log           *log.Logger

	mu        sync.Mutex
	pending   []Sample
	appenders map[string]*logfile.Appender
	started   bool

	stop chan struct{}
	done chan struct{}
}

// NewBatcher constructs a Batcher writing daily files under dataDir,
// flushing pending samples every flushInterval.
func NewBatcher(dataDir string, flushInterval time.Duration, logger *log.Logger) *Batcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Batcher{
		dataDir:       dataDir,
		flushInterval: flushInterval,
		log:           logger,
		appenders:     make(map[string]*logfile.Appender),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Add queues a sample for the next flush.
func (b *Batcher) Add(s Sample) {
	b.mu.Lock()
	b.pending = append(b.pending, s)
	b.mu.Unlock()
}

// Run flushes on flushInterval until ctx is done, then performs one last
// flush and returns.
func (b *Batcher) Run(ctx context.Context) {
	b.mu.Lock()
	b.started = true
	b.mu.Unlock()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()
	defer close(b.done)

	for {
		select {
		case <-ticker.C:
			b.flush()
		case <-b.stop:
			b.flush()
			return
		case <-ctx.Done():
			b.flush()
			return
		}
	}
}

// Close stops Run (if running) and closes every open daily Appender.
func (b *Batcher) Close() error {
	b.mu.Lock()
	started := b.started
	b.mu.Unlock()
	if started {
		select {
		case <-b.done:
		default:
			close(b.stop)
			<-b.done
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for day, a := range b.appenders {
		if err := a.Close(false); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("ingest: closing appender for %s: %w", day, err)
		}
	}
	return firstErr
}

func (b *Batcher) flush() {
	b.mu.Lock()
	batch := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	byDay := make(map[string][]logfile.Sample)
	for _, s := range batch {
		day := query.DailyFileName(time.UnixMilli(s.TimestampMs))
		byDay[day] = append(byDay[day], toLogfileSample(s))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for day, events := range byDay {
		a, err := b.appenderFor(day)
		if err != nil {
			b.log.ERROR("ingest: opening appender failed", "file", day, "error", err.Error())
			continue
		}
		if err := a.AppendEvents(events); err != nil {
			b.log.ERROR("ingest: append failed", "file", day, "error", err.Error())
			continue
		}
	}
	b.log.DEBUG("ingest: flushed batch", "events", len(batch))
}

func (b *Batcher) appenderFor(day string) (*logfile.Appender, error) {
	if a, ok := b.appenders[day]; ok {
		return a, nil
	}
	a, err := logfile.Open(filepath.Join(b.dataDir, day))
	if err != nil {
		return nil, err
	}
	b.appenders[day] = a
	return a, nil
}

func toLogfileSample(s Sample) logfile.Sample {
	var v event.Value
	switch val := s.Value.(type) {
	case float64:
		v = event.NewDouble(val)
	case string:
		v = event.NewText(val)
	default:
		v = event.NewText(fmt.Sprintf("%v", val))
	}
	return logfile.Sample{
		Series:       s.Series,
		TimestampMs:  uint64(s.TimestampMs),
		Value:        v,
		DecimalsHint: s.Decimals,
	}
}
