package cache

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jovermann/pvview/archive"
	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/internal/pool"
	"github.com/jovermann/pvview/logfile"
	"github.com/jovermann/pvview/tsdberr"
)

// Entry is the parsed view of a single log file the cache hands back to
// callers: the shared parser State plus a per-series event index built up
// incrementally as the file grows.
type Entry struct {
	State    *logfile.State
	BySeries map[string][]event.Event
}

// SeriesFormat returns the format id pinned to series, and whether the
// series was observed at all.
func (e *Entry) SeriesFormat(series string) (format.ID, bool) {
	id, ok := e.State.SeriesFormat[series]
	return id, ok
}

// Series returns the set of series names observed in the file, unsorted.
func (e *Entry) Series() []string {
	names := make([]string, 0, len(e.BySeries))
	for name := range e.BySeries {
		names = append(names, name)
	}
	return names
}

// tracked bookkeeping the cache keeps per path alongside the Entry it hands
// to callers: the disk observation the Entry is valid for, and the byte
// offset (from the start of the file, header included) already consumed.
type tracked struct {
	mtimeNs      int64
	size         int64
	parsedOffset int64
	indexedCount int
	entry        *Entry
}

// Cache memoises parsed log-file state keyed by path. Load returns a path's
// cached entry as-is while the file's (mtime, size) are unchanged, reads
// only the bytes appended since the last Load when they changed, and
// rebuilds from scratch when the file shrank below the cached offset.
// A single mutex serialises every lookup, parse and
// swap-in, matching §4.7/§4.9's "single mutex" concurrency model; a
// production deployment with heavy query concurrency could shard this by
// path, but the File Cache here favors the simplicity the spec explicitly
// allows over that optimization.
type Cache struct {
	mu      sync.Mutex
	tracked map[string]*tracked
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{tracked: make(map[string]*tracked)}
}

// Load returns the current parsed view of path, refreshing it against disk
// first. The returned *Entry must not be mutated by the caller; it is
// shared with the cache and with any other goroutine that observes the
// same (mtime, size) pair.
func (c *Cache) Load(path string) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if archivedPath, codecType, ok := archive.FindArchivedSibling(path); ok {
				return c.loadArchived(path, archivedPath, codecType)
			}
		}
		return nil, fmt.Errorf("cache: stat %s: %w", path, err)
	}
	mtimeNs := fi.ModTime().UnixNano()
	size := fi.Size()

	t, ok := c.tracked[path]
	if ok && t.mtimeNs == mtimeNs && t.size == size {
		return t.entry, nil
	}
	if ok && size < t.parsedOffset {
		ok = false
	}

	if !ok {
		t, err = freshParse(path)
		if err != nil {
			return nil, err
		}
		c.tracked[path] = t
		return t.entry, nil
	}

	if err := refreshParse(path, t); err != nil {
		return nil, err
	}
	t.mtimeNs = mtimeNs
	t.size = size
	return t.entry, nil
}

// loadArchived answers a Load for a path whose plain .tsdb file is gone but
// whose compressed sibling (written by the `archive` CLI verb) is present.
// Archived files are operator-written once and never appended to, so this
// skips freshParse/refreshParse's incremental bookkeeping entirely: it
// decompresses archivedPath whenever its (mtime, size) changes and parses
// it whole, exactly like freshParse does for a live file's first Load.
func (c *Cache) loadArchived(path, archivedPath string, codecType archive.CompressionType) (*Entry, error) {
	fi, err := os.Stat(archivedPath)
	if err != nil {
		return nil, fmt.Errorf("cache: stat %s: %w", archivedPath, err)
	}
	mtimeNs := fi.ModTime().UnixNano()
	size := fi.Size()

	if t, ok := c.tracked[path]; ok && t.mtimeNs == mtimeNs && t.size == size {
		return t.entry, nil
	}

	compressed, err := os.ReadFile(archivedPath)
	if err != nil {
		return nil, fmt.Errorf("cache: reading %s: %w", archivedPath, err)
	}
	codec, err := archive.GetCodec(codecType)
	if err != nil {
		return nil, err
	}
	data, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("cache: decompressing %s: %w", archivedPath, err)
	}

	headerLen, err := logfile.ReadHeader(data)
	if err != nil {
		return nil, err
	}
	st := logfile.NewState()
	consumed, err := logfile.ParseChunk(data[headerLen:], st)
	if err != nil {
		return nil, err
	}

	entry := &Entry{State: st, BySeries: make(map[string][]event.Event)}
	indexNewEvents(entry, 0)

	t := &tracked{
		mtimeNs:      mtimeNs,
		size:         size,
		parsedOffset: int64(headerLen + consumed),
		indexedCount: len(st.Events),
		entry:        entry,
	}
	c.tracked[path] = t
	return entry, nil
}

// freshParse parses path from its header, used the first time a path is
// seen or after it shrank/was replaced under a stale offset.
func freshParse(path string) (*tracked, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cache: reading %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cache: stat %s: %w", path, err)
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)
	buf.ExtendOrGrow(int(fi.Size()))
	if _, err := io.ReadFull(f, buf.Bytes()); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("cache: reading %s: %w", path, err)
	}
	data := buf.Bytes()

	headerLen, err := logfile.ReadHeader(data)
	if err != nil {
		return nil, err
	}

	st := logfile.NewState()
	consumed, err := logfile.ParseChunk(data[headerLen:], st)
	if err != nil {
		return nil, err
	}

	entry := &Entry{State: st, BySeries: make(map[string][]event.Event)}
	indexNewEvents(entry, 0)

	return &tracked{
		mtimeNs:      fi.ModTime().UnixNano(),
		size:         fi.Size(),
		parsedOffset: int64(headerLen + consumed),
		indexedCount: len(st.Events),
		entry:        entry,
	}, nil
}

// refreshParse re-drives the state machine over the bytes appended since
// t.parsedOffset. If the previous parse ended on the EOF marker, it
// re-enters one byte earlier so the state machine sees that byte again
// and can decide whether it is still the file's final byte (§4.7 step 5).
func refreshParse(path string, t *tracked) error {
	reopenAt := t.parsedOffset
	if t.entry.State.EndedWithEOF {
		reopenAt--
		t.entry.State.EndedWithEOF = false
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cache: reopening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(reopenAt, io.SeekStart); err != nil {
		return fmt.Errorf("cache: seeking %s: %w", path, err)
	}
	bb, err := readAll(f)
	if err != nil {
		return fmt.Errorf("cache: reading tail of %s: %w", path, tsdberr.ErrIO)
	}
	defer pool.PutTailBuffer(bb)

	before := len(t.entry.State.Events)
	consumed, err := logfile.ParseChunk(bb.Bytes(), t.entry.State)
	if err != nil {
		return err
	}
	indexNewEvents(t.entry, before)

	t.parsedOffset = reopenAt + int64(consumed)
	t.indexedCount = len(t.entry.State.Events)
	return nil
}

// readAll reads the remainder of f from its current offset into a buffer
// borrowed from the tail-read pool, since the caller (refreshParse) only
// needs the bytes appended since the last Load, not a cold whole-file read.
// The caller must return the buffer to the pool via pool.PutTailBuffer once
// it is done parsing out of it.
func readAll(f *os.File) (*pool.ByteBuffer, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	cur, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	remaining := int(fi.Size() - cur)

	bb := pool.GetTailBuffer()
	bb.ExtendOrGrow(remaining)
	if _, err := io.ReadFull(f, bb.Bytes()); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		pool.PutTailBuffer(bb)
		return nil, err
	}
	return bb, nil
}

// indexNewEvents appends entry.State.Events[fromIndex:] into entry.BySeries.
func indexNewEvents(entry *Entry, fromIndex int) {
	for _, ev := range entry.State.Events[fromIndex:] {
		entry.BySeries[ev.Series] = append(entry.BySeries[ev.Series], ev)
	}
}
