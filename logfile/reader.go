package logfile

import (
	"fmt"
	"io"
	"os"

	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/internal/pool"
)

// Reader parses a complete log file into an ordered event list plus a
// per-series format map. It holds no write lock and never mutates the
// file; it is the simplest of the three codec roles, used by the `dump`
// CLI verb and by tests that want a ground-truth view of a file.
type Reader struct {
	state *State
}

// Read opens path, parses it end to end, and returns a Reader exposing
// its events and per-series formats. A short 12-byte header is the one
// truncation that Read surfaces as an error (§7); anything else short at
// the tail is silently accepted as an in-progress file.
func Read(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("logfile: reading %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("logfile: stat %s: %w", path, err)
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)
	buf.ExtendOrGrow(int(fi.Size()))
	if _, err := io.ReadFull(f, buf.Bytes()); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("logfile: reading %s: %w", path, err)
	}
	return ReadBytes(buf.Bytes())
}

// ReadBytes parses an in-memory file image, as Read does for a path on
// disk.
func ReadBytes(data []byte) (*Reader, error) {
	headerLen, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	st := NewState()
	if _, err := parseChunk(data[headerLen:], st); err != nil {
		return nil, err
	}
	return &Reader{state: st}, nil
}

// Events returns the ordered event list decoded from the file.
func (r *Reader) Events() []event.Event {
	return r.state.Events
}

// SeriesFormat returns the format id pinned to series, and whether the
// series was seen at all.
func (r *Reader) SeriesFormat(series string) (format.ID, bool) {
	id, ok := r.state.SeriesFormat[series]
	return id, ok
}

// Series returns the set of series names observed in the file.
func (r *Reader) Series() []string {
	names := make([]string, 0, len(r.state.SeriesFormat))
	for name := range r.state.SeriesFormat {
		names = append(names, name)
	}
	return names
}

// EndedWithEOF reports whether the file's last byte was the clean-close
// EOF marker (0xFE).
func (r *Reader) EndedWithEOF() bool {
	return r.state.EndedWithEOF
}
