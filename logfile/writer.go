package logfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/internal/options"
	"github.com/jovermann/pvview/tsdberr"
	"github.com/jovermann/pvview/wire"
)

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithFileMode sets the permission bits used when the Writer creates a
// new log file. The default is 0o644.
func WithFileMode(mode os.FileMode) WriterOption {
	return options.NoError(func(w *Writer) {
		w.fileMode = mode
	})
}

type writerChannel struct {
	id     uint16
	format format.ID
}

// Writer stream-appends a brand new log file, owning it exclusively
// until Close. It auto-defines channels on first use, picks the
// narrowest timestamp cursor encoding for every write, and flushes after
// every value entry to bound data loss on a crash (§4.4).
type Writer struct {
	f        *os.File
	buf      *bufio.Writer
	fileMode os.FileMode

	channels    map[string]writerChannel
	nextChannel uint16

	currentTS uint64
	hasTS     bool

	closed bool
}

// NewWriter creates path with the file header and returns a Writer ready
// to append events. It fails if path already exists; use Open (the
// Appender) to resume an existing file.
func NewWriter(path string, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		fileMode: 0o644,
		channels: make(map[string]writerChannel),
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, w.fileMode)
	if err != nil {
		return nil, fmt.Errorf("logfile: creating %s: %w", path, err)
	}
	w.f = f
	w.buf = bufio.NewWriter(f)

	if _, err := w.buf.Write(WriteHeader(nil)); err != nil {
		f.Close()
		return nil, fmt.Errorf("logfile: writing header to %s: %w", path, err)
	}
	if err := w.buf.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("logfile: flushing header to %s: %w", path, err)
	}
	return w, nil
}

// Add appends a numeric event. The series is pinned to double64 (format
// 0x01) on its first use; a later AddString call on the same series
// fails with format_mismatch.
func (w *Writer) Add(series string, value float64, ts uint64) error {
	return w.appendValue(series, format.Double64, ts, func(dst []byte) ([]byte, bool) {
		return wire.EncodeValue(dst, value, format.Double64)
	})
}

// AddString appends a textual event. The series is pinned to the
// 8-byte-length-prefixed string format (0x0B) on its first use.
func (w *Writer) AddString(series string, text string, ts uint64) error {
	return w.appendValue(series, format.StringLenPrefix64, ts, func(dst []byte) ([]byte, bool) {
		return wire.EncodeValue(dst, text, format.StringLenPrefix64)
	})
}

func (w *Writer) appendValue(series string, wantFormat format.ID, ts uint64, encode func([]byte) ([]byte, bool)) error {
	if w.closed {
		return fmt.Errorf("logfile: write to closed writer: %w", tsdberr.ErrIO)
	}

	ch, ok := w.channels[series]
	if ok {
		if ch.format != wantFormat {
			return fmt.Errorf("logfile: series %q already pinned to format %s: %w", series, ch.format.Describe(), tsdberr.ErrFormatMismatch)
		}
	} else {
		ch = writerChannel{id: w.nextChannel, format: wantFormat}
		w.nextChannel++
		w.channels[series] = ch

		def := AppendChannelDef(nil, ch.id, wantFormat, series)
		if _, err := w.buf.Write(def); err != nil {
			return fmt.Errorf("logfile: writing channel definition: %w", tsdberr.ErrIO)
		}
	}

	var out []byte
	out, w.currentTS, w.hasTS = AppendTimestampCursor(out, w.hasTS, w.currentTS, ts)
	out = AppendValueEntry(out, ch.id)
	encoded, ok := encode(out)
	if !ok {
		return fmt.Errorf("logfile: series %q value does not fit format %s: %w", series, wantFormat.Describe(), tsdberr.ErrCannotEncode)
	}

	if _, err := w.buf.Write(encoded); err != nil {
		return fmt.Errorf("logfile: writing value entry: %w", tsdberr.ErrIO)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("logfile: flushing value entry: %w", tsdberr.ErrIO)
	}
	return nil
}

// Close flushes and closes the underlying file. If markComplete is true
// it first writes the EOF marker (0xFE). Closing an already-closed
// Writer is a no-op.
func (w *Writer) Close(markComplete bool) error {
	if w.closed {
		return nil
	}
	w.closed = true

	if markComplete {
		if _, err := w.buf.Write([]byte{byte(format.TagEOF)}); err != nil {
			w.f.Close()
			return fmt.Errorf("logfile: writing EOF marker: %w", tsdberr.ErrIO)
		}
	}
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("logfile: flushing on close: %w", tsdberr.ErrIO)
	}
	return w.f.Close()
}
