package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/internal/options"
	"github.com/jovermann/pvview/tsdberr"
	"github.com/jovermann/pvview/wire"
)

// nameDedupeSuffix marks series whose repeated identical string values
// should be skipped rather than re-appended (§4.5, §9: "unconditional").
const nameDedupeSuffix = "/name"

// Sample is one (series, timestamp, value) triple an ingest source hands
// to AppendEvents. DecimalsHint is only consulted for a series seen for
// the first time and carrying a KindDouble value; it selects which
// double64 display-hint format (0x01..0x07) the new channel is pinned
// to (§4.5, §9).
type Sample struct {
	Series       string
	TimestampMs  uint64
	Value        event.Value
	DecimalsHint int
}

// Appender resumes a possibly-crashed, possibly-clean log file and
// continues writing to it without rewriting any existing bytes. It
// reconstructs the channel table, current timestamp, and a dedupe cache
// from the file's existing content, then truncates a trailing EOF
// marker if present so later writes append seamlessly (§4.5).
type Appender struct {
	f        *os.File
	buf      *bufio.Writer
	fileMode os.FileMode

	channels    map[string]writerChannel
	nextChannel uint16

	currentTS uint64
	hasTS     bool

	dedupe map[string]string

	closed bool
}

// AppenderOption configures an Appender at construction time.
type AppenderOption = options.Option[*Appender]

// WithAppenderFileMode sets the permission bits used if Open creates a
// brand new file. The default is 0o644.
func WithAppenderFileMode(mode os.FileMode) AppenderOption {
	return options.NoError(func(a *Appender) {
		a.fileMode = mode
	})
}

// Open resumes path, creating it with a fresh header if it does not yet
// exist.
func Open(path string, opts ...AppenderOption) (*Appender, error) {
	a := &Appender{
		fileMode: 0o644,
		channels: make(map[string]writerChannel),
		dedupe:   make(map[string]string),
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return a.openFresh(path)
	case err != nil:
		return nil, fmt.Errorf("logfile: reading %s: %w", path, err)
	}
	return a.openExisting(path, data)
}

func (a *Appender) openFresh(path string) (*Appender, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, a.fileMode)
	if err != nil {
		return nil, fmt.Errorf("logfile: creating %s: %w", path, err)
	}
	a.f = f
	a.buf = bufio.NewWriter(f)
	if _, err := a.buf.Write(WriteHeader(nil)); err != nil {
		f.Close()
		return nil, fmt.Errorf("logfile: writing header to %s: %w", path, err)
	}
	if err := a.buf.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("logfile: flushing header to %s: %w", path, err)
	}
	return a, nil
}

func (a *Appender) openExisting(path string, data []byte) (*Appender, error) {
	headerLen, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	st := NewState()
	if _, err := parseChunk(data[headerLen:], st); err != nil {
		return nil, err
	}

	for id, def := range st.ChannelDefs {
		a.channels[def.Series] = writerChannel{id: id, format: def.Format}
	}
	a.nextChannel = st.NextChannelID()
	a.currentTS = st.CurrentTS
	a.hasTS = st.HasTS

	for _, ev := range st.Events {
		if strings.HasSuffix(ev.Series, nameDedupeSuffix) {
			if text, ok := ev.Value.Text(); ok {
				a.dedupe[ev.Series] = text
			}
		}
	}

	truncateTo := int64(len(data))
	if st.EndedWithEOF {
		truncateTo--
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("logfile: reopening %s: %w", path, err)
	}
	if err := f.Truncate(truncateTo); err != nil {
		f.Close()
		return nil, fmt.Errorf("logfile: truncating trailing EOF in %s: %w", path, err)
	}
	if _, err := f.Seek(truncateTo, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("logfile: seeking in %s: %w", path, err)
	}

	a.f = f
	a.buf = bufio.NewWriter(f)
	return a, nil
}

// AppendEvents writes a batch of samples, applying the dedupe, format-
// selection, channel-definition and timestamp-cursor rules of §4.5. It
// does not flush the EOF marker; the file remains open for further
// appends after the call returns.
func (a *Appender) AppendEvents(batch []Sample) error {
	if a.closed {
		return fmt.Errorf("logfile: append to closed appender: %w", tsdberr.ErrIO)
	}
	for _, s := range batch {
		if err := a.appendOne(s); err != nil {
			return err
		}
	}
	return a.buf.Flush()
}

func (a *Appender) appendOne(s Sample) error {
	if text, ok := s.Value.Text(); ok {
		if strings.HasSuffix(s.Series, nameDedupeSuffix) {
			if cached, seen := a.dedupe[s.Series]; seen && cached == text {
				return nil
			}
		}
		if err := a.writeValue(s.Series, format.StringLenPrefix64, s.TimestampMs, func(dst []byte, actual format.ID) ([]byte, bool) {
			return wire.EncodeValue(dst, text, actual)
		}); err != nil {
			return err
		}
		if strings.HasSuffix(s.Series, nameDedupeSuffix) {
			a.dedupe[s.Series] = text
		}
		return nil
	}

	numeric, ok := s.Value.Double()
	if !ok {
		return fmt.Errorf("logfile: sample for series %q carries neither a double nor a string: %w", s.Series, tsdberr.ErrTsdbParse)
	}
	defaultFormat := format.DoubleForDecimals(s.DecimalsHint)
	return a.writeValue(s.Series, defaultFormat, s.TimestampMs, func(dst []byte, actual format.ID) ([]byte, bool) {
		return wire.EncodeValue(dst, numeric, actual)
	})
}

// writeValue ensures series has a channel (defining one with
// defaultFormat if this is its first appearance), emits the timestamp
// cursor and the value entry, and fails with format_mismatch if the
// series' pinned format and the value being written belong to different
// kinds (string vs numeric).
func (a *Appender) writeValue(series string, defaultFormat format.ID, ts uint64, encode func(dst []byte, actual format.ID) ([]byte, bool)) error {
	ch, ok := a.channels[series]
	if ok {
		if ch.format.Kind() == format.KindString != (defaultFormat.Kind() == format.KindString) {
			return fmt.Errorf("logfile: series %q already pinned to format %s: %w", series, ch.format.Describe(), tsdberr.ErrFormatMismatch)
		}
	} else {
		ch = writerChannel{id: a.nextChannel, format: defaultFormat}
		a.nextChannel++
		a.channels[series] = ch

		def := AppendChannelDef(nil, ch.id, defaultFormat, series)
		if _, err := a.buf.Write(def); err != nil {
			return fmt.Errorf("logfile: writing channel definition: %w", tsdberr.ErrIO)
		}
	}

	var out []byte
	out, a.currentTS, a.hasTS = AppendTimestampCursor(out, a.hasTS, a.currentTS, ts)
	out = AppendValueEntry(out, ch.id)
	encoded, ok := encode(out, ch.format)
	if !ok {
		return fmt.Errorf("logfile: series %q value does not fit format %s: %w", series, ch.format.Describe(), tsdberr.ErrCannotEncode)
	}
	if _, err := a.buf.Write(encoded); err != nil {
		return fmt.Errorf("logfile: writing value entry: %w", tsdberr.ErrIO)
	}
	return nil
}

// Close flushes and closes the underlying file. If markComplete is true
// it first writes the EOF marker. Closing an already-closed Appender is
// a no-op.
func (a *Appender) Close(markComplete bool) error {
	if a.closed {
		return nil
	}
	a.closed = true

	if markComplete {
		if _, err := a.buf.Write([]byte{byte(format.TagEOF)}); err != nil {
			a.f.Close()
			return fmt.Errorf("logfile: writing EOF marker: %w", tsdberr.ErrIO)
		}
	}
	if err := a.buf.Flush(); err != nil {
		a.f.Close()
		return fmt.Errorf("logfile: flushing on close: %w", tsdberr.ErrIO)
	}
	return a.f.Close()
}
