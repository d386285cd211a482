package logfile

import (
	"errors"
	"fmt"

	"github.com/jovermann/pvview/event"
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/tsdberr"
	"github.com/jovermann/pvview/wire"
)

// ChannelDef is the (format, series name) binding a channel definition
// entry introduces.
type ChannelDef struct {
	Format format.ID
	Series string
}

// State is the mutable parse state the entry state machine advances: the
// channel table, the implicit current timestamp, the per-series format
// map, and the events decoded so far. Package cache embeds one State per
// cached file and re-drives parseChunk across incremental refreshes;
// Reader and Appender each use one for the lifetime of a single call.
type State struct {
	ChannelDefs  map[uint16]ChannelDef
	SeriesFormat map[string]format.ID
	Events       []event.Event

	CurrentTS uint64
	HasTS     bool

	EndedWithEOF bool
}

// NewState returns an empty State ready for parseChunk.
func NewState() *State {
	return &State{
		ChannelDefs:  make(map[uint16]ChannelDef),
		SeriesFormat: make(map[string]format.ID),
	}
}

// NextChannelID returns the smallest channel id not yet used, i.e.
// max(existing)+1, or 0 if no channel has been defined yet. Used by
// Appender when resuming a file; Writer numbers its channels with its own
// counter.
func (st *State) NextChannelID() uint16 {
	var max int32 = -1
	for id := range st.ChannelDefs {
		if int32(id) > max {
			max = int32(id)
		}
	}
	return uint16(max + 1)
}

// ParseChunk drives the shared entry state machine over buf, mutating st
// as it commits each fully-parsed entry, and returns the number of bytes
// consumed. It is exported so package cache can resume parsing at an
// arbitrary byte offset within a file's body, against a State it kept from
// a previous pass, instead of re-parsing the file from the header every
// time it grows.
func ParseChunk(buf []byte, st *State) (int, error) {
	return parseChunk(buf, st)
}

// parseChunk drives the entry state machine over buf, starting at
// offset 0, mutating st as it commits each fully-parsed entry. It
// returns the number of bytes consumed.
//
// On a truncation — a short read in the middle of an entry — parseChunk
// rewinds to that entry's starting byte and returns with no error: the
// caller (Reader surfaces this as nothing since this only happens at
// EOF of a well-formed stream; cache treats it as "wait for more bytes
// to be flushed"). A structurally invalid entry (unknown tag, undefined
// channel, value before any timestamp) returns a wrapped
// tsdberr.ErrTsdbParse and stops at that entry's start as well.
//
// Channel definitions are committed to st.ChannelDefs/SeriesFormat only
// after their entry is fully consumed, so a truncated definition entry
// never half-registers a channel.
func parseChunk(buf []byte, st *State) (consumed int, err error) {
	offset := 0
	for offset < len(buf) {
		entryStart := offset
		tag := buf[offset]

		switch {
		case tag <= byte(format.MaxValue8Channel):
			n, perr := st.parseValueEntry(buf[offset+1:], uint16(tag))
			if perr != nil {
				return commitOrRewind(entryStart, perr)
			}
			offset += 1 + n

		case tag == byte(format.TagValue16):
			chID, n, perr := wire.ReadUint16(buf[offset+1:])
			if perr != nil {
				return entryStart, nil
			}
			valN, perr := st.parseValueEntry(buf[offset+1+n:], uint16(chID))
			if perr != nil {
				return commitOrRewind(entryStart, perr)
			}
			offset += 1 + n + valN

		case tag == byte(format.TagAbsTS):
			ts, n, perr := wire.ReadUint64(buf[offset+1:])
			if perr != nil {
				return entryStart, nil
			}
			st.CurrentTS = ts
			st.HasTS = true
			offset += 1 + n

		case tag == byte(format.TagRelTS8), tag == byte(format.TagRelTS16),
			tag == byte(format.TagRelTS24), tag == byte(format.TagRelTS32):
			width := relTSWidth(tag)
			delta, n, perr := wire.ReadScalar(buf[offset+1:], width, false)
			if perr != nil {
				return entryStart, nil
			}
			if !st.HasTS {
				return commitOrRewind(entryStart, fmt.Errorf("logfile: relative timestamp before any absolute timestamp: %w", tsdberr.ErrTsdbParse))
			}
			st.CurrentTS += uint64(delta)
			offset += 1 + n

		case tag == byte(format.TagDefCh8):
			n, perr := st.parseChannelDef(buf[offset+1:], 1)
			if perr != nil {
				return commitOrRewind(entryStart, perr)
			}
			offset += 1 + n

		case tag == byte(format.TagDefCh16):
			n, perr := st.parseChannelDef(buf[offset+1:], 2)
			if perr != nil {
				return commitOrRewind(entryStart, perr)
			}
			offset += 1 + n

		case tag == byte(format.TagEOF):
			st.EndedWithEOF = true
			return offset + 1, nil

		default:
			return commitOrRewind(entryStart, fmt.Errorf("logfile: unknown entry tag %#02x: %w", tag, tsdberr.ErrTsdbParse))
		}
	}
	return offset, nil
}

// commitOrRewind classifies err: a truncation rewinds silently to
// entryStart (the caller retries later once more bytes exist); any other
// error is surfaced together with entryStart so the caller can report
// the offending byte offset.
func commitOrRewind(entryStart int, err error) (int, error) {
	if errors.Is(err, wire.ErrTruncation) {
		return entryStart, nil
	}
	return entryStart, err
}

func relTSWidth(tag byte) int {
	switch format.EntryTag(tag) {
	case format.TagRelTS8:
		return 1
	case format.TagRelTS16:
		return 2
	case format.TagRelTS24:
		return 3
	default:
		return 4
	}
}

// parseValueEntry reads a value for channel id from buf (positioned
// right after the tag/channel-id bytes already consumed by the caller)
// and, on success, appends the decoded event to st.Events. It returns
// the number of bytes consumed from buf.
func (st *State) parseValueEntry(buf []byte, channelID uint16) (int, error) {
	if !st.HasTS {
		return 0, fmt.Errorf("logfile: value entry before any timestamp: %w", tsdberr.ErrTsdbParse)
	}
	def, ok := st.ChannelDefs[channelID]
	if !ok {
		return 0, fmt.Errorf("logfile: undefined channel %d: %w", channelID, tsdberr.ErrTsdbParse)
	}
	raw, n, err := wire.ReadValue(buf, def.Format)
	if err != nil {
		if errors.Is(err, wire.ErrTruncation) {
			return 0, wire.ErrTruncation
		}
		return 0, fmt.Errorf("logfile: decoding value for series %q: %w", def.Series, tsdberr.ErrTsdbParse)
	}

	var v event.Value
	if def.Format.Kind() == format.KindString {
		v = event.NewText(raw.(string))
	} else {
		v = event.NewDouble(raw.(float64))
	}
	st.Events = append(st.Events, event.Event{TimestampMs: st.CurrentTS, Series: def.Series, Value: v})
	return n, nil
}

// parseChannelDef reads a channel definition entry whose channel-id
// field is idWidth bytes (1 for DefCh-8, 2 for DefCh-16), then the
// format byte and an 8-bit-length-prefixed series name, committing the
// binding to st only once the whole entry has been read successfully.
func (st *State) parseChannelDef(buf []byte, idWidth int) (int, error) {
	chanRaw, n, err := wire.ReadScalar(buf, idWidth, false)
	if err != nil {
		return 0, wire.ErrTruncation
	}
	offset := n

	formatByte, fn, err := wire.ReadUint8(buf[offset:])
	if err != nil {
		return 0, wire.ErrTruncation
	}
	offset += fn

	name, sn, err := wire.ReadString(buf[offset:], 1)
	if err != nil {
		return 0, wire.ErrTruncation
	}
	offset += sn

	st.ChannelDefs[uint16(chanRaw)] = ChannelDef{Format: format.ID(formatByte), Series: name}
	st.SeriesFormat[name] = format.ID(formatByte)
	return offset, nil
}
