package logfile

import (
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/wire"
)

// ValueEntryFraming reports whether channel id fits the 1-byte Value-8
// framing (tag IS the channel id) or needs the 3-byte Value-16 framing
// (tag 0xFF, then a u16 channel id). Per §3 and the resolved open
// question in §9, this split is fixed at 0xEF regardless of how the
// channel's own definition entry encoded its id.
func ValueEntryFraming(id uint16) bool {
	return id <= format.MaxValue8Channel
}

// AppendChannelDef appends a channel definition entry for id, formatID
// and series, choosing DefCh-8 when id fits a single byte and DefCh-16
// otherwise.
func AppendChannelDef(dst []byte, id uint16, formatID format.ID, series string) []byte {
	if id <= 0xFF {
		dst = append(dst, byte(format.TagDefCh8), byte(id))
	} else {
		dst = append(dst, byte(format.TagDefCh16))
		dst = wire.PutScalar(dst, int64(id), 2, false)
	}
	dst = append(dst, byte(formatID))
	dst = wire.PutString(dst, series, 1)
	return dst
}

// AppendValueEntry appends the tag/channel-id prefix for a value entry
// addressed to id (the value bytes themselves are appended by the
// caller, since encoding depends on the series' format).
func AppendValueEntry(dst []byte, id uint16) []byte {
	if ValueEntryFraming(id) {
		return append(dst, byte(id))
	}
	dst = append(dst, byte(format.TagValue16))
	return wire.PutScalar(dst, int64(id), 2, false)
}
