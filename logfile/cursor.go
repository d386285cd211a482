package logfile

import (
	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/wire"
)

// AppendTimestampCursor implements the timestamp cursor policy shared by
// Writer and Appender (§4.4):
//
//  1. If there is no current timestamp, or ts is smaller than it, emit an
//     absolute timestamp entry and reset the cursor to ts.
//  2. Otherwise compute delta := ts - current and emit the narrowest
//     relative entry that fits (8/16/24/32 bits); a delta too large for
//     32 bits falls back to an absolute entry. A zero delta emits nothing.
//
// It returns the bytes to append, the new cursor value, and whether the
// cursor is now set (always true after this call).
func AppendTimestampCursor(dst []byte, hasTS bool, current uint64, ts uint64) ([]byte, uint64, bool) {
	if !hasTS || ts < current {
		dst = append(dst, byte(format.TagAbsTS))
		dst = wire.PutScalar(dst, int64(ts), 8, false)
		return dst, ts, true
	}

	delta := ts - current
	switch {
	case delta == 0:
		// cursor already correct
	case delta <= 0xFF:
		dst = append(dst, byte(format.TagRelTS8))
		dst = wire.PutScalar(dst, int64(delta), 1, false)
	case delta <= 0xFFFF:
		dst = append(dst, byte(format.TagRelTS16))
		dst = wire.PutScalar(dst, int64(delta), 2, false)
	case delta <= 0xFFFFFF:
		dst = append(dst, byte(format.TagRelTS24))
		dst = wire.PutScalar(dst, int64(delta), 3, false)
	case delta <= 0xFFFFFFFF:
		dst = append(dst, byte(format.TagRelTS32))
		dst = wire.PutScalar(dst, int64(delta), 4, false)
	default:
		dst = append(dst, byte(format.TagAbsTS))
		dst = wire.PutScalar(dst, int64(ts), 8, false)
	}
	return dst, ts, true
}
