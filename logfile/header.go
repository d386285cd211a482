package logfile

import (
	"encoding/binary"
	"fmt"

	"github.com/jovermann/pvview/format"
	"github.com/jovermann/pvview/tsdberr"
)

// WriteHeader appends the 12-byte header (magic + version) to dst.
func WriteHeader(dst []byte) []byte {
	dst = append(dst, format.Magic[:]...)
	return binary.LittleEndian.AppendUint32(dst, format.Version)
}

// ReadHeader validates the 12-byte header at the start of buf and returns
// the number of bytes consumed. A header shorter than 12 bytes is the one
// case where a truncation is surfaced to the caller rather than recovered
// (§7): there is no prior entry to rewind to.
func ReadHeader(buf []byte) (int, error) {
	if len(buf) < format.HeaderSize {
		return 0, fmt.Errorf("logfile: short header (%d bytes): %w", len(buf), tsdberr.ErrTruncation)
	}
	var magic [8]byte
	copy(magic[:], buf[:8])
	if magic != format.Magic {
		return 0, fmt.Errorf("logfile: bad magic %x: %w", magic, tsdberr.ErrTsdbParse)
	}
	version := binary.LittleEndian.Uint32(buf[8:12])
	if version != format.Version {
		return 0, fmt.Errorf("logfile: unsupported version %d: %w", version, tsdberr.ErrTsdbParse)
	}
	return format.HeaderSize, nil
}
