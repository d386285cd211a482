package wire

import "errors"

// ErrTruncation is returned when a read routine needs more bytes than the
// supplied buffer has remaining. It is the only error the incremental File
// Cache treats as recoverable (§4.7, §7).
var ErrTruncation = errors.New("wire: truncated read")

// ErrUnsupportedFormat is returned for a format.ID outside the catalogue
// (§4.2).
var ErrUnsupportedFormat = errors.New("wire: unsupported format")
