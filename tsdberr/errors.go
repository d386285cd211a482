package tsdberr

import "errors"

var (
	// ErrBadRequest marks an invalid query parameter: an unparseable
	// timestamp, end < start, maxEvents <= 0, or a missing required field.
	ErrBadRequest = errors.New("tsdberr: bad request")

	// ErrNotFound marks a missing file, dashboard, or endpoint.
	ErrNotFound = errors.New("tsdberr: not found")

	// ErrTsdbParse marks a malformed entry, unknown tag, undefined
	// channel, or a value entry encountered before any timestamp.
	ErrTsdbParse = errors.New("tsdberr: malformed tsdb entry")

	// ErrTruncation marks a short read in the middle of an entry. The
	// incremental File Cache recovers from it locally (rewind and stop);
	// it is only surfaced to a caller when the initial 12-byte header
	// itself is short.
	ErrTruncation = errors.New("tsdberr: truncated read")

	// ErrFormatMismatch marks a write or append whose value's category
	// does not match the format id that already pinned the series.
	ErrFormatMismatch = errors.New("tsdberr: format mismatch")

	// ErrCannotEncode marks a value that could not be fitted into its
	// format. The Writer and Appender return it for a value their pinned
	// format cannot hold (such as a non-finite double); from the
	// compressor, whose selection algorithm only picks formats that fit,
	// it indicates a bug.
	ErrCannotEncode = errors.New("tsdberr: cannot encode value")

	// ErrIO marks an underlying filesystem error.
	ErrIO = errors.New("tsdberr: io error")

	// ErrMixedSeries marks a series the compressor found mixing strings
	// and numerics, or carrying boolean values.
	ErrMixedSeries = errors.New("tsdberr: mixed series")
)
