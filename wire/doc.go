// Package wire implements the byte-level codec primitives for the pvview
// TSDB file format: little-endian fixed-width integers, the uint24/int24
// pair the format doesn't get from encoding/binary, IEEE float32/float64,
// and length-prefixed UTF-8 strings.
//
// Every read routine here follows one contract: if the supplied buffer is
// shorter than the entry being decoded, it returns ErrTruncation rather than
// panicking or reading out of bounds. Callers that can tolerate a short
// trailing entry — the incremental File Cache (package cache) — rely on
// that contract to detect and rewind past a not-yet-fully-written entry.
package wire
