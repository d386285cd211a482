// Package format describes the on-disk encoding of a single pvview TSDB
// value: the one-byte format id that a channel definition pins a series to,
// and the byte-level shape (width, signedness, decimal scale) that id
// implies.
//
// A format id is either a floating-point kind (float32, double64, or double64
// with a display-decimals hint), a length-prefixed UTF-8 string kind, or a
// scaled fixed-width integer kind. Scaled integers pack a byte width
// (1, 2, 3, 4 or 8), a signedness, and a power-of-ten scale into a single
// byte so that the Compressor (see package compact) can pick the narrowest
// representation that still reproduces every observed value to six
// significant decimal digits.
//
// This package has no file I/O of its own; package wire reads and writes
// the bytes that a Kind implies.
package format
