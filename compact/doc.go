// Package compact implements the Compressor: a two-pass rewrite of a
// complete log file that picks, per series, the narrowest format that
// reproduces every observed value losslessly at six significant decimal
// digits, then re-emits the file with channel ids reassigned in
// first-write order (§4.6).
//
// This is unrelated to package archive, which compresses an already-
// written file's bytes with a general-purpose algorithm (zstd/s2/lz4)
// for cold storage; compact narrows the *representation* of each value,
// archive shrinks the resulting *bytes*. The two compose: compact a
// file, then archive the result.
package compact
