// Package archive provides compression codecs for rotated pvview TSDB log
// files.
//
// A daily log file (data_YYYY-MM-DD.tsdb) is append-only and uncompressed
// while it is the current day's file; once a day rolls over, an operator
// (or the `archive` CLI verb) may run it through the Compressor in package
// compact and then through one of these codecs to shrink it for long-term
// storage, producing a sibling file such as data_2026-07-30.tsdb.zstd (the
// suffix is the codec name). When the incremental File Cache is asked to
// load a path whose plain .tsdb file is gone, it calls FindArchivedSibling
// and, if a recognized codec suffix is present, decompresses it through
// GetCodec and parses the result exactly as it would the live file. The
// Query Engine's candidate enumeration (query.CandidateFiles) lists only
// days whose plain .tsdb file exists, so a query does not reach a day that
// is present only as an archived sibling.
//
// # Supported algorithms
//
//   - None: no compression, useful as a baseline or for already-compact files
//   - Zstd: best compression ratio, moderate speed; the default for archival
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// All codecs implement the Compressor/Decompressor/Codec interfaces and are
// safe for concurrent use.
package archive
