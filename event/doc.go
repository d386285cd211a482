// Package event defines the in-memory representation of a TSDB event and
// the tagged value union every codec role (Reader, Writer, Appender,
// Compressor, Query Engine) passes around.
package event
