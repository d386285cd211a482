// Package logfile implements the three codec roles that read and write
// pvview TSDB log files: Reader (parse a complete file), Writer (stream-
// append a brand new file, owning it exclusively), and Appender (resume
// an existing file, tolerating a missing or stray trailing EOF marker).
//
// Reader and Appender share one entry-level state machine (parseChunk in
// state.go), which package cache also drives directly for its
// incremental tail parsing; Writer only creates new files and never
// parses. Keeping a single implementation of the state machine is what
// lets a truncated trailing entry be handled identically everywhere:
// rewind to the entry's start byte and stop, per the contract documented
// on ParseChunk.
package logfile
