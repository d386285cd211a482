// Package cache implements the incremental File Cache (§4.7): a
// process-scoped store of parsed log-file state keyed by path, refreshed
// by re-driving logfile's shared entry state machine over only the bytes
// appended since the last observation rather than reparsing from the
// header.
package cache
