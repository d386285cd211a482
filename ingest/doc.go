// Package ingest defines the collaborator boundary between a running data
// source (MQTT broker, HTTP polling endpoint) and the logfile Appender: a
// Source produces Samples, a Batcher accumulates them under a mutex and
// flushes to an Appender on a fixed interval or on Close, grouping by the
// UTC day each sample's timestamp falls on.
package ingest
