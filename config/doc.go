// Package config loads the engine-level settings pvview's daemon verbs
// (serve, collect) run under: listen address, data directory, poll/flush
// intervals, and the ingest source endpoints. It layers a YAML/TOML file,
// environment variables, and command-line flags through hugorm's precedence
// engine, separate from the opaque per-user dashboards/settings JSON blobs
// the HTTP API stores through package configstore.
package config
