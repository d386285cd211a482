// Package httpapi serves the JSON-over-HTTP query API of §6: /health,
// /series, /events (with optional trend enrichment), and the opaque
// /dashboards and /settings blobs. It wraps net/http with
// github.com/One-com/gone/http/graceful for connection-draining shutdown,
// the same server lifecycle primitive the rest of the gone-derived ambient
// stack (config, logging) is grounded on.
package httpapi
