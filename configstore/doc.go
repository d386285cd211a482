// Package configstore persists the opaque dashboards.json and
// settings.json blobs the query server's /dashboards and /settings
// endpoints expose, using an atomic write-then-rename so a reader never
// observes a half-written file (§6).
package configstore
