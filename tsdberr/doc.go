// Package tsdberr defines the error kinds shared across the engine's
// codec, cache, query and HTTP layers. Each sentinel corresponds to one
// of the abstract error kinds the engine distinguishes; callers use
// errors.Is against these sentinels and errors.Wrap-style %w to keep
// context while preserving the kind for callers that need to branch on
// it (the HTTP layer maps a kind to a status code, the CLI maps it to an
// exit code).
package tsdberr
