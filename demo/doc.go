// Package demo seeds plausible telemetry through a real logfile.Writer: a
// handful of numeric series following a bounded sine curve over the day
// plus one string status series, grounded on generateDemoData in the
// original Python collector this module replaces.
package demo
