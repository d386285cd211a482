// Package query implements the Query Engine and Downsampler (§4.8–§4.9):
// candidate daily-file enumeration for a time window, series listing,
// ranged event queries merged across files, and equal-width bucket
// downsampling of numeric series.
package query
