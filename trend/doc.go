// Package trend fits an ordinary least-squares line through a numeric
// series' (possibly downsampled) points, the enrichment GET /events applies
// when the caller passes &trend=1. It is grounded on the single-regressor
// case of the teacher's regression estimators, trimmed to one model: no
// change-point detection, no confidence intervals, no alternate curve
// shapes — a telemetry dashboard only needs "is this going up or down".
package trend
