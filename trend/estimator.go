package trend

import "fmt"

// Fit holds the coefficients of a simple linear regression y = slope*x +
// intercept, plus its goodness of fit.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
}

// OLS fits a line through (xs[i], ys[i]) by ordinary least squares in a
// single pass over the accumulated sums. It returns an error if fewer than
// two points are given or every x is identical (a vertical fit has no
// slope).
func OLS(xs, ys []float64) (Fit, error) {
	n := len(xs)
	if n != len(ys) {
		return Fit{}, fmt.Errorf("trend: xs and ys have different lengths (%d vs %d)", n, len(ys))
	}
	if n < 2 {
		return Fit{}, fmt.Errorf("trend: need at least 2 points, got %d", n)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return Fit{}, fmt.Errorf("trend: all x values identical, slope is undefined")
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	meanY := sumY / fn
	var ssTot, ssRes float64
	for i := range xs {
		predicted := slope*xs[i] + intercept
		ssRes += (ys[i] - predicted) * (ys[i] - predicted)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	rSquared := 1.0
	if ssTot != 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return Fit{Slope: slope, Intercept: intercept, RSquared: rSquared}, nil
}
