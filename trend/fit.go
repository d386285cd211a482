package trend

import (
	"fmt"

	"github.com/jovermann/pvview/query"
)

// FitResult fits an OLS line through result's points, using each point's
// raw value or, for a downsampled result, its bucket average, against its
// timestamp. It returns an error for a non-numeric series (points whose
// Value is a string, or whose Min/Avg/Max are all absent).
func FitResult(result query.Result) (Fit, error) {
	xs := make([]float64, 0, len(result.Points))
	ys := make([]float64, 0, len(result.Points))

	for _, p := range result.Points {
		switch {
		case p.Avg != nil:
			xs = append(xs, float64(p.Timestamp))
			ys = append(ys, *p.Avg)
		case p.Value != nil:
			v, ok := p.Value.(float64)
			if !ok {
				return Fit{}, fmt.Errorf("trend: series %q is not numeric", result.Series)
			}
			xs = append(xs, float64(p.Timestamp))
			ys = append(ys, v)
		}
	}

	return OLS(xs, ys)
}
