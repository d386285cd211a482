package demo

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/jovermann/pvview/logfile"
)

const (
	stepsPerDay = 24 * 12 // 5-minute intervals
	stepMs      = 5 * 60 * 1000
	statusText  = "producing"
)

// Generate writes days daily .tsdb files under outDir, ending on the UTC
// calendar day that endDay falls in, and returns the paths written in
// chronological order. It mirrors generateDemoData's per-step walk: every
// numeric series follows a bounded sine curve across the day, yieldday and
// yieldtotal integrate the power series instead, and the status series
// alternates a couple of plausible string values.
func Generate(days int, outDir string, endDay time.Time) ([]string, error) {
	if days <= 0 {
		return nil, fmt.Errorf("demo: days must be > 0, got %d", days)
	}

	endDay = endDay.UTC().Truncate(24 * time.Hour)
	startDay := endDay.AddDate(0, 0, -(days - 1))

	var cumulativeYield float64
	if y, ok := seriesByName("inv1/yieldtotal"); ok {
		cumulativeYield = y.base
	}

	var paths []string
	for dayIndex := 0; dayIndex < days; dayIndex++ {
		day := startDay.AddDate(0, 0, dayIndex)
		path := filepath.Join(outDir, fmt.Sprintf("data_%s.tsdb", day.Format("2006-01-02")))
		paths = append(paths, path)

		if err := writeDay(path, day, dayIndex, &cumulativeYield); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeDay(path string, day time.Time, dayIndex int, cumulativeYield *float64) error {
	w, err := logfile.NewWriter(path)
	if err != nil {
		return fmt.Errorf("demo: creating %s: %w", path, err)
	}

	startMs := uint64(day.UnixMilli())
	var dailyYield float64

	for step := 0; step < stepsPerDay; step++ {
		ts := startMs + uint64(step*stepMs)
		dayFraction := float64(step) / float64(stepsPerDay)

		var powerW float64
		for idx, s := range defaultSeries {
			if !s.numeric {
				value := statusText
				if step%97 == 0 {
					value = "idle"
				}
				if err := w.AddString(s.name, value, ts); err != nil {
					return fmt.Errorf("demo: writing %s: %w", s.name, err)
				}
				continue
			}

			suffix := metricSuffix(s.name)
			if suffix == "yieldday" || suffix == "yieldtotal" {
				continue
			}

			periods := (idx % 24) + 1
			phase := float64(idx)*0.73 + float64(dayIndex)*0.11
			minV, maxV := rangeFor(s.name, s.base)
			value := boundedSin(minV, maxV, phase, periods, dayFraction)
			if suffix == "producing" {
				if value >= (minV+maxV)/2 {
					value = 1
				} else {
					value = 0
				}
			}
			value = quantize(value, s.decimals)
			if suffix == "power" {
				powerW = math.Max(0, value)
			}
			if err := w.Add(s.name, value, ts); err != nil {
				return fmt.Errorf("demo: writing %s: %w", s.name, err)
			}
		}

		stepHours := 5.0 / 60.0
		if yd, ok := seriesByName("inv1/yieldday"); ok {
			if err := w.Add(yd.name, quantize(dailyYield, yd.decimals), ts); err != nil {
				return fmt.Errorf("demo: writing %s: %w", yd.name, err)
			}
			dailyYield += (powerW * stepHours) / 1000.0
		}
		if yt, ok := seriesByName("inv1/yieldtotal"); ok {
			if err := w.Add(yt.name, quantize(*cumulativeYield, yt.decimals), ts); err != nil {
				return fmt.Errorf("demo: writing %s: %w", yt.name, err)
			}
			*cumulativeYield += (powerW * stepHours) / 1000.0
		}
	}

	return w.Close(true)
}

func boundedSin(minV, maxV, phase float64, periodsPerDay int, dayFraction float64) float64 {
	mid := (minV + maxV) * 0.5
	amp := (maxV - minV) * 0.5
	value := mid + amp*math.Sin(2.0*math.Pi*float64(periodsPerDay)*dayFraction+phase)
	return math.Min(math.Max(value, minV), maxV)
}

func quantize(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}

func seriesByName(name string) (series, bool) {
	for _, s := range defaultSeries {
		if s.name == name {
			return s, true
		}
	}
	return series{}, false
}
