package demo

// series describes one demo channel: its name, a representative base value,
// whether it's numeric, and (for numeric series) how many decimal places to
// quantize generated values to. The catalogue mirrors the inverter-style
// names and suffix-based ranges the original collector's _range_for_series
// recognizes (power, powerdc, voltage, temperature, producing, yieldday,
// yieldtotal), plus one string status series.
type series struct {
	name     string
	base     float64
	numeric  bool
	decimals int
}

var defaultSeries = []series{
	{name: "inv1/power", base: 1200, numeric: true, decimals: 1},
	{name: "inv1/powerdc", base: 1260, numeric: true, decimals: 1},
	{name: "inv1/voltage", base: 230, numeric: true, decimals: 1},
	{name: "inv1/temperature", base: 35, numeric: true, decimals: 1},
	{name: "inv1/producing", base: 1, numeric: true, decimals: 0},
	{name: "inv1/yieldday", base: 0, numeric: true, decimals: 3},
	{name: "inv1/yieldtotal", base: 4200, numeric: true, decimals: 3},
	{name: "inv1/status/text", base: 0, numeric: false, decimals: 0},
}

// rangeFor returns the [min, max] bounded-sine envelope for series named
// name with representative value base, following the suffix rules of
// _range_for_series in the original collector.
func rangeFor(name string, base float64) (float64, float64) {
	suffix := metricSuffix(name)
	switch suffix {
	case "power":
		return 0, 2500
	case "powerdc":
		return 0, 2600
	case "voltage":
		return 210, 250
	case "temperature":
		return -5, 75
	case "producing", "reachable", "is_valid":
		return 0, 1
	case "yieldday", "yieldtotal":
		if base > 10 {
			return 0, base
		}
		return 0, 10
	default:
		low, high := base*0.5, base*1.5
		if low > high {
			low, high = high, low
		}
		if base > -1 && base < 1 {
			return -1, 1
		}
		return low, high
	}
}

func metricSuffix(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
