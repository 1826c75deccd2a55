// Package battery maps daily energy consumption to expected runtime.
package battery

import "math"

// DaysPerMonth converts projected days to calendar months in reports.
const DaysPerMonth = 30.44

// LifeDays returns the expected runtime in days for a battery of the given
// capacity. Zero or negative daily consumption yields +Inf: the battery is
// never drained under the model.
func LifeDays(capacityWh, dailyMWh float64) float64 {
	if dailyMWh <= 0 {
		return math.Inf(1)
	}
	return capacityWh * 1000 / dailyMWh
}

// Months converts a day count to months.
func Months(days float64) float64 { return days / DaysPerMonth }

// Projection is one point of a battery-life curve.
type Projection struct {
	CapacityWh float64 `json:"capacity_wh"`
	LifeDays   float64 `json:"life_days"`
}

// Sweep evaluates steps evenly spaced capacities in [minWh, maxWh] for the
// given daily consumption, for plotting a life-vs-capacity curve. Fewer
// than two steps collapses to the single point minWh.
func Sweep(minWh, maxWh float64, steps int, dailyMWh float64) []Projection {
	if steps < 1 {
		return nil
	}
	if steps == 1 {
		return []Projection{{CapacityWh: minWh, LifeDays: LifeDays(minWh, dailyMWh)}}
	}
	out := make([]Projection, steps)
	step := (maxWh - minWh) / float64(steps-1)
	for i := range out {
		c := minWh + float64(i)*step
		out[i] = Projection{CapacityWh: c, LifeDays: LifeDays(c, dailyMWh)}
	}
	return out
}

// Reference evaluates a fixed set of capacities (e.g. the shipped battery
// options) for the given daily consumption.
func Reference(capacitiesWh []float64, dailyMWh float64) []Projection {
	out := make([]Projection, 0, len(capacitiesWh))
	for _, c := range capacitiesWh {
		out = append(out, Projection{CapacityWh: c, LifeDays: LifeDays(c, dailyMWh)})
	}
	return out
}

// Band classifies a projected lifetime for reporting.
type Band int

const (
	BandCritical Band = iota // under 30 days
	BandCaution              // 30 to 90 days
	BandHealthy              // 90 days or more
)

// Classify maps a projected lifetime to its band.
func Classify(lifeDays float64) Band {
	switch {
	case lifeDays < 30:
		return BandCritical
	case lifeDays < 90:
		return BandCaution
	default:
		return BandHealthy
	}
}

func (b Band) String() string {
	switch b {
	case BandCritical:
		return "critical"
	case BandCaution:
		return "caution"
	default:
		return "healthy"
	}
}
