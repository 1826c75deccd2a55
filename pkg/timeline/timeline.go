// Package timeline reconstructs a per-second power series from a
// calculation, placing each category's active windows at their scheduled
// offsets. Baseline (sleep/idle) draw is spread across the whole horizon
// and window pulses add the active-minus-baseline delta, so the integral of
// the series equals the aggregate raw total whenever no window truncates at
// the horizon boundary. Explicit spikes are kept where the hardware has
// them: GPS acquisition, cellular startup, co-processor startup.
package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/pmm09c/power-graph/pkg/consumption"
	"github.com/pmm09c/power-graph/pkg/util"
)

// ErrNoHorizon indicates a configuration whose horizon rounds to zero
// samples.
var ErrNoHorizon = errors.New("timeline: empty horizon")

// Timeline is a power series in mW at one-second resolution. It is
// constructed fresh by Synthesize and not mutated afterwards.
type Timeline struct {
	Hours   float64
	Samples []float64
}

// Synthesize builds the power timeline for cfg. agg must be the result of
// consumption.Calculate over the same cfg; passing nil recomputes it.
func Synthesize(cfg consumption.Config, agg *consumption.Aggregate) (*Timeline, error) {
	if agg == nil {
		var err error
		agg, err = consumption.Calculate(cfg)
		if err != nil {
			return nil, fmt.Errorf("timeline: %w", err)
		}
	}

	hours := cfg.Horizon()
	n := int(math.Round(hours * 3600))
	if n <= 0 {
		return nil, ErrNoHorizon
	}
	samples := make([]float64, n)

	addSensors(samples, cfg.Sensors, agg, hours)
	addGPS(samples, cfg.GPS, agg)
	addCellular(samples, cfg.Cellular, agg)
	addMesh(samples, cfg.Mesh, agg)
	addCoprocessor(samples, cfg.Coprocessor, agg)

	return &Timeline{Hours: hours, Samples: samples}, nil
}

// addSensors spreads the continuous draw over the horizon and schedules the
// shared polling windows. Polled sensors contribute their sleep power as a
// floor and the active-sleep delta inside each sampling window.
func addSensors(samples []float64, cfg consumption.SensorsConfig, agg *consumption.Aggregate, hours float64) {
	if agg.Sensors.ContinuousMWh > 0 {
		addBaseline(samples, agg.Sensors.ContinuousMWh/hours)
	}

	windows := cfg.BaseFrequencyPerHour * hours
	for _, s := range cfg.Polled {
		if !s.Enabled {
			continue
		}
		addBaseline(samples, s.SleepPowerMW)
		if windows <= 0 || cfg.BaseDurationSeconds <= 0 {
			continue
		}
		interval := float64(len(samples)) / windows
		for start := 0.0; start < float64(len(samples)); start += interval {
			addPulse(samples, start, cfg.BaseDurationSeconds, s.ActivePowerMW-s.SleepPowerMW)
		}
	}
}

// addGPS places the cold-start acquisition at t=0 and tracking fixes at
// evenly spread offsets after it.
func addGPS(samples []float64, cfg consumption.GPSConfig, agg *consumption.Aggregate) {
	if !agg.GPS.Enabled {
		return
	}
	m := cfg.Hardware()
	addPulse(samples, 0, m.AcquisitionS, m.AcquisitionMW)

	if agg.GPS.Updates <= 1 {
		return
	}
	interval := float64(len(samples)) / agg.GPS.Updates
	for start := interval; start < float64(len(samples)); start += interval {
		addPulse(samples, start, cfg.DurationSeconds, cfg.ActivePowerMW)
	}
}

// addCellular places one startup spike plus a transmit window per session.
func addCellular(samples []float64, cfg consumption.CellularConfig, agg *consumption.Aggregate) {
	if !agg.Cellular.Enabled || agg.Cellular.Sessions <= 0 {
		return
	}
	m := cfg.Hardware()
	interval := float64(len(samples)) / agg.Cellular.Sessions
	for start := 0.0; start < float64(len(samples)); start += interval {
		addPulse(samples, start, m.StartupS, m.StartupMW)
		addPulse(samples, start+m.StartupS, cfg.DurationMinutes*60, cfg.ActivePowerMW)
	}
}

// addMesh draws the listen/sleep floor continuously and schedules transmit
// bursts. The floor blends sleep and receive power by the listen duty
// cycle; each burst adds the transmit-minus-sleep delta.
func addMesh(samples []float64, cfg consumption.MeshConfig, agg *consumption.Aggregate) {
	if !agg.Mesh.Enabled {
		return
	}
	m := cfg.Hardware()
	duty := agg.Mesh.RxDutyCycle
	addBaseline(samples, m.SleepMW*(1-duty)+m.RxMW*duty)

	if agg.Mesh.Messages <= 0 || cfg.DurationSeconds <= 0 {
		return
	}
	interval := float64(len(samples)) / agg.Mesh.Messages
	for start := 0.0; start < float64(len(samples)); start += interval {
		addPulse(samples, start, cfg.DurationSeconds, cfg.ActivePowerMW-m.SleepMW)
	}
}

// addCoprocessor draws the idle floor continuously and schedules a startup
// ramp plus an active window per processing session.
func addCoprocessor(samples []float64, cfg consumption.CoprocessorConfig, agg *consumption.Aggregate) {
	if !agg.Coprocessor.Enabled {
		return
	}
	m := cfg.Hardware()
	addBaseline(samples, cfg.IdlePowerMW)

	if agg.Coprocessor.Windows <= 0 {
		return
	}
	interval := float64(len(samples)) / agg.Coprocessor.Windows
	for start := 0.0; start < float64(len(samples)); start += interval {
		addPulse(samples, start, m.StartupS, m.StartupPowerMW()-cfg.IdlePowerMW)
		addPulse(samples, start+m.StartupS, cfg.DurationMinutes*60, cfg.ActivePowerMW-cfg.IdlePowerMW)
	}
}

func addBaseline(samples []float64, mw float64) {
	if mw == 0 {
		return
	}
	for i := range samples {
		samples[i] += mw
	}
}

// addPulse adds mw over [start, start+dur) seconds, weighting partial
// overlap of the first and last one-second bins so the pulse integrates to
// exactly mw*dur. Pulses past the end of the horizon truncate.
func addPulse(samples []float64, start, dur, mw float64) {
	if dur <= 0 || mw == 0 || start >= float64(len(samples)) {
		return
	}
	if start < 0 {
		dur += start
		start = 0
		if dur <= 0 {
			return
		}
	}
	end := start + dur
	for i := int(math.Floor(start)); i < len(samples); i++ {
		lo := math.Max(start, float64(i))
		hi := math.Min(end, float64(i+1))
		if hi <= lo {
			break
		}
		samples[i] += mw * (hi - lo)
	}
}

// EnergyMWh integrates the series back into energy.
func (t *Timeline) EnergyMWh() float64 {
	var sum float64
	for _, v := range t.Samples {
		sum += v
	}
	return sum / 3600
}

// AverageMW is the mean draw over the horizon.
func (t *Timeline) AverageMW() float64 {
	return util.SafeDiv(t.EnergyMWh(), t.Hours)
}

// Downsample averages consecutive windows of the given size in seconds.
// A trailing partial window is averaged over its actual length.
func (t *Timeline) Downsample(window int) []float64 {
	if window <= 0 {
		window = 1
	}
	out := make([]float64, 0, (len(t.Samples)+window-1)/window)
	for i := 0; i < len(t.Samples); i += window {
		end := i + window
		if end > len(t.Samples) {
			end = len(t.Samples)
		}
		var sum float64
		for _, v := range t.Samples[i:end] {
			sum += v
		}
		out = append(out, sum/float64(end-i))
	}
	return out
}

// HourlyMW returns per-hour average draw.
func (t *Timeline) HourlyMW() []float64 { return t.Downsample(3600) }

// MinutelyMW returns per-minute average draw.
func (t *Timeline) MinutelyMW() []float64 { return t.Downsample(60) }

// Stats summarizes the series.
type Stats struct {
	PeakMW    float64 `json:"peak_mw"`
	MinMW     float64 `json:"min_mw"`
	AverageMW float64 `json:"average_mw"`
}

// Stats computes peak, minimum, and average draw over the raw samples.
func (t *Timeline) Stats() Stats {
	if len(t.Samples) == 0 {
		return Stats{}
	}
	s := Stats{PeakMW: t.Samples[0], MinMW: t.Samples[0]}
	var sum float64
	for _, v := range t.Samples {
		if v > s.PeakMW {
			s.PeakMW = v
		}
		if v < s.MinMW {
			s.MinMW = v
		}
		sum += v
	}
	s.AverageMW = sum / float64(len(t.Samples))
	return s
}

// DutyCycle returns the fraction of the horizon spent above the given
// power threshold in mW.
func (t *Timeline) DutyCycle(thresholdMW float64) float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	var above int
	for _, v := range t.Samples {
		if v > thresholdMW {
			above++
		}
	}
	return float64(above) / float64(len(t.Samples))
}
