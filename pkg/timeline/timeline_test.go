package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmm09c/power-graph/pkg/consumption"
)

// fullConfig exercises every category with schedules that divide the
// 24h horizon evenly, so no pulse truncates at the boundary.
func fullConfig() consumption.Config {
	return consumption.Config{
		Hours: 24,
		Sensors: consumption.SensorsConfig{
			BaseFrequencyPerHour: 60,
			BaseDurationSeconds:  1,
			Continuous: []consumption.ContinuousSensorConfig{
				{Name: "lsm6dsv", Enabled: true, ActivePowerMW: 0.695, SleepPowerMW: 0.0015},
			},
			Polled: []consumption.PolledSensorConfig{
				{Name: "mmc5983ma", Enabled: true, ActivePowerMW: 1.0, SleepPowerMW: 0.002},
			},
		},
		GPS: consumption.GPSConfig{
			Enabled: true, ActivePowerMW: 20, FrequencyPerHour: 6, DurationSeconds: 30,
		},
		Cellular: consumption.CellularConfig{
			Enabled: true, ActivePowerMW: 500, SessionsPerDay: 1, DurationMinutes: 10,
		},
		Mesh: consumption.MeshConfig{
			Enabled: true, ActivePowerMW: 100, Rate: 1, Unit: consumption.PerHour,
			DurationSeconds: 5, ListenEnabled: true, RxDutyCycle: 0.1,
		},
		Coprocessor: consumption.CoprocessorConfig{
			Enabled: true, ActivePowerMW: 7000, IdlePowerMW: 400,
			WindowsPerDay: 1, DurationMinutes: 5,
		},
		Derating: consumption.Derating{TemperaturePct: 85, AgingPct: 90, VoltagePct: 85},
	}
}

func TestSynthesize_OneSamplePerSecond(t *testing.T) {
	tl, err := Synthesize(fullConfig(), nil)
	require.NoError(t, err)
	require.Len(t, tl.Samples, 24*3600)
	assert.Equal(t, 24.0, tl.Hours)
}

func TestSynthesize_IntegralMatchesAggregate(t *testing.T) {
	cfg := fullConfig()
	agg, err := consumption.Calculate(cfg)
	require.NoError(t, err)

	tl, err := Synthesize(cfg, agg)
	require.NoError(t, err)

	require.InEpsilon(t, agg.RawTotalMWh, tl.EnergyMWh(), 1e-9,
		"series must integrate back to the pre-derating total")
	require.InEpsilon(t, agg.RawTotalMWh/24, tl.AverageMW(), 1e-9)
	t.Logf("aggregate=%.6fmWh integral=%.6fmWh", agg.RawTotalMWh, tl.EnergyMWh())
}

func TestSynthesize_NilAggregateRecomputes(t *testing.T) {
	cfg := fullConfig()

	fromNil, err := Synthesize(cfg, nil)
	require.NoError(t, err)

	agg, err := consumption.Calculate(cfg)
	require.NoError(t, err)
	fromAgg, err := Synthesize(cfg, agg)
	require.NoError(t, err)

	require.Equal(t, fromAgg.Samples, fromNil.Samples)
}

func TestSynthesize_CellularSpikeShape(t *testing.T) {
	cfg := consumption.Config{
		Hours: 24,
		Cellular: consumption.CellularConfig{
			Enabled: true, ActivePowerMW: 500, SessionsPerDay: 1, DurationMinutes: 10,
		},
		Derating: consumption.Derating{TemperaturePct: 100, AgingPct: 100, VoltagePct: 100},
	}

	tl, err := Synthesize(cfg, nil)
	require.NoError(t, err)

	// startup ramp for the first five seconds, then the transmit window,
	// then silence
	assert.InDelta(t, 600.0, tl.Samples[0], 1e-9)
	assert.InDelta(t, 600.0, tl.Samples[4], 1e-9)
	assert.InDelta(t, 500.0, tl.Samples[5], 1e-9)
	assert.InDelta(t, 500.0, tl.Samples[604], 1e-9)
	assert.Zero(t, tl.Samples[605])
	assert.Zero(t, tl.Samples[43200])
}

func TestSynthesize_GPSAcquisitionAtStart(t *testing.T) {
	cfg := consumption.Config{
		Hours: 24,
		GPS: consumption.GPSConfig{
			Enabled: true, ActivePowerMW: 20, FrequencyPerHour: 6, DurationSeconds: 30,
		},
		Derating: consumption.Derating{TemperaturePct: 100, AgingPct: 100, VoltagePct: 100},
	}

	tl, err := Synthesize(cfg, nil)
	require.NoError(t, err)

	// cold start at the acquisition level, later fixes at tracking level
	assert.InDelta(t, 25.0, tl.Samples[0], 1e-9)
	assert.InDelta(t, 25.0, tl.Samples[29], 1e-9)
	assert.Zero(t, tl.Samples[30])
	assert.InDelta(t, 20.0, tl.Samples[600], 1e-9, "second fix starts at the 600s interval")
	assert.InDelta(t, 20.0, tl.Samples[629], 1e-9)
	assert.Zero(t, tl.Samples[630])
}

func TestSynthesize_MeshListenFloor(t *testing.T) {
	cfg := consumption.Config{
		Hours: 24,
		Mesh: consumption.MeshConfig{
			Enabled: true, ActivePowerMW: 100, Rate: 1, Unit: consumption.PerHour,
			DurationSeconds: 5, ListenEnabled: true, RxDutyCycle: 0.1,
		},
		Derating: consumption.Derating{TemperaturePct: 100, AgingPct: 100, VoltagePct: 100},
	}

	tl, err := Synthesize(cfg, nil)
	require.NoError(t, err)

	floor := 0.0015*0.9 + 10.0*0.1
	// between bursts only the blended listen/sleep floor remains
	assert.InDelta(t, floor, tl.Samples[1800], 1e-9)
	// during a burst the transmit delta rides on the floor
	assert.InDelta(t, floor+(100-0.0015), tl.Samples[0], 1e-9)
}

func TestSynthesize_EmptyHorizonRejected(t *testing.T) {
	cfg := fullConfig()
	cfg.Hours = 1e-6

	_, err := Synthesize(cfg, nil)
	require.ErrorIs(t, err, ErrNoHorizon)
}

func TestSynthesize_InvalidConfigPropagates(t *testing.T) {
	cfg := fullConfig()
	cfg.Mesh.RxDutyCycle = 1.0 // listen full-time plus transmit cannot fit

	_, err := Synthesize(cfg, nil)
	require.ErrorIs(t, err, consumption.ErrInvalidDutyCycle)
}

func TestDownsample_Lengths(t *testing.T) {
	tl, err := Synthesize(fullConfig(), nil)
	require.NoError(t, err)

	assert.Len(t, tl.MinutelyMW(), 1440)
	assert.Len(t, tl.HourlyMW(), 24)
}

func TestDownsample_PreservesAverage(t *testing.T) {
	tl := &Timeline{Hours: 1, Samples: []float64{1, 2, 3, 4, 5, 6}}

	want := tl.Stats().AverageMW
	for _, window := range []int{1, 2, 3, 6} {
		down := tl.Downsample(window)
		var sum float64
		for _, v := range down {
			sum += v
		}
		assert.InDelta(t, want, sum/float64(len(down)), 1e-12, "window=%d", window)
	}
}

func TestDownsample_PartialTrailingWindow(t *testing.T) {
	tl := &Timeline{Hours: 1, Samples: []float64{2, 2, 2, 8}}

	down := tl.Downsample(3)
	require.Len(t, down, 2)
	assert.Equal(t, 2.0, down[0])
	assert.Equal(t, 8.0, down[1], "trailing window averages over its own length")
}

func TestStats_PeakMinAverage(t *testing.T) {
	cfg := consumption.Config{
		Hours: 24,
		Cellular: consumption.CellularConfig{
			Enabled: true, ActivePowerMW: 500, SessionsPerDay: 1, DurationMinutes: 10,
		},
		Derating: consumption.Derating{TemperaturePct: 100, AgingPct: 100, VoltagePct: 100},
	}

	tl, err := Synthesize(cfg, nil)
	require.NoError(t, err)

	s := tl.Stats()
	assert.InDelta(t, 600.0, s.PeakMW, 1e-9, "startup spike is the peak")
	assert.Zero(t, s.MinMW)
	assert.InDelta(t, tl.AverageMW(), s.AverageMW, 1e-9)
}

func TestDutyCycle(t *testing.T) {
	cfg := consumption.Config{
		Hours: 24,
		Cellular: consumption.CellularConfig{
			Enabled: true, ActivePowerMW: 500, SessionsPerDay: 1, DurationMinutes: 10,
		},
		Derating: consumption.Derating{TemperaturePct: 100, AgingPct: 100, VoltagePct: 100},
	}

	tl, err := Synthesize(cfg, nil)
	require.NoError(t, err)

	// 5s startup + 600s transmit out of 86400s
	assert.InDelta(t, 605.0/86400, tl.DutyCycle(1), 1e-9)
	assert.Zero(t, tl.DutyCycle(1000))
}
