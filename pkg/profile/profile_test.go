package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmm09c/power-graph/pkg/consumption"
	"github.com/pmm09c/power-graph/pkg/device"
)

func TestModes(t *testing.T) {
	assert.Equal(t, []Mode{ModeContinuous, ModePeriodic, ModePowerSave}, Modes())

	for _, m := range Modes() {
		name, desc, ok := Describe(m)
		assert.True(t, ok, m)
		assert.NotEmpty(t, name, m)
		assert.NotEmpty(t, desc, m)
	}

	_, _, ok := Describe("turbo")
	assert.False(t, ok)
}

func TestBuild_ModePresets(t *testing.T) {
	cases := []struct {
		mode     Mode
		imuMW    float64
		pollFreq float64
	}{
		{ModeContinuous, 0.695, 60},
		{ModePeriodic, 0.29, 12},
		{ModePowerSave, 0.29, 4},
	}

	for _, c := range cases {
		cfg, err := Build(c.mode, nil)
		require.NoError(t, err, c.mode)

		require.Len(t, cfg.Sensors.Continuous, 1, c.mode)
		imu := cfg.Sensors.Continuous[0]
		assert.Equal(t, device.SensorIMU, imu.Name)
		assert.True(t, imu.Enabled)
		assert.Equal(t, c.imuMW, imu.ActivePowerMW, c.mode)
		assert.Equal(t, c.pollFreq, cfg.Sensors.BaseFrequencyPerHour, c.mode)
	}
}

func TestBuild_PolledSensorsPresentButOff(t *testing.T) {
	cfg, err := Build(ModeContinuous, nil)
	require.NoError(t, err)

	require.Len(t, cfg.Sensors.Polled, 3)
	for _, s := range cfg.Sensors.Polled {
		assert.False(t, s.Enabled, s.Name)
		assert.Positive(t, s.ActivePowerMW, s.Name)
	}
}

func TestBuild_RadiosOnDefaultSchedules(t *testing.T) {
	cfg, err := Build(ModePeriodic, nil)
	require.NoError(t, err)

	assert.True(t, cfg.GPS.Enabled)
	assert.Equal(t, 6.0, cfg.GPS.FrequencyPerHour)
	assert.Equal(t, 30.0, cfg.GPS.DurationSeconds)
	assert.Equal(t, 20.0, cfg.GPS.ActivePowerMW)

	assert.True(t, cfg.Cellular.Enabled)
	assert.Equal(t, 1.0, cfg.Cellular.SessionsPerDay)
	assert.Equal(t, 10.0, cfg.Cellular.DurationMinutes)

	assert.True(t, cfg.Mesh.Enabled)
	assert.Equal(t, 1.0, cfg.Mesh.Rate)
	assert.Equal(t, consumption.PerHour, cfg.Mesh.Unit)
	assert.False(t, cfg.Mesh.ListenEnabled)

	assert.False(t, cfg.Coprocessor.Enabled)
}

func TestBuild_DeratingFromStandardBattery(t *testing.T) {
	cfg, err := Build(ModeContinuous, nil)
	require.NoError(t, err)

	assert.Equal(t, 85.0, cfg.Derating.TemperaturePct)
	assert.Equal(t, 90.0, cfg.Derating.AgingPct)
	assert.Equal(t, 85.0, cfg.Derating.VoltagePct)
}

func TestBuild_Calculates(t *testing.T) {
	for _, m := range Modes() {
		cfg, err := Build(m, nil)
		require.NoError(t, err, m)

		agg, err := consumption.Calculate(cfg)
		require.NoError(t, err, m)
		assert.Positive(t, agg.DeratedTotalMWh, m)
		t.Logf("%s: %.1fmWh/day", m, agg.DeratedTotalMWh)
	}
}

func TestBuild_ModeOrderingByConsumption(t *testing.T) {
	totals := make(map[Mode]float64)
	for _, m := range Modes() {
		cfg, err := Build(m, nil)
		require.NoError(t, err)
		agg, err := consumption.Calculate(cfg)
		require.NoError(t, err)
		totals[m] = agg.DeratedTotalMWh
	}

	assert.Greater(t, totals[ModeContinuous], totals[ModePeriodic])
	assert.GreaterOrEqual(t, totals[ModePeriodic], totals[ModePowerSave])
}

func TestBuild_UnknownMode(t *testing.T) {
	_, err := Build("turbo", nil)
	require.Error(t, err)
}

func TestEnableSensor(t *testing.T) {
	cfg, err := Build(ModeContinuous, nil)
	require.NoError(t, err)

	require.NoError(t, EnableSensor(&cfg, nil, device.SensorMagnetometer, device.SensorLowPower))

	var mag *consumption.PolledSensorConfig
	for i := range cfg.Sensors.Polled {
		if cfg.Sensors.Polled[i].Name == device.SensorMagnetometer {
			mag = &cfg.Sensors.Polled[i]
		}
	}
	require.NotNil(t, mag)
	assert.True(t, mag.Enabled)
	assert.Equal(t, 0.5, mag.ActivePowerMW, "low power profile selected")
}

func TestEnableSensor_NewContinuousPart(t *testing.T) {
	cat := device.DefaultCatalog()
	cat.Sensors["mic"] = &device.SensorModel{
		Name: "Microphone", Mode: device.Continuous,
		Typical: device.PowerPair{ActiveMW: 1.2, SleepMW: 0.001},
	}

	cfg, err := Build(ModeContinuous, cat)
	require.NoError(t, err)
	require.NoError(t, EnableSensor(&cfg, cat, "mic", device.SensorTypical))

	require.Len(t, cfg.Sensors.Continuous, 2)
	assert.Equal(t, "mic", cfg.Sensors.Continuous[1].Name)
	assert.Equal(t, 1.2, cfg.Sensors.Continuous[1].ActivePowerMW)
}

func TestEnableSensor_Unknown(t *testing.T) {
	cfg, err := Build(ModeContinuous, nil)
	require.NoError(t, err)
	require.Error(t, EnableSensor(&cfg, nil, "no-such-part", device.SensorTypical))
}

func TestUseCoprocessor(t *testing.T) {
	cfg, err := Build(ModePowerSave, nil)
	require.NoError(t, err)

	require.NoError(t, UseCoprocessor(&cfg, nil, device.CoprocCM4, device.CoprocMax))

	assert.True(t, cfg.Coprocessor.Enabled)
	assert.Equal(t, 7000.0, cfg.Coprocessor.ActivePowerMW)
	assert.Equal(t, 0.0075, cfg.Coprocessor.IdlePowerMW)
	assert.Equal(t, 1.0, cfg.Coprocessor.WindowsPerDay, "schedule untouched")

	require.Error(t, UseCoprocessor(&cfg, nil, "fpga", device.CoprocTypical))
}

func TestScenario_RoundTrip(t *testing.T) {
	cfg, err := Build(ModePeriodic, nil)
	require.NoError(t, err)
	require.NoError(t, EnableSensor(&cfg, nil, device.SensorEnvironmental, device.SensorTypical))
	cfg.Mesh.ListenEnabled = true

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, SaveScenario(path, cfg))

	loaded, err := LoadScenario(path)
	require.NoError(t, err)

	// model pointers are resolved at calculation time, so compare results
	want, err := consumption.Calculate(cfg)
	require.NoError(t, err)
	got, err := consumption.Calculate(loaded)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
