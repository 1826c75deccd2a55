// Package profile bundles named operating modes into complete calculation
// configs, and loads/saves scenario files. Presets mirror the reference
// deployments: the IMU is always on, polled sensors are opt-in, and all
// radios run their default schedules.
package profile

import (
	"fmt"

	"github.com/pmm09c/power-graph/pkg/consumption"
	"github.com/pmm09c/power-graph/pkg/device"
)

// Mode names a system operating mode.
type Mode string

const (
	ModeContinuous Mode = "continuous" // IMU typical, frequent polling
	ModePeriodic   Mode = "periodic"   // IMU low power, reduced polling
	ModePowerSave  Mode = "power_save" // IMU low power, minimal polling
)

type preset struct {
	Name           string
	Description    string
	IMUMode        device.SensorPowerMode
	PollingPerHour float64
}

var presets = map[Mode]preset{
	ModeContinuous: {
		Name:           "Continuous Monitoring",
		Description:    "IMU always active, frequent sensor polling",
		IMUMode:        device.SensorTypical,
		PollingPerHour: 60,
	},
	ModePeriodic: {
		Name:           "Periodic Monitoring",
		Description:    "IMU always active, reduced sensor polling",
		IMUMode:        device.SensorLowPower,
		PollingPerHour: 12,
	},
	ModePowerSave: {
		Name:           "Power Save",
		Description:    "IMU in low power, minimal sensor polling",
		IMUMode:        device.SensorLowPower,
		PollingPerHour: 4,
	},
}

// Modes lists the available operating modes.
func Modes() []Mode { return []Mode{ModeContinuous, ModePeriodic, ModePowerSave} }

// Describe returns the display name and description of a mode.
func Describe(m Mode) (name, description string, ok bool) {
	p, ok := presets[m]
	return p.Name, p.Description, ok
}

// Build assembles the default configuration for an operating mode from the
// given catalog (built-ins when nil). The IMU is enabled in the mode's
// power profile, polled sensors are present but disabled, radios are
// enabled on their default schedules, and the co-processor is off.
// Sensor entries are named by their catalog id.
func Build(m Mode, cat *device.Catalog) (consumption.Config, error) {
	p, ok := presets[m]
	if !ok {
		return consumption.Config{}, fmt.Errorf("profile: unknown mode %q", m)
	}
	if cat == nil {
		cat = device.DefaultCatalog()
	}

	var cfg consumption.Config
	cfg.Hours = consumption.DefaultHours

	imu := cat.Sensor(device.SensorIMU)
	imuPowers := imu.Powers(p.IMUMode)
	cfg.Sensors = consumption.SensorsConfig{
		BaseFrequencyPerHour: p.PollingPerHour,
		BaseDurationSeconds:  0.1,
		Continuous: []consumption.ContinuousSensorConfig{{
			Name:          device.SensorIMU,
			Enabled:       true,
			ActivePowerMW: imuPowers.ActiveMW,
			SleepPowerMW:  imuPowers.SleepMW,
		}},
	}
	for _, id := range []string{device.SensorMagnetometer, device.SensorLight, device.SensorEnvironmental} {
		s := cat.Sensor(id)
		cfg.Sensors.Polled = append(cfg.Sensors.Polled, consumption.PolledSensorConfig{
			Name:          id,
			Enabled:       false,
			ActivePowerMW: s.Typical.ActiveMW,
			SleepPowerMW:  s.Typical.SleepMW,
		})
	}

	gps := cat.GPS(device.PositioningGPS)
	cfg.GPS = consumption.GPSConfig{
		Enabled:          true,
		ActivePowerMW:    gps.TrackingMW,
		FrequencyPerHour: gps.DefaultFixesPerHour,
		DurationSeconds:  gps.DefaultFixS,
		Model:            gps,
	}

	modem := cat.Modem(device.CellularModem)
	cfg.Cellular = consumption.CellularConfig{
		Enabled:         true,
		ActivePowerMW:   modem.ActiveMW,
		SessionsPerDay:  modem.DefaultSessionsPerDay,
		DurationMinutes: modem.DefaultSessionMin,
		Model:           modem,
	}

	radio := cat.Radio(device.MeshLoRa)
	cfg.Mesh = consumption.MeshConfig{
		Enabled:         true,
		ActivePowerMW:   radio.TxMW,
		Rate:            radio.DefaultMessagesPerHour,
		Unit:            consumption.PerHour,
		DurationSeconds: radio.TxS,
		ListenEnabled:   false,
		RxDutyCycle:     radio.DefaultRxDuty,
		Model:           radio,
	}

	cfg.Coprocessor = consumption.CoprocessorConfig{
		Enabled:         false,
		WindowsPerDay:   1,
		DurationMinutes: 5,
	}

	std := cat.Battery(device.BatteryStandard)
	cfg.Derating = consumption.Derating{
		TemperaturePct: std.Derating.TemperaturePct,
		AgingPct:       std.Derating.AgingPct,
		VoltagePct:     std.Derating.VoltagePct,
	}

	return cfg, nil
}

// EnableSensor switches on the sensor with the given catalog id in the
// requested power mode.
func EnableSensor(cfg *consumption.Config, cat *device.Catalog, id string, mode device.SensorPowerMode) error {
	if cat == nil {
		cat = device.DefaultCatalog()
	}
	m := cat.Sensor(id)
	if m == nil {
		return fmt.Errorf("profile: unknown sensor %q", id)
	}
	powers := m.Powers(mode)

	if m.Mode == device.Continuous {
		for i := range cfg.Sensors.Continuous {
			if cfg.Sensors.Continuous[i].Name == id {
				cfg.Sensors.Continuous[i].Enabled = true
				cfg.Sensors.Continuous[i].ActivePowerMW = powers.ActiveMW
				cfg.Sensors.Continuous[i].SleepPowerMW = powers.SleepMW
				return nil
			}
		}
		cfg.Sensors.Continuous = append(cfg.Sensors.Continuous, consumption.ContinuousSensorConfig{
			Name: id, Enabled: true, ActivePowerMW: powers.ActiveMW, SleepPowerMW: powers.SleepMW,
		})
		return nil
	}

	for i := range cfg.Sensors.Polled {
		if cfg.Sensors.Polled[i].Name == id {
			cfg.Sensors.Polled[i].Enabled = true
			cfg.Sensors.Polled[i].ActivePowerMW = powers.ActiveMW
			cfg.Sensors.Polled[i].SleepPowerMW = powers.SleepMW
			return nil
		}
	}
	cfg.Sensors.Polled = append(cfg.Sensors.Polled, consumption.PolledSensorConfig{
		Name: id, Enabled: true, ActivePowerMW: powers.ActiveMW, SleepPowerMW: powers.SleepMW,
	})
	return nil
}

// UseCoprocessor enables the co-processor with the given catalog id in the
// requested power mode, keeping the schedule already in cfg.
func UseCoprocessor(cfg *consumption.Config, cat *device.Catalog, id string, mode device.CoprocessorPowerMode) error {
	if cat == nil {
		cat = device.DefaultCatalog()
	}
	m := cat.Coprocessor(id)
	if m == nil {
		return fmt.Errorf("profile: unknown coprocessor %q", id)
	}
	powers := m.Powers(mode)
	cfg.Coprocessor.Enabled = true
	cfg.Coprocessor.ActivePowerMW = powers.ActiveMW
	cfg.Coprocessor.IdlePowerMW = powers.SleepMW
	cfg.Coprocessor.Model = m
	return nil
}
