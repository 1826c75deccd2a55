// Package consumption turns per-component duty-cycle configurations into
// daily energy totals. Every calculator is a pure function of its inputs:
// calling one twice with the same config yields identical results, and no
// state survives a call.
//
// All energies are mWh over the configured horizon; average power is
// energy / horizon_hours.
package consumption

import (
	"fmt"

	"github.com/pmm09c/power-graph/pkg/device"
	"github.com/pmm09c/power-graph/pkg/util"
)

// CalculateSensors computes the sensor category total. Continuous sensors
// draw their active power for the entire horizon. Polled sensors share the
// base schedule: active_hours = frequency * duration * hours / 3600, the
// remainder is spent at sleep power. A schedule that fills more than the
// horizon saturates (sleep clamps to zero) and is flagged in the result.
func CalculateSensors(cfg SensorsConfig, hours float64) (SensorsResult, error) {
	res := SensorsResult{Details: make(map[string]SensorDetail)}

	if cfg.BaseFrequencyPerHour < 0 {
		return res, fmt.Errorf("sensors: base frequency %.3f/h: %w", cfg.BaseFrequencyPerHour, ErrInvalidConfig)
	}
	if cfg.BaseDurationSeconds < 0 {
		return res, fmt.Errorf("sensors: base duration %.3fs: %w", cfg.BaseDurationSeconds, ErrInvalidConfig)
	}

	activeHours := cfg.BaseFrequencyPerHour * cfg.BaseDurationSeconds * hours / 3600
	if activeHours > hours {
		activeHours = hours
		res.Saturated = true
	}
	sleepHours := util.NonNeg(hours - activeHours)

	for _, s := range cfg.Continuous {
		if !s.Enabled {
			continue
		}
		if s.ActivePowerMW < 0 {
			return res, fmt.Errorf("sensors: %s active power %.3fmW: %w", s.Name, s.ActivePowerMW, ErrInvalidConfig)
		}
		e := s.ActivePowerMW * hours
		res.ContinuousMWh += e
		res.Details[s.Name] = SensorDetail{
			Mode:           device.Continuous,
			EnergyMWh:      e,
			AveragePowerMW: e / hours,
		}
	}

	for _, s := range cfg.Polled {
		if !s.Enabled {
			continue
		}
		if s.ActivePowerMW < 0 || s.SleepPowerMW < 0 {
			return res, fmt.Errorf("sensors: %s power levels: %w", s.Name, ErrInvalidConfig)
		}
		e := s.ActivePowerMW*activeHours + s.SleepPowerMW*sleepHours
		res.PolledMWh += e
		res.Details[s.Name] = SensorDetail{
			Mode:           device.Polled,
			EnergyMWh:      e,
			AveragePowerMW: e / hours,
		}
	}

	res.TotalMWh = res.ContinuousMWh + res.PolledMWh
	res.AveragePowerMW = res.TotalMWh / hours
	return res, nil
}

// CalculateGPS computes the positioning total. The first fix of the horizon
// is a cold start charged at the model's acquisition power for the
// acquisition duration; every later fix draws the tracking power for the
// configured fix duration. With fewer than one scheduled update only the
// acquisition cost remains.
func CalculateGPS(cfg GPSConfig, hours float64) (GPSResult, error) {
	if !cfg.Enabled {
		return GPSResult{}, nil
	}
	if cfg.FrequencyPerHour < 0 || cfg.DurationSeconds < 0 || cfg.ActivePowerMW < 0 {
		return GPSResult{}, fmt.Errorf("gps: schedule or power is negative: %w", ErrInvalidConfig)
	}
	m := cfg.Hardware()

	updates := cfg.FrequencyPerHour * hours
	acquisition := m.AcquisitionMW * m.AcquisitionS / 3600

	var tracking float64
	if updates > 1 {
		tracking = (updates - 1) * cfg.ActivePowerMW * cfg.DurationSeconds / 3600
	}

	e := acquisition + tracking
	return GPSResult{
		Enabled:        true,
		EnergyMWh:      e,
		AveragePowerMW: e / hours,
		Updates:        updates,
	}, nil
}

// CalculateCellular computes the cellular total. Each session pays the
// model's startup cost plus the active transmit power for the session
// duration. Sessions scale linearly with the horizon.
func CalculateCellular(cfg CellularConfig, hours float64) (CellularResult, error) {
	if !cfg.Enabled {
		return CellularResult{}, nil
	}
	if cfg.SessionsPerDay < 0 || cfg.DurationMinutes < 0 || cfg.ActivePowerMW < 0 {
		return CellularResult{}, fmt.Errorf("cellular: schedule or power is negative: %w", ErrInvalidConfig)
	}
	m := cfg.Hardware()

	sessions := cfg.SessionsPerDay * (hours / 24)
	startup := sessions * m.StartupMW * m.StartupS / 3600
	active := sessions * cfg.ActivePowerMW * cfg.DurationMinutes * 60 / 3600

	e := startup + active
	return CellularResult{
		Enabled:        true,
		EnergyMWh:      e,
		AveragePowerMW: e / hours,
		Sessions:       sessions,
	}, nil
}

// CalculateMesh computes the mesh radio total: transmit energy for the
// scheduled messages, receive energy for the listen duty cycle, and sleep
// power for all remaining time. A schedule whose transmit plus listen time
// exceeds the horizon is rejected rather than producing negative sleep
// energy.
func CalculateMesh(cfg MeshConfig, hours float64) (MeshResult, error) {
	if !cfg.Enabled {
		return MeshResult{}, nil
	}
	if cfg.Rate < 0 || cfg.DurationSeconds < 0 || cfg.ActivePowerMW < 0 {
		return MeshResult{}, fmt.Errorf("mesh: schedule or power is negative: %w", ErrInvalidConfig)
	}
	duty := cfg.rxDuty()
	if duty < 0 || duty > 1 {
		return MeshResult{}, fmt.Errorf("mesh: rx duty cycle %.3f outside [0,1]: %w", duty, ErrInvalidConfig)
	}
	m := cfg.Hardware()

	var messages float64
	switch cfg.Unit {
	case PerHour, "":
		messages = cfg.Rate * hours
	case PerDay:
		messages = cfg.Rate * hours / 24
	default:
		return MeshResult{}, fmt.Errorf("mesh: rate unit %q: %w", cfg.Unit, ErrInvalidConfig)
	}

	horizonS := hours * 3600
	txSeconds := messages * cfg.DurationSeconds
	rxSeconds := horizonS * duty
	sleepSeconds := horizonS - txSeconds - rxSeconds
	if sleepSeconds < 0 {
		return MeshResult{}, fmt.Errorf("mesh: %.0fs tx + %.0fs rx exceeds %.0fs horizon: %w",
			txSeconds, rxSeconds, horizonS, ErrInvalidDutyCycle)
	}

	txEnergy := messages * cfg.ActivePowerMW * cfg.DurationSeconds / 3600
	rxEnergy := m.RxMW * rxSeconds / 3600
	sleepEnergy := m.SleepMW * sleepSeconds / 3600

	e := txEnergy + rxEnergy + sleepEnergy
	return MeshResult{
		Enabled:        true,
		EnergyMWh:      e,
		AveragePowerMW: e / hours,
		Messages:       messages,
		ListenEnabled:  cfg.ListenEnabled,
		RxDutyCycle:    duty,
	}, nil
}

// CalculateCoprocessor computes the co-processor total. Each processing
// window pays a startup charge at the model's fixed startup power level
// (not the selected mode's active power), then the active power for the
// window duration; all remaining time draws the idle power. A schedule
// whose startup plus active time exceeds the horizon is rejected.
func CalculateCoprocessor(cfg CoprocessorConfig, hours float64) (CoprocessorResult, error) {
	if !cfg.Enabled {
		return CoprocessorResult{}, nil
	}
	if cfg.WindowsPerDay < 0 || cfg.DurationMinutes < 0 || cfg.ActivePowerMW < 0 || cfg.IdlePowerMW < 0 {
		return CoprocessorResult{}, fmt.Errorf("coprocessor: schedule or power is negative: %w", ErrInvalidConfig)
	}
	m := cfg.Hardware()

	windows := cfg.WindowsPerDay * (hours / 24)
	startupHours := m.StartupS / 3600 * windows
	activeHours := cfg.DurationMinutes * windows / 60
	idleHours := hours - activeHours - startupHours
	if idleHours < 0 {
		return CoprocessorResult{}, fmt.Errorf("coprocessor: %.2fh active + %.2fh startup exceeds %.2fh horizon: %w",
			activeHours, startupHours, hours, ErrInvalidDutyCycle)
	}

	startupEnergy := m.StartupPowerMW() * startupHours
	activeEnergy := cfg.ActivePowerMW * activeHours
	idleEnergy := cfg.IdlePowerMW * idleHours

	e := startupEnergy + activeEnergy + idleEnergy
	return CoprocessorResult{
		Enabled:        true,
		EnergyMWh:      e,
		AveragePowerMW: e / hours,
		StartupMWh:     startupEnergy,
		ActiveMWh:      activeEnergy,
		IdleMWh:        idleEnergy,
		Windows:        windows,
	}, nil
}

// Calculate runs every category calculator over the configured horizon,
// sums the raw total, and applies the combined derating factor. It fails
// with ErrZeroEfficiency when the factors multiply to zero; the caller
// keeps no partial result in that case.
func Calculate(cfg Config) (*Aggregate, error) {
	hours := cfg.Horizon()

	sensors, err := CalculateSensors(cfg.Sensors, hours)
	if err != nil {
		return nil, err
	}
	gps, err := CalculateGPS(cfg.GPS, hours)
	if err != nil {
		return nil, err
	}
	cellular, err := CalculateCellular(cfg.Cellular, hours)
	if err != nil {
		return nil, err
	}
	mesh, err := CalculateMesh(cfg.Mesh, hours)
	if err != nil {
		return nil, err
	}
	coproc, err := CalculateCoprocessor(cfg.Coprocessor, hours)
	if err != nil {
		return nil, err
	}

	d := cfg.Derating
	if d.TemperaturePct < 0 || d.AgingPct < 0 || d.VoltagePct < 0 {
		return nil, fmt.Errorf("derating: negative factor: %w", ErrInvalidConfig)
	}
	efficiency := d.Efficiency()
	if efficiency == 0 {
		return nil, fmt.Errorf("derating: %.0f%% x %.0f%% x %.0f%%: %w",
			d.TemperaturePct, d.AgingPct, d.VoltagePct, ErrZeroEfficiency)
	}

	raw := sensors.TotalMWh + gps.EnergyMWh + cellular.EnergyMWh + mesh.EnergyMWh + coproc.EnergyMWh
	derated := raw / efficiency

	return &Aggregate{
		Hours:           hours,
		Sensors:         sensors,
		GPS:             gps,
		Cellular:        cellular,
		Mesh:            mesh,
		Coprocessor:     coproc,
		RawTotalMWh:     raw,
		Efficiency:      efficiency,
		DeratedTotalMWh: derated,
		AveragePowerMW:  derated / hours,
		Derating:        d,
	}, nil
}
