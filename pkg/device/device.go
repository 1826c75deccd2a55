// Package device holds the hardware reference records used by the power
// simulation: per-part power draw in each operating state plus the timing
// constants of state transitions (startup, acquisition). Records are defined
// once in the built-in catalog and never mutated; a user-supplied YAML
// catalog may overlay or extend the built-ins (see yaml.go).
package device

// OperationMode distinguishes sensors that are powered for the whole horizon
// from sensors that are woken on a polling schedule.
type OperationMode string

const (
	Continuous OperationMode = "continuous"
	Polled     OperationMode = "polled"
)

// SensorPowerMode selects one of the two power profiles a sensor exposes.
type SensorPowerMode string

const (
	SensorTypical  SensorPowerMode = "typical"
	SensorLowPower SensorPowerMode = "low_power"
)

// CoprocessorPowerMode selects a co-processor power profile.
type CoprocessorPowerMode string

const (
	CoprocTypical CoprocessorPowerMode = "typical"
	CoprocMax     CoprocessorPowerMode = "max"
)

// PowerPair is an active/sleep (or active/idle) draw pair in mW.
type PowerPair struct {
	ActiveMW float64 `yaml:"active_mw"`
	SleepMW  float64 `yaml:"sleep_mw"`
}

// SensorModel describes one sensor part.
type SensorModel struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Mode        OperationMode `yaml:"mode"`

	Typical  PowerPair `yaml:"typical"`
	LowPower PowerPair `yaml:"low_power"`

	// SamplingHz is informational for continuous sensors (rate per power
	// mode); it does not enter the energy model.
	SamplingHz map[SensorPowerMode]float64 `yaml:"sampling_hz,omitempty"`

	// MinSamplingPeriodS bounds how fast a polled sensor can be sampled.
	MinSamplingPeriodS float64 `yaml:"min_sampling_period_s,omitempty"`
}

// Powers returns the active/sleep pair for the requested power mode,
// falling back to the typical pair for unknown modes.
func (m *SensorModel) Powers(mode SensorPowerMode) PowerPair {
	if mode == SensorLowPower {
		return m.LowPower
	}
	return m.Typical
}

// PositioningModel describes a GNSS receiver. A cold-start fix costs the
// acquisition power for the acquisition duration once; routine fixes draw
// the tracking power for the configured fix duration.
type PositioningModel struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	AcquisitionMW float64 `yaml:"acquisition_mw"`
	AcquisitionS  float64 `yaml:"acquisition_s"`
	TrackingMW    float64 `yaml:"tracking_mw"`
	TrackingS     float64 `yaml:"tracking_s"`

	DefaultFixesPerHour float64 `yaml:"default_fixes_per_hour"`
	DefaultFixS         float64 `yaml:"default_fix_s"`
}

// CellularModel describes a cellular modem. Each session pays the startup
// cost before transmitting at the active power.
type CellularModel struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	StartupMW   float64 `yaml:"startup_mw"`
	StartupS    float64 `yaml:"startup_s"`
	ActiveMW    float64 `yaml:"active_mw"`
	MinSessionS float64 `yaml:"min_session_s"`
	IdleMW      float64 `yaml:"idle_mw"`

	DefaultSessionsPerDay float64 `yaml:"default_sessions_per_day"`
	DefaultSessionMin     float64 `yaml:"default_session_min"`
}

// MeshRadioModel describes a LoRa-class mesh radio.
type MeshRadioModel struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	TxMW    float64 `yaml:"tx_mw"`
	TxS     float64 `yaml:"tx_s"` // typical message duration
	RxMW    float64 `yaml:"rx_mw"`
	SleepMW float64 `yaml:"sleep_mw"`

	DefaultMessagesPerHour float64 `yaml:"default_messages_per_hour"`
	DefaultRxDuty          float64 `yaml:"default_rx_duty"`
}

// CoprocessorModel describes a compute co-processor. Startup is always
// charged at the typical active power regardless of the selected power
// mode; that is how the reference hardware behaves during boot.
type CoprocessorModel struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Max     PowerPair `yaml:"max"`
	Typical PowerPair `yaml:"typical"`

	StartupS   float64 `yaml:"startup_s"`
	MinWindowS float64 `yaml:"min_window_s"`
}

// Powers returns the active/idle pair for the requested power mode,
// falling back to typical for unknown modes.
func (m *CoprocessorModel) Powers(mode CoprocessorPowerMode) PowerPair {
	if mode == CoprocMax {
		return m.Max
	}
	return m.Typical
}

// StartupPowerMW is the draw charged during the startup window.
func (m *CoprocessorModel) StartupPowerMW() float64 { return m.Typical.ActiveMW }

// DeratingDefaults are the typical loss percentages for a battery option.
type DeratingDefaults struct {
	TemperaturePct float64 `yaml:"temperature_pct"`
	AgingPct       float64 `yaml:"aging_pct"`
	VoltagePct     float64 `yaml:"voltage_pct"`
}

// BatteryModel describes one battery option.
type BatteryModel struct {
	Name       string           `yaml:"name"`
	CapacityWh float64          `yaml:"capacity_wh"`
	Chemistry  string           `yaml:"chemistry"`
	Derating   DeratingDefaults `yaml:"derating"`
}
