package consumption

import "github.com/pmm09c/power-graph/pkg/device"

// DefaultHours is the simulation horizon used when Config.Hours is unset.
const DefaultHours = 24.0

// defaults backs the Model fields when a config leaves them nil.
var defaults = device.DefaultCatalog()

// Derating holds the loss percentages applied to the raw energy total.
// Each factor is a 0-100 percentage; the combined efficiency is their
// product after dividing by 100. The engine does not clamp these to the
// UI's recommended ranges.
type Derating struct {
	TemperaturePct float64 `yaml:"temperature_pct"`
	AgingPct       float64 `yaml:"aging_pct"`
	VoltagePct     float64 `yaml:"voltage_pct"`
}

// Efficiency returns the combined derating factor.
func (d Derating) Efficiency() float64 {
	return d.TemperaturePct / 100 * d.AgingPct / 100 * d.VoltagePct / 100
}

// ContinuousSensorConfig describes an always-on sensor instance. When
// enabled it draws ActivePowerMW for the whole horizon; the sleep level is
// carried for reporting but never entered in this model.
type ContinuousSensorConfig struct {
	Name          string  `yaml:"name"`
	Enabled       bool    `yaml:"enabled"`
	ActivePowerMW float64 `yaml:"active_power_mw"`
	SleepPowerMW  float64 `yaml:"sleep_power_mw"`
}

// PolledSensorConfig describes a sensor woken on the shared polling
// schedule of SensorsConfig.
type PolledSensorConfig struct {
	Name          string  `yaml:"name"`
	Enabled       bool    `yaml:"enabled"`
	ActivePowerMW float64 `yaml:"active_power_mw"`
	SleepPowerMW  float64 `yaml:"sleep_power_mw"`
}

// SensorsConfig groups all sensor instances. The base frequency and
// duration apply uniformly to every enabled polled sensor.
type SensorsConfig struct {
	BaseFrequencyPerHour float64 `yaml:"base_frequency_per_hour"`
	BaseDurationSeconds  float64 `yaml:"base_duration_seconds"`

	Continuous []ContinuousSensorConfig `yaml:"continuous"`
	Polled     []PolledSensorConfig     `yaml:"polled"`
}

// GPSConfig describes the positioning schedule. The acquisition constants
// come from the Model (built-in receiver when nil).
type GPSConfig struct {
	Enabled          bool    `yaml:"enabled"`
	ActivePowerMW    float64 `yaml:"active_power_mw"`
	FrequencyPerHour float64 `yaml:"frequency_per_hour"`
	DurationSeconds  float64 `yaml:"duration_seconds"`

	Model *device.PositioningModel `yaml:"-"`
}

func (c GPSConfig) Hardware() *device.PositioningModel {
	if c.Model != nil {
		return c.Model
	}
	return defaults.GPS(device.PositioningGPS)
}

// CellularConfig describes the cellular session schedule. Startup constants
// come from the Model (built-in modem when nil).
type CellularConfig struct {
	Enabled         bool    `yaml:"enabled"`
	ActivePowerMW   float64 `yaml:"active_power_mw"`
	SessionsPerDay  float64 `yaml:"sessions_per_day"`
	DurationMinutes float64 `yaml:"duration_minutes"`

	Model *device.CellularModel `yaml:"-"`
}

func (c CellularConfig) Hardware() *device.CellularModel {
	if c.Model != nil {
		return c.Model
	}
	return defaults.Modem(device.CellularModem)
}

// RateUnit qualifies the mesh message frequency.
type RateUnit string

const (
	PerHour RateUnit = "per_hour"
	PerDay  RateUnit = "per_day"
)

// MeshConfig describes the mesh radio schedule. Receive and sleep power
// come from the Model (built-in radio when nil). RxDutyCycle is the
// fraction of the horizon spent listening and is only consulted when
// ListenEnabled is set.
type MeshConfig struct {
	Enabled         bool     `yaml:"enabled"`
	ActivePowerMW   float64  `yaml:"active_power_mw"`
	Rate            float64  `yaml:"rate"`
	Unit            RateUnit `yaml:"unit"`
	DurationSeconds float64  `yaml:"duration_seconds"`
	ListenEnabled   bool     `yaml:"listen_enabled"`
	RxDutyCycle     float64  `yaml:"rx_duty_cycle"`

	Model *device.MeshRadioModel `yaml:"-"`
}

func (c MeshConfig) Hardware() *device.MeshRadioModel {
	if c.Model != nil {
		return c.Model
	}
	return defaults.Radio(device.MeshLoRa)
}

// rxDuty returns the effective listen duty cycle (zero when not listening).
func (c MeshConfig) rxDuty() float64 {
	if !c.ListenEnabled {
		return 0
	}
	return c.RxDutyCycle
}

// CoprocessorConfig describes the processing-window schedule. Active and
// idle power are mode-selected by the caller; startup constants come from
// the Model (nil disables the startup charge only if no model exists,
// which the built-in default prevents).
type CoprocessorConfig struct {
	Enabled         bool    `yaml:"enabled"`
	ActivePowerMW   float64 `yaml:"active_power_mw"`
	IdlePowerMW     float64 `yaml:"idle_power_mw"`
	WindowsPerDay   float64 `yaml:"windows_per_day"`
	DurationMinutes float64 `yaml:"duration_minutes"`

	Model *device.CoprocessorModel `yaml:"-"`
}

func (c CoprocessorConfig) Hardware() *device.CoprocessorModel {
	if c.Model != nil {
		return c.Model
	}
	return defaults.Coprocessor(device.CoprocJetson)
}

// Config is one complete calculation request. It is passed by value into
// Calculate and never retained; the engine holds no state across requests.
type Config struct {
	Hours float64 `yaml:"hours"`

	Sensors     SensorsConfig     `yaml:"sensors"`
	GPS         GPSConfig         `yaml:"gps"`
	Cellular    CellularConfig    `yaml:"cellular"`
	Mesh        MeshConfig        `yaml:"mesh"`
	Coprocessor CoprocessorConfig `yaml:"coprocessor"`

	Derating Derating `yaml:"derating"`
}

// Horizon returns the simulation window in hours, defaulting to 24.
func (c Config) Horizon() float64 {
	if c.Hours > 0 {
		return c.Hours
	}
	return DefaultHours
}

// SensorDetail is the per-sensor share of SensorsResult.
type SensorDetail struct {
	Mode           device.OperationMode `json:"mode"`
	EnergyMWh      float64              `json:"energy_mwh"`
	AveragePowerMW float64              `json:"average_power_mw"`
}

// SensorsResult is the sensor category total. Saturated reports that the
// polling schedule filled the whole horizon and sleep time clamped to zero.
type SensorsResult struct {
	ContinuousMWh  float64                 `json:"continuous_mwh"`
	PolledMWh      float64                 `json:"polled_mwh"`
	TotalMWh       float64                 `json:"total_mwh"`
	AveragePowerMW float64                 `json:"average_power_mw"`
	Saturated      bool                    `json:"saturated,omitempty"`
	Details        map[string]SensorDetail `json:"details,omitempty"`
}

// GPSResult is the positioning category total.
type GPSResult struct {
	Enabled        bool    `json:"enabled"`
	EnergyMWh      float64 `json:"energy_mwh"`
	AveragePowerMW float64 `json:"average_power_mw"`
	Updates        float64 `json:"updates"`
}

// CellularResult is the cellular category total.
type CellularResult struct {
	Enabled        bool    `json:"enabled"`
	EnergyMWh      float64 `json:"energy_mwh"`
	AveragePowerMW float64 `json:"average_power_mw"`
	Sessions       float64 `json:"sessions"`
}

// MeshResult is the mesh radio category total.
type MeshResult struct {
	Enabled        bool    `json:"enabled"`
	EnergyMWh      float64 `json:"energy_mwh"`
	AveragePowerMW float64 `json:"average_power_mw"`
	Messages       float64 `json:"messages"`
	ListenEnabled  bool    `json:"listen_enabled"`
	RxDutyCycle    float64 `json:"rx_duty_cycle"`
}

// CoprocessorResult is the co-processor category total with the
// startup/active/idle split.
type CoprocessorResult struct {
	Enabled        bool    `json:"enabled"`
	EnergyMWh      float64 `json:"energy_mwh"`
	AveragePowerMW float64 `json:"average_power_mw"`
	StartupMWh     float64 `json:"startup_mwh"`
	ActiveMWh      float64 `json:"active_mwh"`
	IdleMWh        float64 `json:"idle_mwh"`
	Windows        float64 `json:"windows"`
}

// Aggregate is the full calculation result: every category result plus the
// derated system totals. It is returned by value from Calculate and passed
// explicitly to reporting; there is no implicit last-result state.
type Aggregate struct {
	Hours float64 `json:"hours"`

	Sensors     SensorsResult     `json:"sensors"`
	GPS         GPSResult         `json:"gps"`
	Cellular    CellularResult    `json:"cellular"`
	Mesh        MeshResult        `json:"mesh"`
	Coprocessor CoprocessorResult `json:"coprocessor"`

	RawTotalMWh     float64  `json:"raw_total_mwh"`
	Efficiency      float64  `json:"efficiency"`
	DeratedTotalMWh float64  `json:"derated_total_mwh"`
	AveragePowerMW  float64  `json:"average_power_mw"`
	Derating        Derating `json:"-"`
}

// CommunicationsMWh is the combined radio energy (GPS + cellular + mesh).
func (a *Aggregate) CommunicationsMWh() float64 {
	return a.GPS.EnergyMWh + a.Cellular.EnergyMWh + a.Mesh.EnergyMWh
}
