package device

import "sort"

// Catalog is a set of hardware records keyed by part id. The zero value is
// empty; DefaultCatalog returns the built-in parts.
type Catalog struct {
	Sensors      map[string]*SensorModel      `yaml:"sensors"`
	Positioning  map[string]*PositioningModel `yaml:"positioning"`
	Cellular     map[string]*CellularModel    `yaml:"cellular"`
	Mesh         map[string]*MeshRadioModel   `yaml:"mesh"`
	Coprocessors map[string]*CoprocessorModel `yaml:"coprocessors"`
	Batteries    map[string]*BatteryModel     `yaml:"batteries"`
}

// Built-in part ids.
const (
	SensorIMU           = "lsm6dsv"
	SensorMagnetometer  = "mmc5983ma"
	SensorLight         = "tsl2591"
	SensorEnvironmental = "bme280"

	PositioningGPS = "max-m10s"
	CellularModem  = "eg25-g"
	MeshLoRa       = "llcc68"

	CoprocJetson = "jetson-orin-nano"
	CoprocCM4    = "rpi-cm4"

	BatteryStandard = "standard"
	BatteryExtended = "extended"
)

// DefaultCatalog returns a fresh catalog of the built-in hardware records.
// The returned maps are owned by the caller; mutating them does not affect
// other catalogs.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Sensors: map[string]*SensorModel{
			SensorIMU: {
				Name:        "LSM6DSV (IMU)",
				Description: "Always-on motion sensing",
				Mode:        Continuous,
				Typical:     PowerPair{ActiveMW: 0.695, SleepMW: 0.0015},
				LowPower:    PowerPair{ActiveMW: 0.29, SleepMW: 0.0015},
				SamplingHz: map[SensorPowerMode]float64{
					SensorTypical:  104,
					SensorLowPower: 52,
				},
			},
			SensorMagnetometer: {
				Name:               "MMC5983MA (Magnetometer)",
				Description:        "Magnetic field sensing",
				Mode:               Polled,
				Typical:            PowerPair{ActiveMW: 1.0, SleepMW: 0.002},
				LowPower:           PowerPair{ActiveMW: 0.5, SleepMW: 0.002},
				MinSamplingPeriodS: 0.1,
			},
			SensorLight: {
				Name:               "TSL2591 (Light)",
				Description:        "Ambient light sensing",
				Mode:               Polled,
				Typical:            PowerPair{ActiveMW: 0.74, SleepMW: 0.0024},
				LowPower:           PowerPair{ActiveMW: 0.37, SleepMW: 0.0024},
				MinSamplingPeriodS: 0.1,
			},
			SensorEnvironmental: {
				Name:               "BME280 (Environmental)",
				Description:        "Temperature, humidity, pressure",
				Mode:               Polled,
				Typical:            PowerPair{ActiveMW: 0.714, SleepMW: 0.0024},
				LowPower:           PowerPair{ActiveMW: 0.35, SleepMW: 0.0024},
				MinSamplingPeriodS: 0.1,
			},
		},
		Positioning: map[string]*PositioningModel{
			PositioningGPS: {
				Name:                "MAX-M10S GPS",
				Description:         "Position tracking",
				AcquisitionMW:       25.0,
				AcquisitionS:        30.0,
				TrackingMW:          20.0,
				TrackingS:           5.0,
				DefaultFixesPerHour: 6.0,
				DefaultFixS:         30.0,
			},
		},
		Cellular: map[string]*CellularModel{
			CellularModem: {
				Name:                  "EG25-G Cellular",
				Description:           "Cellular communication",
				StartupMW:             600.0,
				StartupS:              5.0,
				ActiveMW:              500.0,
				MinSessionS:           60.0,
				IdleMW:                100.0,
				DefaultSessionsPerDay: 1,
				DefaultSessionMin:     10,
			},
		},
		Mesh: map[string]*MeshRadioModel{
			MeshLoRa: {
				Name:                   "LLCC68 LoRa",
				Description:            "Long-range mesh communication",
				TxMW:                   100.0,
				TxS:                    5.0,
				RxMW:                   10.0,
				SleepMW:                0.0015,
				DefaultMessagesPerHour: 1,
				DefaultRxDuty:          0.1,
			},
		},
		Coprocessors: map[string]*CoprocessorModel{
			CoprocJetson: {
				Name:        "NVIDIA Jetson Orin Nano",
				Description: "AI/ML processing",
				Max:         PowerPair{ActiveMW: 14000.0, SleepMW: 400.0},
				Typical:     PowerPair{ActiveMW: 7000.0, SleepMW: 400.0},
				StartupS:    30,
				MinWindowS:  60,
			},
			CoprocCM4: {
				Name:        "Raspberry Pi Compute Module 4",
				Description: "General processing",
				Max:         PowerPair{ActiveMW: 7000.0, SleepMW: 0.0075},
				Typical:     PowerPair{ActiveMW: 4000.0, SleepMW: 0.0075},
				StartupS:    20,
				MinWindowS:  30,
			},
		},
		Batteries: map[string]*BatteryModel{
			BatteryStandard: {
				Name:       "77Wh Battery",
				CapacityWh: 77.0,
				Chemistry:  "Li-ion",
				Derating:   DeratingDefaults{TemperaturePct: 85, AgingPct: 90, VoltagePct: 85},
			},
			BatteryExtended: {
				Name:       "100.7Wh Battery",
				CapacityWh: 100.7,
				Chemistry:  "Li-ion",
				Derating:   DeratingDefaults{TemperaturePct: 85, AgingPct: 90, VoltagePct: 85},
			},
		},
	}
}

// Sensor returns the sensor record for id, or nil.
func (c *Catalog) Sensor(id string) *SensorModel { return c.Sensors[id] }

// GPS returns the positioning record for id, or nil.
func (c *Catalog) GPS(id string) *PositioningModel { return c.Positioning[id] }

// Modem returns the cellular record for id, or nil.
func (c *Catalog) Modem(id string) *CellularModel { return c.Cellular[id] }

// Radio returns the mesh radio record for id, or nil.
func (c *Catalog) Radio(id string) *MeshRadioModel { return c.Mesh[id] }

// Coprocessor returns the co-processor record for id, or nil.
func (c *Catalog) Coprocessor(id string) *CoprocessorModel { return c.Coprocessors[id] }

// Battery returns the battery record for id, or nil.
func (c *Catalog) Battery(id string) *BatteryModel { return c.Batteries[id] }

// SensorIDs returns the sensor ids in sorted order.
func (c *Catalog) SensorIDs() []string { return sortedKeys(c.Sensors) }

// CoprocessorIDs returns the co-processor ids in sorted order.
func (c *Catalog) CoprocessorIDs() []string { return sortedKeys(c.Coprocessors) }

// BatteryIDs returns the battery ids in sorted order.
func (c *Catalog) BatteryIDs() []string { return sortedKeys(c.Batteries) }

// ReferenceCapacitiesWh returns the capacities of all battery options in
// ascending order, for projection tables.
func (c *Catalog) ReferenceCapacitiesWh() []float64 {
	caps := make([]float64, 0, len(c.Batteries))
	for _, b := range c.Batteries {
		caps = append(caps, b.CapacityWh)
	}
	sort.Float64s(caps)
	return caps
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
