package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmm09c/power-graph/pkg/battery"
	"github.com/pmm09c/power-graph/pkg/consumption"
	"github.com/pmm09c/power-graph/pkg/device"
	"github.com/pmm09c/power-graph/pkg/profile"
	"github.com/pmm09c/power-graph/pkg/timeline"
	"github.com/pmm09c/power-graph/pkg/util"
)

type opts struct {
	// scenario selection
	mode     string
	scenario string
	devices  string
	hours    float64

	// sensors
	magnetometer  bool
	light         bool
	environmental bool
	sensorMode    string
	pollFrequency float64
	pollDuration  float64

	// positioning
	gps          bool
	gpsFrequency float64
	gpsDuration  float64

	// cellular
	cellular     bool
	cellSessions float64
	cellMinutes  float64

	// mesh radio
	lora         bool
	loraRate     float64
	loraUnit     string
	loraDuration float64
	loraListen   bool
	loraDutyPct  float64

	// co-processor
	coproc        bool
	coprocType    string
	coprocMode    string
	coprocWindows float64
	coprocMinutes float64

	// derating
	temperature float64
	aging       float64
	voltage     float64

	// battery projection
	capacities []float64
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
	pretty   bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "powergraph",
		Short: "Battery life estimation for multi-peripheral embedded devices",
		Long: `powergraph simulates the daily power draw of an embedded sensing device
(sensors, GPS, cellular, LoRa, optional compute co-processor) from the
duty-cycle schedule of each component. It reports per-category energy, a
derated daily total, a 24-hour power profile, and projected battery life
across a range of capacities.

Examples:
  powergraph --mode power_save --lora-listen --lora-duty 10
  powergraph --coprocessor --coproc-type jetson-orin-nano --coproc-windows 2
  powergraph --scenario field-trial.yaml --csv profile.csv --html report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o)
		},
	}

	root.Flags().StringVarP(&o.mode, "mode", "m", string(profile.ModeContinuous), "operating mode: continuous, periodic, power_save")
	root.Flags().StringVar(&o.scenario, "scenario", "", "load a full scenario from a YAML file instead of flags")
	root.Flags().StringVar(&o.devices, "devices", "", "overlay a YAML hardware catalog on the built-in parts")
	root.Flags().Float64Var(&o.hours, "hours", consumption.DefaultHours, "simulation horizon in hours")

	root.Flags().BoolVar(&o.magnetometer, "magnetometer", false, "enable the magnetometer")
	root.Flags().BoolVar(&o.light, "light", false, "enable the ambient light sensor")
	root.Flags().BoolVar(&o.environmental, "environmental", false, "enable the environmental sensor")
	root.Flags().StringVar(&o.sensorMode, "sensor-mode", string(device.SensorTypical), "sensor power mode: typical or low_power")
	root.Flags().Float64Var(&o.pollFrequency, "poll-frequency", 60, "polled sensor sampling frequency (times per hour)")
	root.Flags().Float64Var(&o.pollDuration, "poll-duration", 0.1, "polled sensor sampling duration (seconds)")

	root.Flags().BoolVar(&o.gps, "gps", true, "enable the GPS receiver")
	root.Flags().Float64Var(&o.gpsFrequency, "gps-frequency", 6, "position fixes per hour")
	root.Flags().Float64Var(&o.gpsDuration, "gps-duration", 30, "seconds per position fix")

	root.Flags().BoolVar(&o.cellular, "cellular", true, "enable the cellular modem")
	root.Flags().Float64Var(&o.cellSessions, "cell-sessions", 1, "cellular sessions per day")
	root.Flags().Float64Var(&o.cellMinutes, "cell-minutes", 10, "minutes per cellular session")

	root.Flags().BoolVar(&o.lora, "lora", true, "enable the LoRa radio")
	root.Flags().Float64Var(&o.loraRate, "lora-rate", 1, "LoRa message rate")
	root.Flags().StringVar(&o.loraUnit, "lora-unit", string(consumption.PerHour), "LoRa rate unit: per_hour or per_day")
	root.Flags().Float64Var(&o.loraDuration, "lora-duration", 5, "seconds per LoRa message")
	root.Flags().BoolVar(&o.loraListen, "lora-listen", false, "enable LoRa receive mode")
	root.Flags().Float64Var(&o.loraDutyPct, "lora-duty", 10, "LoRa receive duty cycle (percent)")

	root.Flags().BoolVar(&o.coproc, "coprocessor", false, "enable the compute co-processor")
	root.Flags().StringVar(&o.coprocType, "coproc-type", device.CoprocJetson, "co-processor part id")
	root.Flags().StringVar(&o.coprocMode, "coproc-mode", string(device.CoprocTypical), "co-processor power mode: typical or max")
	root.Flags().Float64Var(&o.coprocWindows, "coproc-windows", 1, "processing windows per day")
	root.Flags().Float64Var(&o.coprocMinutes, "coproc-minutes", 5, "minutes per processing window")

	root.Flags().Float64Var(&o.temperature, "temperature", 85, "temperature derating (percent)")
	root.Flags().Float64Var(&o.aging, "aging", 90, "aging factor (percent)")
	root.Flags().Float64Var(&o.voltage, "voltage", 85, "voltage efficiency (percent)")

	root.Flags().Float64SliceVar(&o.capacities, "capacities", []float64{77.0, 100.7}, "reference battery capacities (Wh)")
	root.Flags().Float64Var(&o.sweepMin, "sweep-min", 10, "battery sweep lower bound (Wh)")
	root.Flags().Float64Var(&o.sweepMax, "sweep-max", 150, "battery sweep upper bound (Wh)")
	root.Flags().IntVar(&o.sweepSteps, "sweep-steps", 100, "battery sweep point count")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write the per-minute power profile to a CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write the full report to a JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write the full report to an HTML file")
	root.Flags().BoolVar(&o.pretty, "pretty", true, "format output as aligned tables")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o opts) error {
	cat := device.DefaultCatalog()
	if o.devices != "" {
		var err error
		cat, err = device.LoadCatalog(o.devices)
		if err != nil {
			return err
		}
	}

	cfg, err := buildConfig(cmd, o, cat)
	if err != nil {
		return err
	}

	if cfg.Coprocessor.Enabled {
		perWindow := cfg.Coprocessor.ActivePowerMW * cfg.Coprocessor.DurationMinutes / 60
		if perWindow > 1000 {
			slog.Warn("high co-processor consumption per window, consider a shorter duration",
				"mwh_per_window", fmt.Sprintf("%.0f", perWindow))
		}
	}

	agg, err := consumption.Calculate(cfg)
	if err != nil {
		return err
	}

	// Timeline failure never blocks the scalar results: degrade to the
	// aggregate averages, matching the calculator's reporting contract.
	tl, err := timeline.Synthesize(cfg, agg)
	if err != nil {
		slog.Warn("timeline synthesis failed, reporting averages only", "err", err)
		tl = nil
	}

	rep := buildReport(agg, tl, o)

	printReport(os.Stdout, rep, o.pretty)

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, rep); err != nil {
			return err
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, rep); err != nil {
			return err
		}
	}
	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, rep); err != nil {
			return err
		}
	}
	return nil
}

// buildConfig assembles the calculation request: a scenario file verbatim,
// or the selected mode preset with flag overrides applied on top.
func buildConfig(cmd *cobra.Command, o opts, cat *device.Catalog) (consumption.Config, error) {
	if o.scenario != "" {
		return profile.LoadScenario(o.scenario)
	}

	cfg, err := profile.Build(profile.Mode(o.mode), cat)
	if err != nil {
		return cfg, err
	}
	cfg.Hours = o.hours

	mode := device.SensorPowerMode(o.sensorMode)
	for id, on := range map[string]bool{
		device.SensorMagnetometer:  o.magnetometer,
		device.SensorLight:         o.light,
		device.SensorEnvironmental: o.environmental,
	} {
		if !on {
			continue
		}
		if err := profile.EnableSensor(&cfg, cat, id, mode); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("poll-frequency") {
		cfg.Sensors.BaseFrequencyPerHour = o.pollFrequency
	}
	if cmd.Flags().Changed("poll-duration") {
		cfg.Sensors.BaseDurationSeconds = o.pollDuration
	}

	cfg.GPS.Enabled = o.gps
	cfg.GPS.FrequencyPerHour = o.gpsFrequency
	cfg.GPS.DurationSeconds = o.gpsDuration

	cfg.Cellular.Enabled = o.cellular
	cfg.Cellular.SessionsPerDay = o.cellSessions
	cfg.Cellular.DurationMinutes = o.cellMinutes

	cfg.Mesh.Enabled = o.lora
	cfg.Mesh.Rate = o.loraRate
	cfg.Mesh.Unit = consumption.RateUnit(o.loraUnit)
	cfg.Mesh.DurationSeconds = o.loraDuration
	cfg.Mesh.ListenEnabled = o.loraListen
	cfg.Mesh.RxDutyCycle = util.Clamp01(o.loraDutyPct / 100)

	if o.coproc {
		if err := profile.UseCoprocessor(&cfg, cat, o.coprocType, device.CoprocessorPowerMode(o.coprocMode)); err != nil {
			return cfg, err
		}
		cfg.Coprocessor.WindowsPerDay = o.coprocWindows
		cfg.Coprocessor.DurationMinutes = o.coprocMinutes
	}

	cfg.Derating = consumption.Derating{
		TemperaturePct: o.temperature,
		AgingPct:       o.aging,
		VoltagePct:     o.voltage,
	}
	return cfg, nil
}

func buildReport(agg *consumption.Aggregate, tl *timeline.Timeline, o opts) *report {
	// projections always work in per-day energy, whatever the horizon
	daily := agg.DeratedTotalMWh / agg.Hours * 24
	rep := &report{
		Aggregate:   agg,
		Projections: projections(o.capacities, daily),
		Sweep:       battery.Sweep(o.sweepMin, o.sweepMax, o.sweepSteps, daily),
	}
	if tl != nil {
		stats := tl.Stats()
		rep.Stats = &stats
		rep.HourlyMW = tl.HourlyMW()
		rep.MinutelyMW = tl.MinutelyMW()
	}
	return rep
}
