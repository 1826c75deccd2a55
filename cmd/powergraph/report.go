package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pmm09c/power-graph/pkg/battery"
	"github.com/pmm09c/power-graph/pkg/consumption"
	"github.com/pmm09c/power-graph/pkg/timeline"
	"github.com/pmm09c/power-graph/pkg/types"
	"github.com/pmm09c/power-graph/pkg/util"
)

type report struct {
	Aggregate   *consumption.Aggregate `json:"aggregate"`
	Projections []projection           `json:"projections"`
	Sweep       []battery.Projection   `json:"sweep,omitempty"`
	Stats       *timeline.Stats        `json:"stats,omitempty"`
	HourlyMW    []float64              `json:"hourly_mw,omitempty"`
	MinutelyMW  []float64              `json:"-"`
}

type projection struct {
	CapacityWh float64 `json:"capacity_wh"`
	LifeDays   float64 `json:"life_days"`
	Months     float64 `json:"months"`
	Rating     string  `json:"rating"`
}

func projections(capacitiesWh []float64, dailyMWh float64) []projection {
	out := make([]projection, 0, len(capacitiesWh))
	for _, p := range battery.Reference(capacitiesWh, dailyMWh) {
		out = append(out, projection{
			CapacityWh: p.CapacityWh,
			LifeDays:   p.LifeDays,
			Months:     battery.Months(p.LifeDays),
			Rating:     battery.Classify(p.LifeDays).String(),
		})
	}
	return out
}

type componentRow struct {
	name      string
	energyMWh float64
	detail    string
}

func componentRows(agg *consumption.Aggregate) []componentRow {
	var rows []componentRow
	if agg.Sensors.ContinuousMWh > 0 {
		rows = append(rows, componentRow{"continuous sensors", agg.Sensors.ContinuousMWh, ""})
	}
	if agg.Sensors.PolledMWh > 0 {
		rows = append(rows, componentRow{"polled sensors", agg.Sensors.PolledMWh, ""})
	}
	if agg.GPS.Enabled {
		rows = append(rows, componentRow{"gps", agg.GPS.EnergyMWh, fmt.Sprintf("%.0f fixes", agg.GPS.Updates)})
	}
	if agg.Cellular.Enabled {
		rows = append(rows, componentRow{"cellular", agg.Cellular.EnergyMWh, fmt.Sprintf("%.1f sessions", agg.Cellular.Sessions)})
	}
	if agg.Mesh.Enabled {
		rows = append(rows, componentRow{"lora", agg.Mesh.EnergyMWh, fmt.Sprintf("%.0f messages", agg.Mesh.Messages)})
	}
	if agg.Coprocessor.Enabled {
		rows = append(rows, componentRow{"co-processor", agg.Coprocessor.EnergyMWh, fmt.Sprintf("%.1f windows", agg.Coprocessor.Windows)})
	}
	return rows
}

func printReport(w io.Writer, rep *report, pretty bool) {
	agg := rep.Aggregate

	if !pretty {
		fmt.Fprintf(w, "# raw_mwh, derated_mwh, efficiency, avg_mw\n")
		fmt.Fprintf(w, "%.3f, %.3f, %.4f, %.3f\n",
			agg.RawTotalMWh, agg.DeratedTotalMWh, agg.Efficiency, agg.AveragePowerMW)
		for _, p := range rep.Projections {
			fmt.Fprintf(w, "%.1fWh, %.1f days\n", p.CapacityWh, p.LifeDays)
		}
		return
	}

	fmt.Fprintf(w, "Power analysis over %.0fh\n\n", agg.Hours)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPONENT\tENERGY\tAVG POWER\tSHARE\tSCHEDULE")
	fmt.Fprintln(tw, "---------\t------\t---------\t-----\t--------")
	for _, r := range componentRows(agg) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f%%\t%s\n",
			r.name,
			types.MilliwattHours(r.energyMWh).Humanized(),
			types.Milliwatts(r.energyMWh/agg.Hours).Humanized(),
			util.SafeDiv(r.energyMWh, agg.RawTotalMWh)*100,
			r.detail,
		)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "raw total:      %s\n", types.MilliwattHours(agg.RawTotalMWh).Humanized())
	fmt.Fprintf(w, "efficiency:     %.1f%%\n", agg.Efficiency*100)
	fmt.Fprintf(w, "derated total:  %s\n", types.MilliwattHours(agg.DeratedTotalMWh).Humanized())
	fmt.Fprintf(w, "average power:  %s\n", types.Milliwatts(agg.AveragePowerMW).Humanized())

	fmt.Fprintln(w)
	if rep.Stats != nil {
		fmt.Fprintf(w, "power profile:  peak %s, min %s, avg %s\n",
			types.Milliwatts(rep.Stats.PeakMW).Humanized(),
			types.Milliwatts(rep.Stats.MinMW).Humanized(),
			types.Milliwatts(rep.Stats.AverageMW).Humanized(),
		)
	} else {
		fmt.Fprintf(w, "power profile:  unavailable, average %s\n",
			types.Milliwatts(agg.AveragePowerMW).Humanized())
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BATTERY\tLIFE\tMONTHS\tRATING")
	fmt.Fprintln(tw, "-------\t----\t------\t------")
	for _, p := range rep.Projections {
		fmt.Fprintf(tw, "%.1f Wh\t%.1f days\t%.1f\t%s\n", p.CapacityWh, p.LifeDays, p.Months, p.Rating)
	}
	tw.Flush()
}

func writeCSV(path string, rep *report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"minute", "avg_mw"}); err != nil {
		return err
	}
	for i, mw := range rep.MinutelyMW {
		if err := cw.Write([]string{
			strconv.Itoa(i),
			strconv.FormatFloat(mw, 'f', 4, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(path string, rep *report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func writeHTML(path string, rep *report) error {
	var buf bytes.Buffer
	data := struct {
		*report
		EfficiencyPct float64
		Components    []struct {
			Name   string
			Energy string
			Avg    string
		}
	}{report: rep, EfficiencyPct: rep.Aggregate.Efficiency * 100}
	for _, r := range componentRows(rep.Aggregate) {
		data.Components = append(data.Components, struct {
			Name   string
			Energy string
			Avg    string
		}{
			Name:   r.name,
			Energy: types.MilliwattHours(r.energyMWh).Humanized(),
			Avg:    types.Milliwatts(r.energyMWh / rep.Aggregate.Hours).Humanized(),
		})
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Power Profile Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
.small{color:#555}
</style>

<h1>Power Profile Report</h1>

<p class="small">
Raw: {{printf "%.1f" .Aggregate.RawTotalMWh}} mWh &nbsp;|&nbsp;
Derated: {{printf "%.1f" .Aggregate.DeratedTotalMWh}} mWh &nbsp;|&nbsp;
Efficiency: {{printf "%.1f" .EfficiencyPct}}%
</p>

<h2>Components</h2>
<table>
<thead><tr><th>component</th><th>energy</th><th>avg power</th></tr></thead>
<tbody>
{{range .Components}}
<tr><td>{{.Name}}</td><td>{{.Energy}}</td><td>{{.Avg}}</td></tr>
{{end}}
</tbody>
</table>

<h2>Battery Life</h2>
<table>
<thead><tr><th>capacity</th><th>life (days)</th><th>months</th><th>rating</th></tr></thead>
<tbody>
{{range .Projections}}
<tr><td>{{printf "%.1f" .CapacityWh}} Wh</td><td>{{printf "%.1f" .LifeDays}}</td><td>{{printf "%.1f" .Months}}</td><td>{{.Rating}}</td></tr>
{{end}}
</tbody>
</table>

{{if .HourlyMW}}
<h2>Hourly Profile</h2>
<table>
<thead><tr><th>hour</th><th>avg power (mW)</th></tr></thead>
<tbody>
{{range $i, $mw := .HourlyMW}}
<tr><td>{{$i}}</td><td>{{printf "%.2f" $mw}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}
</html>`))
