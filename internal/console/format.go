// Package console renders calibration cycles, summaries and the run header
// as human-readable text.
package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/mjd"
	"github.com/chrissnell/humifix/pkg/stats"
)

// Rule closes every multi-line block
const Rule = "====================================================================="

const timeLayout = "2006-01-02 15:04"

// Signed formats a signed humidity error with an explicit sign and two
// decimals. Every display of humidity errors goes through here.
func Signed(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%+.2f", v)
}

// Header renders the block describing a run
func Header(program, version string, run *types.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, version %s\n", program, version)
	fmt.Fprintf(&sb, "Run id: %s\n", run.ID)
	fmt.Fprintf(&sb, "User comment: %s\n", run.Comment)
	fmt.Fprintf(&sb, "Fixed point solution: %s\n", run.Salt)
	fmt.Fprintf(&sb, "Averaging interval %d min\n", run.IntervalMinutes)
	fmt.Fprintf(&sb, "Discard first %d values (%d min)\n", run.DiscardFirst, run.IntervalMinutes*run.DiscardFirst)
	fmt.Fprintf(&sb, "Summarize every %s h\n", formatHours(run.SummaryHours))
	fmt.Fprintf(&sb, "Data file %s\n", run.DataFile)
	fmt.Fprintf(&sb, "Summary file %s\n", run.SummaryFile)
	fmt.Fprintf(&sb, "%d transmitter(s)\n", len(run.Transmitters))
	for i, t := range run.Transmitters {
		fmt.Fprintf(&sb, "- Sensor#%d: %s (%s)\n", i+1, t.Name, t.Identification)
	}
	sb.WriteString(Rule)
	return sb.String()
}

// CycleLine renders a cycle as a single line; discarded cycles are flagged
func CycleLine(c *calibration.Cycle, discarded bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %.2f(%.2f) °C > %.1f %%",
		c.Timestamp().Format(timeLayout), c.EnsembleTemperature(), c.EnsembleTemperatureRange(), c.TrueHumidity())
	for i, e := range c.HumidityErrors() {
		fmt.Fprintf(&sb, "  Sensor#%d: %s %%", i+1, Signed(e))
	}
	if discarded {
		sb.WriteString("  discarded!")
	}
	return sb.String()
}

// Report renders a summary report as a multi-line block ending in Rule
func Report(r summary.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Timestamp: %s (MJD: %.5f)\n", r.LastCycle.UTC().Format(timeLayout), mjd.FromTime(r.LastCycle))
	fmt.Fprintf(&sb, "n = %d\n", r.SampleCount)
	fmt.Fprintf(&sb, "t_ensemble = %s °C\n", spread(r.EnsembleTemperature, 3))
	fmt.Fprintf(&sb, "t_spread = %.3f °C\n", r.TemperatureSpread.Mean)
	fmt.Fprintf(&sb, "h_true = %.2f %%\n", r.TrueHumidity.Mean)
	for i, t := range r.Transmitters {
		fmt.Fprintf(&sb, "- Sensor#%d t: %s °C\n", i+1, spread(t.Temperature, 3))
	}
	for i, t := range r.Transmitters {
		e := t.HumidityError
		fmt.Fprintf(&sb, "- Sensor#%d h_error: %s(%.2f)[%.2f] %%\n", i+1, Signed(e.Mean), e.StandardDeviation, e.Range)
	}
	sb.WriteString(Rule)
	return sb.String()
}

// SummaryNotice announces a saved summary
func SummaryNotice(hours float64, file string) string {
	if file == "" {
		return fmt.Sprintf("***** Summary for the last %s h *****", formatHours(hours))
	}
	return fmt.Sprintf("***** Summary for the last %s h saved in %s *****", formatHours(hours), file)
}

// spread renders mean(stddev)[range]
func spread(s stats.Summary, decimals int) string {
	return fmt.Sprintf("%.*f(%.*f)[%.*f]", decimals, s.Mean, decimals, s.StandardDeviation, decimals, s.Range)
}

func formatHours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%d", int(h))
	}
	return fmt.Sprintf("%g", h)
}
