package console

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/ensemble"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/salt"
	"github.com/google/uuid"
)

func testCycle(t *testing.T, s salt.Salt, temps, hums []float64) *calibration.Cycle {
	t.Helper()
	sampler, err := ensemble.NewSampler(len(temps))
	if err != nil {
		t.Fatal(err)
	}
	readings := make([]types.Reading, len(temps))
	for i := range temps {
		readings[i] = types.Reading{Temperature: temps[i], Humidity: hums[i]}
	}
	if err := sampler.Update(readings); err != nil {
		t.Fatal(err)
	}
	return calibration.NewCycle(sampler, s, time.Date(2024, 4, 9, 14, 35, 2, 0, time.UTC))
}

func TestSigned(t *testing.T) {
	tests := map[float64]string{
		0.421:      "+0.42",
		-0.426:     "-0.43",
		0:          "+0.00",
		math.NaN(): "NaN",
	}
	for in, want := range tests {
		if got := Signed(in); got != want {
			t.Errorf("Signed(%v) = %q, expected %q", in, got, want)
		}
	}
}

func TestCycleLine(t *testing.T) {
	c := testCycle(t, salt.H2O, []float64{22.0, 22.5}, []float64{99.5, 100.25})

	got := CycleLine(c, false)
	want := "2024-04-09 14:35  22.25(0.50) °C > 100.0 %  Sensor#1: -0.50 %  Sensor#2: +0.25 %"
	if got != want {
		t.Errorf("CycleLine =\n%q\nexpected\n%q", got, want)
	}

	if !strings.HasSuffix(CycleLine(c, true), "  discarded!") {
		t.Error("discarded cycle is not flagged")
	}
}

func TestCycleLineOutOfRange(t *testing.T) {
	c := testCycle(t, salt.KCl, []float64{2.0}, []float64{88.0})
	got := CycleLine(c, false)
	if !strings.Contains(got, "> NaN %") || !strings.Contains(got, "Sensor#1: NaN %") {
		t.Errorf("NaN not shown in %q", got)
	}
}

func TestReport(t *testing.T) {
	agg := summary.NewAggregator(2)
	if err := agg.Update(testCycle(t, salt.H2O, []float64{22.0, 22.5}, []float64{99.5, 100.25})); err != nil {
		t.Fatal(err)
	}

	got := Report(agg.Report())
	lines := strings.Split(got, "\n")

	expected := []string{
		"Timestamp: 2024-04-09 14:35 (MJD: 60409.60766)",
		"n = 1",
		"t_ensemble = 22.250(0.000)[0.000] °C",
		"t_spread = 0.500 °C",
		"h_true = 100.00 %",
		"- Sensor#1 t: 22.000(0.000)[0.000] °C",
		"- Sensor#2 t: 22.500(0.000)[0.000] °C",
		"- Sensor#1 h_error: -0.50(0.00)[0.00] %",
		"- Sensor#2 h_error: +0.25(0.00)[0.00] %",
		Rule,
	}
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d:\n%s", len(lines), len(expected), got)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i+1, lines[i], expected[i])
		}
	}
}

func TestHeader(t *testing.T) {
	run := &types.Run{
		ID:              uuid.MustParse("6f1c2a54-52a4-4a8e-9f6e-0c1b1d1e2f30"),
		Salt:            salt.NaCl,
		Comment:         "---",
		IntervalMinutes: 5,
		DiscardFirst:    4,
		SummaryHours:    3,
		DataFile:        "HumFix_202404091430_NaCl.csv",
		SummaryFile:     "HumFix_202404091430_NaCl.log",
		Transmitters:    []types.TransmitterInfo{{Name: "COM3", Identification: "EE08 171204"}},
	}

	h := Header("humifix", "1.0", run)
	for _, want := range []string{
		"humifix, version 1.0",
		"Run id: 6f1c2a54-52a4-4a8e-9f6e-0c1b1d1e2f30",
		"Fixed point solution: NaCl",
		"Discard first 4 values (20 min)",
		"Summarize every 3 h",
		"1 transmitter(s)",
		"- Sensor#1: COM3 (EE08 171204)",
	} {
		if !strings.Contains(h, want) {
			t.Errorf("header is missing %q:\n%s", want, h)
		}
	}
	if !strings.HasSuffix(h, Rule) {
		t.Error("header does not end with the rule")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Cycle(testCycle(t, salt.H2O, []float64{22}, []float64{100}), true)
	w.Println(SummaryNotice(1.5, "x.log"))

	out := buf.String()
	if !strings.Contains(out, "discarded!\n") || !strings.Contains(out, "last 1.5 h saved in x.log") {
		t.Errorf("unexpected output %q", out)
	}
}
