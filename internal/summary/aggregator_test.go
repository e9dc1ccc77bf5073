package summary

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/ensemble"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/salt"
	"github.com/chrissnell/humifix/pkg/stats"
)

func cycle(t *testing.T, ts time.Time, readings ...types.Reading) *calibration.Cycle {
	t.Helper()
	s, err := ensemble.NewSampler(len(readings))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Update(readings); err != nil {
		t.Fatal(err)
	}
	return calibration.NewCycle(s, salt.NaCl, ts)
}

func near(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= 1e-12
}

func sameSummary(a, b stats.Summary) bool {
	sameRange := a.Range == b.Range || (math.IsNaN(a.Range) && math.IsNaN(b.Range))
	return a.Count == b.Count && near(a.Mean, b.Mean) && near(a.StandardDeviation, b.StandardDeviation) && sameRange
}

func TestUpdateAndReport(t *testing.T) {
	t0 := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	a := NewAggregator(2)

	c1 := cycle(t, t0, types.Reading{Temperature: 22, Humidity: 75.5}, types.Reading{Temperature: 23, Humidity: 76})
	c2 := cycle(t, t0.Add(5*time.Minute), types.Reading{Temperature: 23, Humidity: 75.8}, types.Reading{Temperature: 24, Humidity: 76.6})
	for _, c := range []*calibration.Cycle{c1, c2} {
		if err := a.Update(c); err != nil {
			t.Fatal(err)
		}
	}

	r := a.Report()
	if r.SampleCount != 2 {
		t.Errorf("SampleCount = %d, expected 2", r.SampleCount)
	}
	if !r.LastCycle.Equal(c2.Timestamp()) {
		t.Errorf("LastCycle = %v, expected %v", r.LastCycle, c2.Timestamp())
	}
	if !near(r.EnsembleTemperature.Mean, 23.0) {
		t.Errorf("ensemble mean = %v, expected 23", r.EnsembleTemperature.Mean)
	}
	if !near(r.EnsembleTemperature.Range, 1.0) {
		t.Errorf("ensemble range = %v, expected 1", r.EnsembleTemperature.Range)
	}
	if !near(r.TemperatureSpread.Mean, 1.0) {
		t.Errorf("spread mean = %v, expected 1", r.TemperatureSpread.Mean)
	}
	if !near(r.Transmitters[1].Temperature.Mean, 23.5) {
		t.Errorf("transmitter 2 temperature mean = %v, expected 23.5", r.Transmitters[1].Temperature.Mean)
	}

	wantErr := ((76 - c1.TrueHumidity()) + (76.6 - c2.TrueHumidity())) / 2
	if math.Abs(r.Transmitters[1].HumidityError.Mean-wantErr) > 1e-9 {
		t.Errorf("transmitter 2 error mean = %v, expected %v", r.Transmitters[1].HumidityError.Mean, wantErr)
	}
}

func TestReportDoesNotReset(t *testing.T) {
	a := NewAggregator(1)
	if err := a.Update(cycle(t, time.Now(), types.Reading{Temperature: 20, Humidity: 75})); err != nil {
		t.Fatal(err)
	}

	a.Report()
	if a.SampleCount() != 1 {
		t.Fatalf("Report cleared the aggregator")
	}

	a.Reset()
	r := a.Report()
	if r.SampleCount != 0 {
		t.Errorf("SampleCount after Reset = %d, expected 0", r.SampleCount)
	}
	if !r.LastCycle.IsZero() {
		t.Errorf("LastCycle after Reset = %v, expected zero", r.LastCycle)
	}
	if !math.IsNaN(r.EnsembleTemperature.Mean) || !math.IsNaN(r.Transmitters[0].HumidityError.Mean) {
		t.Error("empty report must carry NaN statistics")
	}
}

func TestOrderIndependence(t *testing.T) {
	t0 := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	c1 := cycle(t, t0, types.Reading{Temperature: 21.37, Humidity: 75.91}, types.Reading{Temperature: 22.11, Humidity: 74.02})
	c2 := cycle(t, t0.Add(5*time.Minute), types.Reading{Temperature: 23.03, Humidity: 76.44}, types.Reading{Temperature: 21.89, Humidity: 75.17})

	forward := NewAggregator(2)
	backward := NewAggregator(2)
	for _, step := range []struct {
		a *Aggregator
		c *calibration.Cycle
	}{{forward, c1}, {forward, c2}, {backward, c2}, {backward, c1}} {
		if err := step.a.Update(step.c); err != nil {
			t.Fatal(err)
		}
	}

	f, b := forward.Report(), backward.Report()
	if !sameSummary(f.EnsembleTemperature, b.EnsembleTemperature) {
		t.Errorf("ensemble temperature differs: %+v vs %+v", f.EnsembleTemperature, b.EnsembleTemperature)
	}
	if !sameSummary(f.TrueHumidity, b.TrueHumidity) {
		t.Errorf("true humidity differs: %+v vs %+v", f.TrueHumidity, b.TrueHumidity)
	}
	for i := range f.Transmitters {
		if !sameSummary(f.Transmitters[i].HumidityError, b.Transmitters[i].HumidityError) {
			t.Errorf("transmitter %d error differs: %+v vs %+v", i+1, f.Transmitters[i].HumidityError, b.Transmitters[i].HumidityError)
		}
		if !sameSummary(f.Transmitters[i].Temperature, b.Transmitters[i].Temperature) {
			t.Errorf("transmitter %d temperature differs", i+1)
		}
	}
	if !f.LastCycle.Equal(b.LastCycle) {
		t.Errorf("LastCycle differs: %v vs %v", f.LastCycle, b.LastCycle)
	}
}

func TestUpdateRejectsWrongSize(t *testing.T) {
	a := NewAggregator(3)
	err := a.Update(cycle(t, time.Now(), types.Reading{Temperature: 20, Humidity: 75}))
	if !errors.Is(err, ErrTransmitterCount) {
		t.Errorf("Update error = %v, expected ErrTransmitterCount", err)
	}
	if a.SampleCount() != 0 {
		t.Error("rejected cycle was counted")
	}
}
