package ensemble

import (
	"errors"
	"math"
	"testing"

	"github.com/chrissnell/humifix/internal/types"
)

func ok(t, h float64) types.Reading {
	return types.Reading{Temperature: t, Humidity: h}
}

func failed() types.Reading {
	return types.Reading{Err: errors.New("timeout")}
}

func TestNewSamplerRejectsZero(t *testing.T) {
	if _, err := NewSampler(0); !errors.Is(err, ErrNoTransmitters) {
		t.Errorf("NewSampler(0) error = %v, expected ErrNoTransmitters", err)
	}
}

func TestEnsembleTemperature(t *testing.T) {
	s, err := NewSampler(3)
	if err != nil {
		t.Fatal(err)
	}

	rounds := [][]types.Reading{
		{ok(20.0, 75.0), ok(21.0, 76.0), ok(22.0, 74.0)},
		{ok(20.2, 75.2), ok(21.2, 76.2), ok(22.4, 74.4)},
	}
	for _, r := range rounds {
		if err := s.Update(r); err != nil {
			t.Fatal(err)
		}
	}

	// transmitter means: 20.1, 21.1, 22.2
	mean, spread := s.EnsembleTemperature()
	if math.Abs(mean-(20.1+21.1+22.2)/3) > 1e-12 {
		t.Errorf("ensemble mean = %v", mean)
	}
	if math.Abs(spread-2.1) > 1e-12 {
		t.Errorf("ensemble spread = %v, expected 2.1", spread)
	}

	hum := s.MeanHumidities()
	if math.Abs(hum[2]-74.2) > 1e-12 {
		t.Errorf("mean humidity of transmitter 3 = %v, expected 74.2", hum[2])
	}
}

func TestUpdateSkipsFailedReadings(t *testing.T) {
	s, _ := NewSampler(2)
	if err := s.Update([]types.Reading{ok(20, 75), ok(21, 76)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Update([]types.Reading{failed(), ok(23, 78)}); err != nil {
		t.Fatal(err)
	}

	if n := s.Channel(0).Temperature.Count(); n != 1 {
		t.Errorf("transmitter 1 count = %d, expected 1", n)
	}
	if n := s.Channel(1).Humidity.Count(); n != 2 {
		t.Errorf("transmitter 2 count = %d, expected 2", n)
	}
}

func TestEnsembleNaNWhenTransmitterSilent(t *testing.T) {
	s, _ := NewSampler(2)
	if err := s.Update([]types.Reading{ok(20, 75), failed()}); err != nil {
		t.Fatal(err)
	}

	mean, spread := s.EnsembleTemperature()
	if !math.IsNaN(mean) || !math.IsNaN(spread) {
		t.Errorf("expected NaN ensemble, got %v (%v)", mean, spread)
	}
}

func TestUpdateLengthMismatch(t *testing.T) {
	s, _ := NewSampler(2)
	err := s.Update([]types.Reading{ok(20, 75)})
	if !errors.Is(err, ErrReadingCount) {
		t.Errorf("Update error = %v, expected ErrReadingCount", err)
	}
	if s.Channel(0).Temperature.Count() != 0 {
		t.Error("rejected round must not touch accumulators")
	}
}

func TestReset(t *testing.T) {
	s, _ := NewSampler(2)
	if err := s.Update([]types.Reading{ok(20, 75), ok(21, 76)}); err != nil {
		t.Fatal(err)
	}
	s.Reset()

	for i := 0; i < s.Size(); i++ {
		c := s.Channel(i)
		if c.Temperature.Count() != 0 || c.Humidity.Count() != 0 {
			t.Errorf("transmitter %d not reset", i+1)
		}
	}
	if mean, _ := s.EnsembleTemperature(); !math.IsNaN(mean) {
		t.Errorf("ensemble after reset = %v, expected NaN", mean)
	}
}
