// Package calibration builds the per-logging-instant comparison of every
// transmitter against the salt solution's reference humidity.
package calibration

import (
	"time"

	"github.com/chrissnell/humifix/internal/ensemble"
	"github.com/chrissnell/humifix/pkg/salt"
)

// TransmitterResult is one transmitter's contribution to a cycle
type TransmitterResult struct {
	Temperature   float64
	HumidityError float64
}

// Cycle is an immutable snapshot taken at a logging instant. NaN values mean
// the reference humidity was undefined for the ensemble temperature.
type Cycle struct {
	timestamp                time.Time
	salt                     salt.Salt
	ensembleTemperature      float64
	ensembleTemperatureRange float64
	trueHumidity             float64
	transmitters             []TransmitterResult
}

// NewCycle snapshots the sampler's current state for salt s at time now
func NewCycle(sampler *ensemble.Sampler, s salt.Salt, now time.Time) *Cycle {
	c := &Cycle{
		timestamp: now.UTC(),
		salt:      s,
	}

	c.ensembleTemperature, c.ensembleTemperatureRange = sampler.EnsembleTemperature()
	c.trueHumidity = salt.TrueHumidity(s, c.ensembleTemperature)

	temps := sampler.MeanTemperatures()
	hums := sampler.MeanHumidities()
	c.transmitters = make([]TransmitterResult, sampler.Size())
	for i := range c.transmitters {
		c.transmitters[i] = TransmitterResult{
			Temperature:   temps[i],
			HumidityError: hums[i] - c.trueHumidity,
		}
	}

	return c
}

// Timestamp is the instant the snapshot was taken, in UTC
func (c *Cycle) Timestamp() time.Time { return c.timestamp }

// Salt is the fixed point the cycle was computed against
func (c *Cycle) Salt() salt.Salt { return c.salt }

// EnsembleTemperature is the mean of the transmitters' mean temperatures
func (c *Cycle) EnsembleTemperature() float64 { return c.ensembleTemperature }

// EnsembleTemperatureRange is the spread of the transmitters' mean temperatures
func (c *Cycle) EnsembleTemperatureRange() float64 { return c.ensembleTemperatureRange }

// TrueHumidity is the reference humidity at the ensemble temperature
func (c *Cycle) TrueHumidity() float64 { return c.trueHumidity }

// Size is the number of transmitters
func (c *Cycle) Size() int { return len(c.transmitters) }

// Transmitter returns the result for transmitter i
func (c *Cycle) Transmitter(i int) TransmitterResult { return c.transmitters[i] }

// Transmitters returns a copy of all per-transmitter results
func (c *Cycle) Transmitters() []TransmitterResult {
	out := make([]TransmitterResult, len(c.transmitters))
	copy(out, c.transmitters)
	return out
}

// Temperatures returns the per-transmitter mean temperatures
func (c *Cycle) Temperatures() []float64 {
	out := make([]float64, len(c.transmitters))
	for i, t := range c.transmitters {
		out[i] = t.Temperature
	}
	return out
}

// HumidityErrors returns the per-transmitter humidity errors
func (c *Cycle) HumidityErrors() []float64 {
	out := make([]float64, len(c.transmitters))
	for i, t := range c.transmitters {
		out[i] = t.HumidityError
	}
	return out
}
