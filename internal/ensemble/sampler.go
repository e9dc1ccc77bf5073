// Package ensemble accumulates raw transmitter readings between logging
// instants.
package ensemble

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNoTransmitters is returned when a sampler is built for zero transmitters
	ErrNoTransmitters = errors.New("at least one transmitter is required")
	// ErrReadingCount is returned when a round does not hold one reading per transmitter
	ErrReadingCount = errors.New("reading count does not match transmitter count")
)

// Channel holds the accumulators of one transmitter
type Channel struct {
	Temperature stats.Running
	Humidity    stats.Running
}

// Sampler keeps one Channel per transmitter, indexed by position
type Sampler struct {
	channels []Channel
}

// NewSampler creates a sampler for n transmitters
func NewSampler(n int) (*Sampler, error) {
	if n <= 0 {
		return nil, ErrNoTransmitters
	}
	return &Sampler{channels: make([]Channel, n)}, nil
}

// Size is the number of transmitters
func (s *Sampler) Size() int {
	return len(s.channels)
}

// Update feeds one polling round. readings[i] belongs to transmitter i;
// failed readings leave that transmitter's accumulators untouched.
func (s *Sampler) Update(readings []types.Reading) error {
	if len(readings) != len(s.channels) {
		return fmt.Errorf("%w: got %d, expected %d", ErrReadingCount, len(readings), len(s.channels))
	}
	for i, r := range readings {
		if !r.OK() {
			continue
		}
		s.channels[i].Temperature.Update(r.Temperature)
		s.channels[i].Humidity.Update(r.Humidity)
	}
	return nil
}

// Reset clears every accumulator
func (s *Sampler) Reset() {
	for i := range s.channels {
		s.channels[i].Temperature.Reset()
		s.channels[i].Humidity.Reset()
	}
}

// Channel returns the accumulators of transmitter i
func (s *Sampler) Channel(i int) *Channel {
	return &s.channels[i]
}

// MeanTemperatures returns each transmitter's mean temperature; NaN for a
// transmitter without samples.
func (s *Sampler) MeanTemperatures() []float64 {
	means := make([]float64, len(s.channels))
	for i := range s.channels {
		means[i] = s.channels[i].Temperature.Mean()
	}
	return means
}

// MeanHumidities returns each transmitter's mean humidity; NaN for a
// transmitter without samples.
func (s *Sampler) MeanHumidities() []float64 {
	means := make([]float64, len(s.channels))
	for i := range s.channels {
		means[i] = s.channels[i].Humidity.Mean()
	}
	return means
}

// EnsembleTemperature returns the mean of the transmitters' mean
// temperatures and the spread (max - min) of those means. Both are NaN if
// any transmitter has no samples.
func (s *Sampler) EnsembleTemperature() (mean, spread float64) {
	means := s.MeanTemperatures()
	if floats.HasNaN(means) {
		return math.NaN(), math.NaN()
	}
	return stat.Mean(means, nil), floats.Max(means) - floats.Min(means)
}
