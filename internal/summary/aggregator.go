// Package summary rolls calibration cycles up into per-period reports.
package summary

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/pkg/stats"
)

// ErrTransmitterCount is returned for a cycle with the wrong number of transmitters
var ErrTransmitterCount = errors.New("cycle transmitter count does not match aggregator")

type transmitterStats struct {
	temperature   stats.Running
	humidityError stats.Running
}

// Aggregator accumulates cycle-level quantities over one summary period
type Aggregator struct {
	ensembleTemperature stats.Running
	temperatureSpread   stats.Running
	trueHumidity        stats.Running
	transmitters        []transmitterStats
	lastCycle           time.Time
}

// TransmitterReport holds one transmitter's statistics over a period
type TransmitterReport struct {
	Temperature   stats.Summary
	HumidityError stats.Summary
}

// Report is the rollup of one summary period
type Report struct {
	SampleCount         int
	LastCycle           time.Time
	EnsembleTemperature stats.Summary
	TemperatureSpread   stats.Summary
	TrueHumidity        stats.Summary
	Transmitters        []TransmitterReport
}

// NewAggregator creates an aggregator for n transmitters
func NewAggregator(n int) *Aggregator {
	return &Aggregator{transmitters: make([]transmitterStats, n)}
}

// Update adds one cycle to the current period
func (a *Aggregator) Update(c *calibration.Cycle) error {
	if c.Size() != len(a.transmitters) {
		return fmt.Errorf("%w: got %d, expected %d", ErrTransmitterCount, c.Size(), len(a.transmitters))
	}

	a.ensembleTemperature.Update(c.EnsembleTemperature())
	a.temperatureSpread.Update(c.EnsembleTemperatureRange())
	a.trueHumidity.Update(c.TrueHumidity())
	for i := range a.transmitters {
		r := c.Transmitter(i)
		a.transmitters[i].temperature.Update(r.Temperature)
		a.transmitters[i].humidityError.Update(r.HumidityError)
	}
	if c.Timestamp().After(a.lastCycle) {
		a.lastCycle = c.Timestamp()
	}
	return nil
}

// Reset clears every statistic and the most recent cycle time
func (a *Aggregator) Reset() {
	a.lastCycle = time.Time{}
	a.ensembleTemperature.Reset()
	a.temperatureSpread.Reset()
	a.trueHumidity.Reset()
	for i := range a.transmitters {
		a.transmitters[i].temperature.Reset()
		a.transmitters[i].humidityError.Reset()
	}
}

// SampleCount is the number of cycles in the current period
func (a *Aggregator) SampleCount() int {
	return a.ensembleTemperature.Count()
}

// Report returns the current period's statistics without resetting them
func (a *Aggregator) Report() Report {
	r := Report{
		SampleCount:         a.SampleCount(),
		LastCycle:           a.lastCycle,
		EnsembleTemperature: a.ensembleTemperature.Snapshot(),
		TemperatureSpread:   a.temperatureSpread.Snapshot(),
		TrueHumidity:        a.trueHumidity.Snapshot(),
		Transmitters:        make([]TransmitterReport, len(a.transmitters)),
	}
	for i := range a.transmitters {
		r.Transmitters[i] = TransmitterReport{
			Temperature:   a.transmitters[i].temperature.Snapshot(),
			HumidityError: a.transmitters[i].humidityError.Snapshot(),
		}
	}
	return r
}
