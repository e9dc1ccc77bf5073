// Package simulator provides a software transmitter for exercising the
// calibration loop without hardware.
package simulator

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/chrissnell/humifix/pkg/config"
)

// ErrDropped is returned for a simulated communication failure
var ErrDropped = errors.New("simulated communication failure")

// Transmitter returns the configured set-points plus Gaussian noise. The
// humidity carries a fixed Offset, the error a calibration should find.
type Transmitter struct {
	config config.TransmitterData

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a simulated transmitter
func New(cfg config.TransmitterData) *Transmitter {
	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Transmitter{
		config: cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (t *Transmitter) Name() string {
	return t.config.Name
}

func (t *Transmitter) Identification() string {
	return "simulator " + t.config.Name
}

// Poll returns one simulated measurement
func (t *Transmitter) Poll(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.config.Simulator
	if s.FailureRate > 0 && t.rng.Float64() < s.FailureRate {
		return 0, 0, ErrDropped
	}
	temperature := s.Temperature + s.Noise*t.rng.NormFloat64()
	humidity := s.Humidity + s.Offset + s.Noise*t.rng.NormFloat64()
	return temperature, humidity, nil
}

func (t *Transmitter) Close() error {
	return nil
}
