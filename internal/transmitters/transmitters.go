// Package transmitters polls the humidity transmitters of a calibration run.
package transmitters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/humifix/internal/transmitters/serial"
	"github.com/chrissnell/humifix/internal/transmitters/simulator"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Transmitter is an instrument that yields one temperature/humidity pair per poll
type Transmitter interface {
	Name() string
	Identification() string
	Poll(ctx context.Context) (temperature, humidity float64, err error)
	Close() error
}

// New creates the transmitter described by cfg
func New(cfg config.TransmitterData, logger *zap.SugaredLogger) (Transmitter, error) {
	switch cfg.Type {
	case config.TransmitterTypeSerial:
		return serial.New(cfg, logger), nil
	case config.TransmitterTypeSimulator:
		return simulator.New(cfg), nil
	default:
		return nil, fmt.Errorf("unknown transmitter type: %s", cfg.Type)
	}
}

// Set is the ordered collection of transmitters of a run
type Set struct {
	transmitters []Transmitter
	logger       *zap.SugaredLogger
}

// NewSet creates a Set for every configured transmitter
func NewSet(cfgs []config.TransmitterData, logger *zap.SugaredLogger) (*Set, error) {
	list := make([]Transmitter, 0, len(cfgs))
	for _, c := range cfgs {
		tm, err := New(c, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating transmitter [%s]: %w", c.Name, err)
		}
		list = append(list, tm)
	}
	return NewSetFrom(list, logger), nil
}

// NewSetFrom wraps already constructed transmitters
func NewSetFrom(list []Transmitter, logger *zap.SugaredLogger) *Set {
	return &Set{transmitters: list, logger: logger}
}

// Len is the number of transmitters
func (s *Set) Len() int {
	return len(s.transmitters)
}

// Transmitter returns transmitter i
func (s *Set) Transmitter(i int) Transmitter {
	return s.transmitters[i]
}

// Names returns the transmitter names in order
func (s *Set) Names() []string {
	names := make([]string, len(s.transmitters))
	for i, t := range s.transmitters {
		names[i] = t.Name()
	}
	return names
}

// PollRound polls every transmitter concurrently and returns once all polls
// have finished. readings[i] belongs to transmitter i; a failed poll is
// logged and returned with Err set so the sampler skips it.
func (s *Set) PollRound(ctx context.Context) []types.Reading {
	readings := make([]types.Reading, len(s.transmitters))

	var g errgroup.Group
	for i, tm := range s.transmitters {
		i, tm := i, tm
		g.Go(func() error {
			t, h, err := tm.Poll(ctx)
			readings[i] = types.Reading{
				Timestamp:   time.Now(),
				Transmitter: tm.Name(),
				Temperature: t,
				Humidity:    h,
				Err:         err,
			}
			if err != nil {
				s.logger.Warnf("transmitter [%s] poll failed, skipping it this round: %v", tm.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return readings
}

// Connector is implemented by transmitters that open a connection up front
type Connector interface {
	Connect(ctx context.Context) error
}

// Connect opens every transmitter that supports it. A failure is logged only;
// the transmitter is retried on its next poll.
func (s *Set) Connect(ctx context.Context) {
	for _, t := range s.transmitters {
		if c, ok := t.(Connector); ok {
			if err := c.Connect(ctx); err != nil {
				s.logger.Warnf("transmitter [%s] is not reachable yet: %v", t.Name(), err)
			}
		}
	}
}

// Close closes every transmitter
func (s *Set) Close() error {
	var errs []error
	for _, t := range s.transmitters {
		if err := t.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing [%s]: %w", t.Name(), err))
		}
	}
	return errors.Join(errs...)
}
