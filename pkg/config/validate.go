package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/humifix/pkg/salt"
)

var (
	ErrNoSalt         = errors.New("no fix point given: a salt solution must be chosen")
	ErrNoTransmitters = errors.New("no transmitters configured")
	ErrBadInterval    = errors.New("invalid logging cadence")
)

// Validate checks the configuration before any sampling starts
func (c *ConfigData) Validate() error {
	if c.Salt == "" {
		return ErrNoSalt
	}
	if _, err := salt.Parse(c.Salt); err != nil {
		return fmt.Errorf("%w: %v", ErrNoSalt, err)
	}

	if len(c.Transmitters) == 0 {
		return ErrNoTransmitters
	}
	names := make(map[string]bool)
	for i, t := range c.Transmitters {
		if t.Name == "" {
			return fmt.Errorf("transmitter #%d has no name", i+1)
		}
		if names[t.Name] {
			return fmt.Errorf("transmitter name [%s] is used twice", t.Name)
		}
		names[t.Name] = true

		switch t.Type {
		case TransmitterTypeSerial:
			if t.SerialDevice == "" {
				return fmt.Errorf("transmitter [%s] must define a serial device", t.Name)
			}
		case TransmitterTypeSimulator:
			if t.Simulator.FailureRate < 0 || t.Simulator.FailureRate > 1 {
				return fmt.Errorf("transmitter [%s] failure rate must be within [0,1]", t.Name)
			}
		default:
			return fmt.Errorf("transmitter [%s] has unknown type %q", t.Name, t.Type)
		}
	}

	l := c.Logging
	if l.IntervalMinutes <= 0 || 60%l.IntervalMinutes != 0 {
		return fmt.Errorf("%w: interval of %d min must divide 60", ErrBadInterval, l.IntervalMinutes)
	}
	if l.ToleranceSeconds <= 0 || l.ToleranceSeconds >= 60 {
		return fmt.Errorf("%w: tolerance of %d s must be within 1..59", ErrBadInterval, l.ToleranceSeconds)
	}
	if l.PollInterval <= 0 || l.PollInterval >= time.Duration(l.ToleranceSeconds)*time.Second {
		return fmt.Errorf("%w: poll interval %v must be shorter than the %d s tolerance window", ErrBadInterval, l.PollInterval, l.ToleranceSeconds)
	}
	if l.DiscardFirst < 0 {
		return fmt.Errorf("%w: discard count must not be negative", ErrBadInterval)
	}
	if l.SummaryHours <= 0 {
		return fmt.Errorf("%w: summary period must be positive", ErrBadInterval)
	}

	if c.Storage.SQLite != nil && c.Storage.SQLite.Path == "" {
		return fmt.Errorf("sqlite storage requires a path")
	}
	if c.Storage.TimescaleDB != nil && c.Storage.TimescaleDB.ConnectionString == "" {
		return fmt.Errorf("timescaledb storage requires a connection string")
	}

	return nil
}

// SaltType returns the configured salt; call Validate first
func (c *ConfigData) SaltType() salt.Salt {
	s, _ := salt.Parse(c.Salt)
	return s
}

// SummaryPeriod converts SummaryHours to a duration
func (l LoggingData) SummaryPeriod() time.Duration {
	return time.Duration(l.SummaryHours * float64(time.Hour))
}

// Tolerance converts ToleranceSeconds to a duration
func (l LoggingData) Tolerance() time.Duration {
	return time.Duration(l.ToleranceSeconds) * time.Second
}
