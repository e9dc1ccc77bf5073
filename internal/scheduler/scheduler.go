// Package scheduler decides when a calibration cycle is taken, which cycles
// belong to the warm-up period and when a summary period ends.
package scheduler

import (
	"fmt"
	"time"
)

// Clock supplies wall-clock time
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// Config holds the scheduler's cadence
type Config struct {
	// IntervalMinutes is the logging cadence; it must divide 60
	IntervalMinutes int
	// Tolerance is how long after the full minute an instant is still accepted
	Tolerance time.Duration
	// DiscardFirst is the number of warm-up cycles kept out of the statistics
	DiscardFirst int
	// SummaryPeriod is the length of a summary period
	SummaryPeriod time.Duration
}

// Validate checks the cadence for consistency
func (c Config) Validate() error {
	if c.IntervalMinutes <= 0 || 60%c.IntervalMinutes != 0 {
		return fmt.Errorf("logging interval of %d min does not divide an hour", c.IntervalMinutes)
	}
	if c.Tolerance <= 0 || c.Tolerance >= time.Minute {
		return fmt.Errorf("logging tolerance %v must be between 0 and 1 min", c.Tolerance)
	}
	if c.DiscardFirst < 0 {
		return fmt.Errorf("discard count %d is negative", c.DiscardFirst)
	}
	if c.SummaryPeriod <= 0 {
		return fmt.Errorf("summary period %v must be positive", c.SummaryPeriod)
	}
	return nil
}

// Scheduler tracks cycle numbering and summary periods. It performs no I/O;
// all decisions derive from the injected clock and its counters.
type Scheduler struct {
	cfg         Config
	clock       Clock
	cycles      int
	periodStart time.Time
}

// New creates a scheduler whose first summary period starts now
func New(cfg Config, clock Clock) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		cfg:         cfg,
		clock:       clock,
		periodStart: clock.Now(),
	}, nil
}

// Config returns the scheduler's cadence
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Now reads the scheduler's clock
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// IsLoggingInstant reports whether t falls inside a logging window: the
// minute is a multiple of the interval and the second is within tolerance.
// The check is level-triggered, so callers must wait out Tolerance after
// acting on an instant.
func (s *Scheduler) IsLoggingInstant(t time.Time) bool {
	t = t.UTC()
	if t.Minute()%s.cfg.IntervalMinutes != 0 {
		return false
	}
	sinceMinute := time.Duration(t.Second())*time.Second + time.Duration(t.Nanosecond())
	return sinceMinute < s.cfg.Tolerance
}

// Due reports whether the clock currently shows a logging instant
func (s *Scheduler) Due() bool {
	return s.IsLoggingInstant(s.clock.Now())
}

// NextCycle numbers a new cycle (starting at 1) and reports whether it
// belongs to the warm-up period and must be discarded.
func (s *Scheduler) NextCycle() (number int, discard bool) {
	s.cycles++
	return s.cycles, s.cycles <= s.cfg.DiscardFirst
}

// CyclesSeen is the number of cycles numbered since start
func (s *Scheduler) CyclesSeen() int {
	return s.cycles
}

// SummaryDue reports whether a full summary period has elapsed. When it
// returns true the next period starts at the current clock time.
func (s *Scheduler) SummaryDue() bool {
	now := s.clock.Now()
	if now.Sub(s.periodStart) < s.cfg.SummaryPeriod {
		return false
	}
	s.periodStart = now
	return true
}

// PeriodStart is the start of the current summary period
func (s *Scheduler) PeriodStart() time.Time {
	return s.periodStart
}
