package app

import (
	"context"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/console"
	"github.com/chrissnell/humifix/internal/ensemble"
	"github.com/chrissnell/humifix/internal/scheduler"
	"github.com/chrissnell/humifix/internal/status"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/salt"
	"go.uber.org/zap"
)

// Poller performs one atomic round of transmitter reads
type Poller interface {
	PollRound(ctx context.Context) []types.Reading
}

// Sink receives kept cycles and summary reports; it reports its own errors
type Sink interface {
	StoreCycle(ctx context.Context, c *calibration.Cycle)
	StoreSummary(ctx context.Context, r summary.Report)
}

// Sleeper waits for d or until ctx is done, returning ctx.Err() in that case
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the real Sleeper
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loop is the single control loop. It alone mutates the sampler, the
// aggregator and the scheduler.
type Loop struct {
	Scheduler    *scheduler.Scheduler
	Poller       Poller
	Sampler      *ensemble.Sampler
	Aggregator   *summary.Aggregator
	Salt         salt.Salt
	PollInterval time.Duration
	Sleep        Sleeper
	Console      *console.Writer
	Sink         Sink
	Board        *status.Board
	SummaryFile  string
	Logger       *zap.SugaredLogger
}

// Run polls until ctx is cancelled. A started round always completes and is
// accounted for before the loop exits; the loop never stops mid-cycle.
func (l *Loop) Run(ctx context.Context) error {
	// work in progress is finished even after a stop request
	work := context.WithoutCancel(ctx)

	for {
		readings := l.Poller.PollRound(work)
		if err := l.Sampler.Update(readings); err != nil {
			return err
		}

		if ctx.Err() != nil {
			return nil
		}

		wait := l.PollInterval
		if l.Scheduler.Due() {
			l.processInstant(work)
			wait = l.Scheduler.Config().Tolerance
		}

		if err := l.Sleep(ctx, wait); err != nil {
			return nil
		}
	}
}

// processInstant snapshots the sampler, routes the cycle and closes a summary
// period when one has elapsed. Accumulators are reset only after they were read.
func (l *Loop) processInstant(ctx context.Context) {
	c := calibration.NewCycle(l.Sampler, l.Salt, l.Scheduler.Now())
	number, discard := l.Scheduler.NextCycle()

	l.Console.Cycle(c, discard)
	if !discard {
		if err := l.Aggregator.Update(c); err != nil {
			l.Logger.Errorf("cycle %d not aggregated: %v", number, err)
		}
		l.Sink.StoreCycle(ctx, c)
	} else {
		l.Logger.Debugf("cycle %d discarded during warm-up", number)
	}
	l.Board.PublishCycle(number, discard, c, l.Aggregator.SampleCount())

	if l.Scheduler.SummaryDue() {
		r := l.Aggregator.Report()
		if r.SampleCount == 0 {
			r.LastCycle = c.Timestamp()
		}
		l.Sink.StoreSummary(ctx, r)
		hours := l.Scheduler.Config().SummaryPeriod.Hours()
		l.Console.Println(console.SummaryNotice(hours, l.SummaryFile))
		l.Logger.Infof("summary over %d cycles closed", r.SampleCount)
		l.Board.PublishReport(r)
		l.Aggregator.Reset()
	}

	l.Sampler.Reset()
}
