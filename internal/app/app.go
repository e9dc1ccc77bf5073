// Package app wires the configured transmitters, sinks and status API around
// the control loop.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/chrissnell/humifix/internal/console"
	"github.com/chrissnell/humifix/internal/controllers/restserver"
	"github.com/chrissnell/humifix/internal/ensemble"
	"github.com/chrissnell/humifix/internal/managers"
	"github.com/chrissnell/humifix/internal/scheduler"
	"github.com/chrissnell/humifix/internal/status"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/transmitters"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgramName is shown in the header block
const ProgramName = "humifix"

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
	version        string
	clock          scheduler.Clock
	sleep          Sleeper
	console        io.Writer
	transmitters   *transmitters.Set
}

// Option customizes an App
type Option func(*App)

// WithClock replaces the wall clock
func WithClock(c scheduler.Clock) Option { return func(a *App) { a.clock = c } }

// WithSleeper replaces the real sleep
func WithSleeper(s Sleeper) Option { return func(a *App) { a.sleep = s } }

// WithConsole sends the operator display to w instead of stdout
func WithConsole(w io.Writer) Option { return func(a *App) { a.console = w } }

// WithVersion sets the version shown in the header block
func WithVersion(v string) Option { return func(a *App) { a.version = v } }

// WithTransmitters uses set instead of building transmitters from the configuration
func WithTransmitters(set *transmitters.Set) Option { return func(a *App) { a.transmitters = set } }

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger, opts ...Option) *App {
	a := &App{
		configProvider: configProvider,
		logger:         logger,
		version:        "dev",
		clock:          scheduler.SystemClock{},
		sleep:          SleepContext,
		console:        os.Stdout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run validates the configuration, then measures until ctx is cancelled or
// SIGINT/SIGTERM is received. Only configuration errors are returned.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sched, err := scheduler.New(scheduler.Config{
		IntervalMinutes: cfg.Logging.IntervalMinutes,
		Tolerance:       cfg.Logging.Tolerance(),
		DiscardFirst:    cfg.Logging.DiscardFirst,
		SummaryPeriod:   cfg.Logging.SummaryPeriod(),
	}, a.clock)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	set := a.transmitters
	if set == nil {
		set, err = transmitters.NewSet(cfg.Transmitters, a.logger)
		if err != nil {
			return err
		}
	}
	defer func() {
		if err := set.Close(); err != nil {
			a.logger.Warnf("closing transmitters: %v", err)
		}
	}()
	set.Connect(ctx)

	run := a.newRun(cfg, set)
	header := console.Header(ProgramName, a.version, run)
	con := console.NewWriter(a.console)
	con.Println(header)

	board := status.NewBoard(run)

	sm := managers.NewStorageManager(ctx, cfg, run, header, board.UpdateHealth, a.logger)
	defer sm.Close()

	var wg sync.WaitGroup
	if cfg.RESTServer != nil {
		restserver.NewController(ctx, &wg, *cfg.RESTServer, board, a.logger).StartController()
	}

	sampler, err := ensemble.NewSampler(set.Len())
	if err != nil {
		return err
	}

	loop := &Loop{
		Scheduler:    sched,
		Poller:       set,
		Sampler:      sampler,
		Aggregator:   summary.NewAggregator(set.Len()),
		Salt:         run.Salt,
		PollInterval: cfg.Logging.PollInterval,
		Sleep:        a.sleep,
		Console:      con,
		Sink:         sm,
		Board:        board,
		SummaryFile:  run.SummaryFile,
		Logger:       a.logger,
	}

	a.logger.Infof("run %s started with %d transmitter(s) on %s", run.ID, set.Len(), run.Salt)
	if err := loop.Run(ctx); err != nil {
		a.logger.Errorf("control loop stopped: %v", err)
	}

	a.logger.Info("shutdown signal received, waiting for workers to terminate...")
	cancel()
	wg.Wait()
	a.logger.Info("shutdown complete")

	return nil
}

// newRun describes the run about to start
func (a *App) newRun(cfg *config.ConfigData, set *transmitters.Set) *types.Run {
	start := a.clock.Now().UTC()
	s := cfg.SaltType()

	run := &types.Run{
		ID:              uuid.New(),
		Start:           start,
		Salt:            s,
		Comment:         cfg.Comment,
		IntervalMinutes: cfg.Logging.IntervalMinutes,
		DiscardFirst:    cfg.Logging.DiscardFirst,
		SummaryHours:    cfg.Logging.SummaryHours,
	}
	if !cfg.Output.DisableCSV {
		run.DataFile = OutputFile(cfg.Output, start, s.String(), "csv")
	}
	if !cfg.Output.DisableLog {
		run.SummaryFile = OutputFile(cfg.Output, start, s.String(), "log")
	}
	for i := 0; i < set.Len(); i++ {
		t := set.Transmitter(i)
		run.Transmitters = append(run.Transmitters, types.TransmitterInfo{Name: t.Name(), Identification: t.Identification()})
	}
	return run
}

// OutputFile builds <dir>/<prefix>_<yyyyMMddHHmm>_<salt>.<ext>
func OutputFile(o config.OutputData, start time.Time, saltName, ext string) string {
	name := fmt.Sprintf("%s_%s_%s.%s", o.Prefix, start.UTC().Format("200601021504"), saltName, ext)
	return filepath.Join(o.Directory, name)
}
