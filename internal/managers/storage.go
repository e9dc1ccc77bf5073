package managers

import (
	"context"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/storage"
	"github.com/chrissnell/humifix/internal/storage/csvfile"
	"github.com/chrissnell/humifix/internal/storage/sqlite"
	"github.com/chrissnell/humifix/internal/storage/summarylog"
	"github.com/chrissnell/humifix/internal/storage/timescaledb"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/config"
	"go.uber.org/zap"
)

// HealthCheckInterval is how often connected backends are probed
const HealthCheckInterval = time.Minute

// StorageManager holds our active storage backends and fans cycles and
// reports out to them. Backend errors are logged, never returned, so a
// failing sink cannot stop the measurement.
type StorageManager struct {
	engines []storage.Engine
	logger  *zap.SugaredLogger
}

// NewStorageManager creates a StorageManager populated with every configured
// engine. A database backend that cannot be opened is reported unhealthy and
// left out of the run.
func NewStorageManager(ctx context.Context, c *config.ConfigData, run *types.Run, header string, health storage.HealthFunc, logger *zap.SugaredLogger) *StorageManager {
	s := &StorageManager{logger: logger}

	if !c.Output.DisableCSV {
		s.AddEngine(csvfile.New(run.DataFile, run, logger))
	}

	if !c.Output.DisableLog {
		s.AddEngine(summarylog.New(run.SummaryFile, header, logger))
	}

	if c.Storage.SQLite != nil {
		e, err := sqlite.New(ctx, c.Storage.SQLite.Path, run, logger)
		if err != nil {
			s.unavailable("sqlite", err, health)
		} else {
			s.AddEngine(e)
		}
	}

	if c.Storage.TimescaleDB != nil {
		e, err := timescaledb.New(ctx, c.Storage.TimescaleDB.ConnectionString, run, logger)
		if err != nil {
			s.unavailable("timescaledb", err, health)
		} else {
			s.AddEngine(e)
		}
	}

	for _, e := range s.engines {
		if hc, ok := e.(storage.HealthChecker); ok {
			storage.StartHealthMonitor(ctx, e.Name(), hc, HealthCheckInterval, health, logger)
		}
	}

	return s
}

func (s *StorageManager) unavailable(name string, err error, health storage.HealthFunc) {
	s.logger.Errorf("could not add %s storage backend, continuing without it: %v", name, err)
	if health != nil {
		health(name, storage.CreateHealth("unhealthy", "backend unavailable at startup", err))
	}
}

// AddEngine adds a storage engine
func (s *StorageManager) AddEngine(e storage.Engine) {
	s.logger.Infof("enabling %s storage engine", e.Name())
	s.engines = append(s.engines, e)
}

// Engines returns the names of the active engines
func (s *StorageManager) Engines() []string {
	names := make([]string, len(s.engines))
	for i, e := range s.engines {
		names[i] = e.Name()
	}
	return names
}

// StoreCycle hands c to every engine that stores cycles
func (s *StorageManager) StoreCycle(ctx context.Context, c *calibration.Cycle) {
	for _, e := range s.engines {
		if cs, ok := e.(storage.CycleStore); ok {
			if err := cs.StoreCycle(ctx, c); err != nil {
				s.logger.Errorf("%s: could not store cycle: %v", e.Name(), err)
			}
		}
	}
}

// StoreSummary hands r to every engine that stores summaries
func (s *StorageManager) StoreSummary(ctx context.Context, r summary.Report) {
	for _, e := range s.engines {
		if ss, ok := e.(storage.SummaryStore); ok {
			if err := ss.StoreSummary(ctx, r); err != nil {
				s.logger.Errorf("%s: could not store summary: %v", e.Name(), err)
			}
		}
	}
}

// Close closes every engine
func (s *StorageManager) Close() {
	for _, e := range s.engines {
		if err := e.Close(); err != nil {
			s.logger.Warnf("%s: close failed: %v", e.Name(), err)
		}
	}
}
