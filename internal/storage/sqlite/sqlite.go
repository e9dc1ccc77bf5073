// Package sqlite stores cycles and summary reports in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/storage"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/mjd"
	"github.com/chrissnell/humifix/pkg/stats"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Storage is a SQLite backend. Undefined (NaN) values are stored as NULL.
type Storage struct {
	db     *sql.DB
	path   string
	runID  string
	logger *zap.SugaredLogger
}

// New opens the database at path, creates the schema and records run
func New(ctx context.Context, path string, run *types.Run, logger *zap.SugaredLogger) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// one writer; avoids SQLITE_BUSY from the pool
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	s := &Storage{db: db, path: path, runID: run.ID.String(), logger: logger}

	logger.Infof("creating SQLite schema in %s", path)
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.insertRun(ctx, run); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) insertRun(ctx context.Context, run *types.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertRunSQL, s.runID, formatTime(run.Start), run.Salt.String(),
		run.Comment, run.IntervalMinutes, run.DiscardFirst, run.SummaryHours)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	for i, t := range run.Transmitters {
		if _, err := tx.ExecContext(ctx, insertRunTransmitterSQL, s.runID, i+1, t.Name, t.Identification); err != nil {
			return fmt.Errorf("failed to insert transmitter %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// Name implements storage.Engine
func (s *Storage) Name() string { return "sqlite" }

// DB exposes the underlying handle
func (s *Storage) DB() *sql.DB { return s.db }

// StoreCycle inserts a cycle with its per-transmitter rows
func (s *Storage) StoreCycle(ctx context.Context, c *calibration.Cycle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertCycleSQL, s.runID, formatTime(c.Timestamp()), mjd.FromTime(c.Timestamp()),
		nullable(c.EnsembleTemperature()), nullable(c.EnsembleTemperatureRange()), nullable(c.TrueHumidity()))
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, t := range c.Transmitters() {
		_, err := tx.ExecContext(ctx, insertCycleTransmitterSQL, id, i+1, nullable(t.Temperature), nullable(t.HumidityError))
		if err != nil {
			return fmt.Errorf("failed to insert cycle transmitter %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// StoreSummary inserts a summary report with its per-transmitter rows
func (s *Storage) StoreSummary(ctx context.Context, r summary.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	args := []any{s.runID, formatTime(r.LastCycle), r.SampleCount}
	args = append(args, summaryArgs(r.EnsembleTemperature)...)
	args = append(args, summaryArgs(r.TemperatureSpread)...)
	args = append(args, summaryArgs(r.TrueHumidity)...)

	res, err := tx.ExecContext(ctx, insertSummarySQL, args...)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, t := range r.Transmitters {
		targs := []any{id, i + 1}
		targs = append(targs, summaryArgs(t.Temperature)...)
		targs = append(targs, summaryArgs(t.HumidityError)...)
		if _, err := tx.ExecContext(ctx, insertSummaryTransmitterSQL, targs...); err != nil {
			return fmt.Errorf("failed to insert summary transmitter %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// CheckHealth implements storage.HealthChecker
func (s *Storage) CheckHealth(ctx context.Context) *storage.Health {
	if err := s.db.PingContext(ctx); err != nil {
		return storage.CreateHealth("unhealthy", "database ping failed", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cycles WHERE run_id = ?", s.runID).Scan(&n); err != nil {
		return storage.CreateHealth("unhealthy", "database query test failed", err)
	}
	return storage.CreateHealth("healthy", fmt.Sprintf("SQLite operational, %d cycles stored for this run", n), nil)
}

// Close implements storage.Engine
func (s *Storage) Close() error {
	return s.db.Close()
}

func summaryArgs(sum stats.Summary) []any {
	return []any{nullable(sum.Mean), nullable(sum.StandardDeviation), nullable(sum.Range)}
}

func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
