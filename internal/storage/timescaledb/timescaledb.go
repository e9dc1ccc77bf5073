// Package timescaledb stores cycles and summary reports in TimescaleDB
// hypertables through gorm.
package timescaledb

import (
	"context"
	"fmt"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/database"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage holds the connection for a TimescaleDB storage backend
type Storage struct {
	TimescaleDBConn *gorm.DB
	runID           uuid.UUID
	names           []string
	logger          *zap.SugaredLogger
}

// New connects, creates the schema and records run
func New(ctx context.Context, connectionString string, run *types.Run, logger *zap.SugaredLogger) (*Storage, error) {
	conn, err := database.CreateConnection(connectionString, logger.Desugar())
	if err != nil {
		return nil, err
	}

	t := &Storage{
		TimescaleDBConn: conn,
		runID:           run.ID,
		names:           run.TransmitterNames(),
		logger:          logger,
	}

	for _, step := range schema {
		logger.Infof("creating %s...", step.name)
		if err := conn.WithContext(ctx).Exec(step.sql).Error; err != nil {
			logger.Warnf("warning: could not create %s", step.name)
			t.Close()
			return nil, fmt.Errorf("could not create %s: %w", step.name, err)
		}
	}

	rec := NewRunRecord(run)
	if err := conn.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; err != nil {
		t.Close()
		return nil, fmt.Errorf("could not record run: %w", err)
	}

	return t, nil
}

// Name implements storage.Engine
func (t *Storage) Name() string { return "timescaledb" }

// StoreCycle inserts one row per transmitter
func (t *Storage) StoreCycle(ctx context.Context, c *calibration.Cycle) error {
	if c.Size() != len(t.names) {
		return fmt.Errorf("cycle has %d transmitters, run has %d", c.Size(), len(t.names))
	}
	records := CycleRecords(t.runID, t.names, c)
	if err := t.TimescaleDBConn.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("could not store cycle: %w", err)
	}
	return nil
}

// StoreSummary inserts one row per transmitter
func (t *Storage) StoreSummary(ctx context.Context, r summary.Report) error {
	if len(r.Transmitters) != len(t.names) {
		return fmt.Errorf("report has %d transmitters, run has %d", len(r.Transmitters), len(t.names))
	}
	records := SummaryRecords(t.runID, t.names, r)
	if err := t.TimescaleDBConn.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("could not store summary: %w", err)
	}
	return nil
}

// Close implements storage.Engine
func (t *Storage) Close() error {
	sqlDB, err := t.TimescaleDBConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
