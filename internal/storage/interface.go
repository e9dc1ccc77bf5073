// Package storage defines the sinks that persist calibration cycles and
// summary reports.
package storage

import (
	"context"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/summary"
)

// Engine is a storage backend. An engine implements CycleStore, SummaryStore
// or both.
type Engine interface {
	Name() string
	Close() error
}

// CycleStore persists every kept calibration cycle
type CycleStore interface {
	StoreCycle(ctx context.Context, c *calibration.Cycle) error
}

// SummaryStore persists every summary report
type SummaryStore interface {
	StoreSummary(ctx context.Context, r summary.Report) error
}
