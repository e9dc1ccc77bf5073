package timescaledb

import (
	"context"

	"github.com/chrissnell/humifix/internal/storage"
)

// CheckHealth implements storage.HealthChecker
func (t *Storage) CheckHealth(ctx context.Context) *storage.Health {
	if t.TimescaleDBConn == nil {
		return storage.CreateHealth("unhealthy", "no database connection", nil)
	}

	sqlDB, err := t.TimescaleDBConn.DB()
	if err != nil {
		return storage.CreateHealth("unhealthy", "failed to get underlying database connection", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storage.CreateHealth("unhealthy", "database ping failed", err)
	}

	var result int
	if err := t.TimescaleDBConn.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return storage.CreateHealth("unhealthy", "database query test failed", err)
	}
	return storage.CreateHealth("healthy", "TimescaleDB operational", nil)
}
