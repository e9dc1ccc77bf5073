package storage

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Health is the result of a backend health check
type Health struct {
	LastCheck time.Time
	Status    string
	Message   string
	Error     string
}

// HealthChecker is implemented by backends that hold a connection worth probing
type HealthChecker interface {
	CheckHealth(ctx context.Context) *Health
}

// HealthFunc receives every health check result
type HealthFunc func(engine string, h *Health)

// CreateHealth creates a basic health record
func CreateHealth(status, message string, err error) *Health {
	h := &Health{
		LastCheck: time.Now(),
		Status:    status,
		Message:   message,
	}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}

// StartHealthMonitor probes checker immediately and then every interval until
// ctx is cancelled.
func StartHealthMonitor(ctx context.Context, name string, checker HealthChecker, interval time.Duration, report HealthFunc, logger *zap.SugaredLogger) {
	go func() {
		update := func() {
			h := checker.CheckHealth(ctx)
			if h.Status != "healthy" {
				logger.Warnf("%s health check: %s (%s)", name, h.Message, h.Error)
			} else {
				logger.Debugf("%s health check: %s", name, h.Status)
			}
			if report != nil {
				report(name, h)
			}
		}

		update()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				update()
			case <-ctx.Done():
				logger.Infof("stopping %s health monitor", name)
				return
			}
		}
	}()
}
