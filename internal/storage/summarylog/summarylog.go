// Package summarylog appends summary reports to a plain-text log file.
package summarylog

import (
	"context"
	"fmt"
	"os"

	"github.com/chrissnell/humifix/internal/console"
	"github.com/chrissnell/humifix/internal/summary"
	"go.uber.org/zap"
)

// Storage writes summary blocks; header is written once, to an empty file
type Storage struct {
	path   string
	header string
	logger *zap.SugaredLogger
}

// New creates a summary log sink
func New(path, header string, logger *zap.SugaredLogger) *Storage {
	return &Storage{path: path, header: header, logger: logger}
}

// Name implements storage.Engine
func (s *Storage) Name() string { return "summarylog" }

// Path is the log file written by this sink
func (s *Storage) Path() string { return s.path }

// StoreSummary appends one report block
func (s *Storage) StoreSummary(_ context.Context, r summary.Report) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open summary log: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("could not stat summary log: %w", err)
	}

	if fi.Size() == 0 && s.header != "" {
		s.logger.Infof("creating summary log %s", s.path)
		if _, err := fmt.Fprintln(f, s.header); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(f, console.Report(r)); err != nil {
		return fmt.Errorf("could not write summary log: %w", err)
	}
	return nil
}

// Close implements storage.Engine
func (s *Storage) Close() error { return nil }
