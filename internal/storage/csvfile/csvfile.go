// Package csvfile appends every kept calibration cycle to a CSV data file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/mjd"
	"go.uber.org/zap"
)

// Storage writes cycles to a CSV file. The file is opened for every record so
// that it can be copied or inspected while a run is in progress.
type Storage struct {
	path   string
	names  []string
	logger *zap.SugaredLogger
}

// New creates a CSV sink for run writing to path
func New(path string, run *types.Run, logger *zap.SugaredLogger) *Storage {
	return &Storage{
		path:   path,
		names:  run.TransmitterNames(),
		logger: logger,
	}
}

// Name implements storage.Engine
func (s *Storage) Name() string { return "csv" }

// Path is the data file written by this sink
func (s *Storage) Path() string { return s.path }

// Header is the column header row for the given transmitter names
func Header(names []string) []string {
	row := []string{"MJD", "ensemble temperature (°C)", "temperature range (°C)", "true humidity (%)"}
	for _, n := range names {
		row = append(row, fmt.Sprintf("temperature for %s (°C)", n))
	}
	for _, n := range names {
		row = append(row, fmt.Sprintf("humidity error for %s (%%)", n))
	}
	return row
}

// Record converts a cycle into a CSV row
func Record(c *calibration.Cycle) []string {
	row := []string{
		strconv.FormatFloat(mjd.FromTime(c.Timestamp()), 'f', 5, 64),
		number(c.EnsembleTemperature()),
		number(c.EnsembleTemperatureRange()),
		number(c.TrueHumidity()),
	}
	for _, t := range c.Temperatures() {
		row = append(row, number(t))
	}
	for _, e := range c.HumidityErrors() {
		row = append(row, number(e))
	}
	return row
}

// StoreCycle appends one row, writing the header first if the file is empty
func (s *Storage) StoreCycle(_ context.Context, c *calibration.Cycle) error {
	if c.Size() != len(s.names) {
		return fmt.Errorf("cycle has %d transmitters, data file has %d", c.Size(), len(s.names))
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open data file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("could not stat data file: %w", err)
	}

	w := csv.NewWriter(f)
	if fi.Size() == 0 {
		s.logger.Infof("creating data file %s", s.path)
		if err := w.Write(Header(s.names)); err != nil {
			return err
		}
	}
	if err := w.Write(Record(c)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not write data file: %w", err)
	}
	return nil
}

// Close implements storage.Engine; the file is not held open between writes.
func (s *Storage) Close() error { return nil }

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
