package types

import (
	"time"

	"github.com/chrissnell/humifix/pkg/salt"
	"github.com/google/uuid"
)

// Run describes one calibration run; every persisted record carries its ID
type Run struct {
	ID              uuid.UUID
	Start           time.Time
	Salt            salt.Salt
	Comment         string
	IntervalMinutes int
	DiscardFirst    int
	SummaryHours    float64
	DataFile        string
	SummaryFile     string
	Transmitters    []TransmitterInfo
}

// TransmitterInfo names a transmitter of the run
type TransmitterInfo struct {
	Name           string
	Identification string
}

// TransmitterNames returns the transmitter names in order
func (r *Run) TransmitterNames() []string {
	names := make([]string, len(r.Transmitters))
	for i, t := range r.Transmitters {
		names[i] = t.Name
	}
	return names
}
