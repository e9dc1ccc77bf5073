package timescaledb

import (
	"math"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/google/uuid"
)

// Tabler customizes the table name used by gorm
type Tabler interface {
	TableName() string
}

// RunRecord is one row of humifix_runs
type RunRecord struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StartedAt       time.Time `gorm:"column:started_at"`
	Salt            string    `gorm:"column:salt"`
	Comment         string    `gorm:"column:comment"`
	IntervalMinutes int       `gorm:"column:interval_minutes"`
	DiscardFirst    int       `gorm:"column:discard_first"`
	SummaryHours    float64   `gorm:"column:summary_hours"`
}

// TableName implements Tabler
func (RunRecord) TableName() string { return "humifix_runs" }

// CycleRecord is one transmitter's row of a cycle. Cycle-wide values repeat
// on every row so each row stands alone in a time-series query.
type CycleRecord struct {
	Time                time.Time `gorm:"column:time"`
	RunID               uuid.UUID `gorm:"column:run_id;type:uuid"`
	Position            int       `gorm:"column:position"`
	Transmitter         string    `gorm:"column:transmitter"`
	EnsembleTemperature *float64  `gorm:"column:ensemble_temperature"`
	TemperatureRange    *float64  `gorm:"column:temperature_range"`
	TrueHumidity        *float64  `gorm:"column:true_humidity"`
	Temperature         *float64  `gorm:"column:temperature"`
	HumidityError       *float64  `gorm:"column:humidity_error"`
}

// TableName implements Tabler
func (CycleRecord) TableName() string { return "humifix_cycles" }

// SummaryRecord is one transmitter's row of a summary report
type SummaryRecord struct {
	Time                      time.Time `gorm:"column:time"`
	RunID                     uuid.UUID `gorm:"column:run_id;type:uuid"`
	Position                  int       `gorm:"column:position"`
	Transmitter               string    `gorm:"column:transmitter"`
	SampleCount               int       `gorm:"column:sample_count"`
	EnsembleTemperatureMean   *float64  `gorm:"column:ensemble_temperature_mean"`
	EnsembleTemperatureStddev *float64  `gorm:"column:ensemble_temperature_stddev"`
	EnsembleTemperatureRange  *float64  `gorm:"column:ensemble_temperature_range"`
	SpreadMean                *float64  `gorm:"column:spread_mean"`
	TrueHumidityMean          *float64  `gorm:"column:true_humidity_mean"`
	TemperatureMean           *float64  `gorm:"column:temperature_mean"`
	TemperatureStddev         *float64  `gorm:"column:temperature_stddev"`
	TemperatureRange          *float64  `gorm:"column:temperature_range"`
	HumidityErrorMean         *float64  `gorm:"column:humidity_error_mean"`
	HumidityErrorStddev       *float64  `gorm:"column:humidity_error_stddev"`
	HumidityErrorRange        *float64  `gorm:"column:humidity_error_range"`
}

// TableName implements Tabler
func (SummaryRecord) TableName() string { return "humifix_summaries" }

// NewRunRecord converts a run descriptor
func NewRunRecord(run *types.Run) RunRecord {
	return RunRecord{
		ID:              run.ID,
		StartedAt:       run.Start,
		Salt:            run.Salt.String(),
		Comment:         run.Comment,
		IntervalMinutes: run.IntervalMinutes,
		DiscardFirst:    run.DiscardFirst,
		SummaryHours:    run.SummaryHours,
	}
}

// CycleRecords flattens a cycle into one record per transmitter
func CycleRecords(runID uuid.UUID, names []string, c *calibration.Cycle) []CycleRecord {
	records := make([]CycleRecord, c.Size())
	for i, t := range c.Transmitters() {
		records[i] = CycleRecord{
			Time:                c.Timestamp(),
			RunID:               runID,
			Position:            i + 1,
			Transmitter:         names[i],
			EnsembleTemperature: nullable(c.EnsembleTemperature()),
			TemperatureRange:    nullable(c.EnsembleTemperatureRange()),
			TrueHumidity:        nullable(c.TrueHumidity()),
			Temperature:         nullable(t.Temperature),
			HumidityError:       nullable(t.HumidityError),
		}
	}
	return records
}

// SummaryRecords flattens a report into one record per transmitter
func SummaryRecords(runID uuid.UUID, names []string, r summary.Report) []SummaryRecord {
	records := make([]SummaryRecord, len(r.Transmitters))
	for i, t := range r.Transmitters {
		records[i] = SummaryRecord{
			Time:                      r.LastCycle,
			RunID:                     runID,
			Position:                  i + 1,
			Transmitter:               names[i],
			SampleCount:               r.SampleCount,
			EnsembleTemperatureMean:   nullable(r.EnsembleTemperature.Mean),
			EnsembleTemperatureStddev: nullable(r.EnsembleTemperature.StandardDeviation),
			EnsembleTemperatureRange:  nullable(r.EnsembleTemperature.Range),
			SpreadMean:                nullable(r.TemperatureSpread.Mean),
			TrueHumidityMean:          nullable(r.TrueHumidity.Mean),
			TemperatureMean:           nullable(t.Temperature.Mean),
			TemperatureStddev:         nullable(t.Temperature.StandardDeviation),
			TemperatureRange:          nullable(t.Temperature.Range),
			HumidityErrorMean:         nullable(t.HumidityError.Mean),
			HumidityErrorStddev:       nullable(t.HumidityError.StandardDeviation),
			HumidityErrorRange:        nullable(t.HumidityError.Range),
		}
	}
	return records
}

// nullable maps NaN to nil so it is stored as NULL
func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
