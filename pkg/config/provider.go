package config

import (
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration of a calibration run
type ConfigData struct {
	Salt         string            `json:"salt"`
	Comment      string            `json:"comment,omitempty"`
	Output       OutputData        `json:"output"`
	Logging      LoggingData       `json:"logging"`
	Transmitters []TransmitterData `json:"transmitters"`
	Storage      StorageData       `json:"storage,omitempty"`
	RESTServer   *RESTServerData   `json:"rest,omitempty"`
	Log          LogData           `json:"log,omitempty"`
}

// OutputData controls the names and locations of the data and summary files
type OutputData struct {
	Directory  string `json:"directory,omitempty"`
	Prefix     string `json:"prefix,omitempty"`
	DisableCSV bool   `json:"disable_csv,omitempty"`
	DisableLog bool   `json:"disable_log,omitempty"`
}

// LoggingData holds the cadence of calibration cycles and summaries
type LoggingData struct {
	IntervalMinutes  int           `json:"interval_minutes"`
	ToleranceSeconds int           `json:"tolerance_seconds"`
	DiscardFirst     int           `json:"discard_first"`
	SummaryHours     float64       `json:"summary_hours"`
	PollInterval     time.Duration `json:"poll_interval"`
}

// TransmitterData holds configuration specific to one humidity transmitter
type TransmitterData struct {
	Name         string        `json:"name"`
	Type         string        `json:"type,omitempty"`
	SerialDevice string        `json:"serial_device,omitempty"`
	Baud         int           `json:"baud,omitempty"`
	Query        string        `json:"query,omitempty"`
	IDQuery      string        `json:"id_query,omitempty"`
	ReadTimeout  time.Duration `json:"read_timeout,omitempty"`
	Simulator    SimulatorData `json:"simulator,omitempty"`
}

// SimulatorData describes a simulated transmitter
type SimulatorData struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Offset      float64 `json:"offset"`
	Noise       float64 `json:"noise"`
	FailureRate float64 `json:"failure_rate"`
	Seed        int64   `json:"seed,omitempty"`
}

// StorageData holds the configuration for the optional database backends
type StorageData struct {
	SQLite      *SQLiteData      `json:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
}

type SQLiteData struct {
	Path string `json:"path"`
}

type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// RESTServerData configures the read-only status API
type RESTServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}

// LogData configures the application log
type LogData struct {
	Debug      bool   `json:"debug,omitempty"`
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
}

const (
	TransmitterTypeSerial    = "serial"
	TransmitterTypeSimulator = "simulator"
)

// Defaults returns a configuration carrying every default value
func Defaults() *ConfigData {
	return &ConfigData{
		Comment: "---",
		Output: OutputData{
			Directory: ".",
			Prefix:    "HumFix",
		},
		Logging: LoggingData{
			IntervalMinutes:  5,
			ToleranceSeconds: 4,
			DiscardFirst:     4,
			SummaryHours:     3,
			PollInterval:     900 * time.Millisecond,
		},
	}
}

// ApplyDefaults fills zero-valued fields with their defaults. DiscardFirst is
// left alone since zero is a meaningful value; YAML loading handles it.
func (c *ConfigData) ApplyDefaults() {
	d := Defaults()
	if c.Comment == "" {
		c.Comment = d.Comment
	}
	if c.Output.Directory == "" {
		c.Output.Directory = d.Output.Directory
	}
	if c.Output.Prefix == "" {
		c.Output.Prefix = d.Output.Prefix
	}
	if c.Logging.IntervalMinutes == 0 {
		c.Logging.IntervalMinutes = d.Logging.IntervalMinutes
	}
	if c.Logging.ToleranceSeconds == 0 {
		c.Logging.ToleranceSeconds = d.Logging.ToleranceSeconds
	}
	if c.Logging.SummaryHours == 0 {
		c.Logging.SummaryHours = d.Logging.SummaryHours
	}
	if c.Logging.PollInterval == 0 {
		c.Logging.PollInterval = d.Logging.PollInterval
	}
	for i := range c.Transmitters {
		t := &c.Transmitters[i]
		if t.Type == "" {
			t.Type = TransmitterTypeSerial
		}
		if t.Name == "" {
			t.Name = t.SerialDevice
		}
		if t.Type == TransmitterTypeSerial {
			if t.Baud == 0 {
				t.Baud = 9600
			}
			if t.Query == "" {
				t.Query = "MV\r"
			}
			if t.ReadTimeout == 0 {
				t.ReadTimeout = 2 * time.Second
			}
		}
	}
	if c.RESTServer != nil && c.RESTServer.Port == 0 {
		c.RESTServer.Port = 8080
	}
}

// StaticProvider serves a configuration assembled in memory, e.g. from
// command line flags
type StaticProvider struct {
	config *ConfigData
}

// NewStaticProvider wraps c in a ConfigProvider
func NewStaticProvider(c *ConfigData) *StaticProvider {
	return &StaticProvider{config: c}
}

// LoadConfig returns the wrapped configuration
func (s *StaticProvider) LoadConfig() (*ConfigData, error) {
	return s.config, nil
}

// IsReadOnly always returns true
func (s *StaticProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op
func (s *StaticProvider) Close() error {
	return nil
}
