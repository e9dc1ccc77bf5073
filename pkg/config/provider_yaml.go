package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}
	return ParseYAML(cfgFile)
}

// ParseYAML converts YAML document bytes into ConfigData with defaults applied
func ParseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Salt:    yamlConfig.Salt,
		Comment: yamlConfig.Comment,
		Output: OutputData{
			Directory:  yamlConfig.Output.Directory,
			Prefix:     yamlConfig.Output.Prefix,
			DisableCSV: yamlConfig.Output.DisableCSV,
			DisableLog: yamlConfig.Output.DisableLog,
		},
		Logging: LoggingData{
			IntervalMinutes:  yamlConfig.Logging.IntervalMinutes,
			ToleranceSeconds: yamlConfig.Logging.ToleranceSeconds,
			SummaryHours:     yamlConfig.Logging.SummaryHours,
		},
		Transmitters: make([]TransmitterData, len(yamlConfig.Transmitters)),
		Log: LogData{
			Debug:      yamlConfig.Log.Debug,
			File:       yamlConfig.Log.File,
			MaxSizeMB:  yamlConfig.Log.MaxSizeMB,
			MaxBackups: yamlConfig.Log.MaxBackups,
		},
	}

	// An explicit zero disables the warm-up discard
	if yamlConfig.Logging.DiscardFirst != nil {
		config.Logging.DiscardFirst = *yamlConfig.Logging.DiscardFirst
	} else {
		config.Logging.DiscardFirst = Defaults().Logging.DiscardFirst
	}

	pollInterval, err := parseDuration(yamlConfig.Logging.PollInterval)
	if err != nil {
		return nil, fmt.Errorf("logging.poll-interval: %w", err)
	}
	config.Logging.PollInterval = pollInterval

	// Convert transmitters
	for i, tm := range yamlConfig.Transmitters {
		readTimeout, err := parseDuration(tm.ReadTimeout)
		if err != nil {
			return nil, fmt.Errorf("transmitter [%s] read-timeout: %w", tm.Name, err)
		}
		config.Transmitters[i] = TransmitterData{
			Name:         tm.Name,
			Type:         tm.Type,
			SerialDevice: tm.SerialDevice,
			Baud:         tm.Baud,
			Query:        tm.Query,
			IDQuery:      tm.IDQuery,
			ReadTimeout:  readTimeout,
			Simulator: SimulatorData{
				Temperature: tm.Simulator.Temperature,
				Humidity:    tm.Simulator.Humidity,
				Offset:      tm.Simulator.Offset,
				Noise:       tm.Simulator.Noise,
				FailureRate: tm.Simulator.FailureRate,
				Seed:        tm.Simulator.Seed,
			},
		}
	}

	// Convert storage
	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{
			Path: yamlConfig.Storage.SQLite.Path,
		}
	}
	if yamlConfig.Storage.TimescaleDB != nil {
		config.Storage.TimescaleDB = &TimescaleDBData{
			ConnectionString: yamlConfig.Storage.TimescaleDB.ConnectionString,
		}
	}

	if yamlConfig.RESTServer != nil {
		config.RESTServer = &RESTServerData{
			ListenAddr: yamlConfig.RESTServer.ListenAddr,
			Port:       yamlConfig.RESTServer.Port,
		}
	}

	config.ApplyDefaults()
	return config, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// IsReadOnly returns true since YAML files are read-only in this implementation
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags
type ConfigYAML struct {
	Salt         string            `yaml:"salt"`
	Comment      string            `yaml:"comment,omitempty"`
	Output       OutputYAML        `yaml:"output,omitempty"`
	Logging      LoggingYAML       `yaml:"logging,omitempty"`
	Transmitters []TransmitterYAML `yaml:"transmitters"`
	Storage      StorageYAML       `yaml:"storage,omitempty"`
	RESTServer   *RESTServerYAML   `yaml:"rest,omitempty"`
	Log          LogYAML           `yaml:"log,omitempty"`
}

type OutputYAML struct {
	Directory  string `yaml:"directory,omitempty"`
	Prefix     string `yaml:"prefix,omitempty"`
	DisableCSV bool   `yaml:"disable-csv,omitempty"`
	DisableLog bool   `yaml:"disable-log,omitempty"`
}

type LoggingYAML struct {
	IntervalMinutes  int     `yaml:"interval-minutes,omitempty"`
	ToleranceSeconds int     `yaml:"tolerance-seconds,omitempty"`
	DiscardFirst     *int    `yaml:"discard-first,omitempty"`
	SummaryHours     float64 `yaml:"summary-hours,omitempty"`
	PollInterval     string  `yaml:"poll-interval,omitempty"`
}

type TransmitterYAML struct {
	Name         string        `yaml:"name"`
	Type         string        `yaml:"type,omitempty"`
	SerialDevice string        `yaml:"serialdevice,omitempty"`
	Baud         int           `yaml:"baud,omitempty"`
	Query        string        `yaml:"query,omitempty"`
	IDQuery      string        `yaml:"id-query,omitempty"`
	ReadTimeout  string        `yaml:"read-timeout,omitempty"`
	Simulator    SimulatorYAML `yaml:"simulator,omitempty"`
}

type SimulatorYAML struct {
	Temperature float64 `yaml:"temperature"`
	Humidity    float64 `yaml:"humidity"`
	Offset      float64 `yaml:"offset,omitempty"`
	Noise       float64 `yaml:"noise,omitempty"`
	FailureRate float64 `yaml:"failure-rate,omitempty"`
	Seed        int64   `yaml:"seed,omitempty"`
}

type StorageYAML struct {
	SQLite      *SQLiteYAML      `yaml:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBYAML `yaml:"timescaledb,omitempty"`
}

type SQLiteYAML struct {
	Path string `yaml:"path"`
}

type TimescaleDBYAML struct {
	ConnectionString string `yaml:"connection-string"`
}

type RESTServerYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
}

type LogYAML struct {
	Debug      bool   `yaml:"debug,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max-size-mb,omitempty"`
	MaxBackups int    `yaml:"max-backups,omitempty"`
}
