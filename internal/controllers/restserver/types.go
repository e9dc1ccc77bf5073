package restserver

// Numeric fields are pointers: an undefined (NaN) value is rendered as null.

// StatusResponse is returned by /status
type StatusResponse struct {
	RunID         string              `json:"run_id"`
	Started       int64               `json:"started"`
	Now           int64               `json:"now"`
	Salt          string              `json:"salt"`
	Comment       string              `json:"comment"`
	Interval      int                 `json:"interval_minutes"`
	DiscardFirst  int                 `json:"discard_first"`
	SummaryHours  float64             `json:"summary_hours"`
	Transmitters  []TransmitterInfo   `json:"transmitters"`
	CyclesSeen    int                 `json:"cycles_seen"`
	WarmingUp     bool                `json:"warming_up"`
	PeriodCount   int                 `json:"period_sample_count"`
	StorageHealth []StorageHealthInfo `json:"storage_health,omitempty"`
}

// TransmitterInfo identifies a transmitter
type TransmitterInfo struct {
	Position       int    `json:"position"`
	Name           string `json:"name"`
	Identification string `json:"identification,omitempty"`
}

// StorageHealthInfo is the last health check of a storage engine
type StorageHealthInfo struct {
	Engine    string `json:"engine"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	LastCheck int64  `json:"last_check"`
}

// CycleResponse is returned by /cycles/latest
type CycleResponse struct {
	Number              int                  `json:"number"`
	Discarded           bool                 `json:"discarded"`
	Timestamp           int64                `json:"ts"`
	MJD                 float64              `json:"mjd"`
	Salt                string               `json:"salt"`
	EnsembleTemperature *float64             `json:"ensemble_temperature"`
	TemperatureRange    *float64             `json:"temperature_range"`
	TrueHumidity        *float64             `json:"true_humidity"`
	Transmitters        []TransmitterReading `json:"transmitters"`
}

// TransmitterReading is one transmitter's share of a cycle
type TransmitterReading struct {
	Position      int      `json:"position"`
	Name          string   `json:"name"`
	Temperature   *float64 `json:"temperature"`
	HumidityError *float64 `json:"humidity_error"`
}

// Statistic is the JSON form of a running statistic summary
type Statistic struct {
	Count             int      `json:"n"`
	Mean              *float64 `json:"mean"`
	StandardDeviation *float64 `json:"stddev"`
	Range             *float64 `json:"range"`
	Min               *float64 `json:"min"`
	Max               *float64 `json:"max"`
}

// SummaryResponse is returned by /summaries/latest
type SummaryResponse struct {
	Timestamp           int64                `json:"ts"`
	MJD                 float64              `json:"mjd"`
	SampleCount         int                  `json:"n"`
	EnsembleTemperature Statistic            `json:"ensemble_temperature"`
	TemperatureSpread   Statistic            `json:"temperature_spread"`
	TrueHumidity        Statistic            `json:"true_humidity"`
	Transmitters        []TransmitterSummary `json:"transmitters"`
}

// TransmitterSummary is one transmitter's share of a summary report
type TransmitterSummary struct {
	Position      int       `json:"position"`
	Name          string    `json:"name"`
	Temperature   Statistic `json:"temperature"`
	HumidityError Statistic `json:"humidity_error"`
}
