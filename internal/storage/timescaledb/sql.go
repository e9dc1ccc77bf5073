package timescaledb

const createExtensionSQL = `CREATE EXTENSION IF NOT EXISTS timescaledb CASCADE;`

const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS humifix_runs (
    id uuid PRIMARY KEY,
    started_at timestamp WITH TIME ZONE NOT NULL,
    salt text NOT NULL,
    comment text NULL,
    interval_minutes integer NOT NULL,
    discard_first integer NOT NULL,
    summary_hours float8 NOT NULL
);`

const createCyclesTableSQL = `
CREATE TABLE IF NOT EXISTS humifix_cycles (
    time timestamp WITH TIME ZONE NOT NULL,
    run_id uuid NOT NULL,
    position integer NOT NULL,
    transmitter text NOT NULL,
    ensemble_temperature float8 NULL,
    temperature_range float8 NULL,
    true_humidity float8 NULL,
    temperature float8 NULL,
    humidity_error float8 NULL
);`

const createCyclesHypertableSQL = `SELECT create_hypertable('humifix_cycles', 'time', if_not_exists => TRUE);`

const createSummariesTableSQL = `
CREATE TABLE IF NOT EXISTS humifix_summaries (
    time timestamp WITH TIME ZONE NOT NULL,
    run_id uuid NOT NULL,
    position integer NOT NULL,
    transmitter text NOT NULL,
    sample_count integer NOT NULL,
    ensemble_temperature_mean float8 NULL,
    ensemble_temperature_stddev float8 NULL,
    ensemble_temperature_range float8 NULL,
    spread_mean float8 NULL,
    true_humidity_mean float8 NULL,
    temperature_mean float8 NULL,
    temperature_stddev float8 NULL,
    temperature_range float8 NULL,
    humidity_error_mean float8 NULL,
    humidity_error_stddev float8 NULL,
    humidity_error_range float8 NULL
);`

const createSummariesHypertableSQL = `SELECT create_hypertable('humifix_summaries', 'time', if_not_exists => TRUE);`

// schema is executed in order on startup
var schema = []struct {
	name string
	sql  string
}{
	{"TimescaleDB extension", createExtensionSQL},
	{"runs table", createRunsTableSQL},
	{"cycles table", createCyclesTableSQL},
	{"cycles hypertable", createCyclesHypertableSQL},
	{"summaries table", createSummariesTableSQL},
	{"summaries hypertable", createSummariesHypertableSQL},
}
