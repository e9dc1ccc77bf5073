package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    salt TEXT NOT NULL,
    comment TEXT NULL,
    interval_minutes INTEGER NOT NULL,
    discard_first INTEGER NOT NULL,
    summary_hours REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS run_transmitters (
    run_id TEXT NOT NULL REFERENCES runs(id),
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    identification TEXT NULL,
    PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS cycles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    time TEXT NOT NULL,
    mjd REAL NOT NULL,
    ensemble_temperature REAL NULL,
    temperature_range REAL NULL,
    true_humidity REAL NULL
);

CREATE INDEX IF NOT EXISTS cycles_run_time ON cycles (run_id, time);

CREATE TABLE IF NOT EXISTS cycle_transmitters (
    cycle_id INTEGER NOT NULL REFERENCES cycles(id),
    position INTEGER NOT NULL,
    temperature REAL NULL,
    humidity_error REAL NULL,
    PRIMARY KEY (cycle_id, position)
);

CREATE TABLE IF NOT EXISTS summaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    time TEXT NOT NULL,
    sample_count INTEGER NOT NULL,
    temperature_mean REAL NULL,
    temperature_stddev REAL NULL,
    temperature_range REAL NULL,
    spread_mean REAL NULL,
    spread_stddev REAL NULL,
    spread_range REAL NULL,
    true_humidity_mean REAL NULL,
    true_humidity_stddev REAL NULL,
    true_humidity_range REAL NULL
);

CREATE TABLE IF NOT EXISTS summary_transmitters (
    summary_id INTEGER NOT NULL REFERENCES summaries(id),
    position INTEGER NOT NULL,
    temperature_mean REAL NULL,
    temperature_stddev REAL NULL,
    temperature_range REAL NULL,
    humidity_error_mean REAL NULL,
    humidity_error_stddev REAL NULL,
    humidity_error_range REAL NULL,
    PRIMARY KEY (summary_id, position)
);
`

const insertRunSQL = `INSERT INTO runs (id, started_at, salt, comment, interval_minutes, discard_first, summary_hours)
VALUES (?, ?, ?, ?, ?, ?, ?)`

const insertRunTransmitterSQL = `INSERT INTO run_transmitters (run_id, position, name, identification) VALUES (?, ?, ?, ?)`

const insertCycleSQL = `INSERT INTO cycles (run_id, time, mjd, ensemble_temperature, temperature_range, true_humidity)
VALUES (?, ?, ?, ?, ?, ?)`

const insertCycleTransmitterSQL = `INSERT INTO cycle_transmitters (cycle_id, position, temperature, humidity_error) VALUES (?, ?, ?, ?)`

const insertSummarySQL = `INSERT INTO summaries (run_id, time, sample_count,
    temperature_mean, temperature_stddev, temperature_range,
    spread_mean, spread_stddev, spread_range,
    true_humidity_mean, true_humidity_stddev, true_humidity_range)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertSummaryTransmitterSQL = `INSERT INTO summary_transmitters (summary_id, position,
    temperature_mean, temperature_stddev, temperature_range,
    humidity_error_mean, humidity_error_stddev, humidity_error_range)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
