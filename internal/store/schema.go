package store

// Schema defines the flight database schema. Timestamps are unix
// seconds; a flight's begin is derived as last_ts - duration.
const Schema = `
CREATE TABLE IF NOT EXISTS flights (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	last_ts INTEGER NOT NULL,
	duration INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_flights_last_ts ON flights(last_ts);
`
