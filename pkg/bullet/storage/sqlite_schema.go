package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the bullet database schema.
const Schema = `
-- Bullet metadata entries. Payload bytes live in the blob store; only the
-- blob reference is recorded here.
CREATE TABLE IF NOT EXISTS bullets (
    id      TEXT PRIMARY KEY,
    headers TEXT NOT NULL,
    uri     TEXT NOT NULL,
    method  TEXT NOT NULL,
    time    INTEGER NOT NULL,
    file    TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Chronological queries sort on time
CREATE INDEX IF NOT EXISTS idx_bullets_time ON bullets(time);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
