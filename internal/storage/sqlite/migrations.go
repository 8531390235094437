package sqlite

// schema contains the database schema DDL.
const schema = `
-- Key-value records (reading collection, dismissed alerts)
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
