package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	// CurrentSchemaVersion tracks the database schema version
	CurrentSchemaVersion = "1.1.0"
)

// Migration represents a database schema migration
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
	{
		Version: "1.1.0",
		Up:      migrationV11Up,
		Down:    migrationV11Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Datasets group the source files ingested together
CREATE TABLE IF NOT EXISTS datasets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    root_path TEXT,
    total_files INTEGER DEFAULT 0,
    total_records INTEGER DEFAULT 0,
    last_ingested_at TIMESTAMP,
    last_linked_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Extractor output files
CREATE TABLE IF NOT EXISTS source_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset_id INTEGER NOT NULL,
    file_path TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT '',
    content_hash BLOB NOT NULL,
    mod_time TIMESTAMP,
    size_bytes INTEGER,
    record_count INTEGER DEFAULT 0,
    rejected_count INTEGER DEFAULT 0,
    parse_error TEXT,
    last_ingested_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE,
    UNIQUE(dataset_id, file_path)
);

CREATE INDEX IF NOT EXISTS idx_source_files_dataset ON source_files(dataset_id);
CREATE INDEX IF NOT EXISTS idx_source_files_hash ON source_files(content_hash);

-- Corporate registry profiles
CREATE TABLE IF NOT EXISTS registry_entities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    entity_number TEXT,
    entity_name TEXT NOT NULL,
    registered_address TEXT,
    mailing_address TEXT,
    payload TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (file_id) REFERENCES source_files(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_registry_file ON registry_entities(file_id);
CREATE INDEX IF NOT EXISTS idx_registry_number ON registry_entities(entity_number);

-- Directors, officers and shareholders
CREATE TABLE IF NOT EXISTS registry_people (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    role TEXT,
    FOREIGN KEY (entity_id) REFERENCES registry_entities(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_people_entity ON registry_people(entity_id);
CREATE INDEX IF NOT EXISTS idx_people_name ON registry_people(name);

-- Property transfers
CREATE TABLE IF NOT EXISTS transfers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    roll_number TEXT,
    address TEXT,
    vendor TEXT,
    purchaser TEXT,
    sales_date TEXT,
    sales_price REAL,
    payload TEXT NOT NULL,
    FOREIGN KEY (file_id) REFERENCES source_files(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transfers_file ON transfers(file_id);

-- Building permits
CREATE TABLE IF NOT EXISTS permits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    permit_number TEXT,
    issue_date TEXT,
    address TEXT,
    owner TEXT,
    value REAL,
    payload TEXT NOT NULL,
    FOREIGN KEY (file_id) REFERENCES source_files(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_permits_file ON permits(file_id);
`

const migrationV1Down = `
DROP TABLE IF EXISTS permits;
DROP TABLE IF EXISTS transfers;
DROP TABLE IF EXISTS registry_people;
DROP TABLE IF EXISTS registry_entities;
DROP TABLE IF EXISTS source_files;
DROP TABLE IF EXISTS datasets;
DROP TABLE IF EXISTS schema_version;
`

const migrationV11Up = `
-- Persisted cross-reference output
CREATE TABLE IF NOT EXISTS entity_links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset_id INTEGER NOT NULL,
    link_kind TEXT NOT NULL,
    position INTEGER NOT NULL,
    left_name TEXT NOT NULL,
    left_source TEXT NOT NULL,
    left_metadata TEXT,
    matched_name TEXT NOT NULL,
    matched_source TEXT NOT NULL,
    score REAL NOT NULL CHECK (score >= 0 AND score <= 1),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_links_dataset ON entity_links(dataset_id, link_kind);
CREATE INDEX IF NOT EXISTS idx_links_score ON entity_links(score);
`

const migrationV11Down = `
DROP TABLE IF EXISTS entity_links;
`

// ApplyMigrations runs all pending migrations, each in its own transaction
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	currentVersion, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, migration := range AllMigrations {
		migrationVersion, err := semver.NewVersion(migration.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", migration.Version, err)
		}
		if !currentVersion.LessThan(migrationVersion) {
			continue // Already applied
		}

		if err := applyMigration(ctx, db, migration); err != nil {
			return err
		}
		currentVersion = migrationVersion
	}

	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", migration.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migration.Up); err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version, or 0.0.0
// for an empty database
func SchemaVersion(ctx context.Context, db *sql.DB) (string, error) {
	v, err := schemaVersion(ctx, db)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func schemaVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	var tableName string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)
	if errors.Is(err, sql.ErrNoRows) {
		return semver.MustParse("0.0.0"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check schema_version table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_version: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// applied_at has one-second resolution, so compare versions rather than
	// trusting insertion time
	current := semver.MustParse("0.0.0")
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("invalid schema version %s: %w", s, err)
		}
		if v.GreaterThan(current) {
			current = v
		}
	}
	return current, rows.Err()
}

// RollbackMigration rolls back the most recent migration
func RollbackMigration(ctx context.Context, db *sql.DB) error {
	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}
	if current.Equal(semver.MustParse("0.0.0")) {
		return errors.New("no migrations to rollback")
	}

	var migration *Migration
	for i := range AllMigrations {
		v, err := semver.NewVersion(AllMigrations[i].Version)
		if err == nil && v.Equal(current) {
			migration = &AllMigrations[i]
			break
		}
	}
	if migration == nil {
		return fmt.Errorf("migration %s not found", current)
	}

	if _, err := db.ExecContext(ctx, migration.Down); err != nil {
		return fmt.Errorf("failed to rollback migration %s: %w", migration.Version, err)
	}

	// The first migration drops schema_version itself
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version WHERE version = ?", migration.Version); err != nil && migration.Version != AllMigrations[0].Version {
		return fmt.Errorf("failed to remove migration record %s: %w", migration.Version, err)
	}

	return nil
}
