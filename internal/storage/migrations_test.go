package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRawDB(t *testing.T) *sql.DB {
	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()

	require.NoError(t, ApplyMigrations(ctx, db))

	version, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	tables := []string{
		"schema_version", "datasets", "source_files", "registry_entities",
		"registry_people", "transfers", "permits", "entity_links",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()

	require.NoError(t, ApplyMigrations(ctx, db))
	require.NoError(t, ApplyMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_version").Scan(&count))
	assert.Equal(t, len(AllMigrations), count)
}

func TestSchemaVersionEmpty(t *testing.T) {
	db := openRawDB(t)

	version, err := SchemaVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", version)
}

func TestRollbackMigration(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()
	require.NoError(t, ApplyMigrations(ctx, db))

	require.NoError(t, RollbackMigration(ctx, db))
	version, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)

	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='entity_links'").Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Migrating again restores the dropped table
	require.NoError(t, ApplyMigrations(ctx, db))
	version, err = SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	// Rolling back everything leaves an empty database
	require.NoError(t, RollbackMigration(ctx, db))
	require.NoError(t, RollbackMigration(ctx, db))
	version, err = SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", version)

	assert.Error(t, RollbackMigration(ctx, db))
}
