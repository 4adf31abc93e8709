// Package storage provides SQLite-based persistence for ingested civic
// records and the links found between them.
//
// # Database Schema
//
// Tables:
//   - datasets: named groups of ingested files
//   - source_files: extractor output files and their SHA-256 hashes
//   - registry_entities, registry_people: corporate registry profiles
//   - transfers: property transfer rows
//   - permits: building permits
//   - entity_links: persisted cross-reference output (company, person, address)
//
// Every record row keeps the full record as a JSON payload alongside the key
// columns, so LoadRecords returns exactly what was ingested.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("civiclink.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	ds := &storage.Dataset{Name: "saskatoon-2024", RootPath: "/data/saskatoon"}
//	if err := db.CreateDataset(ctx, ds); err != nil {
//	    return err
//	}
//
// # Transactions
//
// Use transactions for atomic operations:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	if err := tx.UpsertSourceFile(ctx, file); err != nil {
//	    return err
//	}
//	if err := tx.ReplaceRecords(ctx, file.ID, parsed); err != nil {
//	    return err
//	}
//	return tx.Commit()
//
// # Incremental Updates
//
// Source files are tracked by content hash. An ingest that finds the stored
// hash equal to the file's current hash skips it; otherwise ReplaceRecords
// swaps the file's records in one statement group.
//
// # Build Tags
//
// Pure Go build (default):
//
//	CGO_ENABLED=0 go build ./...    // modernc.org/sqlite
//
// CGO build:
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...    // github.com/mattn/go-sqlite3
//
// # Migrations
//
// Schema versions are semantic versions applied in order by ApplyMigrations,
// each in its own transaction and recorded in schema_version.
package storage
