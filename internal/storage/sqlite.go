package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/civiclink/internal/records"
	"github.com/dshills/civiclink/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Single writer; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// isUniqueViolation reports a UNIQUE constraint failure from either driver
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Dataset operations

const datasetColumns = `id, name, root_path, total_files, total_records,
	last_ingested_at, last_linked_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDataset(row rowScanner) (*Dataset, error) {
	var d Dataset
	var rootPath sql.NullString
	var ingested, linked sql.NullTime
	err := row.Scan(&d.ID, &d.Name, &rootPath, &d.TotalFiles, &d.TotalRecords,
		&ingested, &linked, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.RootPath = rootPath.String
	if ingested.Valid {
		d.LastIngestedAt = ingested.Time
	}
	if linked.Valid {
		d.LastLinkedAt = linked.Time
	}
	return &d, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func (s *SQLiteStorage) createDatasetWithQuerier(ctx context.Context, q querier, dataset *Dataset) error {
	query := `
		INSERT INTO datasets (name, root_path, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query, dataset.Name, dataset.RootPath, now, now)
	if isUniqueViolation(err) {
		return fmt.Errorf("dataset %q: %w", dataset.Name, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	dataset.ID = id
	dataset.CreatedAt = now
	dataset.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateDataset(ctx context.Context, dataset *Dataset) error {
	return s.createDatasetWithQuerier(ctx, s.querier(), dataset)
}

func (s *SQLiteStorage) getDatasetWithQuerier(ctx context.Context, q querier, name string) (*Dataset, error) {
	row := q.QueryRowContext(ctx, `SELECT `+datasetColumns+` FROM datasets WHERE name = ?`, name)
	d, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

func (s *SQLiteStorage) GetDataset(ctx context.Context, name string) (*Dataset, error) {
	return s.getDatasetWithQuerier(ctx, s.querier(), name)
}

func (s *SQLiteStorage) getDatasetByIDWithQuerier(ctx context.Context, q querier, datasetID int64) (*Dataset, error) {
	row := q.QueryRowContext(ctx, `SELECT `+datasetColumns+` FROM datasets WHERE id = ?`, datasetID)
	d, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

func (s *SQLiteStorage) GetDatasetByID(ctx context.Context, datasetID int64) (*Dataset, error) {
	return s.getDatasetByIDWithQuerier(ctx, s.querier(), datasetID)
}

func (s *SQLiteStorage) updateDatasetWithQuerier(ctx context.Context, q querier, dataset *Dataset) error {
	query := `
		UPDATE datasets
		SET root_path = ?, total_files = ?, total_records = ?,
		    last_ingested_at = ?, last_linked_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		dataset.RootPath, dataset.TotalFiles, dataset.TotalRecords,
		nullTime(dataset.LastIngestedAt), nullTime(dataset.LastLinkedAt), now, dataset.ID)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	dataset.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateDataset(ctx context.Context, dataset *Dataset) error {
	return s.updateDatasetWithQuerier(ctx, s.querier(), dataset)
}

func (s *SQLiteStorage) listDatasetsWithQuerier(ctx context.Context, q querier) ([]*Dataset, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+datasetColumns+` FROM datasets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	datasets := make([]*Dataset, 0)
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

func (s *SQLiteStorage) ListDatasets(ctx context.Context) ([]*Dataset, error) {
	return s.listDatasetsWithQuerier(ctx, s.querier())
}

// Source file operations

const sourceFileColumns = `id, dataset_id, file_path, kind, content_hash, mod_time, size_bytes,
	record_count, rejected_count, parse_error, last_ingested_at, created_at, updated_at`

func scanSourceFile(row rowScanner) (*SourceFile, error) {
	var f SourceFile
	var kind string
	var hash []byte
	var modTime, ingested sql.NullTime
	var parseError sql.NullString
	err := row.Scan(&f.ID, &f.DatasetID, &f.FilePath, &kind, &hash, &modTime, &f.SizeBytes,
		&f.RecordCount, &f.RejectedCount, &parseError, &ingested, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Kind = types.Source(kind)
	copy(f.ContentHash[:], hash)
	if modTime.Valid {
		f.ModTime = modTime.Time
	}
	if ingested.Valid {
		f.LastIngestedAt = ingested.Time
	}
	if parseError.Valid {
		f.ParseError = &parseError.String
	}
	return &f, nil
}

func (s *SQLiteStorage) upsertSourceFileWithQuerier(ctx context.Context, q querier, file *SourceFile) error {
	query := `
		INSERT INTO source_files (dataset_id, file_path, kind, content_hash, mod_time, size_bytes,
			record_count, rejected_count, parse_error, last_ingested_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(dataset_id, file_path) DO UPDATE SET
			kind = excluded.kind,
			content_hash = excluded.content_hash,
			mod_time = excluded.mod_time,
			size_bytes = excluded.size_bytes,
			record_count = excluded.record_count,
			rejected_count = excluded.rejected_count,
			parse_error = excluded.parse_error,
			last_ingested_at = excluded.last_ingested_at,
			updated_at = excluded.updated_at
		RETURNING id
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		file.DatasetID, file.FilePath, string(file.Kind), file.ContentHash[:],
		nullTime(file.ModTime), file.SizeBytes, file.RecordCount, file.RejectedCount,
		file.ParseError, now, now, now).Scan(&file.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert source file: %w", err)
	}

	file.LastIngestedAt = now
	file.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertSourceFile(ctx context.Context, file *SourceFile) error {
	return s.upsertSourceFileWithQuerier(ctx, s.querier(), file)
}

func (s *SQLiteStorage) getSourceFileWithQuerier(ctx context.Context, q querier, datasetID int64, filePath string) (*SourceFile, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+sourceFileColumns+` FROM source_files WHERE dataset_id = ? AND file_path = ?`,
		datasetID, filePath)
	f, err := scanSourceFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *SQLiteStorage) GetSourceFile(ctx context.Context, datasetID int64, filePath string) (*SourceFile, error) {
	return s.getSourceFileWithQuerier(ctx, s.querier(), datasetID, filePath)
}

func (s *SQLiteStorage) listSourceFilesWithQuerier(ctx context.Context, q querier, datasetID int64) ([]*SourceFile, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+sourceFileColumns+` FROM source_files WHERE dataset_id = ? ORDER BY file_path`,
		datasetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make([]*SourceFile, 0)
	for rows.Next() {
		f, err := scanSourceFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *SQLiteStorage) ListSourceFiles(ctx context.Context, datasetID int64) ([]*SourceFile, error) {
	return s.listSourceFilesWithQuerier(ctx, s.querier(), datasetID)
}

func (s *SQLiteStorage) deleteSourceFileWithQuerier(ctx context.Context, q querier, fileID int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM source_files WHERE id = ?`, fileID)
	return err
}

func (s *SQLiteStorage) DeleteSourceFile(ctx context.Context, fileID int64) error {
	return s.deleteSourceFileWithQuerier(ctx, s.querier(), fileID)
}

// Record operations

// replaceRecordsWithQuerier deletes the file's previous records and inserts
// the accepted records of result. The full record is kept as a JSON payload;
// the key columns exist for querying.
func (s *SQLiteStorage) replaceRecordsWithQuerier(ctx context.Context, q querier, fileID int64, result *records.ParseResult) error {
	for _, table := range []string{"registry_entities", "transfers", "permits"} {
		if _, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE file_id = ?`, fileID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range result.Registry {
		if err := insertRegistryEntity(ctx, q, fileID, i, &result.Registry[i]); err != nil {
			return err
		}
	}
	for i := range result.Transfers {
		t := &result.Transfers[i]
		payload, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode transfer: %w", err)
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO transfers (file_id, position, roll_number, address, vendor, purchaser, sales_date, sales_price, payload)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fileID, i, t.RollNumber.String(), t.Address.String(), t.Vendor.String(), t.Purchaser.String(),
			t.SalesDate.String(), t.SalesPrice, string(payload))
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}
	for i := range result.Permits {
		p := &result.Permits[i]
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode permit: %w", err)
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO permits (file_id, position, permit_number, issue_date, address, owner, value, payload)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			fileID, i, p.PermitNumber.String(), p.IssueDate.String(), p.Address.String(), p.Owner.String(),
			p.Value, string(payload))
		if err != nil {
			return fmt.Errorf("failed to insert permit: %w", err)
		}
	}
	return nil
}

func insertRegistryEntity(ctx context.Context, q querier, fileID int64, position int, r *records.RegistryEntity) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode registry entity: %w", err)
	}

	var entityID int64
	err = q.QueryRowContext(ctx, `
		INSERT INTO registry_entities (file_id, position, entity_number, entity_name, registered_address, mailing_address, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		fileID, position, r.EntityNumber.String(), r.EntityName.String(),
		r.RegisteredAddress.String(), r.MailingAddress.String(), string(payload)).Scan(&entityID)
	if err != nil {
		return fmt.Errorf("failed to insert registry entity: %w", err)
	}

	for _, p := range r.People() {
		if p.Name.String() == "" {
			continue
		}
		_, err := q.ExecContext(ctx,
			`INSERT INTO registry_people (entity_id, name, role) VALUES (?, ?, ?)`,
			entityID, p.Name.String(), p.Role.String())
		if err != nil {
			return fmt.Errorf("failed to insert registry person: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) ReplaceRecords(ctx context.Context, fileID int64, result *records.ParseResult) error {
	return s.replaceRecordsWithQuerier(ctx, s.querier(), fileID, result)
}

// loadRecordsWithQuerier decodes every record of a dataset in file path,
// then document, order
func (s *SQLiteStorage) loadRecordsWithQuerier(ctx context.Context, q querier, datasetID int64) (*RecordSet, error) {
	set := &RecordSet{}

	err := loadPayloads(ctx, q, "registry_entities", datasetID, func(payload []byte) error {
		var r records.RegistryEntity
		if err := json.Unmarshal(payload, &r); err != nil {
			return err
		}
		set.Registry = append(set.Registry, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = loadPayloads(ctx, q, "transfers", datasetID, func(payload []byte) error {
		var t records.TransferRecord
		if err := json.Unmarshal(payload, &t); err != nil {
			return err
		}
		set.Transfers = append(set.Transfers, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = loadPayloads(ctx, q, "permits", datasetID, func(payload []byte) error {
		var p records.PermitRecord
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		set.Permits = append(set.Permits, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

func loadPayloads(ctx context.Context, q querier, table string, datasetID int64, decode func([]byte) error) error {
	rows, err := q.QueryContext(ctx, `
		SELECT r.payload FROM `+table+` r
		JOIN source_files f ON r.file_id = f.id
		WHERE f.dataset_id = ?
		ORDER BY f.file_path, r.position`, datasetID)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return err
		}
		if err := decode([]byte(payload)); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", table, err)
		}
	}
	return rows.Err()
}

func (s *SQLiteStorage) LoadRecords(ctx context.Context, datasetID int64) (*RecordSet, error) {
	return s.loadRecordsWithQuerier(ctx, s.querier(), datasetID)
}

// Link operations

func (s *SQLiteStorage) replaceLinksWithQuerier(ctx context.Context, q querier, datasetID int64, kind LinkKind, links []types.EntityLink) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM entity_links WHERE dataset_id = ? AND link_kind = ?`, datasetID, string(kind)); err != nil {
		return fmt.Errorf("failed to clear links: %w", err)
	}

	for i, link := range links {
		if err := link.Validate(); err != nil {
			return fmt.Errorf("invalid link %d: %w", i, err)
		}
		var metadata sql.NullString
		if len(link.LeftMetadata) > 0 {
			b, err := json.Marshal(link.LeftMetadata)
			if err != nil {
				return fmt.Errorf("failed to encode link metadata: %w", err)
			}
			metadata = sql.NullString{String: string(b), Valid: true}
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO entity_links (dataset_id, link_kind, position, left_name, left_source, left_metadata,
				matched_name, matched_source, score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			datasetID, string(kind), i, link.LeftName, string(link.LeftSource), metadata,
			link.MatchedName, string(link.MatchedSource), link.Score)
		if err != nil {
			return fmt.Errorf("failed to insert link: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) ReplaceLinks(ctx context.Context, datasetID int64, kind LinkKind, links []types.EntityLink) error {
	return s.replaceLinksWithQuerier(ctx, s.querier(), datasetID, kind, links)
}

func (s *SQLiteStorage) listLinksWithQuerier(ctx context.Context, q querier, datasetID int64, filter LinkFilter) ([]types.EntityLink, error) {
	var sb strings.Builder
	args := []interface{}{datasetID, filter.MinScore}
	sb.WriteString(`
		SELECT left_name, left_source, left_metadata, matched_name, matched_source, score
		FROM entity_links
		WHERE dataset_id = ? AND score >= ?`)

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			placeholders[i] = "?"
			args = append(args, string(k))
		}
		sb.WriteString(" AND link_kind IN (" + strings.Join(placeholders, ",") + ")")
	}
	sb.WriteString(` ORDER BY CASE link_kind WHEN 'company' THEN 0 WHEN 'person' THEN 1 ELSE 2 END, position`)
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	links := make([]types.EntityLink, 0)
	for rows.Next() {
		var l types.EntityLink
		var leftSource, matchedSource string
		var metadata sql.NullString
		if err := rows.Scan(&l.LeftName, &leftSource, &metadata, &l.MatchedName, &matchedSource, &l.Score); err != nil {
			return nil, err
		}
		l.LeftSource = types.Source(leftSource)
		l.MatchedSource = types.Source(matchedSource)
		if metadata.Valid {
			if err := json.Unmarshal([]byte(metadata.String), &l.LeftMetadata); err != nil {
				return nil, fmt.Errorf("failed to decode link metadata: %w", err)
			}
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (s *SQLiteStorage) ListLinks(ctx context.Context, datasetID int64, filter LinkFilter) ([]types.EntityLink, error) {
	return s.listLinksWithQuerier(ctx, s.querier(), datasetID, filter)
}

// Status operations

func (s *SQLiteStorage) getStatusWithQuerier(ctx context.Context, q querier, datasetID int64) (*DatasetStatus, error) {
	dataset, err := s.getDatasetByIDWithQuerier(ctx, q, datasetID)
	if err != nil {
		return nil, err
	}

	status := &DatasetStatus{
		Dataset:        dataset,
		LastIngestedAt: dataset.LastIngestedAt,
		LastLinkedAt:   dataset.LastLinkedAt,
	}

	counts := []struct {
		dest  *int
		query string
	}{
		{&status.FilesCount, `SELECT COUNT(*) FROM source_files WHERE dataset_id = ?`},
		{&status.RegistryEntities, `SELECT COUNT(*) FROM registry_entities r JOIN source_files f ON r.file_id = f.id WHERE f.dataset_id = ?`},
		{&status.RegistryPeople, `SELECT COUNT(*) FROM registry_people p
			JOIN registry_entities r ON p.entity_id = r.id
			JOIN source_files f ON r.file_id = f.id WHERE f.dataset_id = ?`},
		{&status.Transfers, `SELECT COUNT(*) FROM transfers t JOIN source_files f ON t.file_id = f.id WHERE f.dataset_id = ?`},
		{&status.Permits, `SELECT COUNT(*) FROM permits p JOIN source_files f ON p.file_id = f.id WHERE f.dataset_id = ?`},
	}
	for _, c := range counts {
		if err := q.QueryRowContext(ctx, c.query, datasetID).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	rows, err := q.QueryContext(ctx,
		`SELECT link_kind, COUNT(*) FROM entity_links WHERE dataset_id = ? GROUP BY link_kind`, datasetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		switch LinkKind(kind) {
		case LinkCompany:
			status.CompanyLinks = n
		case LinkPerson:
			status.PersonLinks = n
		case LinkAddress:
			status.AddressLinks = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var pageCount, pageSize int
	if err := q.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		_ = q.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.DatabaseSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.Health = HealthStatus{
		DatabaseAccessible: true,
		RecordsAvailable:   status.RegistryEntities+status.Transfers+status.Permits > 0,
		LinksAvailable:     status.CompanyLinks+status.PersonLinks+status.AddressLinks > 0,
	}
	return status, nil
}

func (s *SQLiteStorage) GetStatus(ctx context.Context, datasetID int64) (*DatasetStatus, error) {
	return s.getStatusWithQuerier(ctx, s.querier(), datasetID)
}

// Transaction implementations run every operation on the transaction

func (t *sqliteTx) CreateDataset(ctx context.Context, dataset *Dataset) error {
	return t.storage.createDatasetWithQuerier(ctx, t.querier(), dataset)
}

func (t *sqliteTx) GetDataset(ctx context.Context, name string) (*Dataset, error) {
	return t.storage.getDatasetWithQuerier(ctx, t.querier(), name)
}

func (t *sqliteTx) GetDatasetByID(ctx context.Context, datasetID int64) (*Dataset, error) {
	return t.storage.getDatasetByIDWithQuerier(ctx, t.querier(), datasetID)
}

func (t *sqliteTx) UpdateDataset(ctx context.Context, dataset *Dataset) error {
	return t.storage.updateDatasetWithQuerier(ctx, t.querier(), dataset)
}

func (t *sqliteTx) ListDatasets(ctx context.Context) ([]*Dataset, error) {
	return t.storage.listDatasetsWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) UpsertSourceFile(ctx context.Context, file *SourceFile) error {
	return t.storage.upsertSourceFileWithQuerier(ctx, t.querier(), file)
}

func (t *sqliteTx) GetSourceFile(ctx context.Context, datasetID int64, filePath string) (*SourceFile, error) {
	return t.storage.getSourceFileWithQuerier(ctx, t.querier(), datasetID, filePath)
}

func (t *sqliteTx) ListSourceFiles(ctx context.Context, datasetID int64) ([]*SourceFile, error) {
	return t.storage.listSourceFilesWithQuerier(ctx, t.querier(), datasetID)
}

func (t *sqliteTx) DeleteSourceFile(ctx context.Context, fileID int64) error {
	return t.storage.deleteSourceFileWithQuerier(ctx, t.querier(), fileID)
}

func (t *sqliteTx) ReplaceRecords(ctx context.Context, fileID int64, result *records.ParseResult) error {
	return t.storage.replaceRecordsWithQuerier(ctx, t.querier(), fileID, result)
}

func (t *sqliteTx) LoadRecords(ctx context.Context, datasetID int64) (*RecordSet, error) {
	return t.storage.loadRecordsWithQuerier(ctx, t.querier(), datasetID)
}

func (t *sqliteTx) ReplaceLinks(ctx context.Context, datasetID int64, kind LinkKind, links []types.EntityLink) error {
	return t.storage.replaceLinksWithQuerier(ctx, t.querier(), datasetID, kind, links)
}

func (t *sqliteTx) ListLinks(ctx context.Context, datasetID int64, filter LinkFilter) ([]types.EntityLink, error) {
	return t.storage.listLinksWithQuerier(ctx, t.querier(), datasetID, filter)
}

func (t *sqliteTx) GetStatus(ctx context.Context, datasetID int64) (*DatasetStatus, error) {
	return t.storage.getStatusWithQuerier(ctx, t.querier(), datasetID)
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
