package storage

import (
	"context"
	"time"

	"github.com/dshills/civiclink/internal/records"
	"github.com/dshills/civiclink/pkg/types"
)

// Storage defines the interface for persisting ingested records and links
type Storage interface {
	// Dataset operations
	CreateDataset(ctx context.Context, dataset *Dataset) error
	GetDataset(ctx context.Context, name string) (*Dataset, error)
	GetDatasetByID(ctx context.Context, datasetID int64) (*Dataset, error)
	UpdateDataset(ctx context.Context, dataset *Dataset) error
	ListDatasets(ctx context.Context) ([]*Dataset, error)

	// Source file operations
	UpsertSourceFile(ctx context.Context, file *SourceFile) error
	GetSourceFile(ctx context.Context, datasetID int64, filePath string) (*SourceFile, error)
	ListSourceFiles(ctx context.Context, datasetID int64) ([]*SourceFile, error)
	DeleteSourceFile(ctx context.Context, fileID int64) error

	// Record operations
	ReplaceRecords(ctx context.Context, fileID int64, result *records.ParseResult) error
	LoadRecords(ctx context.Context, datasetID int64) (*RecordSet, error)

	// Link operations
	ReplaceLinks(ctx context.Context, datasetID int64, kind LinkKind, links []types.EntityLink) error
	ListLinks(ctx context.Context, datasetID int64, filter LinkFilter) ([]types.EntityLink, error)

	// Status operations
	GetStatus(ctx context.Context, datasetID int64) (*DatasetStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Dataset is a named collection of ingested source files
type Dataset struct {
	ID             int64
	Name           string
	RootPath       string
	TotalFiles     int
	TotalRecords   int
	LastIngestedAt time.Time
	LastLinkedAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SourceFile is one extractor output file tracked for incremental ingest
type SourceFile struct {
	ID             int64
	DatasetID      int64
	FilePath       string // Relative to the dataset root
	Kind           types.Source
	ContentHash    [32]byte
	ModTime        time.Time
	SizeBytes      int64
	RecordCount    int
	RejectedCount  int
	ParseError     *string // Nullable
	LastIngestedAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RecordSet holds every record of a dataset, grouped by source
type RecordSet struct {
	Registry  []records.RegistryEntity
	Transfers []records.TransferRecord
	Permits   []records.PermitRecord
}

// LinkKind distinguishes company, person and address links
type LinkKind string

const (
	LinkCompany LinkKind = "company"
	LinkPerson  LinkKind = "person"
	LinkAddress LinkKind = "address"
)

// LinkFilter narrows ListLinks results
type LinkFilter struct {
	Kinds    []LinkKind // Empty means all kinds
	MinScore float64
	Limit    int // <= 0 means no limit
}

// DatasetStatus contains statistics about a dataset
type DatasetStatus struct {
	Dataset          *Dataset
	FilesCount       int
	RegistryEntities int
	RegistryPeople   int
	Transfers        int
	Permits          int
	CompanyLinks     int
	PersonLinks      int
	AddressLinks     int
	DatabaseSizeMB   float64
	LastIngestedAt   time.Time
	LastLinkedAt     time.Time
	Health           HealthStatus
}

// HealthStatus represents the health of the store
type HealthStatus struct {
	DatabaseAccessible bool
	RecordsAvailable   bool
	LinksAvailable     bool
}
