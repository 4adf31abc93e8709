package ingest

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/civiclink/internal/logging"
	"github.com/dshills/civiclink/internal/records"
	"github.com/dshills/civiclink/internal/storage"
)

// ErrIngestInProgress is returned when another ingest holds the lock
var ErrIngestInProgress = errors.New("ingest already in progress")

// Ingester coordinates the ingest pipeline: discover -> hash -> parse -> store
type Ingester struct {
	parser  *records.Parser
	storage storage.Storage
	logger  *zap.Logger
	lock    Lock
}

// Config contains configuration for an ingest run
type Config struct {
	Workers   int // Number of concurrent workers (default: runtime.NumCPU())
	BatchSize int // Number of files to commit per transaction (default: 20)
	Force     bool
}

// Statistics contains statistics about an ingest run
type Statistics struct {
	FilesIngested    int
	FilesSkipped     int // Unchanged since the last ingest
	FilesFailed      int
	FilesRemoved     int // Tracked files no longer on disk
	RegistryEntities int
	Transfers        int
	Permits          int
	RecordsRejected  int
	Duration         time.Duration
	ErrorMessages    []string
}

// counters are updated concurrently by batch workers
type counters struct {
	ingested  atomic.Int32
	skipped   atomic.Int32
	failed    atomic.Int32
	registry  atomic.Int32
	transfers atomic.Int32
	permits   atomic.Int32
	rejected  atomic.Int32
}

// New creates an Ingester writing to store. A nil logger discards output.
func New(store storage.Storage, logger *zap.Logger) *Ingester {
	return &Ingester{
		parser:  records.New(),
		storage: store,
		logger:  logging.OrNop(logger),
	}
}

// Ingest loads every *.json extractor document under path into the named
// dataset, creating the dataset on first use. path may also name a single
// file. Unchanged files are skipped unless cfg.Force is set; files that
// disappeared since the last run are removed along with their records.
func (ing *Ingester) Ingest(ctx context.Context, datasetName, path string, cfg *Config) (*Statistics, error) {
	if !ing.lock.TryAcquire() {
		return nil, ErrIngestInProgress
	}
	defer ing.lock.Release()

	if cfg == nil {
		cfg = &Config{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	start := time.Now()
	stats := &Statistics{ErrorMessages: make([]string, 0)}

	root, files, err := discoverFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	dataset, err := ing.getOrCreateDataset(ctx, datasetName, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create dataset: %w", err)
	}

	ing.logger.Info("ingest started",
		zap.String("dataset", dataset.Name),
		zap.String("root", root),
		zap.Int("files", len(files)),
		zap.Int("workers", workers))

	removed, err := ing.removeMissing(ctx, dataset, root, files)
	if err != nil {
		return nil, fmt.Errorf("failed to remove missing files: %w", err)
	}
	stats.FilesRemoved = removed

	if err := ing.ingestFiles(ctx, dataset, root, files, workers, batchSize, cfg.Force, stats); err != nil {
		return nil, fmt.Errorf("failed to ingest files: %w", err)
	}

	if err := ing.updateDatasetStats(ctx, dataset); err != nil {
		return nil, fmt.Errorf("failed to update dataset stats: %w", err)
	}

	stats.Duration = time.Since(start)
	ing.logger.Info("ingest finished",
		zap.String("dataset", dataset.Name),
		zap.Int("ingested", stats.FilesIngested),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("failed", stats.FilesFailed),
		zap.Int("removed", stats.FilesRemoved),
		zap.Int("rejected_records", stats.RecordsRejected),
		zap.Duration("duration", stats.Duration))
	return stats, nil
}

// getOrCreateDataset retrieves an existing dataset or creates a new one
func (ing *Ingester) getOrCreateDataset(ctx context.Context, name, root string) (*storage.Dataset, error) {
	dataset, err := ing.storage.GetDataset(ctx, name)
	if err == nil {
		if dataset.RootPath != root {
			dataset.RootPath = root
			if err := ing.storage.UpdateDataset(ctx, dataset); err != nil {
				return nil, err
			}
		}
		return dataset, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	dataset = &storage.Dataset{Name: name, RootPath: root}
	if err := ing.storage.CreateDataset(ctx, dataset); err != nil {
		return nil, err
	}
	return dataset, nil
}

// discoverFiles returns the ingest root and the sorted *.json files under
// path. Hidden directories are skipped.
func discoverFiles(path string) (string, []string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, err
	}
	if !info.IsDir() {
		return filepath.Dir(abs), []string{abs}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".json") {
			files = append(files, p)
		}
		return nil
	})
	sort.Strings(files)
	return abs, files, err
}

// removeMissing deletes tracked files that are no longer on disk
func (ing *Ingester) removeMissing(ctx context.Context, dataset *storage.Dataset, root string, files []string) (int, error) {
	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			return 0, err
		}
		present[rel] = struct{}{}
	}

	tracked, err := ing.storage.ListSourceFiles(ctx, dataset.ID)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, sf := range tracked {
		if _, ok := present[sf.FilePath]; ok {
			continue
		}
		if err := ing.storage.DeleteSourceFile(ctx, sf.ID); err != nil {
			return removed, err
		}
		ing.logger.Debug("removed source file", zap.String("file", sf.FilePath))
		removed++
	}
	return removed, nil
}

// ingestFiles processes batches of files concurrently, one transaction per batch
func (ing *Ingester) ingestFiles(ctx context.Context, dataset *storage.Dataset, root string, files []string,
	workers, batchSize int, force bool, stats *Statistics) error {

	semaphore := make(chan struct{}, workers)
	var c counters
	var mu sync.Mutex // Protects stats.ErrorMessages

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < len(files); i += batchSize {
		end := min(i+batchSize, len(files))
		batch := files[i:end]

		g.Go(func() error {
			return ing.ingestBatch(gctx, dataset, root, batch, force, semaphore, &c, &mu, stats)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats.FilesIngested = int(c.ingested.Load())
	stats.FilesSkipped = int(c.skipped.Load())
	stats.FilesFailed = int(c.failed.Load())
	stats.RegistryEntities = int(c.registry.Load())
	stats.Transfers = int(c.transfers.Load())
	stats.Permits = int(c.permits.Load())
	stats.RecordsRejected = int(c.rejected.Load())
	return nil
}

// ingestBatch ingests a batch of files within a transaction
func (ing *Ingester) ingestBatch(ctx context.Context, dataset *storage.Dataset, root string, files []string,
	force bool, semaphore chan struct{}, c *counters, mu *sync.Mutex, stats *Statistics) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	case semaphore <- struct{}{}:
	}
	defer func() { <-semaphore }()

	tx, err := ing.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ing.ingestFile(ctx, tx, dataset, root, path, force, c); err != nil {
			c.failed.Add(1)
			ing.logger.Warn("file failed", zap.String("file", path), zap.Error(err))
			mu.Lock()
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", path, err))
			mu.Unlock()
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ingestFile stores one document. A document that cannot be parsed at all
// is still tracked, with its parse error and no records, and reported as
// failed.
func (ing *Ingester) ingestFile(ctx context.Context, store storage.Storage, dataset *storage.Dataset,
	root, path string, force bool, c *counters) error {

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	hash, modTime, size, err := computeFileHash(path)
	if err != nil {
		return err
	}

	if !force {
		existing, err := store.GetSourceFile(ctx, dataset.ID, relPath)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if existing != nil && existing.ContentHash == hash && existing.ParseError == nil {
			c.skipped.Add(1)
			return nil
		}
	}

	result, parseErr := ing.parser.ParseFile(path)
	if parseErr != nil {
		result = &records.ParseResult{}
	}

	file := &storage.SourceFile{
		DatasetID:     dataset.ID,
		FilePath:      relPath,
		Kind:          result.Kind,
		ContentHash:   hash,
		ModTime:       modTime,
		SizeBytes:     size,
		RecordCount:   result.Len(),
		RejectedCount: len(result.Errors),
	}
	if parseErr != nil {
		msg := parseErr.Error()
		file.ParseError = &msg
	}

	if err := store.UpsertSourceFile(ctx, file); err != nil {
		return err
	}
	if err := store.ReplaceRecords(ctx, file.ID, result); err != nil {
		return err
	}
	if parseErr != nil {
		return parseErr
	}

	for _, pe := range result.Errors {
		ing.logger.Debug("record rejected",
			zap.String("file", relPath),
			zap.Int("index", pe.Index),
			zap.String("reason", pe.Message))
	}

	c.ingested.Add(1)
	c.registry.Add(int32(len(result.Registry)))
	c.transfers.Add(int32(len(result.Transfers)))
	c.permits.Add(int32(len(result.Permits)))
	c.rejected.Add(int32(len(result.Errors)))
	return nil
}

// updateDatasetStats updates the dataset's file and record counts
func (ing *Ingester) updateDatasetStats(ctx context.Context, dataset *storage.Dataset) error {
	files, err := ing.storage.ListSourceFiles(ctx, dataset.ID)
	if err != nil {
		return err
	}

	total := 0
	for _, f := range files {
		total += f.RecordCount
	}

	dataset.TotalFiles = len(files)
	dataset.TotalRecords = total
	dataset.LastIngestedAt = time.Now()
	return ing.storage.UpdateDataset(ctx, dataset)
}

// computeFileHash computes the SHA-256 hash of a file
func computeFileHash(path string) ([32]byte, time.Time, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return [32]byte{}, time.Time{}, 0, err
	}

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, info.ModTime(), info.Size(), nil
}
