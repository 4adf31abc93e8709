package resolver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/dshills/civiclink/internal/crossref"
	"github.com/dshills/civiclink/internal/logging"
	"github.com/dshills/civiclink/internal/storage"
	"github.com/dshills/civiclink/pkg/types"
)

// ErrEmptyDataset is returned when a request names no dataset
var ErrEmptyDataset = errors.New("dataset name cannot be empty")

// Request contains parameters for a resolve operation
type Request struct {
	Dataset  string
	Options  crossref.Options
	Persist  bool // Replace the dataset's stored links with the result
	UseCache bool
}

// Response contains the link report and metadata
type Response struct {
	Dataset   *storage.Dataset
	Report    *types.LinkReport
	Duration  time.Duration
	CacheHit  bool
	Persisted bool
}

// Config sizes the report cache. Size 0 disables caching.
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// cacheEntry represents a cached report with expiration time
type cacheEntry struct {
	report    *types.LinkReport
	expiresAt time.Time
}

// Resolver cross-references the records of stored datasets
type Resolver struct {
	storage storage.Storage
	logger  *zap.Logger
	ttl     time.Duration
	cache   *lru.Cache[[32]byte, *cacheEntry]
	cacheMu sync.RWMutex
}

// New creates a Resolver over store
func New(store storage.Storage, cfg Config, logger *zap.Logger) (*Resolver, error) {
	r := &Resolver{
		storage: store,
		logger:  logging.OrNop(logger),
		ttl:     cfg.CacheTTL,
	}
	if r.ttl <= 0 {
		r.ttl = time.Hour
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[[32]byte, *cacheEntry](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create LRU cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Resolve loads the dataset's records, cross-references them and
// optionally persists the resulting links
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	if strings.TrimSpace(req.Dataset) == "" {
		return nil, ErrEmptyDataset
	}

	linker, err := crossref.New(req.Options)
	if err != nil {
		return nil, err
	}

	dataset, err := r.storage.GetDataset(ctx, req.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset %q: %w", req.Dataset, err)
	}

	resp := &Response{Dataset: dataset}
	key := computeCacheKey(dataset, linker.Options())

	if req.UseCache {
		if cached, ok := r.checkCache(key); ok {
			resp.Report = cached
			resp.CacheHit = true
		}
	}

	if resp.Report == nil {
		set, err := r.storage.LoadRecords(ctx, dataset.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load records: %w", err)
		}
		report, err := linker.Link(ctx, crossref.Input{
			Registry:  set.Registry,
			Transfers: set.Transfers,
			Permits:   set.Permits,
		})
		if err != nil {
			return nil, err
		}
		resp.Report = report
		if req.UseCache {
			r.storeInCache(key, report)
		}
	}

	if req.Persist {
		if err := r.persist(ctx, dataset, linker.Options(), resp.Report); err != nil {
			return nil, fmt.Errorf("failed to persist links: %w", err)
		}
		resp.Persisted = true
	}

	resp.Duration = time.Since(start)
	r.logger.Info("dataset resolved",
		zap.String("dataset", dataset.Name),
		zap.Int("links", resp.Report.TotalLinksFound),
		zap.Int("person_links", len(resp.Report.PersonLinks)),
		zap.Int("address_links", len(resp.Report.AddressLinks)),
		zap.Bool("cache_hit", resp.CacheHit),
		zap.Bool("persisted", resp.Persisted),
		zap.Duration("duration", resp.Duration))
	return resp, nil
}

// persist replaces the stored links of every kind the options computed
func (r *Resolver) persist(ctx context.Context, dataset *storage.Dataset, opts crossref.Options, report *types.LinkReport) error {
	tx, err := r.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.ReplaceLinks(ctx, dataset.ID, storage.LinkCompany, report.EntityLinks); err != nil {
		return err
	}
	if opts.LinkPeople {
		if err := tx.ReplaceLinks(ctx, dataset.ID, storage.LinkPerson, report.PersonLinks); err != nil {
			return err
		}
	}
	if opts.LinkAddresses {
		if err := tx.ReplaceLinks(ctx, dataset.ID, storage.LinkAddress, report.AddressLinks); err != nil {
			return err
		}
	}

	dataset.LastLinkedAt = time.Now()
	if err := tx.UpdateDataset(ctx, dataset); err != nil {
		return err
	}
	return tx.Commit()
}

// Links returns the stored links of a dataset
func (r *Resolver) Links(ctx context.Context, datasetName string, filter storage.LinkFilter) ([]types.EntityLink, error) {
	dataset, err := r.storage.GetDataset(ctx, datasetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset %q: %w", datasetName, err)
	}
	return r.storage.ListLinks(ctx, dataset.ID, filter)
}

// checkCache looks up a cached report and returns a copy of it
func (r *Resolver) checkCache(key [32]byte) (*types.LinkReport, bool) {
	if r.cache == nil {
		return nil, false
	}

	r.cacheMu.RLock()
	entry, found := r.cache.Get(key)
	if !found {
		r.cacheMu.RUnlock()
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		r.cacheMu.RUnlock()

		r.cacheMu.Lock()
		r.cache.Remove(key)
		r.cacheMu.Unlock()
		return nil, false
	}
	report := copyReport(entry.report)
	r.cacheMu.RUnlock()

	return report, true
}

// storeInCache saves a copy of report
func (r *Resolver) storeInCache(key [32]byte, report *types.LinkReport) {
	if r.cache == nil {
		return
	}
	entry := &cacheEntry{
		report:    copyReport(report),
		expiresAt: time.Now().Add(r.ttl),
	}
	r.cacheMu.Lock()
	r.cache.Add(key, entry)
	r.cacheMu.Unlock()
}

// InvalidateCache drops every cached report. Call after ingesting.
func (r *Resolver) InvalidateCache() {
	if r.cache == nil {
		return
	}
	r.cacheMu.Lock()
	r.cache.Purge()
	r.cacheMu.Unlock()
}

// CacheLen returns the number of cached reports
func (r *Resolver) CacheLen() int {
	if r.cache == nil {
		return 0
	}
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return r.cache.Len()
}

// copyReport creates a deep copy of a LinkReport
func copyReport(src *types.LinkReport) *types.LinkReport {
	if src == nil {
		return nil
	}
	dst := *src
	dst.EntityLinks = copyLinks(src.EntityLinks)
	dst.PersonLinks = copyLinks(src.PersonLinks)
	dst.AddressLinks = copyLinks(src.AddressLinks)
	return &dst
}

func copyLinks(src []types.EntityLink) []types.EntityLink {
	if src == nil {
		return nil
	}
	dst := make([]types.EntityLink, len(src))
	for i, l := range src {
		dst[i] = l
		if l.LeftMetadata != nil {
			dst[i].LeftMetadata = make(map[string]string, len(l.LeftMetadata))
			for k, v := range l.LeftMetadata {
				dst[i].LeftMetadata[k] = v
			}
		}
	}
	return dst
}

// computeCacheKey hashes the dataset identity, its last ingest time and the
// options that affect the report. Workers is excluded since the report does
// not depend on it.
func computeCacheKey(dataset *storage.Dataset, opts crossref.Options) [32]byte {
	var data strings.Builder
	data.WriteString(strconv.FormatInt(dataset.ID, 10))
	data.WriteString("|")
	data.WriteString(strconv.FormatInt(dataset.LastIngestedAt.UnixNano(), 10))
	data.WriteString("|")
	data.WriteString(strconv.Itoa(dataset.TotalRecords))
	data.WriteString("|")
	data.WriteString(strconv.FormatFloat(opts.CompanyThreshold, 'g', -1, 64))
	data.WriteString("|")
	data.WriteString(strconv.FormatFloat(opts.PersonThreshold, 'g', -1, 64))
	data.WriteString("|")
	data.WriteString(strconv.FormatFloat(opts.AddressThreshold, 'g', -1, 64))
	data.WriteString("|")
	data.WriteString(strconv.FormatBool(opts.LinkPeople))
	data.WriteString(strconv.FormatBool(opts.LinkAddresses))

	return sha256.Sum256([]byte(data.String()))
}
