package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/civiclink/internal/crossref"
	"github.com/dshills/civiclink/internal/ingest"
	"github.com/dshills/civiclink/internal/matcher"
	"github.com/dshills/civiclink/internal/storage"
	"github.com/dshills/civiclink/pkg/types"
)

const testDataset = "saskatoon"

// setupResolver ingests the records fixtures into an in-memory store
func setupResolver(t *testing.T, cfg Config) (*Resolver, *storage.SQLiteStorage, string) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	dir := t.TempDir()
	for _, name := range []string{"registry.json", "transfers.json", "permits.json"} {
		data, err := os.ReadFile(filepath.Join("..", "records", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	_, err = ingest.New(store, nil).Ingest(context.Background(), testDataset, dir, nil)
	require.NoError(t, err)

	r, err := New(store, cfg, nil)
	require.NoError(t, err)
	return r, store, dir
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r, store, _ := setupResolver(t, Config{})

	resp, err := r.Resolve(ctx, Request{Dataset: testDataset, Options: crossref.DefaultOptions()})
	require.NoError(t, err)

	assert.False(t, resp.CacheHit)
	assert.False(t, resp.Persisted)
	assert.Equal(t, testDataset, resp.Dataset.Name)

	report := resp.Report
	assert.Equal(t, 1, report.RegistryCompanies)
	assert.Equal(t, 2, report.TransferCompanies)
	assert.Equal(t, 2, report.PermitCompanies)
	require.GreaterOrEqual(t, report.TotalLinksFound, 2)

	first := report.EntityLinks[0]
	assert.Equal(t, "102118427 Saskatchewan Ltd.", first.LeftName)
	assert.Equal(t, "102118427 Saskatchewan Inc", first.MatchedName)
	assert.Equal(t, 1.0, first.Score)

	stored, err := store.ListLinks(ctx, resp.Dataset.ID, storage.LinkFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored, "links are only stored on request")
}

func TestResolvePersist(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupResolver(t, Config{})

	opts := crossref.DefaultOptions()
	opts.LinkPeople = true
	opts.LinkAddresses = true
	resp, err := r.Resolve(ctx, Request{Dataset: testDataset, Options: opts, Persist: true})
	require.NoError(t, err)
	assert.True(t, resp.Persisted)
	assert.False(t, resp.Dataset.LastLinkedAt.IsZero())

	companies, err := r.Links(ctx, testDataset, storage.LinkFilter{Kinds: []storage.LinkKind{storage.LinkCompany}})
	require.NoError(t, err)
	assert.Equal(t, resp.Report.EntityLinks, companies)

	people, err := r.Links(ctx, testDataset, storage.LinkFilter{Kinds: []storage.LinkKind{storage.LinkPerson}})
	require.NoError(t, err)
	assert.Len(t, people, len(resp.Report.PersonLinks))

	// A company-only run keeps the stored person links
	_, err = r.Resolve(ctx, Request{Dataset: testDataset, Options: crossref.DefaultOptions(), Persist: true})
	require.NoError(t, err)
	again, err := r.Links(ctx, testDataset, storage.LinkFilter{Kinds: []storage.LinkKind{storage.LinkPerson}})
	require.NoError(t, err)
	assert.Equal(t, people, again)
}

func TestResolveCache(t *testing.T) {
	ctx := context.Background()
	r, store, dir := setupResolver(t, Config{CacheSize: 10, CacheTTL: time.Hour})
	req := Request{Dataset: testDataset, Options: crossref.DefaultOptions(), UseCache: true}

	first, err := r.Resolve(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 1, r.CacheLen())

	second, err := r.Resolve(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Report, second.Report)

	t.Run("returned reports are copies", func(t *testing.T) {
		second.Report.EntityLinks[0].LeftMetadata[types.AttrEntityNumber] = "tampered"
		second.Report.EntityLinks = nil

		third, err := r.Resolve(ctx, req)
		require.NoError(t, err)
		assert.True(t, third.CacheHit)
		require.NotEmpty(t, third.Report.EntityLinks)
		assert.Equal(t, "102118427", third.Report.EntityLinks[0].EntityNumber())
	})

	t.Run("options are part of the key", func(t *testing.T) {
		other := req
		other.Options.CompanyThreshold = 0.9
		resp, err := r.Resolve(ctx, other)
		require.NoError(t, err)
		assert.False(t, resp.CacheHit)

		other.Options.Workers = 3
		resp, err = r.Resolve(ctx, other)
		require.NoError(t, err)
		assert.True(t, resp.CacheHit, "worker count does not change the report")
	})

	t.Run("re-ingest changes the key", func(t *testing.T) {
		_, err := ingest.New(store, nil).Ingest(ctx, testDataset, dir, &ingest.Config{Force: true})
		require.NoError(t, err)

		resp, err := r.Resolve(ctx, req)
		require.NoError(t, err)
		assert.False(t, resp.CacheHit)
	})

	t.Run("invalidate", func(t *testing.T) {
		r.InvalidateCache()
		assert.Equal(t, 0, r.CacheLen())
		resp, err := r.Resolve(ctx, req)
		require.NoError(t, err)
		assert.False(t, resp.CacheHit)
	})
}

func TestResolveCacheExpiry(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupResolver(t, Config{CacheSize: 10, CacheTTL: time.Millisecond})
	req := Request{Dataset: testDataset, Options: crossref.DefaultOptions(), UseCache: true}

	_, err := r.Resolve(ctx, req)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	resp, err := r.Resolve(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestResolveCacheDisabled(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupResolver(t, Config{})
	req := Request{Dataset: testDataset, Options: crossref.DefaultOptions(), UseCache: true}

	for range 2 {
		resp, err := r.Resolve(ctx, req)
		require.NoError(t, err)
		assert.False(t, resp.CacheHit)
	}
	assert.Equal(t, 0, r.CacheLen())
	r.InvalidateCache()
}

func TestResolveErrors(t *testing.T) {
	ctx := context.Background()
	r, _, _ := setupResolver(t, Config{})

	_, err := r.Resolve(ctx, Request{Options: crossref.DefaultOptions()})
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = r.Resolve(ctx, Request{Dataset: "unknown", Options: crossref.DefaultOptions()})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	bad := crossref.DefaultOptions()
	bad.CompanyThreshold = 1.5
	_, err = r.Resolve(ctx, Request{Dataset: testDataset, Options: bad})
	assert.ErrorIs(t, err, matcher.ErrInvalidThreshold)

	_, err = r.Links(ctx, "unknown", storage.LinkFilter{})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
