package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/civiclink/internal/storage"
)

func setupTestDB(t *testing.T) *storage.SQLiteStorage {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// setupDataDir copies the records fixtures into a fresh directory
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"registry.json", "transfers.json", "permits.json"} {
		data, err := os.ReadFile(filepath.Join("..", "records", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	return dir
}

func TestIngestDirectory(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	dir := setupDataDir(t)
	ing := New(store, nil)

	stats, err := ing.Ingest(ctx, "saskatoon", dir, &Config{Workers: 2, BatchSize: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.FilesIngested)
	assert.Equal(t, 0, stats.FilesSkipped)
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Equal(t, 1, stats.RegistryEntities)
	assert.Equal(t, 2, stats.Transfers)
	assert.Equal(t, 2, stats.Permits)
	assert.Equal(t, 1, stats.RecordsRejected)
	assert.Empty(t, stats.ErrorMessages)

	dataset, err := store.GetDataset(ctx, "saskatoon")
	require.NoError(t, err)
	assert.Equal(t, 3, dataset.TotalFiles)
	assert.Equal(t, 5, dataset.TotalRecords)
	assert.False(t, dataset.LastIngestedAt.IsZero())

	set, err := store.LoadRecords(ctx, dataset.ID)
	require.NoError(t, err)
	assert.Len(t, set.Registry, 1)
	assert.Len(t, set.Transfers, 2)
	assert.Len(t, set.Permits, 2)

	file, err := store.GetSourceFile(ctx, dataset.ID, "transfers.json")
	require.NoError(t, err)
	assert.Equal(t, 2, file.RecordCount)
	assert.Equal(t, 1, file.RejectedCount)
}

func TestIngestIncremental(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	dir := setupDataDir(t)
	ing := New(store, nil)

	_, err := ing.Ingest(ctx, "ds", dir, nil)
	require.NoError(t, err)

	t.Run("unchanged files are skipped", func(t *testing.T) {
		stats, err := ing.Ingest(ctx, "ds", dir, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.FilesIngested)
		assert.Equal(t, 3, stats.FilesSkipped)
	})

	t.Run("changed file is re-ingested", func(t *testing.T) {
		permits := `[{"permit_number": "P-1", "address": "1 Main St", "owner": "Solo Owner Ltd"}]`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "permits.json"), []byte(permits), 0o600))

		stats, err := ing.Ingest(ctx, "ds", dir, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.FilesIngested)
		assert.Equal(t, 2, stats.FilesSkipped)
		assert.Equal(t, 1, stats.Permits)

		dataset, err := store.GetDataset(ctx, "ds")
		require.NoError(t, err)
		set, err := store.LoadRecords(ctx, dataset.ID)
		require.NoError(t, err)
		require.Len(t, set.Permits, 1)
		assert.Equal(t, "Solo Owner Ltd", set.Permits[0].Owner.String())
	})

	t.Run("deleted file is removed", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(dir, "transfers.json")))

		stats, err := ing.Ingest(ctx, "ds", dir, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.FilesRemoved)

		dataset, err := store.GetDataset(ctx, "ds")
		require.NoError(t, err)
		assert.Equal(t, 2, dataset.TotalFiles)
		set, err := store.LoadRecords(ctx, dataset.ID)
		require.NoError(t, err)
		assert.Empty(t, set.Transfers)
	})

	t.Run("force re-ingests everything", func(t *testing.T) {
		stats, err := ing.Ingest(ctx, "ds", dir, &Config{Force: true})
		require.NoError(t, err)
		assert.Equal(t, 2, stats.FilesIngested)
		assert.Equal(t, 0, stats.FilesSkipped)
	})
}

func TestIngestInvalidDocument(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	dir := setupDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[{"foo": 1}]`), 0o600))

	ing := New(store, nil)
	stats, err := ing.Ingest(ctx, "ds", dir, nil)
	require.NoError(t, err, "a bad document does not abort the run")

	assert.Equal(t, 3, stats.FilesIngested)
	assert.Equal(t, 2, stats.FilesFailed)
	assert.Len(t, stats.ErrorMessages, 2)

	dataset, err := store.GetDataset(ctx, "ds")
	require.NoError(t, err)
	file, err := store.GetSourceFile(ctx, dataset.ID, "broken.json")
	require.NoError(t, err)
	require.NotNil(t, file.ParseError)
	assert.Equal(t, 0, file.RecordCount)

	// Failed files are retried rather than skipped
	stats, err = ing.Ingest(ctx, "ds", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesFailed)
	assert.Equal(t, 3, stats.FilesSkipped)
}

func TestIngestSingleFileAndHiddenDirs(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	dir := setupDataDir(t)

	hidden := filepath.Join(dir, ".cache")
	require.NoError(t, os.Mkdir(hidden, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hidden, "stale.json"), []byte("[]"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	_, files, err := discoverFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	ing := New(store, nil)
	stats, err := ing.Ingest(ctx, "single", filepath.Join(dir, "permits.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIngested)
	assert.Equal(t, 2, stats.Permits)
}

func TestIngestMissingPath(t *testing.T) {
	ing := New(setupTestDB(t), nil)
	_, err := ing.Ingest(context.Background(), "ds", filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestIngestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ing := New(setupTestDB(t), nil)
	_, err := ing.Ingest(ctx, "ds", setupDataDir(t), nil)
	assert.Error(t, err)
	assert.False(t, ing.lock.Held(), "lock is released on failure")
}

func TestIngestRejectsConcurrentRun(t *testing.T) {
	ing := New(setupTestDB(t), nil)
	require.True(t, ing.lock.TryAcquire())

	_, err := ing.Ingest(context.Background(), "ds", setupDataDir(t), nil)
	assert.ErrorIs(t, err, ErrIngestInProgress)

	ing.lock.Release()
	_, err = ing.Ingest(context.Background(), "ds", setupDataDir(t), nil)
	assert.NoError(t, err)
}

func TestLock(t *testing.T) {
	var l Lock
	assert.True(t, l.TryAcquire())
	assert.True(t, l.Held())
	assert.False(t, l.TryAcquire())
	l.Release()
	assert.False(t, l.Held())

	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryAcquire() {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, acquired)
}
