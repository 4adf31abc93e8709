package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the search path away from real user config
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".civiclink", "civiclink.db"), cfg.DBPath)
	assert.Equal(t, 0.80, cfg.Thresholds.Company)
	assert.Equal(t, 0.85, cfg.Thresholds.Person)
	assert.Equal(t, 0.75, cfg.Thresholds.Address)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, DefaultCacheLen, cfg.Cache.Size)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "civiclink.yaml")
	content := `db_path: /tmp/civic.db
thresholds:
  company: 0.9
workers: 4
cache:
  ttl: 30s
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/civic.db", cfg.DBPath)
	assert.Equal(t, 0.9, cfg.Thresholds.Company)
	assert.Equal(t, 0.85, cfg.Thresholds.Person, "unset keys keep defaults")
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, path, cfg.File)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CIVICLINK_DB_PATH", "/data/env.db")
	t.Setenv("CIVICLINK_THRESHOLDS_ADDRESS", "0.6")
	t.Setenv("CIVICLINK_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/env.db", cfg.DBPath)
	assert.Equal(t, 0.6, cfg.Thresholds.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	isolate(t)

	t.Run("threshold out of range", func(t *testing.T) {
		t.Setenv("CIVICLINK_THRESHOLDS_COMPANY", "1.5")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Company")
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("CIVICLINK_LOG_LEVEL", "verbose")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.DBPath = ""
	assert.Error(t, cfg.Validate())
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandHome("~/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandHome("/abs/x.db"))
	assert.Equal(t, "~user/x.db", ExpandHome("~user/x.db"))
}
