package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against an isolated home and database
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) (dbPath, dataDir string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dataDir, err := filepath.Abs(filepath.Join("..", "..", "internal", "records", "testdata"))
	require.NoError(t, err)
	return filepath.Join(t.TempDir(), "nested", "civiclink.db"), dataDir
}

func TestVersion(t *testing.T) {
	db, _ := setup(t)
	out, err := run(t, db, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+version)
	assert.Contains(t, out, "SQLite Driver:")
}

func TestDemo(t *testing.T) {
	db, _ := setup(t)
	out, err := run(t, db, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Entity Matching Engine\n========================================\n")
	assert.Contains(t, out, "Boardwalk Reit Properties Holdings Ltd -> Boardwalk Reit Properties Holdings Ltd (score: 1)")
	assert.Contains(t, out, "BATTING TRAVIS -> Travis Batting (score: 1)")
	assert.NotContains(t, out, "Francois Messier")
}

func TestIngestLinkStatus(t *testing.T) {
	db, data := setup(t)

	out, err := run(t, db, "ingest", data, "--dataset", "sask")
	require.NoError(t, err)
	assert.Contains(t, out, `Ingested 3 files into "sask"`)
	assert.Contains(t, out, "rejected records: 1")

	out, err = run(t, db, "link", "--dataset", "sask", "--people", "--persist")
	require.NoError(t, err)
	assert.Contains(t, out, "102118427 Saskatchewan Ltd. -> [transfer] 102118427 Saskatchewan Inc (score: 1)")
	assert.Contains(t, out, "Links stored.")

	out, err = run(t, db, "status", "--dataset", "sask", "--json")
	require.NoError(t, err)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.EqualValues(t, 3, status["files"])
	assert.EqualValues(t, 2, status["transfers"])
	assert.EqualValues(t, 2, status["permits"])
	assert.NotZero(t, status["company_links"])

	out, err = run(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "sask")
}

func TestLinkErrors(t *testing.T) {
	db, _ := setup(t)

	_, err := run(t, db, "link")
	assert.EqualError(t, err, "--dataset is required")

	_, err = run(t, db, "link", "--dataset", "missing")
	assert.Error(t, err)

	_, err = run(t, db, "status", "--dataset", "missing")
	assert.EqualError(t, err, `dataset "missing" not ingested`)
}

func TestMatch(t *testing.T) {
	db, _ := setup(t)

	out, err := run(t, db, "match", "company", "102118427 Saskatchewan Ltd.",
		"--candidate", "102118427 Saskatchewan Inc", "--candidate", "Wright Construction Western Inc")
	require.NoError(t, err)
	assert.Equal(t, "102118427 Saskatchewan Ltd. -> 102118427 Saskatchewan Inc (score: 1)\n", out)

	out, err = run(t, db, "--json", "match", "person", "BATTING TRAVIS", "--candidate", "Travis Batting")
	require.NoError(t, err)
	var res struct {
		NormalizedQuery string `json:"normalized_query"`
		Matches         []matchRow
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "batting travis", res.NormalizedQuery)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "Travis Batting", res.Matches[0].Text)

	out, err = run(t, db, "match", "company", "Acme", "--candidate", "Zenith Holdings")
	require.NoError(t, err)
	assert.Equal(t, "Acme -> no match\n", out)

	_, err = run(t, db, "match", "company", "Acme")
	assert.Error(t, err)

	_, err = run(t, db, "match", "company", "Acme", "--candidate", "Acme", "--threshold", "2")
	assert.Error(t, err)
}

func TestLoadCandidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`["A Ltd", {"name": "B Inc", "source": "permit"}, {"address": "1 Main St"}]`), 0o644))

	cands, err := loadCandidates(path, []string{"C Corp"})
	require.NoError(t, err)
	require.Len(t, cands, 4)
	assert.Equal(t, "A Ltd", cands[0].text())
	assert.Equal(t, "permit", string(cands[1].Source))
	assert.Equal(t, "1 Main St", cands[2].text())
	assert.Equal(t, "C Corp", cands[3].text())

	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "X", "source": "bogus"}]`), 0o644))
	_, err = loadCandidates(path, nil)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	_, err = loadCandidates(path, nil)
	assert.Error(t, err)
}
