package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dshills/civiclink/internal/config"
	"github.com/dshills/civiclink/internal/storage"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ServerSuite exercises the tool handlers against an in-memory store
type ServerSuite struct {
	suite.Suite
	ctx     context.Context
	server  *Server
	dataDir string
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := storage.NewSQLiteStorage(":memory:")
	s.Require().NoError(err)

	cfg := config.Default()
	cfg.DBPath = ":memory:"
	cfg.Workers = 2
	s.server, err = NewServerWithStorage(store, cfg, nil)
	s.Require().NoError(err)

	s.dataDir = s.T().TempDir()
	for _, name := range []string{"registry.json", "transfers.json", "permits.json"} {
		data, err := os.ReadFile(filepath.Join("..", "records", "testdata", name))
		s.Require().NoError(err)
		s.Require().NoError(os.WriteFile(filepath.Join(s.dataDir, name), data, 0o600))
	}
}

func (s *ServerSuite) TearDownTest() {
	_ = s.server.Close()
}

// call invokes h and decodes its JSON text result
func (s *ServerSuite) call(h handler, args map[string]interface{}) (map[string]interface{}, error) {
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	result, err := h(s.ctx, req)
	if err != nil {
		return nil, err
	}
	s.Require().NotNil(result)
	s.Require().Len(result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	s.Require().True(ok, "expected text content")

	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(text.Text), &out))
	return out, nil
}

func (s *ServerSuite) requireCode(err error, code int) *MCPError {
	var mcpErr *MCPError
	s.Require().ErrorAs(err, &mcpErr)
	s.Equal(code, mcpErr.Code)
	return mcpErr
}

func (s *ServerSuite) ingest() {
	out, err := s.call(s.server.handleIngestRecords, map[string]interface{}{
		"path":    s.dataDir,
		"dataset": "saskatoon",
	})
	s.Require().NoError(err)
	s.Require().Equal(true, out["ingested"])
}

func (s *ServerSuite) TestMatchCompany() {
	out, err := s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query": "102118427 Saskatchewan Ltd.",
		"candidates": []interface{}{
			"Wright Construction Western Inc",
			map[string]interface{}{
				"name":       "102118427 Sask. Inc",
				"source":     "permit",
				"attributes": map[string]interface{}{"permit_number": "COMM-2024-0001"},
			},
		},
	})
	s.Require().NoError(err)

	s.Equal("102118427 saskatchewan", out["normalized_query"])
	s.Equal(0.8, out["threshold"])
	s.EqualValues(2, out["candidates_scored"])
	matches := out["matches"].([]interface{})
	s.Require().Len(matches, 1)
	best := matches[0].(map[string]interface{})
	s.Equal("102118427 Sask. Inc", best["name"])
	s.Equal("permit", best["source"])
	s.Equal(1.0, best["score"])
	s.Equal("COMM-2024-0001", best["attributes"].(map[string]interface{})["permit_number"])
}

func (s *ServerSuite) TestMatchCompanyNoMatch() {
	out, err := s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query":      "Wright Construction Western Inc",
		"candidates": []interface{}{"Boulevard Real Estate Equities Ltd"},
	})
	s.Require().NoError(err)
	s.EqualValues(0, out["match_count"])
	s.Empty(out["matches"])
}

func (s *ServerSuite) TestMatchPersonTokenOrder() {
	out, err := s.call(s.server.handleMatchPerson, map[string]interface{}{
		"query":      "BATTING TRAVIS",
		"candidates": []interface{}{"Francois Messier", "Travis Batting"},
	})
	s.Require().NoError(err)
	matches := out["matches"].([]interface{})
	s.Require().Len(matches, 1)
	s.Equal(1.0, matches[0].(map[string]interface{})["score"])
}

func (s *ServerSuite) TestMatchAddress() {
	out, err := s.call(s.server.handleMatchAddress, map[string]interface{}{
		"query": "306 Ontario Avenue, Main Floor, Saskatoon, Saskatchewan",
		"candidates": []interface{}{
			map[string]interface{}{"address": "306 ONTARIO AVENUE, MAINFLOOR, SASKATOON, Saskatchewan, Canada, S7K2H5"},
			"12 Broadway Avenue",
		},
		"limit": 1,
	})
	s.Require().NoError(err)
	matches := out["matches"].([]interface{})
	s.Require().Len(matches, 1)
	best := matches[0].(map[string]interface{})
	s.Contains(best["address"], "MAINFLOOR")
	s.GreaterOrEqual(best["score"].(float64), 0.75)
}

func (s *ServerSuite) TestMatchErrors() {
	_, err := s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query":      "  ",
		"candidates": []interface{}{"x"},
	})
	s.requireCode(err, ErrorCodeEmptyQuery)

	_, err = s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query":      "Acme",
		"candidates": []interface{}{"Acme Ltd"},
		"threshold":  1.5,
	})
	s.requireCode(err, ErrorCodeInvalidThreshold)

	_, err = s.call(s.server.handleMatchPerson, map[string]interface{}{
		"query":      "Acme",
		"candidates": "Acme Ltd",
	})
	s.requireCode(err, ErrorCodeInvalidCandidates)

	_, err = s.call(s.server.handleMatchAddress, map[string]interface{}{
		"query":      "1 Main St",
		"candidates": []interface{}{map[string]interface{}{"address": "1 Main St", "source": "tax_roll"}},
	})
	s.requireCode(err, ErrorCodeInvalidCandidates)

	_, err = s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query":      "Acme",
		"candidates": []interface{}{"Acme Ltd"},
		"limit":      -1,
	})
	s.requireCode(err, ErrorCodeInvalidParams)
}

func (s *ServerSuite) TestNumberArgumentTypes() {
	_, err := s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query":      "Acme",
		"candidates": []interface{}{"Acme Ltd"},
		"threshold":  "0.9",
	})
	mcpErr := s.requireCode(err, ErrorCodeInvalidParams)
	s.Equal("threshold", mcpErr.Data.(map[string]interface{})["param"])

	_, err = s.call(s.server.handleCrossReference, map[string]interface{}{
		"registry":         []interface{}{},
		"person_threshold": true,
	})
	s.requireCode(err, ErrorCodeInvalidParams)

	_, err = s.call(s.server.handleGetLinks, map[string]interface{}{
		"dataset":   "nowhere",
		"min_score": "high",
	})
	s.requireCode(err, ErrorCodeInvalidParams)

	out, err := s.call(s.server.handleMatchCompany, map[string]interface{}{
		"query":      "Acme Ltd",
		"candidates": []interface{}{"Acme Inc"},
		"threshold":  nil,
	})
	s.Require().NoError(err)
	s.Len(out["matches"], 1)
}

func (s *ServerSuite) TestCrossReferenceInline() {
	out, err := s.call(s.server.handleCrossReference, map[string]interface{}{
		"registry": []interface{}{
			map[string]interface{}{"entity_number": "102118427", "entity_name": "102118427 Saskatchewan Ltd."},
		},
		"transfers": []interface{}{
			map[string]interface{}{"vendor": "Boardwalk Reit Properties Holdings Ltd", "purchaser": "102118427 Saskatchewan Inc"},
			map[string]interface{}{"roll_number": "1"},
		},
		"permits": []interface{}{
			map[string]interface{}{"owner": "Boardwalk REIT Properties Holdings Ltd.", "address": "125 5th Ave N"},
		},
	})
	s.Require().NoError(err)

	s.EqualValues(1, out["registry_companies"])
	s.EqualValues(2, out["transfer_companies"])
	s.EqualValues(1, out["permit_companies"])

	links := out["entity_links"].([]interface{})
	s.Require().NotEmpty(links)
	s.EqualValues(len(links), out["total_links_found"])
	first := links[0].(map[string]interface{})
	s.Equal("102118427 Saskatchewan Inc", first["matched_name"])
	s.Equal("102118427", first["left_metadata"].(map[string]interface{})["entity_number"])

	rejected := out["rejected_records"].([]interface{})
	s.Len(rejected, 1)
	s.NotContains(out, "person_links")
}

func (s *ServerSuite) TestCrossReferenceEmpty() {
	out, err := s.call(s.server.handleCrossReference, map[string]interface{}{})
	s.Require().NoError(err)
	s.EqualValues(0, out["total_links_found"])
	s.EqualValues(0, out["registry_companies"])
	s.Equal([]interface{}{}, out["entity_links"])
}

func (s *ServerSuite) TestCrossReferenceErrors() {
	_, err := s.call(s.server.handleCrossReference, map[string]interface{}{"company_threshold": -0.1})
	s.requireCode(err, ErrorCodeInvalidThreshold)

	_, err = s.call(s.server.handleCrossReference, map[string]interface{}{"persist": true})
	s.requireCode(err, ErrorCodeInvalidParams)

	_, err = s.call(s.server.handleCrossReference, map[string]interface{}{"registry": "not records"})
	s.requireCode(err, ErrorCodeInvalidParams)

	_, err = s.call(s.server.handleCrossReference, map[string]interface{}{"dataset": "missing"})
	s.requireCode(err, ErrorCodeDatasetNotFound)
}

func (s *ServerSuite) TestIngestLinkAndStatus() {
	s.ingest()

	out, err := s.call(s.server.handleCrossReference, map[string]interface{}{
		"dataset":     "saskatoon",
		"link_people": true,
		"persist":     true,
	})
	s.Require().NoError(err)
	s.Equal("saskatoon", out["dataset"])
	s.Equal(true, out["persisted"])
	s.Contains(out, "person_links")
	total := out["total_links_found"].(float64)
	s.Greater(total, 0.0)

	links, err := s.call(s.server.handleGetLinks, map[string]interface{}{
		"dataset": "saskatoon",
		"kinds":   []interface{}{"company"},
	})
	s.Require().NoError(err)
	s.Equal(total, links["link_count"])

	status, err := s.call(s.server.handleGetStatus, map[string]interface{}{"dataset": "saskatoon"})
	s.Require().NoError(err)
	s.Equal(true, status["ingested"])
	stats := status["statistics"].(map[string]interface{})
	s.EqualValues(3, stats["files_count"])
	s.EqualValues(1, stats["registry_entities"])
	s.EqualValues(2, stats["transfers"])
	s.Equal(total, stats["company_links"])
	s.Equal(true, status["health"].(map[string]interface{})["links_available"])

	list, err := s.call(s.server.handleGetStatus, nil)
	s.Require().NoError(err)
	s.EqualValues(1, list["dataset_count"])

	// Second ingest skips unchanged documents
	again, err := s.call(s.server.handleIngestRecords, map[string]interface{}{
		"path":    s.dataDir,
		"dataset": "saskatoon",
	})
	s.Require().NoError(err)
	s.EqualValues(3, again["files_skipped"])
}

func (s *ServerSuite) TestIngestErrors() {
	_, err := s.call(s.server.handleIngestRecords, map[string]interface{}{"dataset": "x"})
	s.requireCode(err, ErrorCodeInvalidParams)

	_, err = s.call(s.server.handleIngestRecords, map[string]interface{}{"path": s.dataDir})
	s.requireCode(err, ErrorCodeInvalidParams)

	_, err = s.call(s.server.handleIngestRecords, map[string]interface{}{"path": "relative/dir", "dataset": "x"})
	s.requireCode(err, ErrorCodePathNotFound)

	_, err = s.call(s.server.handleIngestRecords, map[string]interface{}{"path": s.T().TempDir(), "dataset": "x"})
	mcpErr := s.requireCode(err, ErrorCodePathNotFound)
	s.Equal(ErrNoDocuments.Error(), mcpErr.Data.(map[string]interface{})["reason"])
}

func (s *ServerSuite) TestGetStatusNotIngested() {
	out, err := s.call(s.server.handleGetStatus, map[string]interface{}{"dataset": "nowhere"})
	s.Require().NoError(err)
	s.Equal(false, out["ingested"])

	_, err = s.call(s.server.handleGetLinks, map[string]interface{}{"dataset": "nowhere"})
	s.requireCode(err, ErrorCodeDatasetNotFound)

	_, err = s.call(s.server.handleGetLinks, map[string]interface{}{"dataset": "nowhere", "kinds": []interface{}{"tax"}})
	s.requireCode(err, ErrorCodeInvalidParams)
}

func TestNewServer(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "nested", "civiclink.db")

	server, err := NewServer(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	assert.NotNil(t, server.mcp)
	assert.NotNil(t, server.ingester)
	assert.NotNil(t, server.resolver)
	assert.FileExists(t, cfg.DBPath)
}

func TestNumberArg(t *testing.T) {
	args := map[string]interface{}{"f": 0.9, "i": 1, "s": "0.9", "n": nil}

	v, err := numberArg(args, "f", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.9, v)

	v, err = numberArg(args, "i", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = numberArg(args, "n", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	v, err = numberArg(args, "missing", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = numberArg(args, "s", 0.5)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "permits.json")
	require.NoError(t, os.WriteFile(doc, []byte("[]"), 0o600))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))

	assert.NoError(t, validatePath(dir))
	assert.NoError(t, validatePath(doc))
	assert.ErrorIs(t, validatePath(""), ErrPathRequired)
	assert.ErrorIs(t, validatePath("rel"), ErrPathNotAbsolute)
	assert.ErrorIs(t, validatePath(filepath.Join(dir, "gone")), ErrPathNotFound)
	assert.ErrorIs(t, validatePath(txt), ErrNoDocuments)
	assert.ErrorIs(t, validatePath(t.TempDir()), ErrNoDocuments)
}
