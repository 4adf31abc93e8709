package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/dshills/civiclink/internal/crossref"
	"github.com/dshills/civiclink/internal/ingest"
	"github.com/dshills/civiclink/internal/matcher"
	"github.com/dshills/civiclink/internal/resolver"
	"github.com/dshills/civiclink/internal/storage"
	"github.com/dshills/civiclink/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams     = -32602 // Invalid method parameters
	ErrorCodeInternalError     = -32603 // Internal JSON-RPC error
	ErrorCodePathNotFound      = -32001 // Ingest path does not exist or holds no documents
	ErrorCodeIngestInProgress  = -32002 // Another ingest operation is already running
	ErrorCodeDatasetNotFound   = -32003 // Dataset not ingested
	ErrorCodeEmptyQuery        = -32004 // Query parameter is empty
	ErrorCodeInvalidThreshold  = -32005 // Threshold outside [0, 1]
	ErrorCodeInvalidCandidates = -32006 // Candidates missing or malformed
)

// handleMatchCompany handles the match_company tool invocation
func (s *Server) handleMatchCompany(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleMatchNames(request, matcher.KindCompany)
}

// handleMatchPerson handles the match_person tool invocation
func (s *Server) handleMatchPerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleMatchNames(request, matcher.KindPerson)
}

// handleMatchNames scores named entities with a company or person matcher
func (s *Server) handleMatchNames(request mcp.CallToolRequest, kind matcher.Kind) (*mcp.CallToolResult, error) {
	query, cands, m, limit, err := s.matchArgs(request, kind, "name")
	if err != nil {
		return nil, err
	}

	entities := make([]types.NamedEntity, len(cands))
	for i, c := range cands {
		entities[i] = types.NamedEntity{Name: c.text, Source: c.source, Attributes: c.attrs}
	}

	results := matcher.Match(m, query, entities).Top(limit)
	matches := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		matches = append(matches, matchJSON("name", r.Candidate.Name, r.Candidate.Source, r.Candidate.Attributes, r.Score))
	}

	return mcp.NewToolResultText(formatJSON(matchResponse(query, m, len(cands), matches))), nil
}

// handleMatchAddress handles the match_address tool invocation
func (s *Server) handleMatchAddress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, cands, m, limit, err := s.matchArgs(request, matcher.KindAddress, "address")
	if err != nil {
		return nil, err
	}

	addresses := make([]types.AddressRecord, len(cands))
	for i, c := range cands {
		addresses[i] = types.AddressRecord{Address: c.text, Source: c.source, Attributes: c.attrs}
	}

	results := matcher.Match(m, query, addresses).Top(limit)
	matches := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		matches = append(matches, matchJSON("address", r.Candidate.Address, r.Candidate.Source, r.Candidate.Attributes, r.Score))
	}

	return mcp.NewToolResultText(formatJSON(matchResponse(query, m, len(cands), matches))), nil
}

// matchArgs extracts and validates the shared match_* parameters
func (s *Server) matchArgs(request mcp.CallToolRequest, kind matcher.Kind, field string) (string, []candidateArg, *matcher.Matcher, int, error) {
	args, err := arguments(request)
	if err != nil {
		return "", nil, nil, 0, err
	}

	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", nil, nil, 0, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	cands, err := parseCandidates(args, field)
	if err != nil {
		return "", nil, nil, 0, newMCPError(ErrorCodeInvalidCandidates, "invalid candidates", map[string]interface{}{
			"param":  "candidates",
			"reason": err.Error(),
		})
	}

	threshold, err := numberArg(args, "threshold", s.defaultThreshold(kind))
	if err != nil {
		return "", nil, nil, 0, err
	}
	m, err := matcher.New(kind, threshold)
	if err != nil {
		return "", nil, nil, 0, thresholdError("threshold", threshold, err)
	}

	limit := getIntDefault(args, "limit", 0)
	if limit < 0 {
		return "", nil, nil, 0, newMCPError(ErrorCodeInvalidParams, "limit cannot be negative", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}
	if limit == 0 {
		limit = len(cands)
	}

	return query, cands, m, limit, nil
}

// defaultThreshold returns the configured threshold for kind
func (s *Server) defaultThreshold(kind matcher.Kind) float64 {
	switch kind {
	case matcher.KindCompany:
		return s.cfg.Thresholds.Company
	case matcher.KindPerson:
		return s.cfg.Thresholds.Person
	case matcher.KindAddress:
		return s.cfg.Thresholds.Address
	default:
		return matcher.DefaultThreshold(kind)
	}
}

// handleCrossReference handles the cross_reference tool invocation
func (s *Server) handleCrossReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	opts := crossref.Options{
		LinkPeople:    getBoolDefault(args, "link_people", false),
		LinkAddresses: getBoolDefault(args, "link_addresses", false),
		Workers:       s.cfg.Workers,
	}
	if opts.CompanyThreshold, err = numberArg(args, "company_threshold", s.cfg.Thresholds.Company); err != nil {
		return nil, err
	}
	if opts.PersonThreshold, err = numberArg(args, "person_threshold", s.cfg.Thresholds.Person); err != nil {
		return nil, err
	}
	if opts.AddressThreshold, err = numberArg(args, "address_threshold", s.cfg.Thresholds.Address); err != nil {
		return nil, err
	}
	for param, v := range map[string]float64{
		"company_threshold": opts.CompanyThreshold,
		"person_threshold":  opts.PersonThreshold,
		"address_threshold": opts.AddressThreshold,
	} {
		if _, err := matcher.New(matcher.KindCompany, v); err != nil {
			return nil, thresholdError(param, v, err)
		}
	}

	persist := getBoolDefault(args, "persist", false)
	dataset := getStringDefault(args, "dataset", "")
	if dataset != "" {
		return s.crossReferenceDataset(ctx, dataset, opts, persist)
	}
	if persist {
		return nil, newMCPError(ErrorCodeInvalidParams, "persist requires a dataset", map[string]interface{}{
			"param":  "persist",
			"reason": "inline records cannot be stored",
		})
	}

	in, rejected, err := s.parseInline(args)
	if err != nil {
		return nil, err
	}

	linker, err := crossref.New(opts)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid options", map[string]interface{}{
			"error": err.Error(),
		})
	}
	report, err := linker.Link(ctx, in)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "cross reference failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := reportJSON(report)
	if len(rejected) > 0 {
		response["rejected_records"] = limitMessages(rejected, response)
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// crossReferenceDataset resolves a stored dataset
func (s *Server) crossReferenceDataset(ctx context.Context, dataset string, opts crossref.Options, persist bool) (*mcp.CallToolResult, error) {
	resp, err := s.resolver.Resolve(ctx, resolver.Request{
		Dataset:  dataset,
		Options:  opts,
		Persist:  persist,
		UseCache: true,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, datasetNotFound(dataset)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "cross reference failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := reportJSON(resp.Report)
	response["dataset"] = resp.Dataset.Name
	response["cache_hit"] = resp.CacheHit
	response["persisted"] = resp.Persisted
	response["duration_ms"] = resp.Duration.Milliseconds()
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// parseInline decodes inline record arrays with the same validation as
// ingest. Rejected records are reported, not fatal.
func (s *Server) parseInline(args map[string]interface{}) (crossref.Input, []string, error) {
	var in crossref.Input
	var rejected []string

	for _, spec := range []struct {
		param string
		kind  types.Source
	}{
		{"registry", types.SourceRegistry},
		{"transfers", types.SourceTransfer},
		{"permits", types.SourcePermit},
	} {
		raw, ok := args[spec.param]
		if !ok || raw == nil {
			continue
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return in, nil, newMCPError(ErrorCodeInvalidParams, "invalid records", map[string]interface{}{
				"param":  spec.param,
				"reason": err.Error(),
			})
		}
		result, err := s.parser.ParseAs(spec.param, data, spec.kind)
		if err != nil {
			return in, nil, newMCPError(ErrorCodeInvalidParams, "invalid records", map[string]interface{}{
				"param":  spec.param,
				"reason": err.Error(),
			})
		}
		in.Registry = append(in.Registry, result.Registry...)
		in.Transfers = append(in.Transfers, result.Transfers...)
		in.Permits = append(in.Permits, result.Permits...)
		for i := range result.Errors {
			rejected = append(rejected, result.Errors[i].Error())
		}
	}
	return in, rejected, nil
}

// handleIngestRecords handles the ingest_records tool invocation
func (s *Server) handleIngestRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	dataset, ok := args["dataset"].(string)
	if !ok || strings.TrimSpace(dataset) == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "dataset parameter is required", map[string]interface{}{
			"param":  "dataset",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodePathNotFound, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	stats, err := s.ingester.Ingest(ctx, dataset, path, &ingest.Config{
		Workers: s.cfg.Workers,
		Force:   getBoolDefault(args, "force", false),
	})
	if errors.Is(err, ingest.ErrIngestInProgress) {
		return nil, newMCPError(ErrorCodeIngestInProgress, "another ingest is already running", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "ingest failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.resolver.InvalidateCache()

	response := map[string]interface{}{
		"ingested":          true,
		"dataset":           dataset,
		"files_ingested":    stats.FilesIngested,
		"files_skipped":     stats.FilesSkipped,
		"files_failed":      stats.FilesFailed,
		"files_removed":     stats.FilesRemoved,
		"registry_entities": stats.RegistryEntities,
		"transfers":         stats.Transfers,
		"permits":           stats.Permits,
		"records_rejected":  stats.RecordsRejected,
		"duration_ms":       stats.Duration.Milliseconds(),
	}
	if len(stats.ErrorMessages) > 0 {
		response["errors"] = limitMessages(stats.ErrorMessages, response)
	}

	s.logger.Debug("ingest_records", zap.String("dataset", dataset), zap.String("path", path))
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetLinks handles the get_links tool invocation
func (s *Server) handleGetLinks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	dataset, ok := args["dataset"].(string)
	if !ok || dataset == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "dataset parameter is required", map[string]interface{}{
			"param":  "dataset",
			"reason": "missing or empty",
		})
	}

	minScore, err := numberArg(args, "min_score", 0)
	if err != nil {
		return nil, err
	}
	filter := storage.LinkFilter{
		MinScore: minScore,
		Limit:    getIntDefault(args, "limit", 0),
	}
	if kinds, ok := args["kinds"].([]interface{}); ok {
		for _, k := range kinds {
			kind, _ := k.(string)
			switch storage.LinkKind(kind) {
			case storage.LinkCompany, storage.LinkPerson, storage.LinkAddress:
				filter.Kinds = append(filter.Kinds, storage.LinkKind(kind))
			default:
				return nil, newMCPError(ErrorCodeInvalidParams, "invalid link kind", map[string]interface{}{
					"param":   "kinds",
					"value":   k,
					"allowed": []string{"company", "person", "address"},
				})
			}
		}
	}

	links, err := s.resolver.Links(ctx, dataset, filter)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, datasetNotFound(dataset)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list links", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"dataset":    dataset,
		"links":      linksJSON(links),
		"link_count": len(links),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	name := getStringDefault(args, "dataset", "")
	if name == "" {
		return s.listDatasets(ctx)
	}

	dataset, err := s.storage.GetDataset(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		response := map[string]interface{}{
			"ingested": false,
			"dataset":  name,
			"message":  "Dataset not ingested. Use ingest_records tool to ingest extractor output.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get dataset status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, dataset.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"ingested": true,
		"dataset":  datasetJSON(dataset),
		"statistics": map[string]interface{}{
			"files_count":       status.FilesCount,
			"registry_entities": status.RegistryEntities,
			"registry_people":   status.RegistryPeople,
			"transfers":         status.Transfers,
			"permits":           status.Permits,
			"company_links":     status.CompanyLinks,
			"person_links":      status.PersonLinks,
			"address_links":     status.AddressLinks,
			"database_size_mb":  fmt.Sprintf("%.2f", status.DatabaseSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible": status.Health.DatabaseAccessible,
			"records_available":   status.Health.RecordsAvailable,
			"links_available":     status.Health.LinksAvailable,
		},
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// listDatasets reports every ingested dataset
func (s *Server) listDatasets(ctx context.Context) (*mcp.CallToolResult, error) {
	datasets, err := s.storage.ListDatasets(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list datasets", map[string]interface{}{
			"error": err.Error(),
		})
	}
	items := make([]map[string]interface{}, 0, len(datasets))
	for _, d := range datasets {
		items = append(items, datasetJSON(d))
	}
	response := map[string]interface{}{
		"datasets":      items,
		"dataset_count": len(items),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func thresholdError(param string, value float64, err error) error {
	return newMCPError(ErrorCodeInvalidThreshold, "threshold must be between 0 and 1", map[string]interface{}{
		"param":  param,
		"value":  value,
		"reason": err.Error(),
	})
}

func datasetNotFound(name string) error {
	return newMCPError(ErrorCodeDatasetNotFound, "dataset not ingested", map[string]interface{}{
		"dataset": name,
	})
}

// arguments returns the call arguments; a call without arguments is an
// empty map
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

// candidateArg is one inline candidate
type candidateArg struct {
	text   string
	source types.Source
	attrs  map[string]string
}

// parseCandidates reads the candidates array. Items are strings or objects
// with the text under field.
func parseCandidates(args map[string]interface{}, field string) ([]candidateArg, error) {
	raw, ok := args["candidates"].([]interface{})
	if !ok {
		return nil, errors.New("candidates must be an array")
	}

	out := make([]candidateArg, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, candidateArg{text: v})
		case map[string]interface{}:
			text, ok := v[field].(string)
			if !ok {
				return nil, fmt.Errorf("candidate %d: %s must be a string", i, field)
			}
			c := candidateArg{text: text}
			if src, ok := v["source"].(string); ok && src != "" {
				c.source = types.Source(src)
				if !c.source.Valid() {
					return nil, fmt.Errorf("candidate %d: %w %q", i, types.ErrUnknownSource, src)
				}
			}
			if attrs, ok := v["attributes"].(map[string]interface{}); ok && len(attrs) > 0 {
				c.attrs = make(map[string]string, len(attrs))
				for k, a := range attrs {
					c.attrs[k] = fmt.Sprint(a)
				}
			}
			out = append(out, c)
		default:
			return nil, fmt.Errorf("candidate %d: expected string or object", i)
		}
	}
	return out, nil
}

func matchResponse(query string, m *matcher.Matcher, scored int, matches []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"query":             query,
		"normalized_query":  m.Normalize(query),
		"kind":              string(m.Kind()),
		"threshold":         m.Threshold(),
		"candidates_scored": scored,
		"match_count":       len(matches),
		"matches":           matches,
	}
}

func matchJSON(field, text string, source types.Source, attrs map[string]string, score float64) map[string]interface{} {
	m := map[string]interface{}{
		field:   text,
		"score": types.RoundScore(score),
	}
	if source != "" {
		m["source"] = string(source)
	}
	if len(attrs) > 0 {
		m["attributes"] = attrs
	}
	return m
}

// reportJSON renders a link report with scores rounded for display
func reportJSON(report *types.LinkReport) map[string]interface{} {
	response := map[string]interface{}{
		"entity_links":       linksJSON(report.EntityLinks),
		"registry_companies": report.RegistryCompanies,
		"transfer_companies": report.TransferCompanies,
		"permit_companies":   report.PermitCompanies,
		"total_links_found":  report.TotalLinksFound,
	}
	if report.PersonLinks != nil {
		response["person_links"] = linksJSON(report.PersonLinks)
		response["registry_people"] = report.RegistryPeople
	}
	if report.AddressLinks != nil {
		response["address_links"] = linksJSON(report.AddressLinks)
	}
	return response
}

func linksJSON(links []types.EntityLink) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(links))
	for _, l := range links {
		m := map[string]interface{}{
			"left_name":      l.LeftName,
			"left_source":    string(l.LeftSource),
			"matched_name":   l.MatchedName,
			"matched_source": string(l.MatchedSource),
			"score":          types.RoundScore(l.Score),
		}
		if len(l.LeftMetadata) > 0 {
			m["left_metadata"] = l.LeftMetadata
		}
		out = append(out, m)
	}
	return out
}

func datasetJSON(d *storage.Dataset) map[string]interface{} {
	return map[string]interface{}{
		"name":             d.Name,
		"root_path":        d.RootPath,
		"total_files":      d.TotalFiles,
		"total_records":    d.TotalRecords,
		"last_ingested_at": formatTime(d.LastIngestedAt),
		"last_linked_at":   formatTime(d.LastLinkedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// limitMessages keeps the first five messages and records the total on
// response when more were dropped
func limitMessages(msgs []string, response map[string]interface{}) []string {
	if len(msgs) > 5 {
		response["error_count"] = len(msgs)
		return msgs[:5]
	}
	return msgs
}

// validatePath checks if a path exists and is readable
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return ErrNoDocuments
		}
		return nil
	}

	hasDocuments := false
	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".json") {
			hasDocuments = true
			return filepath.SkipAll
		}
		return nil
	})
	if !hasDocuments {
		return ErrNoDocuments
	}
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// numberArg extracts a number parameter, using defaultValue when it is
// absent or null. Any other type is an invalid parameter.
func numberArg(args map[string]interface{}, key string, defaultValue float64) (float64, error) {
	switch val := args[key].(type) {
	case nil:
		return defaultValue, nil
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	default:
		return 0, newMCPError(ErrorCodeInvalidParams, key+" must be a number", map[string]interface{}{
			"param": key,
			"value": val,
		})
	}
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNoDocuments     = errors.New("path does not contain JSON documents")
)
