package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/civiclink/internal/config"
	"github.com/dshills/civiclink/internal/ingest"
	"github.com/dshills/civiclink/internal/logging"
	"github.com/dshills/civiclink/internal/records"
	"github.com/dshills/civiclink/internal/resolver"
	"github.com/dshills/civiclink/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "civiclink"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	cfg      *config.Config
	logger   *zap.Logger
	storage  storage.Storage
	parser   *records.Parser
	ingester *ingest.Ingester
	resolver *resolver.Resolver
}

// NewServer opens the store at cfg.DBPath and creates a server over it
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s, err := NewServerWithStorage(store, cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return s, nil
}

// NewServerWithStorage creates a server over an open store. The server
// takes ownership of store and closes it when Serve returns.
func NewServerWithStorage(store storage.Storage, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.OrNop(logger)

	res, err := resolver.New(store, resolver.Config{
		CacheSize: cfg.Cache.Size,
		CacheTTL:  cfg.Cache.TTL,
	}, logger.Named("resolver"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resolver: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcp:      mcpServer,
		cfg:      cfg,
		logger:   logger,
		storage:  store,
		parser:   records.New(),
		ingester: ingest.New(store, logger.Named("ingest")),
		resolver: res,
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	s.logger.Info("mcp server listening on stdio", zap.String("db", s.cfg.DBPath))
	return server.ServeStdio(s.mcp)
}

// Close releases the store without serving
func (s *Server) Close() error {
	return s.storage.Close()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(matchCompanyTool(), s.handleMatchCompany)
	s.mcp.AddTool(matchPersonTool(), s.handleMatchPerson)
	s.mcp.AddTool(matchAddressTool(), s.handleMatchAddress)
	s.mcp.AddTool(crossReferenceTool(), s.handleCrossReference)
	s.mcp.AddTool(ingestRecordsTool(), s.handleIngestRecords)
	s.mcp.AddTool(getLinksTool(), s.handleGetLinks)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
