// Package logging builds the zap loggers used by the ingest, resolver, MCP
// and CLI layers. Loggers always write to stderr.
package logging
