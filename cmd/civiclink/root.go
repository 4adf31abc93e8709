package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/civiclink/internal/config"
	"github.com/dshills/civiclink/internal/logging"
	"github.com/dshills/civiclink/internal/storage"
)

// app carries state shared by every command
type app struct {
	loader     *config.Loader
	configFile string
	jsonOutput bool

	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{loader: config.NewLoader()}

	rootCmd := &cobra.Command{
		Use:   "civiclink",
		Short: "Entity resolution across civic documents",
		Long: `civiclink links companies, people and addresses across corporate registry
profiles, property transfer lists and building permit reports.

Extractor output (JSON) is ingested into a local SQLite store, then
cross-referenced with fuzzy name and address matching. The same engine is
available to MCP clients through 'civiclink serve'.

Examples:
  civiclink ingest ./extracted --dataset saskatoon
  civiclink link --dataset saskatoon --people --persist
  civiclink match company "102118427 Saskatchewan Ltd." --candidates owners.json
  civiclink status --dataset saskatoon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: civiclink.yaml in ., ~/.config/civiclink or ~/.civiclink)")
	flags.String("db", "", "path to the SQLite store")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	flags.Int("workers", 0, "concurrent workers (0 uses all CPUs)")
	flags.BoolVar(&a.jsonOutput, "json", false, "write JSON output")

	v := a.loader.Viper()
	_ = v.BindPFlag("db_path", flags.Lookup("db"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("workers", flags.Lookup("workers"))

	rootCmd.AddCommand(
		newServeCmd(a),
		newIngestCmd(a),
		newLinkCmd(a),
		newMatchCmd(a),
		newStatusCmd(a),
		newDemoCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// init loads configuration and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	cfg, err := a.loader.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	if cfg.File != "" {
		a.logger.Debug("config loaded", zap.String("file", cfg.File))
	}
	return nil
}

// openStorage opens the configured store, creating its directory
func (a *app) openStorage() (*storage.SQLiteStorage, error) {
	if a.cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	store, err := storage.NewSQLiteStorage(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", a.cfg.DBPath, err)
	}
	return store, nil
}

// printJSON writes v as indented JSON
func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
