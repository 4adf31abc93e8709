package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/civiclink/internal/storage"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printf("civiclink\n")
			a.printf("Version: %s\n", version)
			a.printf("Build Time: %s\n", buildTime)
			a.printf("Build Mode: %s\n", storage.BuildMode)
			a.printf("SQLite Driver: %s\n", storage.DriverName)
			a.printf("Schema Version: %s\n", storage.CurrentSchemaVersion)
			return nil
		},
	}
}
