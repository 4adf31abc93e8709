package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/civiclink/internal/ingest"
)

func newIngestCmd(a *app) *cobra.Command {
	var dataset string
	var force bool

	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest extractor JSON documents into a dataset",
		Long: `Ingest every *.json extractor document under a directory (or a single
document) into the named dataset.

Registry profiles, transfer lists and permit reports are detected from the
document shape. Unchanged documents are skipped by content hash; records
that fail validation are counted and skipped.

Examples:
  civiclink ingest ./extracted --dataset saskatoon
  civiclink ingest ./extracted/permits-2024-01.json --dataset saskatoon
  civiclink ingest ./extracted --dataset saskatoon --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataset == "" {
				return errors.New("--dataset is required")
			}

			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ing := ingest.New(store, a.logger)
			stats, err := ing.Ingest(cmd.Context(), dataset, args[0], &ingest.Config{
				Workers: a.cfg.Workers,
				Force:   force,
			})
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return a.printJSON(stats)
			}
			a.printf("Ingested %d files into %q (%d skipped, %d failed, %d removed) in %s\n",
				stats.FilesIngested, dataset, stats.FilesSkipped, stats.FilesFailed, stats.FilesRemoved, stats.Duration)
			a.printf("  registry entities: %d\n  transfers: %d\n  permits: %d\n  rejected records: %d\n",
				stats.RegistryEntities, stats.Transfers, stats.Permits, stats.RecordsRejected)
			for _, msg := range stats.ErrorMessages {
				a.printf("  error: %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name (required)")
	cmd.Flags().BoolVar(&force, "force", false, "re-ingest all documents ignoring content hashes")
	return cmd
}
