package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/civiclink/internal/storage"
)

func newStatusCmd(a *app) *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"stats"},
		Short:   "Show dataset statistics",
		Long: `Show record and link counts for a dataset, or list every dataset when
--dataset is omitted.

Examples:
  civiclink status
  civiclink status --dataset saskatoon --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			ctx := cmd.Context()

			if dataset == "" {
				datasets, err := store.ListDatasets(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					out := make([]map[string]interface{}, len(datasets))
					for i, d := range datasets {
						out[i] = datasetJSON(d)
					}
					return a.printJSON(out)
				}
				if len(datasets) == 0 {
					a.printf("No datasets. Use 'civiclink ingest' to add one.\n")
					return nil
				}
				for _, d := range datasets {
					a.printf("%-24s %5d files %7d records  ingested %s\n",
						d.Name, d.TotalFiles, d.TotalRecords, formatTime(d.LastIngestedAt))
				}
				return nil
			}

			ds, err := store.GetDataset(ctx, dataset)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("dataset %q not ingested", dataset)
			}
			if err != nil {
				return err
			}
			status, err := store.GetStatus(ctx, ds.ID)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return a.printJSON(map[string]interface{}{
					"dataset":           datasetJSON(ds),
					"files":             status.FilesCount,
					"registry_entities": status.RegistryEntities,
					"registry_people":   status.RegistryPeople,
					"transfers":         status.Transfers,
					"permits":           status.Permits,
					"company_links":     status.CompanyLinks,
					"person_links":      status.PersonLinks,
					"address_links":     status.AddressLinks,
					"database_size_mb":  status.DatabaseSizeMB,
					"health": map[string]bool{
						"database_accessible": status.Health.DatabaseAccessible,
						"records_available":   status.Health.RecordsAvailable,
						"links_available":     status.Health.LinksAvailable,
					},
				})
			}
			a.printf("Dataset:            %s\n", ds.Name)
			a.printf("Root:               %s\n", ds.RootPath)
			a.printf("Files:              %d\n", status.FilesCount)
			a.printf("Registry entities:  %d (%d people)\n", status.RegistryEntities, status.RegistryPeople)
			a.printf("Transfers:          %d\n", status.Transfers)
			a.printf("Permits:            %d\n", status.Permits)
			a.printf("Links:              %d company, %d person, %d address\n",
				status.CompanyLinks, status.PersonLinks, status.AddressLinks)
			a.printf("Last ingested:      %s\n", formatTime(status.LastIngestedAt))
			a.printf("Last linked:        %s\n", formatTime(status.LastLinkedAt))
			a.printf("Database size:      %.2f MB\n", status.DatabaseSizeMB)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")
	return cmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
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
