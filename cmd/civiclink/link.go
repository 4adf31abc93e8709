package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/civiclink/internal/crossref"
	"github.com/dshills/civiclink/internal/resolver"
	"github.com/dshills/civiclink/pkg/types"
)

func newLinkCmd(a *app) *cobra.Command {
	var (
		dataset          string
		persist          bool
		people           bool
		addresses        bool
		companyThreshold float64
		personThreshold  float64
		addressThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Cross-reference the records of a dataset",
		Long: `Link registry companies to transfer and permit parties, and transfer
parties to permit owners, within an ingested dataset.

With --people, registry directors, officers and shareholders are matched
against transfer parties; with --addresses, registry addresses against
transfer and permit addresses. --persist stores the links, replacing any
earlier links of the same kinds.

Examples:
  civiclink link --dataset saskatoon
  civiclink link --dataset saskatoon --threshold 0.9 --json
  civiclink link --dataset saskatoon --people --addresses --persist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataset == "" {
				return errors.New("--dataset is required")
			}

			opts := crossref.Options{
				CompanyThreshold: a.cfg.Thresholds.Company,
				PersonThreshold:  a.cfg.Thresholds.Person,
				AddressThreshold: a.cfg.Thresholds.Address,
				LinkPeople:       people,
				LinkAddresses:    addresses,
				Workers:          a.cfg.Workers,
			}
			if cmd.Flags().Changed("threshold") {
				opts.CompanyThreshold = companyThreshold
			}
			if cmd.Flags().Changed("person-threshold") {
				opts.PersonThreshold = personThreshold
			}
			if cmd.Flags().Changed("address-threshold") {
				opts.AddressThreshold = addressThreshold
			}

			store, err := a.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			res, err := resolver.New(store, resolver.Config{}, a.logger)
			if err != nil {
				return err
			}
			resp, err := res.Resolve(cmd.Context(), resolver.Request{
				Dataset: dataset,
				Options: opts,
				Persist: persist,
			})
			if err != nil {
				return err
			}

			report := resp.Report.Rounded()
			if a.jsonOutput {
				return a.printJSON(report)
			}

			a.printf("Dataset %q: %d registry, %d transfer, %d permit companies\n",
				dataset, report.RegistryCompanies, report.TransferCompanies, report.PermitCompanies)
			a.printf("\n%d company links:\n", report.TotalLinksFound)
			a.printLinks(report.EntityLinks)
			if people {
				a.printf("\n%d person links (%d registry people):\n", len(report.PersonLinks), report.RegistryPeople)
				a.printLinks(report.PersonLinks)
			}
			if addresses {
				a.printf("\n%d address links:\n", len(report.AddressLinks))
				a.printLinks(report.AddressLinks)
			}
			if resp.Persisted {
				a.printf("\nLinks stored.\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name (required)")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the links in the dataset")
	cmd.Flags().BoolVar(&people, "people", false, "also link registry people to transfer parties")
	cmd.Flags().BoolVar(&addresses, "addresses", false, "also link registry addresses")
	cmd.Flags().Float64Var(&companyThreshold, "threshold", 0, "company match threshold (default from config, 0.80)")
	cmd.Flags().Float64Var(&personThreshold, "person-threshold", 0, "person match threshold (default from config, 0.85)")
	cmd.Flags().Float64Var(&addressThreshold, "address-threshold", 0, "address match threshold (default from config, 0.75)")
	return cmd
}

func (a *app) printLinks(links []types.EntityLink) {
	for _, l := range links {
		a.printf("  [%s] %s -> [%s] %s (score: %g)", l.LeftSource, l.LeftName, l.MatchedSource, l.MatchedName, l.Score)
		if num := l.EntityNumber(); num != "" {
			a.printf(" #%s", num)
		}
		a.printf("\n")
	}
}
