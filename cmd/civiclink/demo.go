package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/civiclink/internal/matcher"
	"github.com/dshills/civiclink/pkg/types"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the matchers on built-in sample names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(a)
		},
	}
}

func runDemo(a *app) error {
	a.printf("Entity Matching Engine\n")
	a.printf("========================================\n")

	companies := []string{
		"102118427 Saskatchewan Ltd.",
		"Boardwalk Reit Properties Holdings Ltd",
		"Wright Construction Western Inc",
	}
	transfers := []types.NamedEntity{
		{Name: "Boardwalk Reit Properties Holdings Ltd", Source: types.SourceTransfer},
		{Name: "Boulevard Real Estate Equities Ltd", Source: types.SourceTransfer},
		{Name: "Wright Construction Western Inc", Source: types.SourceTransfer},
	}

	a.printf("\nCompany matching demo:\n")
	for _, name := range companies {
		matches, err := matcher.MatchCompany(name, transfers, matcher.DefaultCompanyThreshold)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			a.printf("  %s -> no match\n", name)
			continue
		}
		for _, m := range matches {
			a.printf("  %s -> %s (score: %g)\n", name, m.Candidate.Name, types.RoundScore(m.Score))
		}
	}

	a.printf("\nPerson matching demo:\n")
	people := []types.NamedEntity{{Name: "Travis Batting"}, {Name: "Francois Messier"}}
	matches, err := matcher.MatchPerson("BATTING TRAVIS", people, matcher.DefaultPersonThreshold)
	if err != nil {
		return err
	}
	for _, m := range matches {
		a.printf("  BATTING TRAVIS -> %s (score: %g)\n", m.Candidate.Name, types.RoundScore(m.Score))
	}

	a.printf("\nAddress matching demo:\n")
	addrs := []types.AddressRecord{
		{Address: "125 5th Ave N, Saskatoon, SK"},
		{Address: "306 Ontario Avenue, Main Floor, Saskatoon, Saskatchewan"},
	}
	addrMatches, err := matcher.MatchAddress("306 ONTARIO AVENUE, MAINFLOOR, SASKATOON, Saskatchewan, Canada, S7K2H5",
		addrs, matcher.DefaultAddressThreshold)
	if err != nil {
		return err
	}
	for _, m := range addrMatches {
		a.printf("  -> %s (score: %g)\n", m.Candidate.Address, types.RoundScore(m.Score))
	}
	return nil
}
