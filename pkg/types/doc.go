// Package types provides shared type definitions for civiclink.
//
// These are the domain values passed between the resolution engine, the
// storage layer and the MCP/CLI surfaces.
//
// # Entities
//
// NamedEntity is a company or person as one source refers to it;
// AddressRecord is an address as one source refers to it:
//
//	e := types.NamedEntity{
//	    Name:       "102118427 Saskatchewan Ltd.",
//	    Source:     types.SourceRegistry,
//	    Attributes: map[string]string{types.AttrEntityNumber: "102118427"},
//	}
//
// Both expose MatchKey, the field the matchers compare.
//
// # Results
//
// MatchResult wraps a candidate with its score instead of merging a score
// field into the candidate, so every candidate field survives untouched:
//
//	for _, r := range results {
//	    fmt.Printf("%s %.3f\n", r.Candidate.Name, r.Score)
//	}
//
// EntityLink and LinkReport are the output of cross-referencing. Scores are
// kept at full precision; RoundScore rounds to three places for display.
package types
