// Package crossref links companies, people and addresses across corporate
// registry profiles, property transfers and building permits.
//
//	report, err := crossref.CrossReference(ctx, registry, transfers, permits, 0.80)
//	for _, link := range report.EntityLinks {
//	    fmt.Printf("%s -> %s (%s, %.3f)\n",
//	        link.LeftName, link.MatchedName, link.MatchedSource, types.RoundScore(link.Score))
//	}
//
// Transfer parties and permit owners are deduplicated before matching, so
// matching cost follows the number of distinct companies rather than rows.
// Queries run concurrently against read-only pools; the report is identical
// to a sequential run.
//
// Person and address links are opt-in through Options and are reported
// separately from EntityLinks and TotalLinksFound.
package crossref
