// Package matcher applies normalization and similarity scoring to candidate
// pools and ranks the candidates that reach a threshold.
//
// There are three kinds, each with its own normalizer, boosts and default
// threshold: company (0.80), person (0.85) and address (0.75).
//
//	m, err := matcher.New(matcher.KindCompany, 0.80)
//	if err != nil {
//	    return err // threshold outside [0, 1]
//	}
//	results := matcher.Match(m, "102118427 Saskatchewan Ltd.", entities)
//	if best, ok := results.Best(); ok {
//	    fmt.Println(best.Candidate.Name, best.Score)
//	}
//
// Results are sorted by score descending; equal scores keep input order. No
// match is an empty list, never an error.
//
// When the same pool is queried many times, NewPool normalizes it once:
//
//	pool := matcher.NewPool(m, entities)
//	for _, q := range queries {
//	    results := pool.Match(q)
//	}
package matcher
