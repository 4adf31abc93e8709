package matcher

import "github.com/dshills/civiclink/pkg/types"

// Pool is a candidate pool normalized once for repeated queries.
// It is read-only after construction and safe for concurrent use.
type Pool[C Candidate] struct {
	matcher *Matcher
	items   []C
	keys    []string
}

// NewPool normalizes every candidate's match key up front. Candidates whose
// key normalizes to "" are dropped.
func NewPool[C Candidate](m *Matcher, candidates []C) *Pool[C] {
	p := &Pool[C]{
		matcher: m,
		items:   make([]C, 0, len(candidates)),
		keys:    make([]string, 0, len(candidates)),
	}
	for _, c := range candidates {
		key := m.normalize(c.MatchKey())
		if key == "" {
			continue
		}
		p.items = append(p.items, c)
		p.keys = append(p.keys, key)
	}
	return p
}

// Len returns the number of matchable candidates
func (p *Pool[C]) Len() int { return len(p.items) }

// Match gives the same results as Match over the original candidates
func (p *Pool[C]) Match(query string) Results[C] {
	q := p.matcher.normalize(query)
	results := make(Results[C], 0)
	if q == "" {
		return results
	}

	for i, key := range p.keys {
		if score := p.matcher.score(q, key); score >= p.matcher.threshold {
			results = append(results, types.MatchResult[C]{Candidate: p.items[i], Score: score})
		}
	}
	sortResults(results)
	return results
}
