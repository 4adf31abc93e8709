package matcher

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/dshills/civiclink/internal/normalize"
	"github.com/dshills/civiclink/internal/similarity"
	"github.com/dshills/civiclink/pkg/types"
)

// Kind selects the normalization and boost rules of a Matcher
type Kind string

const (
	KindCompany Kind = "company"
	KindPerson  Kind = "person"
	KindAddress Kind = "address"
)

// Default thresholds per kind. Person names are short and common, so they
// need a tighter bound.
const (
	DefaultCompanyThreshold = 0.80
	DefaultPersonThreshold  = 0.85
	DefaultAddressThreshold = 0.75
)

var (
	ErrInvalidThreshold = errors.New("threshold must be a number in [0, 1]")
	ErrUnknownKind      = errors.New("unknown match kind")
)

// ParseKind converts a kind name such as "company" into a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindCompany, KindPerson, KindAddress:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// DefaultThreshold returns the default threshold for kind, or 0 for an
// unknown kind.
func DefaultThreshold(kind Kind) float64 {
	switch kind {
	case KindCompany:
		return DefaultCompanyThreshold
	case KindPerson:
		return DefaultPersonThreshold
	case KindAddress:
		return DefaultAddressThreshold
	default:
		return 0
	}
}

// Matcher scores a query against candidate pools with one kind's rules and
// keeps candidates at or above its threshold. A Matcher is immutable and
// safe for concurrent use.
type Matcher struct {
	kind      Kind
	threshold float64
	normalize normalize.Func
	score     similarity.Scorer
}

// New creates a Matcher. The threshold is validated here so that an invalid
// filter can never be applied silently.
func New(kind Kind, threshold float64) (*Matcher, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	m := &Matcher{kind: kind, threshold: threshold}
	switch kind {
	case KindCompany:
		m.normalize, m.score = normalize.Company, similarity.Company
	case KindPerson:
		m.normalize, m.score = normalize.Person, similarity.Person
	case KindAddress:
		m.normalize, m.score = normalize.Address, similarity.Address
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return m, nil
}

// Default returns a Matcher for kind at its default threshold.
// It panics on an unknown kind.
func Default(kind Kind) *Matcher {
	m, err := New(kind, DefaultThreshold(kind))
	if err != nil {
		panic(err)
	}
	return m
}

// Kind returns the matcher's kind
func (m *Matcher) Kind() Kind { return m.kind }

// Threshold returns the minimum score a match must reach
func (m *Matcher) Threshold() float64 { return m.threshold }

// Normalize applies the kind's normalizer
func (m *Matcher) Normalize(s string) string { return m.normalize(s) }

// Score compares two raw strings with this matcher's rules, ignoring the
// threshold.
func (m *Matcher) Score(a, b string) float64 {
	return m.score(m.normalize(a), m.normalize(b))
}

// Candidate is anything exposing the field a matcher compares
type Candidate interface {
	MatchKey() string
}

// Results is a score-descending list of matches
type Results[C any] []types.MatchResult[C]

// Best returns the highest scoring result
func (r Results[C]) Best() (types.MatchResult[C], bool) {
	if len(r) == 0 {
		var zero types.MatchResult[C]
		return zero, false
	}
	return r[0], true
}

// Top returns at most n results
func (r Results[C]) Top(n int) Results[C] {
	if n < 0 {
		n = 0
	}
	if n >= len(r) {
		return r
	}
	return r[:n]
}

// Match scores every candidate against query and returns those at or above
// the threshold, sorted by score descending with ties kept in input order.
// An empty normalized query returns an empty list without scanning.
func Match[C Candidate](m *Matcher, query string, candidates []C) Results[C] {
	q := m.normalize(query)
	results := make(Results[C], 0)
	if q == "" {
		return results
	}

	for _, c := range candidates {
		key := m.normalize(c.MatchKey())
		if key == "" {
			continue
		}
		if score := m.score(q, key); score >= m.threshold {
			results = append(results, types.MatchResult[C]{Candidate: c, Score: score})
		}
	}
	sortResults(results)
	return results
}

func sortResults[C any](results Results[C]) {
	slices.SortStableFunc(results, func(a, b types.MatchResult[C]) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
