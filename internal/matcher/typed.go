package matcher

import "github.com/dshills/civiclink/pkg/types"

// MatchCompany matches a company name against named entities
func MatchCompany(query string, candidates []types.NamedEntity, threshold float64) (Results[types.NamedEntity], error) {
	m, err := New(KindCompany, threshold)
	if err != nil {
		return nil, err
	}
	return Match(m, query, candidates), nil
}

// MatchPerson matches a person name against named entities, ignoring
// token order
func MatchPerson(query string, candidates []types.NamedEntity, threshold float64) (Results[types.NamedEntity], error) {
	m, err := New(KindPerson, threshold)
	if err != nil {
		return nil, err
	}
	return Match(m, query, candidates), nil
}

// MatchAddress matches a civic address against address records
func MatchAddress(query string, candidates []types.AddressRecord, threshold float64) (Results[types.AddressRecord], error) {
	m, err := New(KindAddress, threshold)
	if err != nil {
		return nil, err
	}
	return Match(m, query, candidates), nil
}
