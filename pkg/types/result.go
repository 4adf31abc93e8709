package types

import "math"

// MatchResult pairs a candidate with the score it earned against a query.
// It is a derived view and is never persisted on its own.
type MatchResult[C any] struct {
	Candidate C
	Score     float64 // In [0, 1]; 1.0 is a certainty match
}

// EntityLink records a correspondence between an entity in one source and
// an entity in another. It is the durable output of cross-referencing.
type EntityLink struct {
	LeftName      string            `json:"left_name"`
	LeftSource    Source            `json:"left_source"`
	LeftMetadata  map[string]string `json:"left_metadata,omitempty"`
	MatchedName   string            `json:"matched_name"`
	MatchedSource Source            `json:"matched_source"`
	Score         float64           `json:"score"`
}

// EntityNumber returns the registry entity number of the left side, if any
func (l EntityLink) EntityNumber() string {
	if l.LeftMetadata == nil {
		return ""
	}
	return l.LeftMetadata[AttrEntityNumber]
}

// Validate checks the link is well formed
func (l EntityLink) Validate() error {
	if l.LeftName == "" || l.MatchedName == "" {
		return ErrEmptyLinkName
	}
	if !l.LeftSource.Valid() || !l.MatchedSource.Valid() {
		return ErrUnknownSource
	}
	if math.IsNaN(l.Score) || l.Score < 0 || l.Score > 1 {
		return ErrInvalidScore
	}
	return nil
}

// LinkReport aggregates the links found across all sources
type LinkReport struct {
	EntityLinks       []EntityLink `json:"entity_links"`
	RegistryCompanies int          `json:"registry_companies"`
	TransferCompanies int          `json:"transfer_companies"`
	PermitCompanies   int          `json:"permit_companies"`
	TotalLinksFound   int          `json:"total_links_found"`

	// Optional person and address linking
	PersonLinks    []EntityLink `json:"person_links,omitempty"`
	AddressLinks   []EntityLink `json:"address_links,omitempty"`
	RegistryPeople int          `json:"registry_people,omitempty"`
}

// RoundScore rounds a score to three decimal places for presentation
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// Rounded returns a copy of the report with every score rounded by
// RoundScore. Metadata maps are shared with r.
func (r *LinkReport) Rounded() *LinkReport {
	out := *r
	out.EntityLinks = roundLinks(r.EntityLinks)
	out.PersonLinks = roundLinks(r.PersonLinks)
	out.AddressLinks = roundLinks(r.AddressLinks)
	return &out
}

func roundLinks(links []EntityLink) []EntityLink {
	if links == nil {
		return nil
	}
	out := make([]EntityLink, len(links))
	for i, l := range links {
		l.Score = RoundScore(l.Score)
		out[i] = l
	}
	return out
}
