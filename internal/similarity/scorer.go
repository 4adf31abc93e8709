package similarity

// Scorer scores two already-normalized strings in [0, 1].
// Scorers are pure and safe for concurrent use.
type Scorer func(a, b string) float64

// Company scores normalized company names: the base ratio raised by token
// overlap, forced to 1.0 for identical numbered-company prefixes.
func Company(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if NumberedCompany(a, b) {
		return 1
	}
	return clamp(max(Ratio(a, b), TokenOverlap(a, b)))
}

// Person scores normalized (token-sorted) person names. Equal forms are a
// certainty match.
func Person(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return Ratio(a, b)
}

// Address scores normalized addresses, raising the base ratio when both
// share a leading street number.
func Address(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	score := Ratio(a, b)
	if boosted, ok := StreetNumber(a, b); ok {
		score = max(score, boosted)
	}
	return clamp(score)
}
