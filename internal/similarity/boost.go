package similarity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// StreetNumberDiscount scales the remainder similarity of two addresses
// sharing a street number.
const StreetNumberDiscount = 0.95

// MinCompanyNumberDigits is the shortest leading digit run treated as a
// numbered-company identifier.
const MinCompanyNumberDigits = 6

var (
	companyNumber = regexp.MustCompile(`^\d{` + strconv.Itoa(MinCompanyNumberDigits) + `,}`)
	streetNumber  = regexp.MustCompile(`^(\d+)\s+(.+)`)
)

// TokenOverlap returns |A∩B| / max(|A|,|B|) over the whitespace token sets
// of a and b. Either side without tokens gives 0.
func TokenOverlap(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(ta), len(tb)))
}

// NumberedCompany reports whether both normalized names begin with the same
// run of at least six digits.
//
//	NumberedCompany("102118427 saskatchewan", "102118427 sask") == true
func NumberedCompany(a, b string) bool {
	na := companyNumber.FindString(a)
	if na == "" {
		return false
	}
	return na == companyNumber.FindString(b)
}

// StreetNumber compares the text after matching leading street numbers.
// It returns Ratio(remainderA, remainderB) * StreetNumberDiscount and true
// when both addresses start with the same number; otherwise 0 and false.
func StreetNumber(a, b string) (float64, bool) {
	pa := streetNumber.FindStringSubmatch(a)
	pb := streetNumber.FindStringSubmatch(b)
	if pa == nil || pb == nil || pa[1] != pb[1] {
		return 0, false
	}
	return Ratio(pa[2], pb[2]) * StreetNumberDiscount, true
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// clamp bounds a score to [0, 1]; NaN becomes 0
func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
