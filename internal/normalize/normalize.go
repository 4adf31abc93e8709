package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Func is a pure string canonicalization
type Func func(string) string

// companySuffixes lists legal and business suffix tokens removed from
// company names. Longer forms come first so the alternation prefers them.
var companySuffixes = [...]string{
	"corporation", "developments", "development", "construction", "partnership",
	"investments", "investment", "enterprises", "enterprise", "associates",
	"associate", "properties", "holdings", "holding", "realty", "group",
	"trust", "corp", "inc", "ltd", "llc", "llp", "lp", "co",
}

// addressAbbreviations maps street-type and directional words to their
// standard abbreviation.
var addressAbbreviations = [...][2]string{
	{"avenue", "ave"}, {"street", "st"}, {"drive", "dr"}, {"road", "rd"},
	{"boulevard", "blvd"}, {"crescent", "cres"}, {"place", "pl"},
	{"court", "crt"}, {"lane", "ln"}, {"terrace", "terr"},
	{"parkway", "pkwy"}, {"highway", "hwy"}, {"circle", "cir"},
	{"north", "n"}, {"south", "s"}, {"east", "e"}, {"west", "w"},
}

// provinceTokens are stripped from the end of an address
var provinceTokens = [...]string{"saskatchewan", "sk", "canada"}

var (
	punctuation     = regexp.MustCompile(`[.,;:'"()\-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	companySuffix   = regexp.MustCompile(`\b(?:` + strings.Join(companySuffixes[:], "|") + `)\b`)
	unitMarker      = regexp.MustCompile(`#\s*\d+|\bsuite\s*\d+|\bunit\s*\d+`)
	addressWord     = regexp.MustCompile(`\b(?:` + abbreviationAlternation() + `)\b`)
	postalCode      = regexp.MustCompile(`\b[a-z]\d[a-z]\s*\d[a-z]\d\b`)
	trailingRegion  = regexp.MustCompile(`(?:[\s,.]*\b(?:` + strings.Join(provinceTokens[:], "|") + `)\b)+[\s,.]*$`)
	addressPunct    = regexp.MustCompile(`[,.]`)
	abbreviationMap = func() map[string]string {
		m := make(map[string]string, len(addressAbbreviations))
		for _, pair := range addressAbbreviations {
			m[pair[0]] = pair[1]
		}
		return m
	}()
)

func abbreviationAlternation() string {
	words := make([]string, len(addressAbbreviations))
	for i, pair := range addressAbbreviations {
		words[i] = pair[0]
	}
	return strings.Join(words, "|")
}

// Company canonicalizes a company name: accents folded, lowercased,
// punctuation turned into spaces, legal suffix tokens removed as whole
// words, whitespace collapsed.
//
//	Company("102118427 Saskatchewan Ltd.") == "102118427 saskatchewan"
//	Company("Coleman Co.")                 == "coleman"
func Company(name string) string {
	s := prepare(name)
	if s == "" {
		return ""
	}
	s = punctuation.ReplaceAllString(s, " ")
	s = companySuffix.ReplaceAllString(s, "")
	return collapse(s)
}

// Person canonicalizes a person name with its tokens sorted, so that
// "Smith John" and "John Smith" normalize identically.
func Person(name string) string {
	s := prepare(name)
	if s == "" {
		return ""
	}
	s = punctuation.ReplaceAllString(s, " ")
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Address canonicalizes a civic address: unit markers removed, street
// types and directions abbreviated, postal code and trailing province or
// country dropped, punctuation collapsed.
//
//	Address("306 Ontario Avenue, Saskatoon, SK S7K 2H5") == "306 ontario ave saskatoon"
func Address(address string) string {
	s := prepare(address)
	if s == "" {
		return ""
	}
	s = unitMarker.ReplaceAllString(s, "")
	s = addressWord.ReplaceAllStringFunc(s, func(w string) string {
		return abbreviationMap[w]
	})
	s = postalCode.ReplaceAllString(s, "")
	s = trailingRegion.ReplaceAllString(s, "")
	s = addressPunct.ReplaceAllString(s, " ")
	return collapse(s)
}

// CompanySuffixes returns a copy of the suffix tokens removed by Company
func CompanySuffixes() []string {
	out := make([]string, len(companySuffixes))
	copy(out, companySuffixes[:])
	return out
}

// AddressAbbreviations returns a copy of the word to abbreviation table
// applied by Address
func AddressAbbreviations() map[string]string {
	out := make(map[string]string, len(addressAbbreviations))
	for _, pair := range addressAbbreviations {
		out[pair[0]] = pair[1]
	}
	return out
}

// prepare folds accents, lowercases and trims. Whitespace-only input
// becomes "".
func prepare(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(foldAccents(s))
}

// foldAccents strips combining marks ("François" -> "Francois").
// A transform chain carries internal buffers, so one is built per call.
func foldAccents(s string) string {
	if isASCII(s) {
		return s
	}
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
