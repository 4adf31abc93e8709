// Package normalize canonicalizes raw company names, person names and civic
// addresses into comparable forms.
//
// Every function is pure: the result depends only on the input string, and
// empty or whitespace-only input yields "". An empty normalized form is "no
// data" and never participates in matching.
//
// # Company names
//
// Legal and business suffixes are removed as whole words in a single pass,
// so "Coleman Co." becomes "coleman" and the "co" inside "coleman" is kept:
//
//	normalize.Company("102118427 Saskatchewan Ltd.") // "102118427 saskatchewan"
//
// # Person names
//
// Tokens are sorted, making last-name-first and first-name-first forms equal:
//
//	normalize.Person("BATTING TRAVIS") == normalize.Person("Travis Batting")
//
// # Addresses
//
// Unit markers, postal codes and trailing province or country tokens are
// dropped and street words abbreviated:
//
//	normalize.Address("306 Ontario Avenue, #2, Saskatoon SK S7K 2H5") // "306 ontario ave saskatoon"
//
// All three normalizers fold accents first ("François" matches "Francois").
package normalize
