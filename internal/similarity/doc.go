// Package similarity scores pairs of normalized strings.
//
// Ratio is the base character-level measure. The Company, Person and Address
// scorers layer domain boosts on top of it; a boost only ever raises the base
// score, and every score is in [0, 1]:
//
//	similarity.Company("102118427 saskatchewan", "102118427 sask") // 1.0, numbered company
//	similarity.Address("306 ontario ave", "306 ontario ave n")   // street number boost
//
// Inputs are expected to be normalized already (see package normalize).
package similarity
