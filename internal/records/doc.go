// Package records decodes and validates the JSON produced by the civic
// document extractors: corporate registry profiles, property transfer lists
// and building permit reports.
//
// Extractor output is loosely typed; fields may be strings, numbers or null.
// Text absorbs that variation, and null always means "no data".
//
//	p := records.New()
//	result, err := p.ParseFile("transfers.json")
//	if err != nil {
//	    return err // unreadable file or unknown document kind
//	}
//	for _, perr := range result.Errors {
//	    log.Printf("skipped: %v", &perr)
//	}
//
// A record missing its required fields (a registry profile without
// entity_name, a transfer with no vendor, purchaser or address, a permit with
// neither owner nor address) is skipped and reported, never fatal.
//
// The candidate helpers turn records into matcher pools. Transfer parties and
// permit owners are deduplicated, so a company repeated across many rows is
// matched once.
package records
