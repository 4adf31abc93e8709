// Package ingest loads extractor JSON documents into storage.
//
// An ingest run walks a directory (or takes a single file), hashes each
// *.json document, skips documents whose SHA-256 is unchanged since the
// last run, and parses the rest with the records package. Files are
// committed in batches, one transaction per batch, with batches processed
// concurrently up to Config.Workers.
//
// A document that cannot be parsed at all is tracked with its parse error
// and retried on the next run; individual records that fail validation are
// counted in Statistics.RecordsRejected and the rest of the document is
// kept. Files that disappeared from disk are removed with their records.
//
//	ing := ingest.New(store, logger)
//	stats, err := ing.Ingest(ctx, "saskatoon-2024", "./extracted", nil)
//
// Only one ingest may run per Ingester; a second concurrent call returns
// ErrIngestInProgress.
package ingest
