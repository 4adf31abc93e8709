// Package resolver runs cross-referencing over datasets held in storage.
//
// Resolve loads every record of a dataset, links them with the crossref
// package and returns the report. With Persist set, the links replace the
// dataset's previously stored links of the same kinds in one transaction
// and the dataset's LastLinkedAt is updated.
//
// # Caching
//
// Reports are cached in an LRU keyed by a SHA-256 of the dataset ID, its
// last ingest time and record count, and the thresholds and link kinds
// requested. Entries expire after the configured TTL. A fresh ingest
// changes the key, so stale reports are never served; InvalidateCache
// frees the memory immediately.
//
// Cached reports are copied on the way in and on the way out, so callers
// may modify a returned report freely.
package resolver
