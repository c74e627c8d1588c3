// Package pipeline implements catalog ingestion: bulk sync of the remote
// directory, per-entry enrichment with storefront details, retroactive cleanup
// of non-game entries, and search that enriches matches on demand.
//
// Every operation runs sequentially on the caller's goroutine. Batch operations
// count and log per-entry failures and keep going; single-entry operations
// return errors tagged with the services markers so callers can map them to an
// outcome.
package pipeline
