// Package services defines shared utilities consumed by the ingestion pipeline
// and its callers.
//
// Key responsibilities:
//   - Context helpers that stamp entry IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that tag failures as
//     transient, not found, storage, or validation problems.
//   - The Outcome type that turns any operation result into a definite,
//     human-readable report with an optional affected-record count.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// stays uniform across sync, enrichment, cleanup, and search.
package services
