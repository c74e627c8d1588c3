// Command gamecat maintains a local catalog of Steam applications.
//
// It syncs the full application directory into SQLite, enriches entries with
// storefront details on demand or in batches, and removes non-game listings
// either by their recorded storefront type or by a configurable name keyword
// heuristic. Mutating commands hold a lock file in the data directory so two
// runs never interleave.
package main
