// Package classify decides whether a catalog listing is a playable game.
//
// Two rules exist. ByType trusts the storefront's declared type and is used at
// enrichment time. ByKeyword is a name heuristic used for retroactive cleanup
// of entries that were never enriched; it is known to produce false positives
// (a game titled "Tool Shop") and false negatives (DLC without a tell-tale word).
package classify
