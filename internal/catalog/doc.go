// Package catalog persists catalog entries and their enrichment details in
// SQLite.
//
// An Entry is created by catalog sync and is "pending" until enrichment stores
// exactly one Detail for it. The Store keeps the enriched flag and Detail
// existence in lockstep: UpsertDetail and DeleteDetail flip the flag inside the
// same transaction, and Delete removes the Detail before the Entry. The schema
// carries a foreign key without ON DELETE CASCADE, so every removal goes
// through Delete.
//
// Lookups that find nothing return (nil, nil). Schema changes bump
// schemaVersion in schema.go; an older database must be removed to adopt them.
package catalog
