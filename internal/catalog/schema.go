package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion must be bumped with every change to schema.sql. Older
// databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch reports a catalog written by a different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

var catalogTables = []string{"catalog_entries", "catalog_details", "schema_version"}

// migrate creates the schema in an empty database and verifies the recorded
// version otherwise.
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.recordedVersion(ctx)
	if err != nil {
		return err
	}
	switch {
	case version == 0:
		return s.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
				return fmt.Errorf("record schema version: %w", err)
			}
			return nil
		})
	case version != schemaVersion:
		return fmt.Errorf("%w: %s has version %d, want %d (remove it to start over)",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
	return nil
}

// recordedVersion returns 0 for a database without a schema_version table.
func (s *Store) recordedVersion(ctx context.Context) (int, error) {
	var tables int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`,
	).Scan(&tables); err != nil {
		return 0, fmt.Errorf("inspect schema: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s has an empty schema_version table", ErrSchemaMismatch, s.path)
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
