package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Stats returns catalog counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	var stats Stats
	row := s.db.QueryRowContext(ctx, `SELECT
            COUNT(1),
            COALESCE(SUM(CASE WHEN enriched = 1 THEN 1 ELSE 0 END), 0)
        FROM catalog_entries`)
	if err := row.Scan(&stats.Entries, &stats.Enriched); err != nil {
		return Stats{}, fmt.Errorf("count entries: %w", err)
	}
	stats.Pending = stats.Entries - stats.Enriched

	row = s.db.QueryRowContext(ctx, `SELECT
            COUNT(1),
            COALESCE(SUM(CASE WHEN is_game = 0 THEN 1 ELSE 0 END), 0)
        FROM catalog_details`)
	if err := row.Scan(&stats.Details, &stats.NonGameDetails); err != nil {
		return Stats{}, fmt.Errorf("count details: %w", err)
	}
	return stats, nil
}

// CountInvariantViolations counts entries whose enriched flag disagrees with
// detail existence, plus details whose entry is gone.
func (s *Store) CountInvariantViolations(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT
        (SELECT COUNT(1) FROM catalog_entries e
            WHERE e.enriched <> EXISTS(SELECT 1 FROM catalog_details d WHERE d.entry_id = e.id))
      + (SELECT COUNT(1) FROM catalog_details d
            WHERE NOT EXISTS(SELECT 1 FROM catalog_entries e WHERE e.id = d.entry_id))`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("check enrichment invariant: %w", err)
	}
	return count, nil
}

// CheckHealth returns diagnostic information about the catalog database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	ctx = ensureContext(ctx)
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("catalog database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat catalog database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("catalog database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("catalog database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping catalog database: %w", err)
	}
	health.DatabaseReadable = true

	rows, err := s.db.QueryContext(connCtx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("list tables: %w", err)
	}
	present := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			health.Error = err.Error()
			return health, fmt.Errorf("scan table name: %w", err)
		}
		present[name] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("iterate tables: %w", err)
	}
	for _, table := range catalogTables {
		if _, ok := present[table]; ok {
			health.TablesPresent = append(health.TablesPresent, table)
		} else {
			health.MissingTables = append(health.MissingTables, table)
		}
	}
	if len(health.MissingTables) > 0 {
		health.Error = "missing tables: " + strings.Join(health.MissingTables, ", ")
		return health, nil
	}

	if err := s.db.QueryRowContext(connCtx, `SELECT version FROM schema_version LIMIT 1`).Scan(&health.SchemaVersion); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("read schema version: %w", err)
	}
	if err := s.db.QueryRowContext(connCtx, `SELECT COUNT(1) FROM catalog_entries`).Scan(&health.TotalEntries); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("count entries: %w", err)
	}
	violations, err := s.CountInvariantViolations(connCtx)
	if err != nil {
		health.Error = err.Error()
		return health, err
	}
	health.InvariantViolations = violations

	var integrityResult string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
