package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FindByID fetches an entry by its upstream id.
func (s *Store) FindByID(ctx context.Context, id int64) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM catalog_entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return entry, nil
}

// ExistsByID reports whether an entry with the id is catalogued.
func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx = ensureContext(ctx)
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM catalog_entries WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check entry exists: %w", err)
	}
	return exists != 0, nil
}

// Insert stores a new, unenriched entry. The Enriched field is ignored; an
// entry only becomes enriched through UpsertDetail. Inserting an id that is
// already present returns ErrEntryExists and leaves the stored row untouched.
func (s *Store) Insert(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	if entry.ID <= 0 {
		return fmt.Errorf("insert entry: invalid id %d", entry.ID)
	}
	now := time.Now().UTC()
	res, err := s.exec(
		ctx,
		`INSERT INTO catalog_entries (id, name, enriched, created_at, updated_at)
         VALUES (?, ?, 0, ?, ?)
         ON CONFLICT(id) DO NOTHING`,
		entry.ID,
		entry.Name,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert entry rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("insert entry %d: %w", entry.ID, ErrEntryExists)
	}
	entry.Enriched = false
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return nil
}

// Delete removes an entry together with its detail, detail first, in one
// transaction. It reports whether the entry existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = ensureContext(ctx)
	var removed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_details WHERE entry_id = ?`, id); err != nil {
			return fmt.Errorf("delete detail: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM catalog_entries WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete entry rows affected: %w", err)
		}
		removed = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// FindByNameContains returns entries whose name contains substring, ignoring
// ASCII case. LIKE wildcards in substring match literally.
func (s *Store) FindByNameContains(ctx context.Context, substring string) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM catalog_entries WHERE name LIKE ? ESCAPE '\' ORDER BY id`,
		containsPattern(substring),
	)
	if err != nil {
		return nil, fmt.Errorf("find entries by name: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("scan entries by name: %w", err)
	}
	return entries, nil
}

// ListUnenriched returns pending entries ordered by id. A limit <= 0 returns all.
func (s *Store) ListUnenriched(ctx context.Context, limit int) ([]Entry, error) {
	return s.List(ctx, ListFilter{PendingOnly: true, Limit: limit})
}

// List returns entries ordered by id.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + entryColumns + ` FROM catalog_entries`
	var args []any
	if filter.PendingOnly {
		query += ` WHERE enriched = 0`
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	return entries, nil
}
