package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertDetail stores detail for its entry and marks the entry enriched, in one
// transaction. An existing detail is never overwritten; created reports whether
// a new row was written. The entry must exist.
func (s *Store) UpsertDetail(ctx context.Context, detail *Detail) (created bool, err error) {
	if detail == nil {
		return false, errors.New("detail is nil")
	}
	ctx = ensureContext(ctx)
	now := time.Now().UTC()
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM catalog_entries WHERE id = ?)`, detail.EntryID).Scan(&exists); err != nil {
			return fmt.Errorf("check entry: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("upsert detail %d: %w", detail.EntryID, ErrEntryNotFound)
		}

		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO catalog_details (`+detailColumns+`)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
             ON CONFLICT(entry_id) DO NOTHING`,
			detail.EntryID,
			detail.Name,
			detail.About,
			detail.ShortDescription,
			detail.HeaderImageURL,
			detail.WebsiteURL,
			boolToInt(detail.IsGame),
			boolToInt(detail.IsFree),
			detail.RequiredAge,
			detail.Developers,
			detail.Publishers,
			detail.Genres,
			detail.ReleaseDate,
			nullableBytes(detail.PriceInfo),
			nullableBytes(detail.Categories),
			formatTime(now),
		)
		if err != nil {
			return fmt.Errorf("insert detail: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert detail rows affected: %w", err)
		}
		created = affected > 0

		if _, err := tx.ExecContext(
			ctx,
			`UPDATE catalog_entries SET enriched = 1, updated_at = ? WHERE id = ? AND enriched = 0`,
			formatTime(now),
			detail.EntryID,
		); err != nil {
			return fmt.Errorf("mark entry enriched: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		detail.CreatedAt = now
	}
	return created, nil
}

// DeleteDetail removes the detail for an entry, if any, and clears the entry's
// enriched flag. It reports whether a detail row was removed.
func (s *Store) DeleteDetail(ctx context.Context, entryID int64) (bool, error) {
	ctx = ensureContext(ctx)
	var removed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM catalog_details WHERE entry_id = ?`, entryID)
		if err != nil {
			return fmt.Errorf("delete detail: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete detail rows affected: %w", err)
		}
		removed = affected > 0
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE catalog_entries SET enriched = 0, updated_at = ? WHERE id = ? AND enriched = 1`,
			formatTime(time.Now()),
			entryID,
		); err != nil {
			return fmt.Errorf("clear enriched flag: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// FindDetail fetches the detail for an entry.
func (s *Store) FindDetail(ctx context.Context, entryID int64) (*Detail, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+detailColumns+` FROM catalog_details WHERE entry_id = ?`, entryID)
	detail, err := scanDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find detail: %w", err)
	}
	return detail, nil
}

// FindNonGameDetails returns every detail whose recorded verdict is non-game.
func (s *Store) FindNonGameDetails(ctx context.Context) ([]Detail, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+detailColumns+` FROM catalog_details WHERE is_game = 0 ORDER BY entry_id`)
	if err != nil {
		return nil, fmt.Errorf("find non-game details: %w", err)
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		details = append(details, *detail)
	}
	return details, rows.Err()
}
